package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chapterlens/outline-api/api"
	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/internal/database"
	"github.com/chapterlens/outline-api/internal/services/generation"
	jobsService "github.com/chapterlens/outline-api/internal/services/jobs"
	outlinesService "github.com/chapterlens/outline-api/internal/services/outlines"
	snapshotsService "github.com/chapterlens/outline-api/internal/services/snapshots"
	transcriptsService "github.com/chapterlens/outline-api/internal/services/transcripts"
	"github.com/chapterlens/outline-api/internal/services/workers"
	"github.com/chapterlens/outline-api/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Outline API server with the configured settings.

The server accepts watch page markup for transcript extraction, serves
stored outlines and snapshots, and runs a background worker pool for
batched snapshot captioning.

Example:
  outline-api serve
  outline-api serve --port 9090
  outline-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	deps := buildDependencies(db, cfg)

	// Background workers pick up queued captioning jobs
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	pool := workers.NewWorkerPool(deps.JobService, cfg.Processing.Workers, cfg.Processing.PollInterval)
	pool.RegisterProcessor(workers.NewDescribeProcessor(deps.JobService, deps.SnapshotService))
	if err := pool.Start(workerCtx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}
	deps.WorkerPool = pool

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDatabase(db)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Printf("[INFO] Server ready at %s:%d", serverHost, serverPort)

	select {
	case <-stop:
		log.Println("[INFO] Shutting down server")
	case err := <-serverErr:
		if err != nil {
			log.Printf("[ERROR] Server error: %v", err)
		}
	}

	pool.Stop()
	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}

// buildDependencies wires the service graph from configuration
func buildDependencies(db *database.DB, cfg *config.Config) *types.Dependencies {
	generator := generation.NewClient(cfg.Generation)

	transcriptSvc := transcriptsService.NewService(transcriptsService.NewRepository(db.DB), transcriptsService.NewScraper())
	outlineSvc := outlinesService.NewService(outlinesService.NewRepository(db.DB), transcriptSvc, generator, cfg.Generation.ExcludeVideoURL)
	snapshotSvc := snapshotsService.NewService(snapshotsService.NewRepository(db.DB), transcriptSvc, generator, cfg.Processing.RequestPause)
	jobSvc := jobsService.NewService(jobsService.NewRepository(db.DB))

	return &types.Dependencies{
		DB:                db,
		TranscriptService: transcriptSvc,
		OutlineService:    outlineSvc,
		SnapshotService:   snapshotSvc,
		JobService:        jobSvc,
		Generator:         generator,
	}
}
