package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/chapterlens/outline-api/api/health"
	"github.com/chapterlens/outline-api/api/jobs"
	"github.com/chapterlens/outline-api/api/outlines"
	"github.com/chapterlens/outline-api/api/snapshots"
	"github.com/chapterlens/outline-api/api/transcripts"
	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/api/version"
	_ "github.com/chapterlens/outline-api/docs/swagger"
	"github.com/chapterlens/outline-api/internal/services/generation"
	jobsService "github.com/chapterlens/outline-api/internal/services/jobs"
	outlinesService "github.com/chapterlens/outline-api/internal/services/outlines"
	snapshotsService "github.com/chapterlens/outline-api/internal/services/snapshots"
	transcriptsService "github.com/chapterlens/outline-api/internal/services/transcripts"
	"github.com/chapterlens/outline-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register routes only when storage is available
	if deps.DB != nil && deps.DB.DB != nil {
		initializeServices(deps, cfg)

		passthrough := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
		generalLimit := passthrough
		generationLimit := passthrough
		if cfg.RateLimiting.Enabled {
			rps := cfg.RateLimiting.RequestsPerSecond
			if rps <= 0 {
				rps = 10
			}
			burst := cfg.RateLimiting.Burst
			if burst <= 0 {
				burst = 2 * rps
			}
			generalLimit = PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "general", rps, burst)

			// Generation endpoints hit the remote model, so they get a much
			// tighter limit than cached reads
			generationLimit = PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "generation", 1, 2)
		}

		videoGroup := v1.Group("/videos")
		videoGroup.Use(generalLimit)

		transcripts.RegisterRoutes(videoGroup, deps)
		outlines.RegisterRoutes(videoGroup, v1, deps, generalLimit, generationLimit)
		snapshots.RegisterRoutes(videoGroup, v1, deps, generalLimit, generationLimit)

		jobGroup := v1.Group("/jobs")
		jobGroup.Use(generalLimit)
		jobs.RegisterRoutes(jobGroup, deps)
	}

	return nil
}

// initializeServices wires up any services the caller has not provided
func initializeServices(deps *types.Dependencies, cfg *config.Config) {
	if deps.Generator == nil {
		deps.Generator = generation.NewClient(cfg.Generation)
	}

	if deps.TranscriptService == nil {
		repo := transcriptsService.NewRepository(deps.DB.DB)
		deps.TranscriptService = transcriptsService.NewService(repo, transcriptsService.NewScraper())
	}

	if deps.OutlineService == nil {
		repo := outlinesService.NewRepository(deps.DB.DB)
		deps.OutlineService = outlinesService.NewService(repo, deps.TranscriptService, deps.Generator, cfg.Generation.ExcludeVideoURL)
	}

	if deps.SnapshotService == nil {
		repo := snapshotsService.NewRepository(deps.DB.DB)
		deps.SnapshotService = snapshotsService.NewService(repo, deps.TranscriptService, deps.Generator, cfg.Processing.RequestPause)
	}

	if deps.JobService == nil {
		deps.JobService = jobsService.NewService(jobsService.NewRepository(deps.DB.DB))
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
