package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chapterlens/outline-api/internal/database"
	"github.com/chapterlens/outline-api/internal/models"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the Outline API.

Available subcommands:
  up      - Apply the schema to the configured database
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema",
	Long: `Create or update all tables in the configured database.

Schema changes are applied through GORM auto-migration and are additive;
existing data is preserved.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows which tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func openDatabase() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Schema Status")
	fmt.Fprintln(out, strings.Repeat("=", 40))

	tables := []struct {
		name  string
		model any
	}{
		{"outlines", &models.SavedOutline{}},
		{"outline_items", &models.OutlineItem{}},
		{"cached_transcripts", &models.CachedTranscript{}},
		{"snapshots", &models.Snapshot{}},
		{"jobs", &models.Job{}},
	}

	migrator := db.DB.Migrator()
	for _, table := range tables {
		state := "missing"
		if migrator.HasTable(table.model) {
			state = "present"
		}
		fmt.Fprintf(out, "  %-20s %s\n", table.name, state)
	}

	return nil
}
