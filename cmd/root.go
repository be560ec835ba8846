package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chapterlens/outline-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "outline-api",
	Short: "Video outline generation API server",
	Long: `Outline API - timestamped outline generation for videos

The server scrapes transcripts from posted watch page markup, caches them,
and uses a remote generation model to produce timestamped outlines and
snapshot captions.

Features:
  • Transcript extraction from watch page HTML
  • Transcript segment selection around a playback position
  • Outline generation with multi-stage response parsing
  • Snapshot captioning, single and batched via a job queue`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// loadConfig initializes configuration for commands that need it
func loadConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
