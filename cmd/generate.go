package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/chapterlens/outline-api/internal/database"
	"github.com/chapterlens/outline-api/internal/services/outlines"
	"github.com/chapterlens/outline-api/pkg/timestamp"
)

var (
	generateVideoID  string
	generateTitle    string
	generateChannel  string
	generateURL      string
	generateDuration float64
	generateLanguage string
	generateHTMLFile string
	generateForce    bool
	generateJSON     bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an outline for a single video",
	Long: `Generate an outline for one video without starting the server.

Reads a saved watch page when --html-file is given so the transcript can
be extracted and cached first. The outline is persisted to the configured
database and printed to stdout.

Example:
  outline-api generate --id dQw4w9WgXcQ --title "Talk" --duration 1800
  outline-api generate --id dQw4w9WgXcQ --duration 1800 --html-file page.html --json`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateVideoID, "id", "", "video ID (required)")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "video title")
	generateCmd.Flags().StringVar(&generateChannel, "channel", "", "channel name")
	generateCmd.Flags().StringVar(&generateURL, "url", "", "video URL")
	generateCmd.Flags().Float64Var(&generateDuration, "duration", 0, "video duration in seconds (required)")
	generateCmd.Flags().StringVar(&generateLanguage, "language", "en", "outline language")
	generateCmd.Flags().StringVar(&generateHTMLFile, "html-file", "", "path to a saved watch page for transcript extraction")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "regenerate even when an outline is stored")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the outline as JSON")

	_ = generateCmd.MarkFlagRequired("id")
	_ = generateCmd.MarkFlagRequired("duration")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var pageHTML string
	if generateHTMLFile != "" {
		raw, err := os.ReadFile(generateHTMLFile)
		if err != nil {
			return fmt.Errorf("failed to read watch page: %w", err)
		}
		pageHTML = string(raw)
	}

	deps := buildDependencies(db, cfg)

	// A stored outline short-circuits generation, so --force drops it first.
	if generateForce {
		if err := deps.OutlineService.Delete(cmd.Context(), generateVideoID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to remove stored outline: %w", err)
		}
	}

	outline, err := deps.OutlineService.Generate(cmd.Context(), outlines.GenerateParams{
		VideoID:       generateVideoID,
		VideoTitle:    generateTitle,
		ChannelName:   generateChannel,
		VideoURL:      generateURL,
		VideoDuration: generateDuration,
		Language:      generateLanguage,
		PageHTML:      pageHTML,
		ForceRefresh:  generateForce,
	})
	if err != nil {
		return fmt.Errorf("failed to generate outline: %w", err)
	}

	if generateJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(outline)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Outline for %s (%d items)\n", outline.VideoID, len(outline.Items))
	if !outline.HasTranscript {
		fmt.Fprintln(out, "Note: generated without a transcript")
	}
	for _, item := range outline.Items {
		fmt.Fprintf(out, "[%s] %s\n", timestamp.Format(item.Timestamp), item.Title)
		if item.Description != "" {
			fmt.Fprintf(out, "    %s\n", item.Description)
		}
	}
	return nil
}
