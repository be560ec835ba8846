package transcripts

import (
	"context"

	"github.com/chapterlens/outline-api/internal/models"
)

// TranscriptService defines the interface for transcript operations
type TranscriptService interface {
	// GetTranscript returns the cached transcript for a video, scraping the
	// provided watch page HTML on a cache miss. When forceRefresh is true the
	// cache read is skipped and the document is scraped again. The bool
	// reports whether the cache served the document.
	GetTranscript(ctx context.Context, videoID string, pageHTML string, forceRefresh bool) (string, bool, error)

	// GetCached returns the cached transcript without scraping. Returns an
	// empty string when nothing is cached.
	GetCached(ctx context.Context, videoID string) (string, error)

	// DeleteCached removes the cached transcript for a video
	DeleteCached(ctx context.Context, videoID string) error
}

// Repository defines the interface for transcript persistence
type Repository interface {
	// GetByVideoID retrieves a cached transcript, nil when absent
	GetByVideoID(ctx context.Context, videoID string) (*models.CachedTranscript, error)

	// Upsert creates or replaces the cached transcript for a video
	Upsert(ctx context.Context, transcript *models.CachedTranscript) error

	// Delete removes a cached transcript
	Delete(ctx context.Context, videoID string) error
}

// Scraper extracts a transcript document from watch page HTML
type Scraper interface {
	// Scrape returns the transcript document, or an empty string when the
	// page contains no extractable transcript lines
	Scrape(pageHTML string) (string, error)
}
