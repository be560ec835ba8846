package outlines

import (
	"context"

	"github.com/chapterlens/outline-api/internal/models"
)

// GenerateParams carries everything needed to produce an outline for a video
type GenerateParams struct {
	VideoID       string
	VideoTitle    string
	ChannelName   string
	VideoURL      string
	VideoDuration float64
	Language      string
	PageHTML      string
	ForceRefresh  bool
}

// OutlineService defines the interface for outline operations
type OutlineService interface {
	// Generate returns the stored outline for a video, generating and
	// persisting a new one when none exists
	Generate(ctx context.Context, params GenerateParams) (*models.SavedOutline, error)

	// GetByVideoID retrieves a stored outline, nil when absent
	GetByVideoID(ctx context.Context, videoID string) (*models.SavedOutline, error)

	// List returns stored outlines, newest first
	List(ctx context.Context, limit, offset int) ([]models.SavedOutline, int64, error)

	// UpdateItems replaces the items of a stored outline with a
	// user-edited set, re-clamped and re-sorted
	UpdateItems(ctx context.Context, videoID string, items []ParsedItem) (*models.SavedOutline, error)

	// Delete removes a stored outline and its items
	Delete(ctx context.Context, videoID string) error
}

// Repository defines the interface for outline persistence
type Repository interface {
	// GetByVideoID retrieves an outline with its items, nil when absent
	GetByVideoID(ctx context.Context, videoID string) (*models.SavedOutline, error)

	// Save creates or replaces the outline for a video
	Save(ctx context.Context, outline *models.SavedOutline) error

	// ReplaceItems swaps an outline's items for a new set
	ReplaceItems(ctx context.Context, outlineID uint, items []models.OutlineItem) error

	// List returns outlines ordered by creation time descending
	List(ctx context.Context, limit, offset int) ([]models.SavedOutline, int64, error)

	// Delete removes an outline and its items
	Delete(ctx context.Context, videoID string) error
}
