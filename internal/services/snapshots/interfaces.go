package snapshots

import (
	"context"

	"github.com/chapterlens/outline-api/internal/models"
)

// DescribeResult summarizes a batch description run
type DescribeResult struct {
	Described int `json:"described"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// SnapshotService defines the interface for snapshot operations
type SnapshotService interface {
	// Create stores a new snapshot
	Create(ctx context.Context, snapshot *models.Snapshot) error

	// GetByUUID retrieves a snapshot, nil when absent
	GetByUUID(ctx context.Context, uuid string) (*models.Snapshot, error)

	// ListByVideo returns all snapshots for a video ordered by time
	ListByVideo(ctx context.Context, videoID string) ([]models.Snapshot, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, uuid string) error

	// UpdateDescription sets a snapshot's description directly
	UpdateDescription(ctx context.Context, uuid, description string) error

	// Describe generates and stores a caption for one snapshot
	Describe(ctx context.Context, uuid, language string) (*models.Snapshot, error)

	// DescribeAll captions every undescribed snapshot of a video, one
	// generation request at a time
	DescribeAll(ctx context.Context, videoID, language string) (*DescribeResult, error)
}

// Repository defines the interface for snapshot persistence
type Repository interface {
	// Create stores a new snapshot
	Create(ctx context.Context, snapshot *models.Snapshot) error

	// GetByUUID retrieves a snapshot, nil when absent
	GetByUUID(ctx context.Context, uuid string) (*models.Snapshot, error)

	// ListByVideoID returns snapshots for a video ordered by time ascending
	ListByVideoID(ctx context.Context, videoID string) ([]models.Snapshot, error)

	// ListUndescribed returns snapshots of a video with no description yet
	ListUndescribed(ctx context.Context, videoID string) ([]models.Snapshot, error)

	// Update persists changes to a snapshot
	Update(ctx context.Context, snapshot *models.Snapshot) error

	// Delete removes a snapshot
	Delete(ctx context.Context, uuid string) error
}
