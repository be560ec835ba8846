package snapshots

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chapterlens/outline-api/internal/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new snapshot repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create stores a new snapshot
func (r *repository) Create(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return errors.New("snapshot cannot be nil")
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// GetByUUID retrieves a snapshot by its UUID
func (r *repository) GetByUUID(ctx context.Context, uuid string) (*models.Snapshot, error) {
	var snapshot models.Snapshot

	result := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&snapshot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &snapshot, nil
}

// ListByVideoID returns snapshots for a video ordered by time ascending
func (r *repository) ListByVideoID(ctx context.Context, videoID string) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot

	result := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("time ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}

	return snapshots, nil
}

// ListUndescribed returns snapshots of a video with no description yet
func (r *repository) ListUndescribed(ctx context.Context, videoID string) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot

	result := r.db.WithContext(ctx).
		Where("video_id = ? AND (description IS NULL OR description = '')", videoID).
		Order("time ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}

	return snapshots, nil
}

// Update persists changes to a snapshot
func (r *repository) Update(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return errors.New("snapshot cannot be nil")
	}
	return r.db.WithContext(ctx).Save(snapshot).Error
}

// Delete removes a snapshot
func (r *repository) Delete(ctx context.Context, uuid string) error {
	result := r.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&models.Snapshot{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
