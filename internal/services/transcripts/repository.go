package transcripts

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chapterlens/outline-api/internal/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcript repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByVideoID retrieves a cached transcript by video ID
func (r *repository) GetByVideoID(ctx context.Context, videoID string) (*models.CachedTranscript, error) {
	var transcript models.CachedTranscript

	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).First(&transcript)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &transcript, nil
}

// Upsert creates or replaces the cached transcript for a video
func (r *repository) Upsert(ctx context.Context, transcript *models.CachedTranscript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(transcript).Error
}

// Delete removes a cached transcript
func (r *repository) Delete(ctx context.Context, videoID string) error {
	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&models.CachedTranscript{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
