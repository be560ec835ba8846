package outlines

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

// NewRepository creates a new outline repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByVideoID retrieves an outline with its items by video ID
func (r *repository) GetByVideoID(ctx context.Context, videoID string) (*models.SavedOutline, error) {
	var outline models.SavedOutline

	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Where("video_id = ?", videoID).
		First(&outline)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &outline, nil
}

// Save creates or replaces the outline for a video. The previous outline
// and its items are removed in the same transaction.
func (r *repository) Save(ctx context.Context, outline *models.SavedOutline) error {
	if outline == nil {
		return errors.New("outline cannot be nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SavedOutline
		err := tx.Where("video_id = ?", outline.VideoID).First(&existing).Error
		if err == nil {
			if err := tx.Where("outline_id = ?", existing.ID).Delete(&models.OutlineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			// Regenerating keeps the original creation time.
			outline.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(outline).Error
	})
}

// ReplaceItems swaps an outline's items for a new set in one transaction
func (r *repository) ReplaceItems(ctx context.Context, outlineID uint, items []models.OutlineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("outline_id = ?", outlineID).Delete(&models.OutlineItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OutlineID = outlineID
		}
		return tx.Create(&items).Error
	})
}

// List returns outlines ordered by creation time descending
func (r *repository) List(ctx context.Context, limit, offset int) ([]models.SavedOutline, int64, error) {
	var outlines []models.SavedOutline
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.SavedOutline{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&outlines)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return outlines, total, nil
}

// Delete removes an outline and its items
func (r *repository) Delete(ctx context.Context, videoID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var outline models.SavedOutline
		if err := tx.Where("video_id = ?", videoID).First(&outline).Error; err != nil {
			return err
		}
		if err := tx.Where("outline_id = ?", outline.ID).Delete(&models.OutlineItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&outline).Error
	})
}
