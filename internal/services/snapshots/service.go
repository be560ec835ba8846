package snapshots

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/chapterlens/outline-api/internal/models"
	"github.com/chapterlens/outline-api/internal/services/generation"
	"github.com/chapterlens/outline-api/internal/services/transcripts"
	apperrors "github.com/chapterlens/outline-api/pkg/errors"
	"github.com/chapterlens/outline-api/pkg/timestamp"
)

// Service implements the SnapshotService interface. Batch captioning is
// paced by a rate limiter so generation requests stay serialized with a
// pause between them.
type Service struct {
	repo        Repository
	transcripts transcripts.TranscriptService
	generator   generation.Generator
	pacer       *rate.Limiter
}

// NewService creates a new snapshot service
func NewService(repo Repository, transcriptService transcripts.TranscriptService, generator generation.Generator, requestPause time.Duration) SnapshotService {
	if requestPause <= 0 {
		requestPause = 250 * time.Millisecond
	}
	return &Service{
		repo:        repo,
		transcripts: transcriptService,
		generator:   generator,
		pacer:       rate.NewLimiter(rate.Every(requestPause), 1),
	}
}

// Create stores a new snapshot
func (s *Service) Create(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "snapshot cannot be nil")
	}
	if snapshot.VideoID == "" {
		return apperrors.MissingFieldError("video_id")
	}
	if snapshot.ImageBase64 == "" {
		return apperrors.MissingFieldError("image_base64")
	}
	return s.repo.Create(ctx, snapshot)
}

// GetByUUID retrieves a snapshot
func (s *Service) GetByUUID(ctx context.Context, uuid string) (*models.Snapshot, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

// ListByVideo returns all snapshots for a video ordered by time
func (s *Service) ListByVideo(ctx context.Context, videoID string) ([]models.Snapshot, error) {
	return s.repo.ListByVideoID(ctx, videoID)
}

// Delete removes a snapshot
func (s *Service) Delete(ctx context.Context, uuid string) error {
	return s.repo.Delete(ctx, uuid)
}

// UpdateDescription sets a snapshot's description directly
func (s *Service) UpdateDescription(ctx context.Context, uuid, description string) error {
	snapshot, err := s.repo.GetByUUID(ctx, uuid)
	if err != nil {
		return apperrors.DatabaseError("get snapshot", err)
	}
	if snapshot == nil {
		return apperrors.NotFound("snapshot", uuid)
	}

	snapshot.Description = description
	return s.repo.Update(ctx, snapshot)
}

// Describe generates a caption for one snapshot from its image and the
// transcript lines surrounding its time, then persists it.
func (s *Service) Describe(ctx context.Context, uuid, language string) (*models.Snapshot, error) {
	snapshot, err := s.repo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, apperrors.DatabaseError("get snapshot", err)
	}
	if snapshot == nil {
		return nil, apperrors.NotFound("snapshot", uuid)
	}

	description, err := s.describeSnapshot(ctx, snapshot, language)
	if err != nil {
		return nil, err
	}

	snapshot.Description = description
	if err := s.repo.Update(ctx, snapshot); err != nil {
		return nil, apperrors.DatabaseError("update snapshot", err)
	}

	return snapshot, nil
}

func (s *Service) describeSnapshot(ctx context.Context, snapshot *models.Snapshot, language string) (string, error) {
	// No cached transcript is fine, the caption then leans on the image.
	segment := ""
	transcript, err := s.transcripts.GetCached(ctx, snapshot.VideoID)
	if err != nil {
		log.Printf("[WARN] Transcript lookup failed for video %s: %v", snapshot.VideoID, err)
	} else if transcript != "" {
		segment = transcripts.ExtractSegment(transcript, snapshot.Time,
			transcripts.DefaultBeforeSeconds, transcripts.DefaultAfterSeconds, transcripts.DefaultMaxLines)
	}

	prompt := generation.BuildPrompt(generation.SnapshotTemplate(language), map[string]string{
		"videoUrl":          snapshot.VideoURL,
		"videoTitle":        snapshot.VideoTitle,
		"formattedTime":     timestamp.Format(int(snapshot.Time)),
		"transcriptSection": generation.TranscriptSection(language, segment),
	})

	return s.generator.GenerateWithImage(ctx, prompt, snapshot.ImageBase64, snapshot.MimeType)
}

// DescribeAll captions every undescribed snapshot of a video sequentially.
// Individual failures are counted, not fatal, so one bad snapshot does not
// abandon the rest of the batch.
func (s *Service) DescribeAll(ctx context.Context, videoID, language string) (*DescribeResult, error) {
	pending, err := s.repo.ListUndescribed(ctx, videoID)
	if err != nil {
		return nil, apperrors.DatabaseError("list snapshots", err)
	}

	result := &DescribeResult{}
	for i := range pending {
		snapshot := &pending[i]
		if snapshot.ImageBase64 == "" {
			result.Skipped++
			continue
		}

		if err := s.pacer.Wait(ctx); err != nil {
			return result, err
		}

		description, err := s.describeSnapshot(ctx, snapshot, language)
		if err != nil {
			log.Printf("[WARN] Failed to describe snapshot %s: %v", snapshot.UUID, err)
			result.Failed++
			continue
		}

		snapshot.Description = description
		if err := s.repo.Update(ctx, snapshot); err != nil {
			log.Printf("[ERROR] Failed to save description for snapshot %s: %v", snapshot.UUID, err)
			result.Failed++
			continue
		}
		result.Described++
	}

	log.Printf("[INFO] Described %d/%d snapshots for video %s (%d failed, %d skipped)",
		result.Described, len(pending), videoID, result.Failed, result.Skipped)
	return result, nil
}
