package outlines

import (
	"context"
	"log"
	"math"
	"strconv"

	"github.com/chapterlens/outline-api/internal/models"
	"github.com/chapterlens/outline-api/internal/services/generation"
	"github.com/chapterlens/outline-api/internal/services/transcripts"
	apperrors "github.com/chapterlens/outline-api/pkg/errors"
)

// Outline size bounds. Shorter videos get proportionally more points per
// minute so sparse content still produces a usable outline.
const (
	minPoints = 8
	maxPoints = 30
)

// Service implements the OutlineService interface
type Service struct {
	repo            Repository
	transcripts     transcripts.TranscriptService
	generator       generation.Generator
	excludeVideoURL bool
}

// NewService creates a new outline service
func NewService(repo Repository, transcriptService transcripts.TranscriptService, generator generation.Generator, excludeVideoURL bool) OutlineService {
	return &Service{
		repo:            repo,
		transcripts:     transcriptService,
		generator:       generator,
		excludeVideoURL: excludeVideoURL,
	}
}

// pointsForDuration picks the requested outline size from the video length
func pointsForDuration(videoDuration float64) int {
	videoMinutes := videoDuration / 60

	perMinute := 0.6
	switch {
	case videoDuration < 300:
		perMinute = 0.9
	case videoDuration < 900:
		perMinute = 0.7
	}

	points := int(math.Ceil(videoMinutes * perMinute))
	if points < minPoints {
		return minPoints
	}
	if points > maxPoints {
		return maxPoints
	}
	return points
}

// Generate returns the stored outline for a video when one exists, otherwise
// generates a new one from the transcript and persists it.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*models.SavedOutline, error) {
	if params.VideoID == "" {
		return nil, apperrors.MissingFieldError("video_id")
	}

	existing, err := s.repo.GetByVideoID(ctx, params.VideoID)
	if err != nil {
		return nil, apperrors.DatabaseError("get outline", err)
	}
	if existing != nil && len(existing.Items) > 0 {
		log.Printf("[DEBUG] Using stored outline for video %s (%d items)", params.VideoID, len(existing.Items))
		return existing, nil
	}

	log.Printf("[INFO] Generating outline for video %s (%s)", params.VideoID, params.VideoTitle)

	// A transcript failure is not fatal, generation proceeds on metadata alone.
	transcript, _, err := s.transcripts.GetTranscript(ctx, params.VideoID, params.PageHTML, params.ForceRefresh)
	if err != nil {
		log.Printf("[WARN] Transcript fetch failed for video %s: %v", params.VideoID, err)
		transcript = ""
	}
	hasTranscript := transcript != ""

	videoURL := params.VideoURL
	if s.excludeVideoURL {
		videoURL = ""
	}

	numPoints := pointsForDuration(params.VideoDuration)
	prompt := generation.BuildPrompt(generation.OutlineTemplate(params.Language), map[string]string{
		"videoUrl":          videoURL,
		"videoTitle":        params.VideoTitle,
		"channelName":       params.ChannelName,
		"videoDuration":     strconv.FormatFloat(params.VideoDuration, 'f', -1, 64),
		"numPoints":         strconv.Itoa(numPoints),
		"transcriptSection": generation.FullTranscriptSection(params.Language, transcript),
	})

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	items := ValidateItems(ParseResponse(raw), params.VideoDuration)
	if len(items) == 0 {
		if HasTimestampPattern(raw) {
			// The response held clock times the parser missed. Surfacing an
			// empty outline is better than masking that with placeholders.
			log.Printf("[WARN] Outline response for video %s had timestamps but none parsed", params.VideoID)
		} else {
			log.Printf("[WARN] Outline response for video %s had no timestamps, using sample items", params.VideoID)
			items = SampleItems(params.Language, params.VideoDuration, params.VideoTitle)
		}
	}

	outline := &models.SavedOutline{
		VideoID:       params.VideoID,
		VideoTitle:    params.VideoTitle,
		VideoDuration: params.VideoDuration,
		HasTranscript: hasTranscript,
	}
	for _, item := range items {
		outline.Items = append(outline.Items, models.OutlineItem{
			Timestamp:   item.Timestamp,
			Title:       item.Title,
			Description: item.Description,
		})
	}

	if len(outline.Items) > 0 {
		if err := s.repo.Save(ctx, outline); err != nil {
			// A failed save still leaves a usable outline for this response.
			log.Printf("[ERROR] Failed to save outline for video %s: %v", params.VideoID, err)
		}
	}

	return outline, nil
}

// GetByVideoID retrieves a stored outline
func (s *Service) GetByVideoID(ctx context.Context, videoID string) (*models.SavedOutline, error) {
	return s.repo.GetByVideoID(ctx, videoID)
}

// List returns stored outlines, newest first
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.SavedOutline, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// UpdateItems replaces the items of a stored outline with a user-edited
// set. Timestamps go through the same clamp and sort as generated ones.
func (s *Service) UpdateItems(ctx context.Context, videoID string, items []ParsedItem) (*models.SavedOutline, error) {
	if videoID == "" {
		return nil, apperrors.MissingFieldError("video_id")
	}

	outline, err := s.repo.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, apperrors.DatabaseError("get outline", err)
	}
	if outline == nil {
		return nil, apperrors.NotFound("outline", videoID)
	}

	validated := ValidateItems(items, outline.VideoDuration)
	replacement := make([]models.OutlineItem, 0, len(validated))
	for _, item := range validated {
		replacement = append(replacement, models.OutlineItem{
			Timestamp:   item.Timestamp,
			Title:       item.Title,
			Description: item.Description,
		})
	}

	if err := s.repo.ReplaceItems(ctx, outline.ID, replacement); err != nil {
		return nil, apperrors.DatabaseError("replace outline items", err)
	}

	return s.repo.GetByVideoID(ctx, videoID)
}

// Delete removes a stored outline
func (s *Service) Delete(ctx context.Context, videoID string) error {
	return s.repo.Delete(ctx, videoID)
}
