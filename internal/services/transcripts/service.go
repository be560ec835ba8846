package transcripts

import (
	"context"
	"log"

	"github.com/chapterlens/outline-api/internal/models"
)

// Service implements the TranscriptService interface
type Service struct {
	repo    Repository
	scraper Scraper
}

// NewService creates a new transcript service
func NewService(repo Repository, scraper Scraper) TranscriptService {
	return &Service{repo: repo, scraper: scraper}
}

// GetTranscript returns the transcript for a video, serving from the cache
// when possible. Cache failures on either side degrade to scraping, never to
// a request error. A successful scrape overwrites whatever was cached before.
// The returned bool reports whether the cache served the document.
func (s *Service) GetTranscript(ctx context.Context, videoID string, pageHTML string, forceRefresh bool) (string, bool, error) {
	if !forceRefresh {
		cached, err := s.repo.GetByVideoID(ctx, videoID)
		if err != nil {
			log.Printf("[WARN] Transcript cache read failed for video %s: %v", videoID, err)
		} else if cached != nil && cached.Document != "" {
			log.Printf("[DEBUG] Using cached transcript for video %s (%d chars)", videoID, len(cached.Document))
			return cached.Document, true, nil
		}
	}

	document, err := s.scraper.Scrape(pageHTML)
	if err != nil {
		return "", false, err
	}
	if document == "" {
		return "", false, nil
	}

	if err := s.repo.Upsert(ctx, &models.CachedTranscript{VideoID: videoID, Document: document}); err != nil {
		log.Printf("[WARN] Transcript cache write failed for video %s: %v", videoID, err)
	}

	return document, false, nil
}

// GetCached returns the cached transcript without scraping
func (s *Service) GetCached(ctx context.Context, videoID string) (string, error) {
	cached, err := s.repo.GetByVideoID(ctx, videoID)
	if err != nil {
		return "", err
	}
	if cached == nil {
		return "", nil
	}
	return cached.Document, nil
}

// DeleteCached removes the cached transcript for a video
func (s *Service) DeleteCached(ctx context.Context, videoID string) error {
	return s.repo.Delete(ctx, videoID)
}
