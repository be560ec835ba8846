package transcripts

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
	transcriptsService "github.com/chapterlens/outline-api/internal/services/transcripts"
	"github.com/chapterlens/outline-api/pkg/config"
	apperrors "github.com/chapterlens/outline-api/pkg/errors"
)

// ScrapeRequest carries the watch page markup for transcript extraction
type ScrapeRequest struct {
	PageHTML     string `json:"page_html" binding:"required"`
	ForceRefresh bool   `json:"force_refresh"`
}

// @Summary Scrape transcript
// @Description Extract the transcript from posted watch page HTML and cache it. Returns the cached transcript when one exists and force_refresh is false.
// @Tags transcripts
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body ScrapeRequest true "Watch page markup"
// @Success 200 {object} types.TranscriptResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse "No transcript lines found in the markup"
// @Router /api/v1/videos/{id}/transcript [post]
func Scrape(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req ScrapeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		document, fromCache, err := deps.TranscriptService.GetTranscript(c.Request.Context(), videoID, req.PageHTML, req.ForceRefresh)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to scrape transcript: %v", err))
			return
		}
		if document == "" {
			types.SendError(c, apperrors.New(apperrors.ErrCodeNoTranscript, "no transcript found in page"))
			return
		}

		c.JSON(http.StatusOK, types.TranscriptResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			VideoID:      videoID,
			Transcript:   document,
			Cached:       fromCache,
		})
	}
}

// @Summary Get cached transcript
// @Tags transcripts
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} types.TranscriptResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/transcript [get]
func GetCached(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		document, err := deps.TranscriptService.GetCached(c.Request.Context(), videoID)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to read transcript cache: %v", err))
			return
		}
		if document == "" {
			types.SendNotFound(c, "No cached transcript for video "+videoID)
			return
		}

		c.JSON(http.StatusOK, types.TranscriptResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			VideoID:      videoID,
			Transcript:   document,
			Cached:       true,
		})
	}
}

// @Summary Get transcript segment
// @Description Return the slice of the cached transcript surrounding a target time
// @Tags transcripts
// @Produce json
// @Param id path string true "Video ID"
// @Param t query number true "Target time in seconds"
// @Param before query int false "Seconds of context before the target"
// @Param after query int false "Seconds of context after the target"
// @Success 200 {object} types.TranscriptResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/transcript/segment [get]
func GetSegment(deps *types.Dependencies, segmentCfg config.SegmentConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		target, err := strconv.ParseFloat(c.Query("t"), 64)
		if err != nil {
			types.SendBadRequest(c, "Invalid or missing target time t")
			return
		}

		before := queryInt(c, "before", segmentCfg.BeforeSeconds, transcriptsService.DefaultBeforeSeconds)
		after := queryInt(c, "after", segmentCfg.AfterSeconds, transcriptsService.DefaultAfterSeconds)
		maxLines := queryInt(c, "max_lines", segmentCfg.MaxLines, transcriptsService.DefaultMaxLines)

		document, err := deps.TranscriptService.GetCached(c.Request.Context(), videoID)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to read transcript cache: %v", err))
			return
		}
		if document == "" {
			types.SendNotFound(c, "No cached transcript for video "+videoID)
			return
		}

		c.JSON(http.StatusOK, types.TranscriptResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			VideoID:      videoID,
			Transcript:   transcriptsService.ExtractSegment(document, target, before, after, maxLines),
			Cached:       true,
		})
	}
}

// @Summary Delete cached transcript
// @Tags transcripts
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/transcript [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		if err := deps.TranscriptService.DeleteCached(c.Request.Context(), videoID); err != nil {
			types.SendNotFound(c, "No cached transcript for video "+videoID)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Transcript deleted",
		})
	}
}

// queryInt reads a query parameter with config then package-level fallback
func queryInt(c *gin.Context, name string, configured, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			return value
		}
	}
	if configured > 0 {
		return configured
	}
	return fallback
}
