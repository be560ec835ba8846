package outlines

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
	outlinesService "github.com/chapterlens/outline-api/internal/services/outlines"
)

// GenerateRequest carries video metadata and optional page markup for
// outline generation
type GenerateRequest struct {
	VideoTitle    string  `json:"video_title"`
	ChannelName   string  `json:"channel_name"`
	VideoURL      string  `json:"video_url"`
	VideoDuration float64 `json:"video_duration" binding:"required,gt=0"`
	Language      string  `json:"language"`
	PageHTML      string  `json:"page_html"`
	ForceRefresh  bool    `json:"force_refresh"`
}

// ItemRequest is one user-edited outline item
type ItemRequest struct {
	Timestamp   int    `json:"timestamp"`
	Title       string `json:"title" binding:"required,min=1"`
	Description string `json:"description"`
}

// UpdateItemsRequest replaces an outline's items
type UpdateItemsRequest struct {
	Items []ItemRequest `json:"items" binding:"required"`
}

// @Summary Generate outline
// @Description Return the stored outline for a video, generating a new one from the transcript and metadata when none exists
// @Tags outlines
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body GenerateRequest true "Video metadata and optional page markup"
// @Success 200 {object} types.OutlineResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse "Generation exhausted its retries"
// @Router /api/v1/videos/{id}/outline [post]
func Generate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req GenerateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		outline, err := deps.OutlineService.Generate(c.Request.Context(), outlinesService.GenerateParams{
			VideoID:       videoID,
			VideoTitle:    req.VideoTitle,
			ChannelName:   req.ChannelName,
			VideoURL:      req.VideoURL,
			VideoDuration: req.VideoDuration,
			Language:      req.Language,
			PageHTML:      req.PageHTML,
			ForceRefresh:  req.ForceRefresh,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ToOutlineResponse(outline))
	}
}

// @Summary Get outline
// @Tags outlines
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} types.OutlineResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/outline [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		outline, err := deps.OutlineService.GetByVideoID(c.Request.Context(), videoID)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to load outline: %v", err))
			return
		}
		if outline == nil {
			types.SendNotFound(c, "No outline for video "+videoID)
			return
		}

		c.JSON(http.StatusOK, types.ToOutlineResponse(outline))
	}
}

// @Summary List outlines
// @Tags outlines
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} types.OutlinesResponse
// @Router /api/v1/outlines [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		outlines, total, err := deps.OutlineService.List(c.Request.Context(), limit, offset)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list outlines: %v", err))
			return
		}

		responses := make([]types.OutlineResponse, 0, len(outlines))
		for i := range outlines {
			responses = append(responses, types.ToOutlineResponse(&outlines[i]))
		}

		c.JSON(http.StatusOK, types.OutlinesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Outlines:     responses,
			Count:        len(responses),
			Total:        total,
			Offset:       offset,
		})
	}
}

// @Summary Replace outline items
// @Description Replace the items of a stored outline with a user-edited set. Timestamps are clamped into the video duration and items re-sorted.
// @Tags outlines
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body UpdateItemsRequest true "Replacement items"
// @Success 200 {object} types.OutlineResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/outline/items [put]
func UpdateItems(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req UpdateItemsRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		items := make([]outlinesService.ParsedItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, outlinesService.ParsedItem{
				Timestamp:   item.Timestamp,
				Title:       item.Title,
				Description: item.Description,
			})
		}

		outline, err := deps.OutlineService.UpdateItems(c.Request.Context(), videoID, items)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ToOutlineResponse(outline))
	}
}

// @Summary Delete outline
// @Tags outlines
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/outline [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		if err := deps.OutlineService.Delete(c.Request.Context(), videoID); err != nil {
			types.SendNotFound(c, "No outline for video "+videoID)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Outline deleted",
		})
	}
}
