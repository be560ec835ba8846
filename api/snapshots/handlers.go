package snapshots

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/internal/models"
)

// CreateRequest carries a captured frame for storage
type CreateRequest struct {
	Time        float64 `json:"time" binding:"min=0"`
	VideoTitle  string  `json:"video_title"`
	VideoURL    string  `json:"video_url"`
	ImageBase64 string  `json:"image_base64" binding:"required"`
	MimeType    string  `json:"mime_type"`
}

// UpdateDescriptionRequest sets a snapshot's description directly
type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

// DescribeRequest selects the caption language
type DescribeRequest struct {
	Language string `json:"language"`
}

// @Summary Create snapshot
// @Description Store a captured frame of a video at a point in time
// @Tags snapshots
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body CreateRequest true "Frame data"
// @Success 201 {object} types.SnapshotResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/snapshots [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req CreateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		snapshot := &models.Snapshot{
			VideoID:     videoID,
			VideoTitle:  req.VideoTitle,
			VideoURL:    req.VideoURL,
			Time:        req.Time,
			ImageBase64: req.ImageBase64,
			MimeType:    req.MimeType,
		}
		if err := deps.SnapshotService.Create(c.Request.Context(), snapshot); err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusCreated, types.ToSnapshotResponse(snapshot))
	}
}

// @Summary List snapshots for video
// @Tags snapshots
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} types.SnapshotsResponse
// @Router /api/v1/videos/{id}/snapshots [get]
func ListByVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		snapshots, err := deps.SnapshotService.ListByVideo(c.Request.Context(), videoID)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list snapshots: %v", err))
			return
		}

		responses := make([]types.SnapshotResponse, 0, len(snapshots))
		for i := range snapshots {
			responses = append(responses, types.ToSnapshotResponse(&snapshots[i]))
		}

		c.JSON(http.StatusOK, types.SnapshotsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Snapshots:    responses,
			Count:        len(responses),
		})
	}
}

// @Summary Get snapshot
// @Tags snapshots
// @Produce json
// @Param uuid path string true "Snapshot UUID"
// @Success 200 {object} types.SnapshotResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/snapshots/{uuid} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid, ok := types.RequireParam(c, "uuid")
		if !ok {
			return
		}

		snapshot, err := deps.SnapshotService.GetByUUID(c.Request.Context(), uuid)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to load snapshot: %v", err))
			return
		}
		if snapshot == nil {
			types.SendNotFound(c, "No snapshot "+uuid)
			return
		}

		c.JSON(http.StatusOK, types.ToSnapshotResponse(snapshot))
	}
}

// @Summary Update snapshot description
// @Tags snapshots
// @Accept json
// @Produce json
// @Param uuid path string true "Snapshot UUID"
// @Param request body UpdateDescriptionRequest true "New description"
// @Success 200 {object} types.SnapshotResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/snapshots/{uuid} [patch]
func UpdateDescription(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid, ok := types.RequireParam(c, "uuid")
		if !ok {
			return
		}

		var req UpdateDescriptionRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := deps.SnapshotService.UpdateDescription(c.Request.Context(), uuid, req.Description); err != nil {
			types.SendError(c, err)
			return
		}

		snapshot, err := deps.SnapshotService.GetByUUID(c.Request.Context(), uuid)
		if err != nil || snapshot == nil {
			types.SendNotFound(c, "No snapshot "+uuid)
			return
		}

		c.JSON(http.StatusOK, types.ToSnapshotResponse(snapshot))
	}
}

// @Summary Describe snapshot
// @Description Generate and store a caption for one snapshot using the image and surrounding transcript
// @Tags snapshots
// @Accept json
// @Produce json
// @Param uuid path string true "Snapshot UUID"
// @Param request body DescribeRequest false "Caption language"
// @Success 200 {object} types.SnapshotResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse "Generation exhausted its retries"
// @Router /api/v1/snapshots/{uuid}/describe [post]
func Describe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid, ok := types.RequireParam(c, "uuid")
		if !ok {
			return
		}

		var req DescribeRequest
		if c.Request.ContentLength > 0 && !types.BindJSONOrError(c, &req) {
			return
		}
		if req.Language == "" {
			req.Language = "en"
		}

		snapshot, err := deps.SnapshotService.Describe(c.Request.Context(), uuid, req.Language)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ToSnapshotResponse(snapshot))
	}
}

// @Summary Describe all snapshots of a video
// @Description Queue a background job that captions every undescribed snapshot of the video, one generation request at a time
// @Tags snapshots
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body DescribeRequest false "Caption language"
// @Success 202 {object} types.JobResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/videos/{id}/snapshots/describe-all [post]
func DescribeAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		var req DescribeRequest
		if c.Request.ContentLength > 0 && !types.BindJSONOrError(c, &req) {
			return
		}
		if req.Language == "" {
			req.Language = "en"
		}

		job, err := deps.JobService.EnqueueUniqueJob(c.Request.Context(), models.JobTypeDescribeAll, models.JobPayload{
			"video_id": videoID,
			"language": req.Language,
		}, "video_id")
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to queue description job: %v", err))
			return
		}

		c.JSON(http.StatusAccepted, types.JobResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusQueued,
				Message: "Snapshot description queued for video " + videoID,
			},
			JobID: job.ID,
		})
	}
}

// @Summary Delete snapshot
// @Tags snapshots
// @Produce json
// @Param uuid path string true "Snapshot UUID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/snapshots/{uuid} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid, ok := types.RequireParam(c, "uuid")
		if !ok {
			return
		}

		if err := deps.SnapshotService.Delete(c.Request.Context(), uuid); err != nil {
			types.SendNotFound(c, "No snapshot "+uuid)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Snapshot deleted",
		})
	}
}
