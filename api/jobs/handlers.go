package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/internal/models"
	jobsService "github.com/chapterlens/outline-api/internal/services/jobs"
)

// @Summary Get job status
// @Description Return the status, progress and result of a background job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} types.JobResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/jobs/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			types.SendBadRequest(c, "Invalid job ID")
			return
		}

		job, err := deps.JobService.GetJob(c.Request.Context(), uint(jobID))
		if err != nil {
			if errors.Is(err, jobsService.ErrJobNotFound) {
				types.SendNotFound(c, "No job "+c.Param("id"))
				return
			}
			types.SendInternalError(c, "Failed to load job: "+err.Error())
			return
		}

		c.JSON(http.StatusOK, toJobResponse(job))
	}
}

// toJobResponse maps a job onto its API shape
func toJobResponse(job *models.Job) types.JobResponse {
	status := string(job.Status)
	message := ""
	if job.Status == models.JobStatusFailed {
		message = job.Error
	}

	return types.JobResponse{
		BaseResponse: types.BaseResponse{
			Status:  status,
			Message: message,
		},
		JobID:    job.ID,
		Progress: job.Progress,
		Result:   job.Result,
	}
}
