package snapshots

import (
	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
)

// RegisterRoutes registers snapshot routes. Per-video routes go on the
// videos group; single-snapshot routes are addressed by UUID.
func RegisterRoutes(videoGroup *gin.RouterGroup, v1 *gin.RouterGroup, deps *types.Dependencies, generalLimit, generationLimit gin.HandlerFunc) {
	// POST /api/v1/videos/:id/snapshots - Store a captured frame
	videoGroup.POST("/:id/snapshots", Create(deps))

	// GET /api/v1/videos/:id/snapshots - Frames for a video, by time
	videoGroup.GET("/:id/snapshots", ListByVideo(deps))

	// POST /api/v1/videos/:id/snapshots/describe-all - Queue batch captioning
	videoGroup.POST("/:id/snapshots/describe-all", generationLimit, DescribeAll(deps))

	snapshotGroup := v1.Group("/snapshots")
	snapshotGroup.Use(generalLimit)

	// GET /api/v1/snapshots/:uuid - Single snapshot
	snapshotGroup.GET("/:uuid", Get(deps))

	// PATCH /api/v1/snapshots/:uuid - Edit the description
	snapshotGroup.PATCH("/:uuid", UpdateDescription(deps))

	// POST /api/v1/snapshots/:uuid/describe - Caption one snapshot now
	snapshotGroup.POST("/:uuid/describe", generationLimit, Describe(deps))

	// DELETE /api/v1/snapshots/:uuid - Remove a snapshot
	snapshotGroup.DELETE("/:uuid", Delete(deps))
}
