package transcripts

import (
	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/pkg/config"
)

// RegisterRoutes registers transcript routes on the videos group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	segmentCfg := config.SegmentConfig{}
	if cfg, err := config.GetConfig(); err == nil && cfg != nil {
		segmentCfg = cfg.Segment
	}

	// POST /api/v1/videos/:id/transcript - Scrape and cache from page HTML
	router.POST("/:id/transcript", Scrape(deps))

	// GET /api/v1/videos/:id/transcript - Cached document
	router.GET("/:id/transcript", GetCached(deps))

	// GET /api/v1/videos/:id/transcript/segment - Slice around a target time
	router.GET("/:id/transcript/segment", GetSegment(deps, segmentCfg))

	// DELETE /api/v1/videos/:id/transcript - Drop the cached document
	router.DELETE("/:id/transcript", Delete(deps))
}
