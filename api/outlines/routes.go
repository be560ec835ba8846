package outlines

import (
	"github.com/gin-gonic/gin"

	"github.com/chapterlens/outline-api/api/types"
)

// RegisterRoutes registers outline routes. Generation is attached to the
// videos group; the list endpoint lives at the collection root.
func RegisterRoutes(videoGroup *gin.RouterGroup, v1 *gin.RouterGroup, deps *types.Dependencies, generalLimit, generationLimit gin.HandlerFunc) {
	// POST /api/v1/videos/:id/outline - Generate (or return stored)
	videoGroup.POST("/:id/outline", generationLimit, Generate(deps))

	// GET /api/v1/videos/:id/outline - Stored outline
	videoGroup.GET("/:id/outline", Get(deps))

	// PUT /api/v1/videos/:id/outline/items - Replace items
	videoGroup.PUT("/:id/outline/items", UpdateItems(deps))

	// DELETE /api/v1/videos/:id/outline - Remove stored outline
	videoGroup.DELETE("/:id/outline", Delete(deps))

	// GET /api/v1/outlines - Stored outlines, newest first
	v1.GET("/outlines", generalLimit, List(deps))
}
