package deliverables

import "github.com/gin-gonic/gin"

// Register attaches deliverable routes to the given router group. The
// upcoming route must come before the id route so "upcoming" is not taken
// for an identifier.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/upcoming", h.upcoming)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
