package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires booking endpoints. rateLimit bounds the mutating
// routes so a stuck client retry loop cannot hammer the debit path.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, rateLimit gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/active", h.GetActive)
		group.GET("/conflict", h.CheckConflict)
		group.GET("/:id", h.Get)

		group.POST("", rateLimit, h.Create)
		group.POST("/:id/approve", rateLimit, h.Approve)
		group.POST("/:id/reject", rateLimit, h.Reject)
		group.POST("/:id/cancel", rateLimit, h.Cancel)
	}
}
