package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/credits")

	group.Use(authMiddleware)
	{
		group.GET("/balance", h.GetBalance)
		group.GET("/transactions", h.ListTransactions)
		group.POST("/topup", h.TopUp)
	}
}
