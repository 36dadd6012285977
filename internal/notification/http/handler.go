package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/notification"
	"github.com/courtside/booking-backend/internal/pkg/request"
	"github.com/courtside/booking-backend/internal/pkg/response"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var query ListNotificationsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid query parameters"})
		return
	}

	filter := notification.Filter{
		UserID:     auth.GetUserID(c),
		UnreadOnly: query.UnreadOnly,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = NewNotificationResponse(n)
	}

	response.OK(c, http.StatusOK, response.NewPageResponse(resp, filter.Page, filter.PageSize, total))
}

func (h *Handler) MarkRead(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid notification id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Result{Success: false, Error: "notification not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
