package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/booking"
	"github.com/courtside/booking-backend/internal/pkg/request"
	"github.com/courtside/booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)

	// Per-attempt idempotency token: header wins, then body, then a minted
	// one so even clients that send nothing get replay-safe retries within
	// their own request pipeline.
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = body.IdempotencyKey
	}
	if key == "" {
		key = uuid.NewString()
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:         userID,
		CourtID:        body.CourtID,
		StartTime:      body.StartTime,
		DurationHours:  body.DurationHours,
		PackageID:      body.PackageID,
		IdempotencyKey: key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid query parameters"})
		return
	}

	userID := auth.GetUserID(c)

	// role=owner lists bookings on the caller's courts, everything else is
	// scoped to the caller's own bookings.
	filter := booking.Filter{
		CourtID:  query.CourtID,
		Status:   query.Status,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Role == "owner" {
		filter.OwnerID = userID
	} else {
		filter.UserID = userID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	response.OK(c, http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) GetActive(c *gin.Context) {
	b, err := h.service.GetActiveForUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			response.OK(c, http.StatusOK, nil)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) CheckConflict(c *gin.Context) {
	var query ConflictCheckRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid query parameters"})
		return
	}

	conflict, err := h.service.CheckSlotConflict(c.Request.Context(), query.CourtID, query.StartTime, query.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, ConflictCheckResponse{Conflict: conflict})
}

func (h *Handler) Approve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid booking id"})
		return
	}

	b, err := h.service.Approve(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Reject(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid booking id"})
		return
	}

	// The reason is optional, so an absent body binds as empty.
	var body CancelBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	b, err := h.service.Reject(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid booking id"})
		return
	}

	// The reason is optional, so an absent body binds as empty.
	var body CancelBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewBookingResponse(b))
}
