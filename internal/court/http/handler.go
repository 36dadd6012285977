package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/court"
	"github.com/courtside/booking-backend/internal/pkg/request"
	"github.com/courtside/booking-backend/internal/pkg/response"
)

type Handler struct {
	service court.Service
}

func NewHandler(service court.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	ownerID := auth.GetUserID(c)

	created, err := h.service.Create(c.Request.Context(), ownerID, court.CreateRequest{
		Name:         body.Name,
		Description:  body.Description,
		PricePerHour: body.PricePerHour,
		OpenMinute:   body.OpenMinute,
		CloseMinute:  body.CloseMinute,
		AutoApprove:  body.AutoApprove,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, NewCourtResponse(created))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid court id"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewCourtResponse(found))
}

func (h *Handler) List(c *gin.Context) {
	var query ListCourtsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid query parameters"})
		return
	}

	filter := court.Filter{
		OwnerID:  query.OwnerID,
		Active:   query.Active,
		Keyword:  query.Keyword,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}

	response.OK(c, http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid court id"})
		return
	}

	var body UpdateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	updaterID := auth.GetUserID(c)

	updated, err := h.service.Update(c.Request.Context(), uri.ID, updaterID, court.UpdateRequest{
		Name:         body.Name,
		Description:  body.Description,
		PricePerHour: body.PricePerHour,
		OpenMinute:   body.OpenMinute,
		CloseMinute:  body.CloseMinute,
		AutoApprove:  body.AutoApprove,
		IsActive:     body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, NewCourtResponse(updated))
}

func (h *Handler) CreatePackage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid court id"})
		return
	}

	var body CreatePackageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	ownerID := auth.GetUserID(c)

	p, err := h.service.CreatePackage(c.Request.Context(), uri.ID, ownerID, court.CreatePackageRequest{
		Name:  body.Name,
		Hours: body.Hours,
		Price: body.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, NewPackageResponse(p))
}

func (h *Handler) ListPackages(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid court id"})
		return
	}

	pkgs, err := h.service.ListPackages(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PackageResponse, len(pkgs))
	for i, p := range pkgs {
		items[i] = NewPackageResponse(p)
	}

	response.OK(c, http.StatusOK, items)
}
