package http

import (
	"time"

	"github.com/courtside/booking-backend/internal/court"
	"github.com/courtside/booking-backend/internal/pkg/request"
)

type CreateCourtRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	PricePerHour int64  `json:"price_per_hour" binding:"required,gt=0"`
	OpenMinute   int    `json:"open_minute" binding:"min=0,max=1440"`
	CloseMinute  int    `json:"close_minute" binding:"min=0,max=1440"`
	AutoApprove  bool   `json:"auto_approve"`
}

type UpdateCourtRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	PricePerHour *int64  `json:"price_per_hour" binding:"omitempty,gt=0"`
	OpenMinute   *int    `json:"open_minute" binding:"omitempty,min=0,max=1440"`
	CloseMinute  *int    `json:"close_minute" binding:"omitempty,min=0,max=1440"`
	AutoApprove  *bool   `json:"auto_approve"`
	IsActive     *bool   `json:"is_active"`
}

type ListCourtsRequest struct {
	request.ListParams
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword"`
	Active  *bool  `form:"active"`
}

type CourtResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PricePerHour int64     `json:"price_per_hour"`
	OpenMinute   int       `json:"open_minute"`
	CloseMinute  int       `json:"close_minute"`
	AutoApprove  bool      `json:"auto_approve"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Description:  c.Description,
		PricePerHour: c.PricePerHour,
		OpenMinute:   c.OpenMinute,
		CloseMinute:  c.CloseMinute,
		AutoApprove:  c.AutoApprove,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CourtTag is the minimal court reference embedded in other responses.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreatePackageRequest struct {
	Name  string `json:"name" binding:"required"`
	Hours int    `json:"hours" binding:"required,gt=0"`
	Price int64  `json:"price" binding:"required,gt=0"`
}

type PackageResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	Name      string    `json:"name"`
	Hours     int       `json:"hours"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPackageResponse(p *court.Package) PackageResponse {
	return PackageResponse{
		ID:        p.ID,
		CourtID:   p.CourtID,
		Name:      p.Name,
		Hours:     p.Hours,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}
