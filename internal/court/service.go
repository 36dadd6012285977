package court

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name         string
	Description  string
	PricePerHour int64
	OpenMinute   int
	CloseMinute  int
	AutoApprove  bool
}

type UpdateRequest struct {
	Name         *string
	Description  *string
	PricePerHour *int64
	OpenMinute   *int
	CloseMinute  *int
	AutoApprove  *bool
	IsActive     *bool
}

type CreatePackageRequest struct {
	Name  string
	Hours int
	Price int64
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id, updaterID string, req UpdateRequest) (*Court, error)

	CreatePackage(ctx context.Context, courtID, ownerID string, req CreatePackageRequest) (*Package, error)
	GetPackage(ctx context.Context, id string) (*Package, error)
	ListPackages(ctx context.Context, courtID string) ([]*Package, error)
}

type service struct {
	repo    Repository
	pkgRepo PackageRepository
}

func NewService(repo Repository, pkgRepo PackageRepository) Service {
	return &service{repo: repo, pkgRepo: pkgRepo}
}

func validHours(open, close int) bool {
	return open >= 0 && close <= 24*60 && open < close
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.PricePerHour <= 0 {
		return nil, ErrInvalidPrice
	}
	if !validHours(req.OpenMinute, req.CloseMinute) {
		return nil, ErrInvalidHours
	}

	c := &Court{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		OpenMinute:   req.OpenMinute,
		CloseMinute:  req.CloseMinute,
		AutoApprove:  req.AutoApprove,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id, updaterID string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the owning court-owner may mutate a court.
	if c.OwnerID != updaterID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrInvalidPrice
		}
		c.PricePerHour = *req.PricePerHour
	}

	open := c.OpenMinute
	close := c.CloseMinute
	if req.OpenMinute != nil {
		open = *req.OpenMinute
	}
	if req.CloseMinute != nil {
		close = *req.CloseMinute
	}
	if !validHours(open, close) {
		return nil, ErrInvalidHours
	}
	c.OpenMinute = open
	c.CloseMinute = close

	if req.AutoApprove != nil {
		c.AutoApprove = *req.AutoApprove
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) CreatePackage(ctx context.Context, courtID, ownerID string, req CreatePackageRequest) (*Package, error) {
	c, err := s.repo.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Hours <= 0 || req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	p := &Package{
		CourtID: courtID,
		Name:    strings.TrimSpace(req.Name),
		Hours:   req.Hours,
		Price:   req.Price,
	}
	if err := s.pkgRepo.CreatePackage(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPackage(ctx context.Context, id string) (*Package, error) {
	return s.pkgRepo.GetPackage(ctx, id)
}

func (s *service) ListPackages(ctx context.Context, courtID string) ([]*Package, error) {
	if _, err := s.repo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}
	return s.pkgRepo.ListPackages(ctx, courtID)
}
