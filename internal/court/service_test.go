package court

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	courts map[string]*Court
	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{courts: make(map[string]*Court)}
}

func (r *fakeRepository) Create(ctx context.Context, c *Court) error {
	r.nextID++
	c.ID = fmt.Sprintf("court-%d", r.nextID)
	r.courts[c.ID] = c
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	c, ok := r.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	var out []*Court
	for _, c := range r.courts {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, c *Court) error {
	if _, ok := r.courts[c.ID]; !ok {
		return ErrNotFound
	}
	r.courts[c.ID] = c
	return nil
}

type fakePackageRepository struct {
	packages map[string]*Package
	nextID   int
}

func (r *fakePackageRepository) CreatePackage(ctx context.Context, p *Package) error {
	r.nextID++
	p.ID = fmt.Sprintf("pkg-%d", r.nextID)
	r.packages[p.ID] = p
	return nil
}

func (r *fakePackageRepository) GetPackage(ctx context.Context, id string) (*Package, error) {
	p, ok := r.packages[id]
	if !ok {
		return nil, ErrPackageNotFound
	}
	return p, nil
}

func (r *fakePackageRepository) ListPackages(ctx context.Context, courtID string) ([]*Package, error) {
	var out []*Package
	for _, p := range r.packages {
		if p.CourtID == courtID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService() Service {
	return NewService(newFakeRepository(), &fakePackageRepository{packages: make(map[string]*Package)})
}

func TestCreateCourtValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", CreateRequest{Name: "  ", PricePerHour: 100})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, "owner-1", CreateRequest{Name: "Court", PricePerHour: 0})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Create(ctx, "owner-1", CreateRequest{
		Name: "Court", PricePerHour: 100, OpenMinute: 1200, CloseMinute: 480,
	})
	require.ErrorIs(t, err, ErrInvalidHours)

	c, err := svc.Create(ctx, "owner-1", CreateRequest{
		Name: " Center Court ", PricePerHour: 100, OpenMinute: 480, CloseMinute: 1320,
	})
	require.NoError(t, err)
	assert.Equal(t, "Center Court", c.Name)
	assert.True(t, c.IsActive)
}

func TestUpdateCourtOwnerGuard(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "owner-1", CreateRequest{
		Name: "Court", PricePerHour: 100, OpenMinute: 0, CloseMinute: 1440,
	})
	require.NoError(t, err)

	price := int64(200)
	_, err = svc.Update(ctx, c.ID, "intruder", UpdateRequest{PricePerHour: &price})
	require.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, c.ID, "owner-1", UpdateRequest{PricePerHour: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(200), updated.PricePerHour)
}

func TestUpdateCourtHoursCrossValidated(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "owner-1", CreateRequest{
		Name: "Court", PricePerHour: 100, OpenMinute: 480, CloseMinute: 1320,
	})
	require.NoError(t, err)

	// Moving open past the existing close is invalid even though the new
	// open minute is itself in range.
	open := 1380
	_, err = svc.Update(ctx, c.ID, "owner-1", UpdateRequest{OpenMinute: &open})
	require.ErrorIs(t, err, ErrInvalidHours)
}

func TestPackageOwnerGuard(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "owner-1", CreateRequest{
		Name: "Court", PricePerHour: 100, OpenMinute: 0, CloseMinute: 1440,
	})
	require.NoError(t, err)

	_, err = svc.CreatePackage(ctx, c.ID, "intruder", CreatePackageRequest{
		Name: "Deal", Hours: 3, Price: 250,
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	p, err := svc.CreatePackage(ctx, c.ID, "owner-1", CreatePackageRequest{
		Name: "Deal", Hours: 3, Price: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.CourtID)

	pkgs, err := svc.ListPackages(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, pkgs, 1)
}
