package court

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

var ErrPackageNotFound = apperror.New(http.StatusNotFound, apperror.KindStaleState, "package not found")

// Package is a pricing tier for a court: a fixed number of hours for a flat
// price, overriding the hourly rate.
type Package struct {
	ID        string
	CourtID   string
	Name      string
	Hours     int
	Price     int64
	CreatedAt time.Time
}

// PackageRepository stores pricing packages.
type PackageRepository interface {
	CreatePackage(ctx context.Context, p *Package) error
	GetPackage(ctx context.Context, id string) (*Package, error)
	ListPackages(ctx context.Context, courtID string) ([]*Package, error)
}

type pgxPackageRepository struct {
	pool *pgxpool.Pool
}

func NewPgxPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &pgxPackageRepository{pool: pool}
}

func (r *pgxPackageRepository) CreatePackage(ctx context.Context, p *Package) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.court_packages").
		Columns("court_id", "name", "hours", "price").
		Values(p.CourtID, p.Name, p.Hours, p.Price).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create package query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
}

func (r *pgxPackageRepository) GetPackage(ctx context.Context, id string) (*Package, error) {
	const query = `
		SELECT id, court_id, name, hours, price, created_at
		FROM public.court_packages
		WHERE id = $1
	`

	var p Package
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CourtID, &p.Name, &p.Hours, &p.Price, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("get package failed: %w", err)
	}
	return &p, nil
}

func (r *pgxPackageRepository) ListPackages(ctx context.Context, courtID string) ([]*Package, error) {
	const query = `
		SELECT id, court_id, name, hours, price, created_at
		FROM public.court_packages
		WHERE court_id = $1
		ORDER BY hours ASC
	`

	rows, err := r.pool.Query(ctx, query, courtID)
	if err != nil {
		return nil, fmt.Errorf("list packages failed: %w", err)
	}
	defer rows.Close()

	var pkgs []*Package
	for rows.Next() {
		var p Package
		if err := rows.Scan(&p.ID, &p.CourtID, &p.Name, &p.Hours, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan package failed: %w", err)
		}
		pkgs = append(pkgs, &p)
	}
	return pkgs, nil
}
