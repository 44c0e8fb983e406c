package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/repository"

	"github.com/lib/pq"
)

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

const selectCatalogColumns = `id, code, name, price_cents, active, created_on, updated_on`

func (r *catalogRepository) Create(ctx context.Context, item *domain.ServiceCatalogItem) error {
	now := time.Now().UTC()
	item.CreatedOn = now
	item.UpdatedOn = now
	query := `INSERT INTO service_catalog (code, name, price_cents, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, item.Code, item.Name, item.PriceCents, item.Active, item.CreatedOn, item.UpdatedOn).Scan(&item.ID)
}

func (r *catalogRepository) Update(ctx context.Context, item *domain.ServiceCatalogItem) error {
	item.UpdatedOn = time.Now().UTC()
	query := `UPDATE service_catalog SET name=$1, price_cents=$2, active=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, item.Name, item.PriceCents, item.Active, item.UpdatedOn, item.ID)
	return err
}

func (r *catalogRepository) GetByCode(ctx context.Context, code string) (*domain.ServiceCatalogItem, error) {
	item := &domain.ServiceCatalogItem{}
	query := `SELECT ` + selectCatalogColumns + ` FROM service_catalog WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&item.ID, &item.Code, &item.Name, &item.PriceCents, &item.Active, &item.CreatedOn, &item.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog item %s: %w", code, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) ListActiveByCodes(ctx context.Context, codes []string) ([]domain.ServiceCatalogItem, error) {
	query := `SELECT ` + selectCatalogColumns + ` FROM service_catalog WHERE active = true AND code = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(codes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCatalogRows(rows)
}

func (r *catalogRepository) List(ctx context.Context, includeInactive bool) ([]domain.ServiceCatalogItem, error) {
	query := `SELECT ` + selectCatalogColumns + ` FROM service_catalog`
	if !includeInactive {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCatalogRows(rows)
}

func scanCatalogRows(rows *sql.Rows) ([]domain.ServiceCatalogItem, error) {
	var items []domain.ServiceCatalogItem
	for rows.Next() {
		var item domain.ServiceCatalogItem
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.PriceCents, &item.Active, &item.CreatedOn, &item.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
