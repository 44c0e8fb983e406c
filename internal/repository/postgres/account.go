package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const selectAccountColumns = `id, email, name, role, balance_cents, created_on, updated_on`

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	now := time.Now().UTC()
	a.CreatedOn = now
	a.UpdatedOn = now
	query := `INSERT INTO accounts (email, name, role, balance_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Email, a.Name, a.Role, a.BalanceCents, a.CreatedOn, a.UpdatedOn).Scan(&a.ID)
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	a := &domain.Account{}
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.BalanceCents, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a := &domain.Account{}
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.BalanceCents, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) ListIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
