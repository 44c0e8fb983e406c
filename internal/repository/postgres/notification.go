package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO notifications (account_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall("INSERT", "notifications", "account_id", n.AccountID)

	n.CreatedOn = time.Now().UTC()
	err = r.db.QueryRowContext(ctx, query, n.AccountID, n.Title, n.Message, n.IsRead, attrs, n.CreatedOn).Scan(&n.ID)
	logger.DatabaseResult("INSERT", 1, err, "notification_id", n.ID)
	return err
}

func (r *notificationRepository) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, account_id, title, message, is_read, attributes, created_on
	          FROM notifications WHERE account_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, accountID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND account_id = $2`, id, accountID)
	return err
}
