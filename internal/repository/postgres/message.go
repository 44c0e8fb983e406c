package postgres

import (
	"context"
	"database/sql"
	"time"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/logger"
	"tunehub-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	if m.CreatedOn.IsZero() {
		m.CreatedOn = time.Now().UTC()
	}
	// The id is a client-generated UUID; ON CONFLICT makes retried sends and
	// notification echoes harmless.
	query := `INSERT INTO messages (id, job_id, sender_id, body, internal, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, m.ID, m.JobID, m.SenderID, m.Body, m.Internal, m.CreatedOn)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		logger.Debug("Duplicate message insert ignored", "message_id", m.ID)
	}
	return nil
}

func (r *messageRepository) ListByJob(ctx context.Context, jobID int32, includeInternal bool) ([]domain.Message, error) {
	query := `SELECT id, job_id, sender_id, body, internal, created_on FROM messages WHERE job_id = $1`
	args := []interface{}{jobID}
	if !includeInternal {
		query += ` AND internal = false`
	}
	query += ` ORDER BY created_on ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.JobID, &m.SenderID, &m.Body, &m.Internal, &m.CreatedOn); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
