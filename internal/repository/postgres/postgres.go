package postgres

import (
	"database/sql"

	"tunehub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.LedgerRepository
	repository.CatalogRepository
	repository.JobRepository
	repository.MessageRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		AccountRepository:      NewAccountRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		CatalogRepository:      NewCatalogRepository(db),
		JobRepository:          NewJobRepository(db),
		MessageRepository:      NewMessageRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
