package storage

import (
	"context"
	"database/sql"

	"github.com/akorbut/storefront/internal/domain/models"
)

// ErrorLogStorage is the sink for errors that are swallowed on purpose, such
// as failed inventory restores in the order workflow.
type ErrorLogStorage interface {
	CreateErrorLog(ctx context.Context, entry *models.ErrorLog) error
}

type errorLogRepository struct {
	db *sql.DB
}

func NewErrorLogRepository(db *sql.DB) *errorLogRepository {
	return &errorLogRepository{db: db}
}

func (r *errorLogRepository) CreateErrorLog(ctx context.Context, entry *models.ErrorLog) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO error_logs (id, name, message, stack, created_on) VALUES ($1, $2, $3, $4, NOW())",
		entry.ID, entry.Name, entry.Message, entry.Stack,
	)
	return err
}
