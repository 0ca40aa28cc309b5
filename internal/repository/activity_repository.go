package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-portal/internal/models"
)

// ActivityRepository persists operator acknowledgments in Postgres.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert stores one entry; a zero CreatedAt is stamped with the current time.
func (r *ActivityRepository) Insert(ctx context.Context, entry *models.ActivityEntry) error {
	const query = `INSERT INTO activity_log (id, tenant, session_id, actor_id, level, action, message, created_at)
VALUES (:id, :tenant, :session_id, :actor_id, :level, :action, :message, :created_at)
ON CONFLICT (id) DO NOTHING`
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// ListByTenant returns the newest entries of a school.
func (r *ActivityRepository) ListByTenant(ctx context.Context, tenant string, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, tenant, session_id, actor_id, level, action, message, created_at
FROM activity_log WHERE tenant = $1 ORDER BY created_at DESC LIMIT $2`
	var entries []models.ActivityEntry
	if err := r.db.SelectContext(ctx, &entries, query, tenant, limit); err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}
	return entries, nil
}
