package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard.app/server/internal/model"
)

type auditStore struct {
	pool *pgxpool.Pool
}

func newAuditStore(pool *pgxpool.Pool) AuditStore {
	return &auditStore{pool: pool}
}

func (s *auditStore) Append(ctx context.Context, entry *model.AuditEntry) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO audit_log (id, entity, entity_id, action, details)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		entry.ID, entry.Entity, entry.EntityID, string(entry.Action), entry.Details,
	).Scan(&entry.CreatedAt)
}

func (s *auditStore) List(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, entity, entity_id, action, details, created_at
		 FROM audit_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &action, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = model.AuditAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
