package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard.app/server/internal/model"
)

type commentStore struct {
	pool *pgxpool.Pool
}

func newCommentStore(pool *pgxpool.Pool) CommentStore {
	return &commentStore{pool: pool}
}

func (s *commentStore) Create(ctx context.Context, comment *model.Comment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO task_comments (id, task_id, body, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		comment.ID, comment.TaskID, comment.Body, comment.CreatedBy,
	).Scan(&comment.CreatedAt)
}

func (s *commentStore) ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) {
	return listComments(ctx, s.pool, taskID)
}

// listComments is shared with taskStore.GetByID. Order is newest first; the
// chronological comment analysis in the insight engine depends on it.
func listComments(ctx context.Context, pool *pgxpool.Pool, taskID int64) ([]model.Comment, error) {
	rows, err := pool.Query(ctx,
		`SELECT id, task_id, body, created_by, created_at
		 FROM task_comments WHERE task_id = $1 ORDER BY created_at DESC`,
		taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Body, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
