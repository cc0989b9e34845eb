package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard.app/server/internal/model"
)

type taskStore struct {
	pool *pgxpool.Pool
}

func newTaskStore(pool *pgxpool.Pool) TaskStore {
	return &taskStore{pool: pool}
}

const taskColumns = "id, title, description, status, due_date, responsible_user_id, created_at"

// statusRank sorts active work before finished work: New, InProgress,
// NotAssigned, then Completed. Plain ORDER BY status would sort the
// labels alphabetically and put Completed first.
const statusRank = "CASE status WHEN 'New' THEN 0 WHEN 'InProgress' THEN 1 WHEN 'NotAssigned' THEN 2 ELSE 3 END"

func (s *taskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if task.ResponsibleUserID != nil {
		user := &model.User{}
		err := s.pool.QueryRow(ctx,
			"SELECT id, name, created_at FROM users WHERE id = $1",
			*task.ResponsibleUserID,
		).Scan(&user.ID, &user.Name, &user.CreatedAt)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			task.ResponsibleUser = user
		}
	}

	comments, err := listComments(ctx, s.pool, task.ID)
	if err != nil {
		return nil, err
	}
	task.Comments = comments

	return task, nil
}

func (s *taskStore) List(ctx context.Context, filter TaskFilter) ([]model.Task, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM tasks "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks %s ORDER BY %s, created_at DESC",
		taskColumns, where, statusRank)

	// Size <= 0 returns everything; internal callers like the board
	// need the full set, not a page of it.
	if filter.Size > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		size := filter.Size
		if size > 100 {
			size = 100
		}
		args = append(args, size, (page-1)*size)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *taskStore) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE responsible_user_id = $1 ORDER BY "+statusRank+", due_date NULLS LAST",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (s *taskStore) Create(ctx context.Context, task *model.Task) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, status, due_date, responsible_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		task.ID, task.Title, task.Description, string(task.Status), task.DueDate, task.ResponsibleUserID,
	).Scan(&task.CreatedAt)
}

func (s *taskStore) Update(ctx context.Context, task *model.Task) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET title = $2, description = $3, status = $4, due_date = $5, responsible_user_id = $6
		 WHERE id = $1`,
		task.ID, task.Title, task.Description, string(task.Status), task.DueDate, task.ResponsibleUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *taskStore) UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE tasks SET status = $2 WHERE id = $1", id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *taskStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*model.Task, error) {
	task := &model.Task{}
	var status string
	err := row.Scan(&task.ID, &task.Title, &task.Description, &status,
		&task.DueDate, &task.ResponsibleUserID, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	task.Status = model.TaskStatus(status)
	return task, nil
}

func scanTasks(rows pgx.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
