package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard.app/server/internal/model"
)

type userStore struct {
	pool *pgxpool.Pool
}

func newUserStore(pool *pgxpool.Pool) UserStore {
	return &userStore{pool: pool}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM users WHERE id = $1", id,
	).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE responsible_user_id = $1 ORDER BY "+statusRank+", due_date NULLS LAST",
		id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		comments, err := listComments(ctx, s.pool, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Comments = comments
	}
	user.Tasks = tasks

	return user, nil
}

func (s *userStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, created_at FROM users ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	return s.pool.QueryRow(ctx,
		"INSERT INTO users (id, name) VALUES ($1, $2) RETURNING created_at",
		user.ID, user.Name,
	).Scan(&user.CreatedAt)
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
