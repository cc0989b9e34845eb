package store

import (
	"context"
	"errors"

	"taskboard.app/server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// TaskFilter narrows List queries. Zero value means no filtering and
// no pagination; Size > 0 enables paging.
type TaskFilter struct {
	Query  string
	Status *model.TaskStatus
	Page   int
	Size   int
}

// TaskStore defines the contract for task data access
type TaskStore interface {
	// GetByID loads the task with its responsible user and comments
	// ordered newest first.
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, int, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}

// UserStore defines the contract for user data access
type UserStore interface {
	// GetByID loads the user with their tasks (and each task's comments).
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// CommentStore defines the contract for task comment data access
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) // newest first
}

// AuditStore defines the contract for the audit trail
type AuditStore interface {
	Append(ctx context.Context, entry *model.AuditEntry) error
	List(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
