package model

import "time"

type TaskStatus string

const (
	TaskStatusNotAssigned TaskStatus = "NotAssigned"
	TaskStatusNew         TaskStatus = "New"
	TaskStatusInProgress  TaskStatus = "InProgress"
	TaskStatusCompleted   TaskStatus = "Completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotAssigned, TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// BoardOrder returns the ordering weight used by the Kanban board:
// New before InProgress before everything else.
func (s TaskStatus) BoardOrder() int {
	switch s {
	case TaskStatusNew:
		return 0
	case TaskStatusInProgress:
		return 1
	default:
		return 2
	}
}

type Task struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	Status            TaskStatus `json:"status"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	ResponsibleUserID *int64     `json:"responsible_user_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	// Loaded by TaskStore.GetByID; nil/empty on list queries.
	ResponsibleUser *User     `json:"responsible_user,omitempty"`
	Comments        []Comment `json:"comments,omitempty"` // newest first
}
