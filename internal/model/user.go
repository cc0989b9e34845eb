package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Loaded by UserStore.GetByID; empty on list queries.
	Tasks []Task `json:"tasks,omitempty"`
}
