package model

import "time"

type AuditAction string

const (
	AuditActionCreated   AuditAction = "Created"
	AuditActionUpdated   AuditAction = "Updated"
	AuditActionDeleted   AuditAction = "Deleted"
	AuditActionCommented AuditAction = "Commented"
)

type AuditEntry struct {
	ID        int64       `json:"id"`
	Entity    string      `json:"entity"`
	EntityID  int64       `json:"entity_id"`
	Action    AuditAction `json:"action"`
	Details   *string     `json:"details,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
