package dto

import (
	"time"

	"taskboard.app/server/internal/model"
)

type AuditEntryResponse struct {
	ID        int64     `json:"id,string"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id,string"`
	Action    string    `json:"action"`
	Details   *string   `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

func ToAuditListResponse(entries []model.AuditEntry) *AuditListResponse {
	resp := &AuditListResponse{Entries: make([]AuditEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, AuditEntryResponse{
			ID:        e.ID,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp
}
