package dto

import (
	"time"

	"taskboard.app/server/internal/model"
)

type CreateCommentRequest struct {
	Body      string `json:"body" binding:"required,min=1,max=4000"`
	CreatedBy string `json:"created_by" binding:"required,min=1,max=255"`
}

type CommentResponse struct {
	ID        int64     `json:"id,string"`
	TaskID    int64     `json:"task_id,string"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Body:      c.Body,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}
