package dto

import (
	"time"

	"taskboard.app/server/internal/model"
)

type CreateTaskRequest struct {
	Title             string     `json:"title" binding:"required,min=1,max=255"`
	Description       *string    `json:"description,omitempty" binding:"omitempty,max=4000"`
	Status            string     `json:"status,omitempty"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	ResponsibleUserID *int64     `json:"responsible_user_id,omitempty,string"`
}

type UpdateTaskRequest struct {
	Title             string     `json:"title" binding:"required,min=1,max=255"`
	Description       *string    `json:"description,omitempty" binding:"omitempty,max=4000"`
	Status            string     `json:"status" binding:"required"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	ResponsibleUserID *int64     `json:"responsible_user_id,omitempty,string"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskResponse struct {
	ID                int64             `json:"id,string"`
	Title             string            `json:"title"`
	Description       *string           `json:"description,omitempty"`
	Status            string            `json:"status"`
	DueDate           *time.Time        `json:"due_date,omitempty"`
	ResponsibleUserID *int64            `json:"responsible_user_id,omitempty,string"`
	ResponsibleUser   *UserBrief        `json:"responsible_user,omitempty"`
	Comments          []CommentResponse `json:"comments,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

func ToTaskResponse(t *model.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		DueDate:           t.DueDate,
		ResponsibleUserID: t.ResponsibleUserID,
		CreatedAt:         t.CreatedAt,
	}
	if t.ResponsibleUser != nil {
		resp.ResponsibleUser = &UserBrief{ID: t.ResponsibleUser.ID, Name: t.ResponsibleUser.Name}
	}
	for i := range t.Comments {
		resp.Comments = append(resp.Comments, *ToCommentResponse(&t.Comments[i]))
	}
	return resp
}

func ToTaskListResponse(tasks []model.Task, total, page, size int) *TaskListResponse {
	resp := &TaskListResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: total,
		Page:  page,
		Size:  size,
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, *ToTaskResponse(&tasks[i]))
	}
	return resp
}
