package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskboard.app/server/common/id"
	"taskboard.app/server/common/logger"
	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/store"
)

// InsightInvalidator is the slice of the insight service the mutation flows
// consume: cached insights for an entity are dropped whenever that entity
// changes, so the next read regenerates them.
type InsightInvalidator interface {
	InvalidateTask(ctx context.Context, taskID int64)
	InvalidateUser(ctx context.Context, userID int64)
}

// TaskInput carries the caller-editable task fields.
type TaskInput struct {
	Title             string
	Description       *string
	Status            model.TaskStatus
	DueDate           *time.Time
	ResponsibleUserID *int64
}

type TaskService interface {
	Get(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, filter store.TaskFilter) ([]model.Task, int, error)
	Create(ctx context.Context, input TaskInput) (*model.Task, error)
	Update(ctx context.Context, id int64, input TaskInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error
	Delete(ctx context.Context, id int64) error
	AddComment(ctx context.Context, taskID int64, body, createdBy string) (*model.Comment, error)
}

type taskService struct {
	taskStore    store.TaskStore
	commentStore store.CommentStore
	auditStore   store.AuditStore
	insights     InsightInvalidator
}

func NewTaskService(taskStore store.TaskStore, commentStore store.CommentStore, auditStore store.AuditStore, insights InsightInvalidator) TaskService {
	return &taskService{
		taskStore:    taskStore,
		commentStore: commentStore,
		auditStore:   auditStore,
		insights:     insights,
	}
}

func (s *taskService) Get(ctx context.Context, id int64) (*model.Task, error) {
	return s.taskStore.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, filter store.TaskFilter) ([]model.Task, int, error) {
	return s.taskStore.List(ctx, filter)
}

func (s *taskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:                id.New(),
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		DueDate:           input.DueDate,
		ResponsibleUserID: input.ResponsibleUserID,
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to create task", "error", err)
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.audit(ctx, "task", task.ID, model.AuditActionCreated, task.Title)
	if task.ResponsibleUserID != nil {
		s.insights.InvalidateUser(ctx, *task.ResponsibleUserID)
	}

	slog.InfoContext(ctx, "task created", "task_id", task.ID)
	return task, nil
}

func (s *taskService) Update(ctx context.Context, taskID int64, input TaskInput) (*model.Task, error) {
	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:                taskID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		DueDate:           input.DueDate,
		ResponsibleUserID: input.ResponsibleUserID,
		CreatedAt:         existing.CreatedAt,
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to update task", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.audit(ctx, "task", taskID, model.AuditActionUpdated, task.Title)
	s.insights.InvalidateTask(ctx, taskID)
	s.invalidateAssignees(ctx, existing.ResponsibleUserID, task.ResponsibleUserID)

	return task, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, taskID int64, status model.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	existing, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.taskStore.UpdateStatus(ctx, taskID, status); err != nil {
		slog.ErrorContext(ctx, "failed to update task status", "error", err, "task_id", taskID)
		return fmt.Errorf("updating task status: %w", err)
	}

	s.audit(ctx, "task", taskID, model.AuditActionUpdated,
		fmt.Sprintf("%s -> %s", existing.Status, status))
	s.insights.InvalidateTask(ctx, taskID)
	if existing.ResponsibleUserID != nil {
		s.insights.InvalidateUser(ctx, *existing.ResponsibleUserID)
	}

	return nil
}

func (s *taskService) Delete(ctx context.Context, taskID int64) error {
	existing, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		slog.ErrorContext(ctx, "failed to delete task", "error", err, "task_id", taskID)
		return fmt.Errorf("deleting task: %w", err)
	}

	s.audit(ctx, "task", taskID, model.AuditActionDeleted, existing.Title)
	s.insights.InvalidateTask(ctx, taskID)
	if existing.ResponsibleUserID != nil {
		s.insights.InvalidateUser(ctx, *existing.ResponsibleUserID)
	}

	slog.InfoContext(ctx, "task deleted", "task_id", taskID)
	return nil
}

func (s *taskService) AddComment(ctx context.Context, taskID int64, body, createdBy string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment body is required", ErrInvalid)
	}

	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        id.New(),
		TaskID:    taskID,
		Body:      body,
		CreatedBy: createdBy,
	}

	if err := s.commentStore.Create(ctx, comment); err != nil {
		slog.ErrorContext(ctx, "failed to create comment", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.audit(ctx, "task", taskID, model.AuditActionCommented, logger.Truncate(body, 120))
	s.insights.InvalidateTask(ctx, taskID)
	if task.ResponsibleUserID != nil {
		s.insights.InvalidateUser(ctx, *task.ResponsibleUserID)
	}

	return comment, nil
}

// audit records the mutation. Best effort: a failed append is logged, the
// mutation itself has already succeeded.
func (s *taskService) audit(ctx context.Context, entity string, entityID int64, action model.AuditAction, details string) {
	entry := &model.AuditEntry{
		ID:       id.New(),
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
	}
	if details != "" {
		entry.Details = &details
	}
	if err := s.auditStore.Append(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to append audit entry",
			"error", err, "entity", entity, "entity_id", entityID, "action", action)
	}
}

// invalidateAssignees drops the cached aggregates of everyone whose workload
// the mutation touched. On reassignment that is both the old and the new
// responsible user.
func (s *taskService) invalidateAssignees(ctx context.Context, oldID, newID *int64) {
	if oldID != nil {
		s.insights.InvalidateUser(ctx, *oldID)
	}
	if newID != nil && (oldID == nil || *newID != *oldID) {
		s.insights.InvalidateUser(ctx, *newID)
	}
}

func validateTaskInput(input *TaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if input.Status == "" {
		input.Status = model.TaskStatusNotAssigned
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, input.Status)
	}
	return nil
}
