package handler_test

import (
	"context"

	"taskboard.app/server/internal/insight"
	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/service"
	"taskboard.app/server/internal/store"
)

type mockTaskService struct {
	getFn          func(ctx context.Context, id int64) (*model.Task, error)
	listFn         func(ctx context.Context, filter store.TaskFilter) ([]model.Task, int, error)
	createFn       func(ctx context.Context, input service.TaskInput) (*model.Task, error)
	updateFn       func(ctx context.Context, id int64, input service.TaskInput) (*model.Task, error)
	updateStatusFn func(ctx context.Context, id int64, status model.TaskStatus) error
	deleteFn       func(ctx context.Context, id int64) error
	addCommentFn   func(ctx context.Context, taskID int64, body, createdBy string) (*model.Comment, error)
}

func (m *mockTaskService) Get(ctx context.Context, id int64) (*model.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskService) List(ctx context.Context, filter store.TaskFilter) ([]model.Task, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTaskService) Create(ctx context.Context, input service.TaskInput) (*model.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return nil, nil
}

func (m *mockTaskService) Update(ctx context.Context, id int64, input service.TaskInput) (*model.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input)
	}
	return nil, nil
}

func (m *mockTaskService) UpdateStatus(ctx context.Context, id int64, status model.TaskStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockTaskService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTaskService) AddComment(ctx context.Context, taskID int64, body, createdBy string) (*model.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, taskID, body, createdBy)
	}
	return nil, nil
}

type mockUserService struct {
	getFn    func(ctx context.Context, id int64) (*model.User, error)
	listFn   func(ctx context.Context) ([]model.User, error)
	createFn func(ctx context.Context, name string) (*model.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockUserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserService) Create(ctx context.Context, name string) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name)
	}
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockInsightService struct {
	taskInsightFn func(ctx context.Context, taskID int64, forceRefresh bool) (*insight.TaskInsight, error)
	userInsightFn func(ctx context.Context, userID int64, forceRefresh bool) (*insight.UserInsight, error)
}

func (m *mockInsightService) TaskInsight(ctx context.Context, taskID int64, forceRefresh bool) (*insight.TaskInsight, error) {
	if m.taskInsightFn != nil {
		return m.taskInsightFn(ctx, taskID, forceRefresh)
	}
	return nil, nil
}

func (m *mockInsightService) UserInsight(ctx context.Context, userID int64, forceRefresh bool) (*insight.UserInsight, error) {
	if m.userInsightFn != nil {
		return m.userInsightFn(ctx, userID, forceRefresh)
	}
	return nil, nil
}

func (m *mockInsightService) InvalidateTask(context.Context, int64) {}

func (m *mockInsightService) InvalidateUser(context.Context, int64) {}
