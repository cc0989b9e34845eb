package service

import (
	"context"
	"fmt"
	"sort"

	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/store"
)

// BoardColumn is one Kanban lane, tasks in board order then newest first.
type BoardColumn struct {
	Status model.TaskStatus `json:"status"`
	Title  string           `json:"title"`
	Tasks  []model.Task     `json:"tasks"`
}

// ResourceGroup is one user's workload, tasks in board order.
type ResourceGroup struct {
	User  model.User   `json:"user"`
	Tasks []model.Task `json:"tasks"`
}

type DashboardService interface {
	Board(ctx context.Context) ([]BoardColumn, error)
	// ByResource groups tasks per user. With a userID it narrows to that
	// single user and fails with store.ErrNotFound when they do not exist.
	ByResource(ctx context.Context, userID *int64) ([]ResourceGroup, error)
}

type dashboardService struct {
	taskStore store.TaskStore
	userStore store.UserStore
}

func NewDashboardService(taskStore store.TaskStore, userStore store.UserStore) DashboardService {
	return &dashboardService{taskStore: taskStore, userStore: userStore}
}

// The first lane collects unassigned work regardless of status, so a task
// without an owner can show up both there and in its status lane.
var boardColumns = []struct {
	status model.TaskStatus
	title  string
	match  func(model.Task) bool
}{
	{model.TaskStatusNotAssigned, "Not Assigned", func(t model.Task) bool { return t.ResponsibleUserID == nil }},
	{model.TaskStatusNew, "New", func(t model.Task) bool { return t.Status == model.TaskStatusNew }},
	{model.TaskStatusInProgress, "In Progress", func(t model.Task) bool { return t.Status == model.TaskStatusInProgress }},
	{model.TaskStatusCompleted, "Completed", func(t model.Task) bool { return t.Status == model.TaskStatusCompleted }},
}

func (s *dashboardService) Board(ctx context.Context) ([]BoardColumn, error) {
	// Size zero asks the store for the full set; the board never paginates.
	tasks, _, err := s.taskStore.List(ctx, store.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing tasks for board: %w", err)
	}

	columns := make([]BoardColumn, 0, len(boardColumns))
	for _, col := range boardColumns {
		lane := []model.Task{}
		for _, task := range tasks {
			if col.match(task) {
				lane = append(lane, task)
			}
		}
		sortBoardOrder(lane)
		columns = append(columns, BoardColumn{Status: col.status, Title: col.title, Tasks: lane})
	}

	return columns, nil
}

func sortBoardOrder(tasks []model.Task) {
	sort.SliceStable(tasks, func(a, b int) bool {
		oa, ob := tasks[a].Status.BoardOrder(), tasks[b].Status.BoardOrder()
		if oa != ob {
			return oa < ob
		}
		return tasks[a].CreatedAt.After(tasks[b].CreatedAt)
	})
}

func (s *dashboardService) ByResource(ctx context.Context, userID *int64) ([]ResourceGroup, error) {
	var users []model.User
	if userID != nil {
		user, err := s.userStore.GetByID(ctx, *userID)
		if err != nil {
			return nil, err
		}
		users = []model.User{*user}
	} else {
		all, err := s.userStore.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}
		users = all
	}

	groups := make([]ResourceGroup, 0, len(users))
	for i := range users {
		user := users[i]
		tasks, err := s.taskStore.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("listing tasks for user %d: %w", user.ID, err)
		}

		sortBoardOrder(tasks)

		user.Tasks = nil // groups carry tasks alongside, not nested
		groups = append(groups, ResourceGroup{User: user, Tasks: tasks})
	}

	return groups, nil
}
