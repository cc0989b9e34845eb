package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taskboard.app/server/common/id"
	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/store"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, name string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	userStore  store.UserStore
	auditStore store.AuditStore
	insights   InsightInvalidator
}

func NewUserService(userStore store.UserStore, auditStore store.AuditStore, insights InsightInvalidator) UserService {
	return &userService{
		userStore:  userStore,
		auditStore: auditStore,
		insights:   insights,
	}
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.userStore.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userStore.List(ctx)
}

func (s *userService) Create(ctx context.Context, name string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	user := &model.User{
		ID:   id.New(),
		Name: name,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to create user", "error", err)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.audit(ctx, user.ID, model.AuditActionCreated, user.Name)
	slog.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// Delete removes the user and, via the schema cascade, their tasks. Cached
// insights for the user and every owned task are dropped alongside.
func (s *userService) Delete(ctx context.Context, userID int64) error {
	existing, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "failed to delete user", "error", err, "user_id", userID)
		return fmt.Errorf("deleting user: %w", err)
	}

	s.audit(ctx, userID, model.AuditActionDeleted, existing.Name)
	s.insights.InvalidateUser(ctx, userID)
	for i := range existing.Tasks {
		s.insights.InvalidateTask(ctx, existing.Tasks[i].ID)
	}

	slog.InfoContext(ctx, "user deleted", "user_id", userID)
	return nil
}

func (s *userService) audit(ctx context.Context, userID int64, action model.AuditAction, details string) {
	entry := &model.AuditEntry{
		ID:       id.New(),
		Entity:   "user",
		EntityID: userID,
		Action:   action,
	}
	if details != "" {
		entry.Details = &details
	}
	if err := s.auditStore.Append(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to append audit entry",
			"error", err, "entity", "user", "entity_id", userID, "action", action)
	}
}
