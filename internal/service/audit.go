package service

import (
	"context"
	"fmt"

	"taskboard.app/server/internal/model"
	"taskboard.app/server/internal/store"
)

const defaultAuditLimit = 100

type AuditService interface {
	List(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

type auditService struct {
	auditStore store.AuditStore
}

func NewAuditService(auditStore store.AuditStore) AuditService {
	return &auditService{auditStore: auditStore}
}

func (s *auditService) List(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}
	entries, err := s.auditStore.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}
