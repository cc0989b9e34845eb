package service

import (
	"taskboard.app/server/internal/insight"
	"taskboard.app/server/internal/store"
)

type Services struct {
	stores   *store.Stores
	insights insight.Service
}

func NewServices(stores *store.Stores, insights insight.Service) *Services {
	return &Services{
		stores:   stores,
		insights: insights,
	}
}

func (s *Services) Tasks() TaskService {
	return NewTaskService(s.stores.Tasks(), s.stores.Comments(), s.stores.Audit(), s.insights)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Audit(), s.insights)
}

func (s *Services) Dashboard() DashboardService {
	return NewDashboardService(s.stores.Tasks(), s.stores.Users())
}

func (s *Services) Audit() AuditService {
	return NewAuditService(s.stores.Audit())
}

func (s *Services) Insights() insight.Service {
	return s.insights
}
