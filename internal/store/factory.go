package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Stores struct {
	pool *pgxpool.Pool
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{pool: pool}
}

func (s *Stores) Tasks() TaskStore {
	return newTaskStore(s.pool)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.pool)
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.pool)
}

func (s *Stores) Audit() AuditStore {
	return newAuditStore(s.pool)
}
