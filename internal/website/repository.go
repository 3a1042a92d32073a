package website

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the persistence boundary for website aggregates. The core is
// agnostic to the backing store: the bun implementation talks to a relational
// database, the memory implementation backs tests and local sessions.
type Repository interface {
	Create(ctx context.Context, record *Website) (*Website, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Website, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Website, error)
	Update(ctx context.Context, record *Website) (*Website, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewWebsiteRepository builds the raw bun-backed repository for the aggregate.
func NewWebsiteRepository(db *bun.DB) repository.Repository[*Website] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Website]{
		NewRecord: func() *Website { return &Website{} },
		GetID: func(w *Website) uuid.UUID {
			return w.ID
		},
		SetID: func(w *Website, id uuid.UUID) {
			w.ID = id
		},
		GetIdentifier: func() string {
			return "business_name"
		},
		GetIdentifierValue: func(w *Website) string {
			return w.BusinessName
		},
	})
}
