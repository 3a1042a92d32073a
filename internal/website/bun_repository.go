package website

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists website aggregates through bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Website]
}

// NewBunRepository constructs a Repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a bun repository with optional read
// caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewWebsiteRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

// Create inserts the aggregate.
func (r *BunRepository) Create(ctx context.Context, record *Website) (*Website, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "website", record.ID.String())
	}
	return created, nil
}

// GetByID loads the aggregate.
func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Website, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "website", id.String())
	}
	return result, nil
}

// ListByUser lists the aggregates owned by a user.
func (r *BunRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Website, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.user_id = ?", userID)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "website", userID.String())
	}
	return records, nil
}

// Update replaces the stored aggregate.
func (r *BunRepository) Update(ctx context.Context, record *Website) (*Website, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "website", record.ID.String())
	}
	return updated, nil
}

// Delete removes the aggregate row. Nested collections live on the row, so
// no cascading cleanup is required.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("website repository: database not configured")
	}
	result, err := r.db.NewDelete().
		Model((*Website)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("website delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Key: id.String()}
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
