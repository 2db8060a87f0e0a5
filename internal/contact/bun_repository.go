package contact

import (
	"context"
	"fmt"

	errors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-portfolio/contact"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunSubmissionRepository implements SubmissionRepository with optional caching.
type BunSubmissionRepository struct {
	repo repository.Repository[*contact.Submission]
}

// NewBunSubmissionRepository creates a submission repository without caching.
func NewBunSubmissionRepository(db *bun.DB) *BunSubmissionRepository {
	return NewBunSubmissionRepositoryWithCache(db, nil, nil)
}

// NewBunSubmissionRepositoryWithCache creates a submission repository with caching support.
func NewBunSubmissionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSubmissionRepository {
	base := NewSubmissionRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunSubmissionRepository{repo: base}
}

func (r *BunSubmissionRepository) Create(ctx context.Context, submission *contact.Submission) (*contact.Submission, error) {
	record, err := r.repo.Create(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("submission repository error: %w", err)
	}
	return record, nil
}

func (r *BunSubmissionRepository) Update(ctx context.Context, submission *contact.Submission) (*contact.Submission, error) {
	record, err := r.repo.Update(ctx, submission)
	if err != nil {
		return nil, mapRepositoryError(err, submission.ID.String())
	}
	return record, nil
}

func (r *BunSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*contact.Submission, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunSubmissionRepository) List(ctx context.Context) ([]*contact.Submission, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("submission repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &contact.SubmissionNotFoundError{Key: key}
	}
	return fmt.Errorf("submission repository error: %w", err)
}
