package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/assetboard-backend/internal/cache"
	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/usecase/ingest"
)

const (
	cacheKey = "comments-data"

	// CacheTag labels cached comment reads; it is invalidated after every write
	CacheTag = "comments"
)

// CommentService handles comment operations
type CommentService struct {
	Store domain.RecordStore
	Cache *cache.Cache
}

// NewCommentService creates a new CommentService instance
func NewCommentService(store domain.RecordStore, c *cache.Cache) *CommentService {
	return &CommentService{
		Store: store,
		Cache: c,
	}
}

// List returns every valid comment, most recent first.
// A missing Comments table reads as no comments.
func (s *CommentService) List(ctx context.Context) ([]domain.CommentEntry, error) {
	return cache.Load(s.Cache, cacheKey, []string{CacheTag}, func() ([]domain.CommentEntry, error) {
		set, err := s.Store.ListRows(ctx, domain.TableComments)
		if errors.Is(err, domain.ErrTableNotFound) {
			return []domain.CommentEntry{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list comment rows: %w", err)
		}
		return ingest.Comments(set), nil
	})
}

// Add validates and appends one comment under the headers the Comments
// table already uses
func (s *CommentService) Add(ctx context.Context, c domain.CommentEntry) (domain.RowID, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	headers, err := s.Store.Headers(ctx, domain.TableComments)
	if err != nil {
		return 0, fmt.Errorf("failed to load comment headers: %w", err)
	}

	id, err := s.Store.AppendRow(ctx, domain.TableComments, ingest.CommentFieldsFor(headers, c))
	if err != nil {
		return 0, fmt.Errorf("failed to append comment row: %w", err)
	}
	s.Cache.Invalidate(CacheTag)

	return id, nil
}

// Delete removes one comment. Deleting a row that does not exist is a no-op.
func (s *CommentService) Delete(ctx context.Context, id domain.RowID) error {
	err := s.Store.DeleteRow(ctx, domain.TableComments, id)
	if errors.Is(err, domain.ErrRowNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete comment row %s: %w", id, err)
	}
	s.Cache.Invalidate(CacheTag)

	return nil
}
