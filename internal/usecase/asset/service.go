package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/assetboard-backend/internal/cache"
	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/usecase/aggregate"
	"github.com/simaogato/assetboard-backend/internal/usecase/ingest"
)

const (
	cacheKey = "assets-data"

	// CacheTag labels cached asset reads; it is invalidated after every write
	CacheTag = "assets"
)

// AssetService handles asset snapshot operations
type AssetService struct {
	Store            domain.RecordStore
	Cache            *cache.Cache
	RecomputeDerived bool
}

// NewAssetService creates a new AssetService instance.
// When recomputeDerived is set, TotalAsset and NetWorth are recalculated
// from the component amounts on submission instead of trusted as sent.
func NewAssetService(store domain.RecordStore, c *cache.Cache, recomputeDerived bool) *AssetService {
	return &AssetService{
		Store:            store,
		Cache:            c,
		RecomputeDerived: recomputeDerived,
	}
}

// List returns every valid snapshot, oldest first
func (s *AssetService) List(ctx context.Context) ([]domain.AssetSnapshot, error) {
	return cache.Load(s.Cache, cacheKey, []string{CacheTag}, func() ([]domain.AssetSnapshot, error) {
		set, err := s.Store.ListRows(ctx, domain.TableAssets)
		if err != nil {
			return nil, fmt.Errorf("failed to list asset rows: %w", err)
		}
		return ingest.Snapshots(set), nil
	})
}

// Add validates and appends one snapshot, returning its row id
func (s *AssetService) Add(ctx context.Context, snapshot domain.AssetSnapshot) (domain.RowID, error) {
	if err := snapshot.Validate(); err != nil {
		return 0, err
	}
	if s.RecomputeDerived {
		snapshot.RecomputeDerived()
	}

	headers, err := s.Store.Headers(ctx, domain.TableAssets)
	if err != nil {
		return 0, fmt.Errorf("failed to load asset headers: %w", err)
	}

	id, err := s.Store.AppendRow(ctx, domain.TableAssets, ingest.SnapshotFieldsFor(headers, snapshot))
	if err != nil {
		return 0, fmt.Errorf("failed to append asset row: %w", err)
	}
	s.Cache.Invalidate(CacheTag)

	return id, nil
}

// Delete removes the given snapshots and returns how many were deleted.
// Rows are deleted from the highest id down; ids that no longer exist
// are skipped.
func (s *AssetService) Delete(ctx context.Context, ids []domain.RowID) (int, error) {
	if len(ids) == 0 {
		return 0, domain.MissingField("rows")
	}

	deleted := 0
	defer func() {
		if deleted > 0 {
			s.Cache.Invalidate(CacheTag)
		}
	}()

	for _, id := range domain.DeletionOrder(ids) {
		err := s.Store.DeleteRow(ctx, domain.TableAssets, id)
		if errors.Is(err, domain.ErrRowNotFound) {
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("failed to delete asset row %s: %w", id, err)
		}
		deleted++
	}

	return deleted, nil
}

// Dashboard aggregates the current snapshots for the given view
func (s *AssetService) Dashboard(ctx context.Context, view domain.ViewMode) (*aggregate.Result, error) {
	snapshots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Aggregate(snapshots, view), nil
}
