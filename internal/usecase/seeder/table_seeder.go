package seeder

import (
	"context"
	"fmt"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// TableSpec defines a table to be seeded and its initial header row
type TableSpec struct {
	Table   domain.Table
	Headers []string
}

// DefaultTables are the tables the dashboard reads and writes
var DefaultTables = []TableSpec{
	{Table: domain.TableAssets, Headers: domain.SnapshotHeaders},
	{Table: domain.TableComments, Headers: domain.CommentHeaders},
}

// TableSeeder handles seeding of the required tables
type TableSeeder struct {
	repo domain.SchemaRepository
}

// NewTableSeeder creates a new TableSeeder instance
func NewTableSeeder(repo domain.SchemaRepository) *TableSeeder {
	return &TableSeeder{
		repo: repo,
	}
}

// Seed ensures all required tables exist.
// Tables that already exist keep their header row untouched.
func (s *TableSeeder) Seed(ctx context.Context) error {
	for _, spec := range DefaultTables {
		if len(spec.Headers) == 0 {
			return fmt.Errorf("table %s has no headers", spec.Table)
		}
		if err := s.repo.EnsureTable(ctx, spec.Table, spec.Headers); err != nil {
			return err
		}
	}
	return nil
}
