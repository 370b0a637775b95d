package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// firstDataRow is the id of the first row under the header row,
// matching spreadsheet row numbering
const firstDataRow = 2

type table struct {
	headers []string
	rows    []map[string]any
}

// Store is an in-memory record store that numbers rows by position the way a
// spreadsheet does: deleting a row shifts the ids of every row below it
type Store struct {
	mu     sync.RWMutex
	tables map[domain.Table]*table
}

// NewStore creates a store holding the DB and Comments tables with their
// canonical headers
func NewStore() *Store {
	s := &Store{tables: make(map[domain.Table]*table)}
	s.CreateTable(domain.TableAssets, domain.SnapshotHeaders)
	s.CreateTable(domain.TableComments, domain.CommentHeaders)
	return s
}

// CreateTable creates or replaces a table with the given header row
func (s *Store) CreateTable(name domain.Table, headers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = &table{headers: append([]string(nil), headers...)}
}

// DropTable removes a table
func (s *Store) DropTable(name domain.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, name)
}

// Headers returns the header row of a table
func (s *Store) Headers(_ context.Context, name domain.Table) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("memory table %q: %w", name, domain.ErrTableNotFound)
	}
	return append([]string(nil), t.headers...), nil
}

// ListRows returns a copy of every row in a table
func (s *Store) ListRows(_ context.Context, name domain.Table) (*domain.RowSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("memory table %q: %w", name, domain.ErrTableNotFound)
	}

	set := &domain.RowSet{
		Headers: append([]string(nil), t.headers...),
		Rows:    make([]domain.Row, 0, len(t.rows)),
	}
	for i, fields := range t.rows {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		set.Rows = append(set.Rows, domain.Row{ID: domain.RowID(i + firstDataRow), Fields: copied})
	}
	return set, nil
}

// AppendRow appends a row, keeping only keys that are headers of the table
func (s *Store) AppendRow(_ context.Context, name domain.Table, fields map[string]any) (domain.RowID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return 0, fmt.Errorf("memory table %q: %w", name, domain.ErrTableNotFound)
	}

	row := make(map[string]any, len(t.headers))
	for _, h := range t.headers {
		if v, ok := fields[h]; ok {
			row[h] = v
		}
	}
	t.rows = append(t.rows, row)
	return domain.RowID(len(t.rows) - 1 + firstDataRow), nil
}

// DeleteRow removes the row at the given position
func (s *Store) DeleteRow(_ context.Context, name domain.Table, id domain.RowID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("memory table %q: %w", name, domain.ErrTableNotFound)
	}

	i := int(id) - firstDataRow
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("memory row %s: %w", id, domain.ErrRowNotFound)
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}
