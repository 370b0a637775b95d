package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// RecordRepository implements domain.RecordStore and domain.SchemaRepository
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

var (
	_ domain.RecordStore      = (*RecordRepository)(nil)
	_ domain.SchemaRepository = (*RecordRepository)(nil)
)

// EnsureTable registers a table and its header row if it is not known yet
func (r *RecordRepository) EnsureTable(ctx context.Context, table domain.Table, headers []string) error {
	encoded, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	query := r.db.rebind(`
		INSERT INTO record_tables (name, headers)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`)
	if _, err := r.db.ExecContext(ctx, query, string(table), string(encoded)); err != nil {
		return fmt.Errorf("failed to ensure table %s: %w", table, err)
	}
	return nil
}

// Headers retrieves the header row of a table
func (r *RecordRepository) Headers(ctx context.Context, table domain.Table) ([]string, error) {
	query := r.db.rebind(`SELECT headers FROM record_tables WHERE name = $1`)

	var raw string
	err := r.db.QueryRowContext(ctx, query, string(table)).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("table %s: %w", table, domain.ErrTableNotFound)
		}
		return nil, fmt.Errorf("failed to get headers: %w", err)
	}

	var headers []string
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		return nil, fmt.Errorf("failed to parse headers of %s: %w", table, err)
	}
	return headers, nil
}

// ListRows retrieves every row of a table in insertion order
func (r *RecordRepository) ListRows(ctx context.Context, table domain.Table) (*domain.RowSet, error) {
	headers, err := r.Headers(ctx, table)
	if err != nil {
		return nil, err
	}

	query := r.db.rebind(`
		SELECT id, fields
		FROM record_rows
		WHERE table_name = $1
		ORDER BY id ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, string(table))
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	set := &domain.RowSet{Headers: headers, Rows: make([]domain.Row, 0)}
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		fields := make(map[string]any)
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", id, err)
		}
		set.Rows = append(set.Rows, domain.Row{ID: domain.RowID(id), Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return set, nil
}

// AppendRow inserts a row, keeping only the keys that are table headers
func (r *RecordRepository) AppendRow(ctx context.Context, table domain.Table, fields map[string]any) (domain.RowID, error) {
	headers, err := r.Headers(ctx, table)
	if err != nil {
		return 0, err
	}

	kept := make(map[string]any, len(headers))
	for _, h := range headers {
		if v, ok := fields[h]; ok {
			kept[h] = v
		}
	}
	encoded, err := json.Marshal(kept)
	if err != nil {
		return 0, fmt.Errorf("failed to encode row: %w", err)
	}

	query := r.db.rebind(`
		INSERT INTO record_rows (table_name, fields)
		VALUES ($1, $2)
		RETURNING id
	`)

	var id int64
	if err := r.db.QueryRowContext(ctx, query, string(table), string(encoded)).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert row: %w", err)
	}
	return domain.RowID(id), nil
}

// DeleteRow deletes a row by id
func (r *RecordRepository) DeleteRow(ctx context.Context, table domain.Table, id domain.RowID) error {
	query := r.db.rebind(`DELETE FROM record_rows WHERE table_name = $1 AND id = $2`)

	res, err := r.db.ExecContext(ctx, query, string(table), int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		if _, err := r.Headers(ctx, table); err != nil {
			return err
		}
		return fmt.Errorf("row %s of %s: %w", id, table, domain.ErrRowNotFound)
	}
	return nil
}
