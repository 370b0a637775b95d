package domain

import "context"

// Table names a logical table of the record store
type Table string

const (
	// TableAssets holds asset snapshots
	TableAssets Table = "DB"

	// TableComments holds comment entries
	TableComments Table = "Comments"
)

// Row is one stored row: its id and a header-keyed field mapping.
// Values are whatever the backend hands back (strings, numbers, nil).
type Row struct {
	ID     RowID
	Fields map[string]any
}

// RowSet is the content of a table at the time it was listed
type RowSet struct {
	Headers []string
	Rows    []Row
}

// RecordStore defines the interface for the row-oriented backing store
type RecordStore interface {
	// Headers returns the header row of a table.
	// Returns ErrTableNotFound if the table does not exist.
	Headers(ctx context.Context, table Table) ([]string, error)

	// ListRows returns every row of a table in store order.
	// Returns ErrTableNotFound if the table does not exist.
	ListRows(ctx context.Context, table Table) (*RowSet, error)

	// AppendRow appends a row and returns the id assigned to it.
	// Keys that are not headers of the table are ignored.
	AppendRow(ctx context.Context, table Table, fields map[string]any) (RowID, error)

	// DeleteRow removes a row by id.
	// Returns ErrRowNotFound if no row has that id.
	DeleteRow(ctx context.Context, table Table, id RowID) error
}

// SchemaRepository is implemented by stores that can create tables on demand
type SchemaRepository interface {
	// EnsureTable creates the table with the given header row if it does not
	// exist yet. Existing tables keep their headers.
	EnsureTable(ctx context.Context, table Table, headers []string) error
}
