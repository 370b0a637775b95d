package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// headerRow is the spreadsheet row holding column names; data starts below it
const headerRow = 1

var updatedRow = regexp.MustCompile(`![A-Z]+(\d+)`)

// Store is a record store backed by one Google spreadsheet.
// Each table is a sheet (tab) and a row id is the spreadsheet row number.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// New creates a store for the given spreadsheet using the supplied client options
func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// NewWithServiceAccount authenticates as a service account from its email and
// PEM private key. Escaped newlines in the key are expanded, as keys are
// usually passed through a single-line environment variable.
func NewWithServiceAccount(ctx context.Context, spreadsheetID, email, privateKey string) (*Store, error) {
	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	return New(ctx, spreadsheetID, option.WithTokenSource(conf.TokenSource(ctx)))
}

// Headers returns the first row of the sheet
func (s *Store) Headers(ctx context.Context, table domain.Table) ([]string, error) {
	if _, err := s.sheetID(ctx, table); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, a1(table, "1:1")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row of %s: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return []string{}, nil
	}
	return cells(resp.Values[0]), nil
}

// ListRows reads the whole sheet. Row ids are spreadsheet row numbers.
func (s *Store) ListRows(ctx context.Context, table domain.Table) (*domain.RowSet, error) {
	if _, err := s.sheetID(ctx, table); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, a1(table, "")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", table, err)
	}

	set := &domain.RowSet{Headers: []string{}, Rows: make([]domain.Row, 0)}
	if len(resp.Values) == 0 {
		return set, nil
	}
	set.Headers = cells(resp.Values[0])

	for i, values := range resp.Values[1:] {
		fields := make(map[string]any, len(set.Headers))
		for col, h := range set.Headers {
			if col < len(values) {
				fields[h] = values[col]
			}
		}
		set.Rows = append(set.Rows, domain.Row{ID: domain.RowID(i + headerRow + 1), Fields: fields})
	}
	return set, nil
}

// AppendRow writes a row below the last one, laid out in header order.
// Values are entered as if typed, so the sheet applies its own formatting.
func (s *Store) AppendRow(ctx context.Context, table domain.Table, fields map[string]any) (domain.RowID, error) {
	headers, err := s.Headers(ctx, table)
	if err != nil {
		return 0, err
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		if v, ok := fields[h]; ok && v != nil {
			row[i] = v
		} else {
			row[i] = ""
		}
	}

	resp, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, a1(table, "A1"), &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append row to %s: %w", table, err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append to %s returned no update range", table)
	}
	return parseUpdatedRow(resp.Updates.UpdatedRange)
}

// DeleteRow removes a spreadsheet row. Rows below it move up by one.
func (s *Store) DeleteRow(ctx context.Context, table domain.Table, id domain.RowID) error {
	sheetID, err := s.sheetID(ctx, table)
	if err != nil {
		return err
	}

	set, err := s.ListRows(ctx, table)
	if err != nil {
		return err
	}
	if !containsRow(set, id) {
		return fmt.Errorf("row %s of %s: %w", id, table, domain.ErrRowNotFound)
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(id) - 1,
					EndIndex:   int64(id),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete row %s of %s: %w", id, table, err)
	}
	return nil
}

// sheetID resolves a sheet title to its numeric id, refreshing the
// spreadsheet metadata once when the title is unknown
func (s *Store) sheetID(ctx context.Context, table domain.Table) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.sheetIDs[string(table)]; ok {
		return id, nil
	}

	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to load spreadsheet: %w", err)
	}

	s.sheetIDs = make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	id, ok := s.sheetIDs[string(table)]
	if !ok {
		return 0, fmt.Errorf("sheet %q: %w", table, domain.ErrTableNotFound)
	}
	return id, nil
}

func containsRow(set *domain.RowSet, id domain.RowID) bool {
	for _, r := range set.Rows {
		if r.ID == id {
			return true
		}
	}
	return false
}

// a1 builds an A1 range on the sheet named after the table
func a1(table domain.Table, cellRange string) string {
	quoted := "'" + strings.ReplaceAll(string(table), "'", "''") + "'"
	if cellRange == "" {
		return quoted
	}
	return quoted + "!" + cellRange
}

func parseUpdatedRow(updatedRange string) (domain.RowID, error) {
	m := updatedRow.FindStringSubmatch(updatedRange)
	if m == nil {
		return 0, fmt.Errorf("unexpected updated range %q", updatedRange)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected updated range %q: %w", updatedRange, err)
	}
	return domain.RowID(n), nil
}

func cells(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
