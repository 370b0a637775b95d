package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// fakeSpreadsheet serves the subset of the Sheets v4 REST API the store uses
type fakeSpreadsheet struct {
	mu      sync.Mutex
	ids     map[string]int64
	grids   map[string][][]interface{}
	deletes []int64
}

func newFakeSpreadsheet() *fakeSpreadsheet {
	return &fakeSpreadsheet{
		ids: map[string]int64{"DB": 0, "Comments": 7},
		grids: map[string][][]interface{}{
			"DB": {
				{"date", "owner", "net_cash", "net_worth"},
				{"2024-01-01", "Wife", "₩1,000", "1,000"},
				{"2024-02-01", "Husband", "2000", "2000"},
			},
			"Comments": {
				{"Date", "Owner", "Message"},
			},
		},
	}
}

func (f *fakeSpreadsheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, ":batchUpdate"):
		var req struct {
			Requests []struct {
				DeleteDimension struct {
					Range struct {
						SheetID    int64 `json:"sheetId"`
						StartIndex int64 `json:"startIndex"`
						EndIndex   int64 `json:"endIndex"`
					} `json:"range"`
				} `json:"deleteDimension"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			rg := rq.DeleteDimension.Range
			for title, id := range f.ids {
				if id == rg.SheetID {
					grid := f.grids[title]
					f.grids[title] = append(grid[:rg.StartIndex], grid[rg.EndIndex:]...)
				}
			}
			f.deletes = append(f.deletes, rg.EndIndex)
		}
		writeFake(w, map[string]any{"spreadsheetId": "sheet-1"})

	case strings.Contains(path, "/values/") && strings.HasSuffix(path, ":append"):
		title := sheetTitle(path)
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.grids[title] = append(f.grids[title], body.Values...)
		n := len(f.grids[title])
		writeFake(w, map[string]any{
			"updates": map[string]any{"updatedRange": fmt.Sprintf("'%s'!A%d:D%d", title, n, n)},
		})

	case strings.Contains(path, "/values/"):
		title := sheetTitle(path)
		grid := f.grids[title]
		if strings.HasSuffix(path, "!1:1") && len(grid) > 0 {
			grid = grid[:1]
		}
		writeFake(w, map[string]any{"values": grid})

	default:
		sheets := make([]map[string]any, 0)
		for title, id := range f.ids {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": title, "sheetId": id}})
		}
		writeFake(w, map[string]any{"sheets": sheets})
	}
}

func sheetTitle(path string) string {
	rest := path[strings.Index(path, "/values/")+len("/values/"):]
	rest = strings.TrimSuffix(rest, ":append")
	if i := strings.Index(rest, "!"); i >= 0 {
		rest = rest[:i]
	}
	return strings.Trim(rest, "'")
}

func writeFake(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func setupStore(t *testing.T) (*Store, *fakeSpreadsheet) {
	t.Helper()
	fake := newFakeSpreadsheet()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	store, err := New(context.Background(), "sheet-1",
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return store, fake
}

func TestStore_ListRows(t *testing.T) {
	store, _ := setupStore(t)

	set, err := store.ListRows(context.Background(), domain.TableAssets)

	require.NoError(t, err)
	assert.Equal(t, []string{"date", "owner", "net_cash", "net_worth"}, set.Headers)
	require.Len(t, set.Rows, 2)
	assert.Equal(t, domain.RowID(2), set.Rows[0].ID)
	assert.Equal(t, "₩1,000", set.Rows[0].Fields["net_cash"])
	assert.Equal(t, domain.RowID(3), set.Rows[1].ID)
}

func TestStore_AppendRowUsesHeaderOrder(t *testing.T) {
	store, fake := setupStore(t)

	id, err := store.AppendRow(context.Background(), domain.TableComments, map[string]any{
		"Message": "hello", "Date": "2024-01-01", "Owner": "Wife", "extra": "dropped",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RowID(2), id)
	assert.Equal(t, []interface{}{"2024-01-01", "Wife", "hello"}, fake.grids["Comments"][1])
}

func TestStore_DeleteRow(t *testing.T) {
	store, fake := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteRow(ctx, domain.TableAssets, 2))
	assert.Equal(t, []int64{2}, fake.deletes)

	set, err := store.ListRows(ctx, domain.TableAssets)
	require.NoError(t, err)
	require.Len(t, set.Rows, 1)
	assert.Equal(t, "Husband", set.Rows[0].Fields["owner"])

	err = store.DeleteRow(ctx, domain.TableAssets, 9)
	assert.ErrorIs(t, err, domain.ErrRowNotFound)
}

func TestStore_MissingSheet(t *testing.T) {
	store, fake := setupStore(t)
	delete(fake.ids, "Comments")

	_, err := store.ListRows(context.Background(), domain.TableComments)

	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestParseUpdatedRow(t *testing.T) {
	id, err := parseUpdatedRow("'DB'!A12:J12")
	require.NoError(t, err)
	assert.Equal(t, domain.RowID(12), id)

	_, err = parseUpdatedRow("garbage")
	assert.Error(t, err)
}

func TestA1(t *testing.T) {
	assert.Equal(t, "'DB'!1:1", a1(domain.TableAssets, "1:1"))
	assert.Equal(t, "'Comments'", a1(domain.TableComments, ""))
	assert.Equal(t, "'It''s'", a1(domain.Table("It's"), ""))
}
