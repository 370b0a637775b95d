package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

func seed(t *testing.T, s *Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := s.AppendRow(context.Background(), domain.TableAssets, map[string]any{
			"date": "2024-01-01", "memo": string(rune('a' + i)),
		})
		require.NoError(t, err)
	}
}

func memos(t *testing.T, s *Store) []string {
	t.Helper()
	set, err := s.ListRows(context.Background(), domain.TableAssets)
	require.NoError(t, err)
	out := make([]string, 0, len(set.Rows))
	for _, r := range set.Rows {
		out = append(out, r.Fields["memo"].(string))
	}
	return out
}

func TestStore_AppendAssignsSpreadsheetRowNumbers(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.AppendRow(ctx, domain.TableAssets, map[string]any{"date": "2024-01-01", "unknown": "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.RowID(2), id)

	set, err := s.ListRows(ctx, domain.TableAssets)
	require.NoError(t, err)
	require.Len(t, set.Rows, 1)
	assert.Equal(t, domain.RowID(2), set.Rows[0].ID)
	assert.NotContains(t, set.Rows[0].Fields, "unknown")
}

func TestStore_DescendingDeletesHitTheIntendedRows(t *testing.T) {
	s := NewStore()
	seed(t, s, 8) // rows 2..9 hold a..h

	for _, id := range domain.DeletionOrder([]domain.RowID{5, 2, 9}) {
		require.NoError(t, s.DeleteRow(context.Background(), domain.TableAssets, id))
	}

	assert.Equal(t, []string{"b", "c", "e", "f", "g"}, memos(t, s))
}

func TestStore_AscendingDeletesShiftRows(t *testing.T) {
	s := NewStore()
	seed(t, s, 8)

	for _, id := range []domain.RowID{2, 5, 9} {
		_ = s.DeleteRow(context.Background(), domain.TableAssets, id)
	}

	assert.NotEqual(t, []string{"b", "c", "e", "f", "g"}, memos(t, s))
}

func TestStore_Errors(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.DeleteRow(ctx, domain.TableAssets, 2)
	assert.ErrorIs(t, err, domain.ErrRowNotFound)

	s.DropTable(domain.TableComments)
	_, err = s.ListRows(ctx, domain.TableComments)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
	_, err = s.Headers(ctx, domain.TableComments)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}
