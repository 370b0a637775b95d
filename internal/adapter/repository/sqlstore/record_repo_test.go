package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

func setupRepo(t *testing.T) *RecordRepository {
	t.Helper()
	db, err := NewDB(DriverSQLite, filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))

	repo := NewRecordRepository(db)
	require.NoError(t, repo.EnsureTable(context.Background(), domain.TableAssets, domain.SnapshotHeaders))
	return repo
}

func TestRecordRepository_AppendListDelete(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	first, err := repo.AppendRow(ctx, domain.TableAssets, map[string]any{
		"date": "2024-01-01", "owner": "Wife", "net_cash": "100", "ignored": "x",
	})
	require.NoError(t, err)
	second, err := repo.AppendRow(ctx, domain.TableAssets, map[string]any{
		"date": "2024-02-01", "owner": "Wife", "net_cash": "200",
	})
	require.NoError(t, err)
	assert.Greater(t, int64(second), int64(first))

	set, err := repo.ListRows(ctx, domain.TableAssets)
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotHeaders, set.Headers)
	require.Len(t, set.Rows, 2)
	assert.Equal(t, first, set.Rows[0].ID)
	assert.Equal(t, "100", set.Rows[0].Fields["net_cash"])
	assert.NotContains(t, set.Rows[0].Fields, "ignored")

	require.NoError(t, repo.DeleteRow(ctx, domain.TableAssets, first))

	set, err = repo.ListRows(ctx, domain.TableAssets)
	require.NoError(t, err)
	require.Len(t, set.Rows, 1)
	assert.Equal(t, second, set.Rows[0].ID)
}

func TestRecordRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	err := repo.DeleteRow(ctx, domain.TableAssets, 42)
	assert.ErrorIs(t, err, domain.ErrRowNotFound)

	_, err = repo.ListRows(ctx, domain.TableComments)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)

	err = repo.DeleteRow(ctx, domain.TableComments, 1)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)

	_, err = repo.AppendRow(ctx, domain.TableComments, map[string]any{"Date": "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestRecordRepository_EnsureTableKeepsExistingHeaders(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	require.NoError(t, repo.EnsureTable(ctx, domain.TableComments, []string{"Date", "Owner", "Message"}))
	require.NoError(t, repo.EnsureTable(ctx, domain.TableComments, domain.CommentHeaders))

	headers, err := repo.Headers(ctx, domain.TableComments)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Owner", "Message"}, headers)
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB("mysql", "")
	assert.Error(t, err)
}

func TestNewDB_PingFailure(t *testing.T) {
	// The parent directory does not exist, so opening the first connection fails
	db, err := NewDB(DriverSQLite, filepath.Join(t.TempDir(), "missing", "records.db"))

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to ping database")
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres}
	lite := &DB{driver: DriverSQLite}
	q := `DELETE FROM record_rows WHERE table_name = $1 AND id = $2`

	assert.Equal(t, q, pg.rebind(q))
	assert.Equal(t, `DELETE FROM record_rows WHERE table_name = ? AND id = ?`, lite.rebind(q))
}
