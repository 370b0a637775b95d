package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/assetboard-backend/internal/app"
	"github.com/simaogato/assetboard-backend/internal/config"
	"github.com/simaogato/assetboard-backend/internal/domain"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	for _, name := range []string{"summary", "report", "snapshots", "delete"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.NotEmpty(t, cmd.Use)
			assert.NotEmpty(t, cmd.Short)
		})
	}
}

// setupStore points the CLI at a fresh sqlite file holding the given snapshots
func setupStore(t *testing.T, snapshots ...domain.AssetSnapshot) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("STORE_BACKEND", config.BackendSQLite)
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("CURRENCY", "USD")
	configPath = ""

	cfg := config.DefaultConfig()
	cfg.StoreBackend = config.BackendSQLite
	cfg.SQLitePath = path

	store, closeFn, err := app.OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	for _, s := range snapshots {
		_, err := store.AppendRow(context.Background(), domain.TableAssets, s.Fields())
		require.NoError(t, err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func snapshot(date string, owner domain.Owner, memo string) domain.AssetSnapshot {
	s := domain.AssetSnapshot{Date: date, Owner: owner, Memo: memo}
	s.RecomputeDerived()
	return s
}

func TestSnapshotsCommand(t *testing.T) {
	setupStore(t,
		snapshot("2024-02-01", domain.OwnerWife, "second"),
		snapshot("2024-01-01", domain.OwnerHusband, "first"),
	)

	out, err := execute(t, "snapshots", "--view", "All")

	require.NoError(t, err)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Less(t, bytes.Index([]byte(out), []byte("first")), bytes.Index([]byte(out), []byte("second")))
}

func TestSummaryCommand_Raw(t *testing.T) {
	setupStore(t, snapshot("2024-01-01", domain.OwnerJoint, ""))

	out, err := execute(t, "summary", "--raw", "--view", "Joint")

	require.NoError(t, err)
	assert.Contains(t, out, "# Asset Summary (Joint)")
}

func TestSummaryCommand_InvalidView(t *testing.T) {
	setupStore(t)

	_, err := execute(t, "summary", "--raw", "--view", "Kids")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportCommand(t *testing.T) {
	setupStore(t, snapshot("2024-01-01", domain.OwnerJoint, ""))
	output := filepath.Join(t.TempDir(), "report.html")

	out, err := execute(t, "report", "--view", "All", "-o", output)

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 periods")
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Net Worth")
}

func TestDeleteCommand(t *testing.T) {
	setupStore(t,
		snapshot("2024-01-01", domain.OwnerJoint, "keep"),
		snapshot("2024-02-01", domain.OwnerJoint, "drop"),
	)

	// sqlite ids follow insertion order
	out, err := execute(t, "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 of 1 rows")

	out, err = execute(t, "snapshots", "--view", "All")
	require.NoError(t, err)
	assert.Contains(t, out, "keep")
	assert.NotContains(t, out, "drop")
}

func TestDeleteCommand_InvalidRow(t *testing.T) {
	setupStore(t)

	_, err := execute(t, "delete", "zero")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
