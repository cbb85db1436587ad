package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ticktock/internal/store"
	"github.com/roach88/ticktock/internal/ticktock"
)

func seedStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "timings.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Bind(ctx, "io_cpu", "run-1", "fifo", ticktock.NewResultTable([]ticktock.Record{
		{Ticker: "io", Timer: 20},
		{Ticker: "cpu", Timer: 35},
	})))
	require.NoError(t, st.Bind(ctx, "fib", "run-2", "nested", ticktock.NewResultTable([]ticktock.Record{
		{Ticker: "fib", Timer: 5},
	})))
	return dbPath
}

func TestShowCommand_List(t *testing.T) {
	dbPath := seedStore(t)

	out, err := executeRoot(t, "show", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "io_cpu")
	assert.Contains(t, out, "fib")
	assert.Contains(t, out, "run-2")
}

func TestShowCommand_ListJSON(t *testing.T) {
	dbPath := seedStore(t)

	out, err := executeRoot(t, "show", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []store.BindingInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "fib", resp.Data[0].Name)
	assert.Equal(t, "io_cpu", resp.Data[1].Name)
}

func TestShowCommand_One(t *testing.T) {
	dbPath := seedStore(t)

	out, err := executeRoot(t, "show", "--db", dbPath, "io_cpu")
	require.NoError(t, err)
	assert.Contains(t, out, "io_cpu (pairing=fifo, run run-1)")
	assert.Contains(t, out, "35ns")
}

func TestShowCommand_OneJSON(t *testing.T) {
	dbPath := seedStore(t)

	out, err := executeRoot(t, "show", "--db", dbPath, "io_cpu", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data ShowOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "io_cpu", resp.Data.Name)
	assert.Equal(t, 2, resp.Data.Rows)
	assert.Equal(t, []string{"io", "cpu"}, resp.Data.Table.Ticker)
	assert.Equal(t, []int64{20, 35}, resp.Data.Table.Timer)
}

func TestShowCommand_NotFound(t *testing.T) {
	dbPath := seedStore(t)

	out, err := executeRoot(t, "show", "--db", dbPath, "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestShowCommand_RequiresDB(t *testing.T) {
	_, err := executeRoot(t, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db is required")
}

func TestShowCommand_DBFromEnv(t *testing.T) {
	dbPath := seedStore(t)
	t.Setenv("TICKTOCK_DB", dbPath)

	out, err := executeRoot(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "io_cpu")
}

func TestShowCommand_EmptyStore(t *testing.T) {
	out, err := executeRoot(t, "show", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No bindings.")
}
