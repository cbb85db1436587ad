package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const ioCPUScenario = `name: io_cpu
description: "overlapping tickers"
steps:
  - {tick: io, at: 0}
  - {tick: cpu, at: 5}
  - {tock: io, at: 20}
  - {tick: io, at: 25}
  - {tock: cpu, at: 40}
  - {tock: io, at: 55}
expect:
  rows:
    - {ticker: io, timer: 20}
    - {ticker: cpu, timer: 35}
    - {ticker: io, timer: 30}
`

const ioCPUGolden = `{"pairing":"fifo","rows":[{"ticker":"io","timer":20},{"ticker":"cpu","timer":35},{"ticker":"io","timer":30}],"scenario_name":"io_cpu"}`

const unmatchedScenario = `name: unmatched
steps:
  - {tock: ghost, at: 3}
expect:
  error: {code: UNMATCHED_TOCK, ticker: ghost, ordinal: 1}
`

const wrongRowsScenario = `name: wrong_rows
steps:
  - {tick: a, at: 0}
  - {tock: a, at: 10}
expect:
  rows:
    - {ticker: a, timer: 99}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// executeRoot runs the full command tree so the config hook fires.
// HOME points at an empty directory so a developer's own config never
// leaks into a test.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func executeSub(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
