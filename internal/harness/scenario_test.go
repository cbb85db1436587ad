package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ticktock/internal/ticktock"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_YAML(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/interleaved_io_cpu.yaml")
	require.NoError(t, err)

	assert.Equal(t, "interleaved_io_cpu", scenario.Name)
	assert.NotEmpty(t, scenario.Description)
	require.Len(t, scenario.Steps, 6)
	assert.Equal(t, Step{Tick: "io", At: 0}, scenario.Steps[0])
	assert.Equal(t, Step{Tock: "io", At: 55}, scenario.Steps[5])
	assert.Equal(t, []ticktock.Record{
		{Ticker: "io", Timer: 20},
		{Ticker: "cpu", Timer: 35},
		{Ticker: "io", Timer: 30},
	}, scenario.Expect.Rows)
	assert.Nil(t, scenario.Expect.Error)

	pairing, err := scenario.PairingMode()
	require.NoError(t, err)
	assert.Equal(t, ticktock.PairingFIFO, pairing)
}

func TestLoadScenario_YAMLExpectError(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/dangling_tock.yaml")
	require.NoError(t, err)

	require.NotNil(t, scenario.Expect.Error)
	assert.Equal(t, ExpectError{Code: "UNMATCHED_TOCK", Ticker: "Y", Ordinal: 1}, *scenario.Expect.Error)
}

func TestLoadScenario_CUE(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/nested_recursion.cue")
	require.NoError(t, err)

	assert.Equal(t, "nested_recursion", scenario.Name)
	assert.Equal(t, "nested", scenario.Pairing)
	require.Len(t, scenario.Steps, 4)
	assert.Equal(t, Step{Tock: "fib", At: 15}, scenario.Steps[2])
	assert.Equal(t, []ticktock.Record{
		{Ticker: "fib", Timer: 5},
		{Ticker: "fib", Timer: 40},
	}, scenario.Expect.Rows)
}

func TestLoadScenario_CUERejectsUnknownField(t *testing.T) {
	path := writeScenario(t, "bad.cue", `
name: "bad"
stepz: []
steps: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)

	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}

func TestLoadScenario_CUESchemaViolation(t *testing.T) {
	path := writeScenario(t, "negative.cue", `
name: "negative"
steps: [{tick: "a", at: -1}]
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative.cue")
}

func TestLoadScenario_CUESyntaxError(t *testing.T) {
	path := writeScenario(t, "syntax.cue", `name: "x" steps: [`)
	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_YAMLRejectsUnknownField(t *testing.T) {
	path := writeScenario(t, "typo.yaml", `
name: typo
step:
  - {tick: a, at: 0}
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnsupportedExtension(t *testing.T) {
	path := writeScenario(t, "scenario.json", `{}`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scenario extension")
}

func TestValidateScenario(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  string
	}{
		{
			name:     "missing name",
			scenario: Scenario{},
			wantErr:  "name is required",
		},
		{
			name:     "bad pairing",
			scenario: Scenario{Name: "x", Pairing: "random"},
			wantErr:  "random",
		},
		{
			name:     "empty step",
			scenario: Scenario{Name: "x", Steps: []Step{{At: 1}}},
			wantErr:  "one of tick or tock is required",
		},
		{
			name:     "both tick and tock",
			scenario: Scenario{Name: "x", Steps: []Step{{Tick: "a", Tock: "a"}}},
			wantErr:  "mutually exclusive",
		},
		{
			name: "clock goes backwards",
			scenario: Scenario{Name: "x", Steps: []Step{
				{Tick: "a", At: 10},
				{Tock: "a", At: 5},
			}},
			wantErr: "before previous step",
		},
		{
			name:     "negative at",
			scenario: Scenario{Name: "x", Steps: []Step{{Tick: "a", At: -1}}},
			wantErr:  "non-negative",
		},
		{
			name: "rows and error",
			scenario: Scenario{Name: "x", Expect: Expect{
				Rows:  []ticktock.Record{{Ticker: "a", Timer: 1}},
				Error: &ExpectError{Code: "UNMATCHED_TOCK"},
			}},
			wantErr: "mutually exclusive",
		},
		{
			name: "unknown error code",
			scenario: Scenario{Name: "x", Expect: Expect{
				Error: &ExpectError{Code: "BOOM"},
			}},
			wantErr: "unknown code",
		},
		{
			name: "row without ticker",
			scenario: Scenario{Name: "x", Expect: Expect{
				Rows: []ticktock.Record{{Timer: 1}},
			}},
			wantErr: "ticker is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScenario(&tt.scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateScenario_EqualInstantsAllowed(t *testing.T) {
	s := &Scenario{Name: "x", Steps: []Step{
		{Tick: "a", At: 3},
		{Tock: "a", At: 3},
	}}
	assert.NoError(t, validateScenario(s))
}

func TestStep_NameAndKind(t *testing.T) {
	tick := Step{Tick: "io"}
	tock := Step{Tock: "cpu"}

	assert.Equal(t, "io", tick.Name())
	assert.Equal(t, ticktock.KindTick, tick.Kind())
	assert.Equal(t, "cpu", tock.Name())
	assert.Equal(t, ticktock.KindTock, tock.Kind())
}

func TestIsScenarioFile(t *testing.T) {
	assert.True(t, IsScenarioFile("a.yaml"))
	assert.True(t, IsScenarioFile("a.yml"))
	assert.True(t, IsScenarioFile("a.cue"))
	assert.False(t, IsScenarioFile("a.golden"))
}
