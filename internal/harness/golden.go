package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ticktock/internal/canonical"
	"github.com/roach88/ticktock/internal/report"
)

// Snapshot serializes a scenario outcome as canonical JSON:
//
//	{"pairing":"fifo","rows":[{"ticker":"io","timer":20}],"scenario_name":"x"}
//
// A failed finalize replaces rows with {"error":{"code":...}}. Error
// messages are left out so snapshots survive wording changes.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	pairing, err := scenario.PairingMode()
	if err != nil {
		return nil, err
	}

	snap := map[string]any{
		"scenario_name": scenario.Name,
		"pairing":       pairing.String(),
	}
	if scenario.Strict {
		snap["strict"] = true
	}

	if result.Error != nil {
		errMap := map[string]any{"code": result.Error.Code}
		if result.Error.Ticker != "" {
			errMap["ticker"] = result.Error.Ticker
		}
		if result.Error.Ordinal != 0 {
			errMap["ordinal"] = result.Error.Ordinal
		}
		snap["error"] = errMap
	} else {
		snap["rows"] = report.Rows(result.Table)
	}

	return canonical.Marshal(snap)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
