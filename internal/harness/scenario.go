package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ticktock/internal/ticktock"
)

// Scenario is a scripted sequence of ticks and tocks with an expected
// finalize outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Pairing is "fifo" (default) or "nested".
	Pairing string `yaml:"pairing,omitempty" json:"pairing,omitempty"`

	// Strict turns unclosed ticks into a finalize error.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`

	// Steps are applied in order, each at its own clock reading.
	Steps []Step `yaml:"steps" json:"steps"`

	// Expect is the finalize outcome.
	Expect Expect `yaml:"expect" json:"expect"`
}

// Step is one Tick or Tock call. Exactly one of Tick and Tock is set.
type Step struct {
	Tick string `yaml:"tick,omitempty" json:"tick,omitempty"`
	Tock string `yaml:"tock,omitempty" json:"tock,omitempty"`

	// At is the clock reading in nanoseconds when the call is made.
	At int64 `yaml:"at" json:"at"`
}

// Name returns the ticker the step refers to.
func (s Step) Name() string {
	if s.Tick != "" {
		return s.Tick
	}
	return s.Tock
}

// Kind reports whether the step is a tick or a tock.
func (s Step) Kind() ticktock.EventKind {
	if s.Tick != "" {
		return ticktock.KindTick
	}
	return ticktock.KindTock
}

// Expect specifies the finalize outcome. With Error nil, finalize must
// succeed and produce exactly Rows.
type Expect struct {
	Rows  []ticktock.Record `yaml:"rows,omitempty" json:"rows,omitempty"`
	Error *ExpectError      `yaml:"error,omitempty" json:"error,omitempty"`
}

// ExpectError matches a finalize error. Ticker and Ordinal are only
// compared when set.
type ExpectError struct {
	Code    string `yaml:"code" json:"code"`
	Ticker  string `yaml:"ticker,omitempty" json:"ticker,omitempty"`
	Ordinal int    `yaml:"ordinal,omitempty" json:"ordinal,omitempty"`
}

// PairingMode parses the scenario's pairing field.
func (s *Scenario) PairingMode() (ticktock.Pairing, error) {
	return ticktock.ParsePairing(s.Pairing)
}

// LoadScenario reads and parses a scenario file. The format follows the
// extension: .yaml and .yml are YAML, .cue is CUE checked against the
// embedded schema. Unknown fields are rejected in both.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		scenario, err = parseYAML(data)
	case ".cue":
		scenario, err = parseCUE(path, data)
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// IsScenarioFile reports whether path has a scenario extension.
func IsScenarioFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

func parseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if _, err := s.PairingMode(); err != nil {
		return err
	}

	var last int64
	for i, step := range s.Steps {
		switch {
		case step.Tick == "" && step.Tock == "":
			return fmt.Errorf("steps[%d]: one of tick or tock is required", i)
		case step.Tick != "" && step.Tock != "":
			return fmt.Errorf("steps[%d]: tick and tock are mutually exclusive", i)
		}
		if step.At < 0 {
			return fmt.Errorf("steps[%d]: at must be non-negative, got %d", i, step.At)
		}
		if step.At < last {
			return fmt.Errorf("steps[%d]: at %d is before previous step at %d", i, step.At, last)
		}
		last = step.At
	}

	if e := s.Expect.Error; e != nil {
		if len(s.Expect.Rows) > 0 {
			return fmt.Errorf("expect: rows and error are mutually exclusive")
		}
		switch ticktock.ErrorCode(e.Code) {
		case ticktock.ErrCodeUnmatchedTock, ticktock.ErrCodeUnclosedTick:
		default:
			return fmt.Errorf("expect.error: unknown code %q", e.Code)
		}
		if e.Ordinal < 0 {
			return fmt.Errorf("expect.error: ordinal must be positive, got %d", e.Ordinal)
		}
	}

	for i, row := range s.Expect.Rows {
		if row.Ticker == "" {
			return fmt.Errorf("expect.rows[%d]: ticker is required", i)
		}
		if row.Timer < 0 {
			return fmt.Errorf("expect.rows[%d]: timer must be non-negative", i)
		}
	}

	return nil
}
