package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ticktock/internal/harness"
	"github.com/roach88/ticktock/internal/metrics"
	"github.com/roach88/ticktock/internal/report"
	"github.com/roach88/ticktock/internal/store"
	"github.com/roach88/ticktock/internal/ticktock"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Bind     string
	Metrics  bool
	Pairing  string
	Strict   bool

	// RunIDs overrides the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs store.RunIDGenerator
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Scenario string                 `json:"scenario"`
	Pairing  string                 `json:"pairing"`
	Pass     bool                   `json:"pass"`
	Table    *report.ColumnView     `json:"table,omitempty"`
	Error    *harness.ErrorSnapshot `json:"error,omitempty"`
	Errors   []string               `json:"errors,omitempty"`
	Binding  *store.BindingInfo     `json:"binding,omitempty"`
	Metrics  string                 `json:"metrics,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Replay a scenario and print its result table",
		Long: `Replay one scenario file against a fresh timer and print the result table.

With --db the finalized table is bound into a SQLite database under
--bind (default: the scenario name), replacing any table already bound
to that name. With --metrics the rows are also printed as Prometheus
text exposition.

Exit codes:
  0 - Finalize outcome matched the scenario's expect clause
  1 - Expectations not met
  2 - Command error (unreadable scenario, bad flags, store failure)

Example:
  ticktock run ./scenarios/interleaved.yaml
  ticktock run ./scenarios/recursion.cue --pairing nested
  ticktock run ./scenarios/interleaved.yaml --db ./timings.db --bind io_cpu`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioCommand(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "bind the result table into this SQLite database")
	cmd.Flags().StringVar(&opts.Bind, "bind", "", "binding name (default: scenario name)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics for the result")
	cmd.Flags().StringVar(&opts.Pairing, "pairing", "", "override pairing mode (fifo|nested)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail finalize on ticks that were never tocked")

	return cmd
}

func runScenarioCommand(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	opts.resolveString(cmd, "db", &opts.Database)
	opts.resolveString(cmd, "pairing", &opts.Pairing)
	strictSet := opts.resolveBool(cmd, "strict", &opts.Strict)

	scenario, err := loadScenario(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load scenario", err)
	}

	pairing, err := scenario.PairingMode()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "invalid scenario pairing", err)
	}
	runOpts := []harness.RunOption{harness.WithRunLogger(slog.Default())}
	if opts.Pairing != "" {
		pairing, err = ticktock.ParsePairing(opts.Pairing)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "invalid --pairing", err)
		}
		runOpts = append(runOpts, harness.WithPairingOverride(pairing))
	}
	if strictSet {
		runOpts = append(runOpts, harness.WithStrictOverride(opts.Strict))
	}

	slog.Debug("running scenario", "scenario", scenario.Name, "steps", len(scenario.Steps), "pairing", pairing.String())
	result, err := harness.Run(scenario, runOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "scenario execution failed", err)
	}

	out := RunOutput{
		Scenario: scenario.Name,
		Pairing:  pairing.String(),
		Pass:     result.Pass,
		Error:    result.Error,
		Errors:   result.Errors,
	}
	if result.Table != nil {
		view := report.Columns(result.Table)
		out.Table = &view
	}

	if opts.Database != "" && result.Table != nil {
		info, err := bindResult(cmd.Context(), opts, scenario.Name, pairing, result.Table)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to bind result", err)
		}
		out.Binding = info
	}

	if opts.Metrics {
		exporter := metrics.NewExporter("")
		if result.Table != nil {
			exporter.Observe(result.Table)
		} else {
			exporter.ObserveError(result.Err)
		}
		var buf bytes.Buffer
		if err := exporter.WriteText(&buf); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to export metrics", err)
		}
		out.Metrics = buf.String()
	}

	if formatter.IsJSON() {
		if !out.Pass {
			if err := formatter.Failure(out, ErrCodeExpectFailed, strings.Join(out.Errors, "; ")); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("scenario %s: expectations not met", scenario.Name))
		}
		return formatter.Success(out)
	}

	return outputRunText(formatter, result, out)
}

// bindResult stores table under the requested binding name.
func bindResult(ctx context.Context, opts *RunOptions, scenarioName string, pairing ticktock.Pairing, table *ticktock.ResultTable) (*store.BindingInfo, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name := opts.Bind
	if name == "" {
		name = scenarioName
	}
	gen := opts.RunIDs
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	runID := gen.Generate()
	if err := st.Bind(ctx, name, runID, pairing.String(), table); err != nil {
		return nil, err
	}
	slog.Debug("result bound", "db", opts.Database, "name", name, "run_id", runID, "rows", table.Len())

	return &store.BindingInfo{
		Name:    name,
		RunID:   runID,
		Pairing: pairing.String(),
		Rows:    table.Len(),
	}, nil
}

func outputRunText(f *OutputFormatter, result *harness.Result, out RunOutput) error {
	w := f.Writer
	fmt.Fprintf(w, "Scenario: %s (pairing=%s)\n", out.Scenario, out.Pairing)

	if result.Table != nil {
		if err := report.WriteTable(w, result.Table); err != nil {
			return WrapExitError(ExitCommandError, "failed to render table", err)
		}
	} else if out.Error != nil {
		fmt.Fprintf(w, "Finalize error [%s]: %s\n", out.Error.Code, out.Error.Message)
	}

	if out.Binding != nil {
		fmt.Fprintf(w, "Bound %d row(s) as %q (run %s)\n", out.Binding.Rows, out.Binding.Name, out.Binding.RunID)
	}
	if out.Metrics != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, out.Metrics)
	}

	if !out.Pass {
		fmt.Fprintln(w, "✗ Expectations not met")
		for _, e := range out.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s: expectations not met", out.Scenario))
	}

	fmt.Fprintln(w, "✓ Expectations met")
	return nil
}
