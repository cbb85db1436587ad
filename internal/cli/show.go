package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/ticktock/internal/report"
	"github.com/roach88/ticktock/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// ShowOutput is the JSON payload for a single binding.
type ShowOutput struct {
	store.BindingInfo
	Table report.ColumnView `json:"table"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "List bound tables or print one",
		Long: `Read tables bound by "ticktock run --db".

Without a name, lists every binding. With a name, prints that table's
rows in the order they were recorded.

Example:
  ticktock show --db ./timings.db
  ticktock show --db ./timings.db io_cpu --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runShow(opts, name, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	return cmd
}

func runShow(opts *ShowOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	opts.resolveString(cmd, "db", &opts.Database)
	if opts.Database == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "--db is required", nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if name == "" {
		infos, err := st.List(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to list bindings", err)
		}
		if formatter.IsJSON() {
			return formatter.Success(infos)
		}
		return writeBindingList(formatter, infos)
	}

	binding, err := st.Lookup(ctx, name)
	if errors.Is(err, store.ErrBindingNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no table bound as %q", name), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to read binding", err)
	}

	if formatter.IsJSON() {
		return formatter.Success(ShowOutput{
			BindingInfo: binding.BindingInfo,
			Table:       report.Columns(binding.Table),
		})
	}

	fmt.Fprintf(formatter.Writer, "%s (pairing=%s, run %s)\n", binding.Name, binding.Pairing, binding.RunID)
	return report.WriteTable(formatter.Writer, binding.Table)
}

func writeBindingList(f *OutputFormatter, infos []store.BindingInfo) error {
	if len(infos) == 0 {
		fmt.Fprintln(f.Writer, "No bindings.")
		return nil
	}

	tw := tablewriter.NewWriter(f.Writer)
	tw.Header("Name", "Rows", "Pairing", "Run ID")
	for _, info := range infos {
		if err := tw.Append(info.Name, fmt.Sprint(info.Rows), info.Pairing, info.RunID); err != nil {
			return err
		}
	}
	return tw.Render()
}
