package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationError is one scenario file that failed to load.
type ValidationError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario>...",
		Short: "Check scenario files without running them",
		Long: `Parse and validate scenario files without replaying them.

YAML scenarios are decoded with unknown fields rejected. CUE scenarios are
unified with the built-in #Scenario schema. Both then get the same checks:
every step names exactly one of tick or tock, and step instants never
decrease.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Files: len(paths)}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		if _, err := loadScenario(path); err != nil {
			result.Errors = append(result.Errors, toValidationError(path, err))
		}
	}
	result.Valid = len(result.Errors) == 0

	if result.Valid {
		if formatter.IsJSON() {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ %d scenario(s) valid\n", result.Files)
		return nil
	}

	msg := fmt.Sprintf("validation failed with %d error(s)", len(result.Errors))
	if formatter.IsJSON() {
		if err := formatter.Failure(result, result.Errors[0].Code, result.Errors[0].Message); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", e.File, e.Line)
		} else {
			fmt.Fprintln(formatter.Writer, e.File)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Message)
	}
	return NewExitError(ExitFailure, msg)
}

func toValidationError(path string, err error) ValidationError {
	var le *LoadError
	if errors.As(err, &le) {
		return ValidationError{File: path, Code: le.Code, Message: le.Message, Line: le.Line}
	}
	return ValidationError{File: path, Code: ErrCodeGeneric, Message: err.Error()}
}
