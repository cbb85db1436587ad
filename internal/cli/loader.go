package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/ticktock/internal/harness"
)

// LoadError is a scenario file or directory that could not be used.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Line    int
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.Path, e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

// loadErrorCode returns the code of a *LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// loadScenario wraps harness.LoadScenario errors as *LoadError.
func loadScenario(path string) (*harness.Scenario, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "scenario file not found"}
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		le := &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: err.Error()}
		var se *harness.SchemaError
		if errors.As(err, &se) && se.Pos.IsValid() {
			le.Line = se.Pos.Line()
		}
		return nil, le
	}
	return scenario, nil
}

// findScenarioFiles returns the scenario files under dir, sorted, whose
// base name without extension matches filter. Files under a golden/
// directory are skipped.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: dir, Message: "scenarios directory not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Path: dir, Message: err.Error()}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: dir, Message: "not a directory"}
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !harness.IsScenarioFile(path) {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(d.Name(), filepath.Ext(path))
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Path: dir, Message: err.Error()}
	}

	sort.Strings(files)
	return files, nil
}

// goldenFilePath returns <dir>/golden/<name>.golden for a scenario file.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}
