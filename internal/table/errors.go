package table

import (
	"fmt"
	"strings"
)

// ConfigurationError reports that the input table lacks a required column.
// It is raised before any row is processed.
type ConfigurationError struct {
	Path    string
	Missing []string
}

func (e *ConfigurationError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, col := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	return fmt.Sprintf("table: %s is missing required column(s) %s", e.Path, strings.Join(quoted, ", "))
}

// PersistenceError reports a failure writing the output table.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return "table: write " + e.Path + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
