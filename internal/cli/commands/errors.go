package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UsageError reports invalid command-line usage: a missing argument,
// an unknown flag, or a flag value outside its domain. The top level
// maps it to exit code 1 and shows the usage text; every other error
// is a runtime failure and maps to exit code 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// WrapUsage marks err as a usage error, or returns nil when err is nil.
func WrapUsage(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// ExactArgs is cobra.ExactArgs with the failure classified as usage.
func ExactArgs(n int) cobra.PositionalArgs {
	inner := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		return WrapUsage(inner(cmd, args))
	}
}
