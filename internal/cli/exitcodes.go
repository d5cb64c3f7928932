package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdrefcheck/internal/configloader"
	"github.com/yaklabco/mdrefcheck/pkg/lint"
	"github.com/yaklabco/mdrefcheck/pkg/runner"
)

// Exit codes for mdrefcheck, following sysexits where one applies.
const (
	// ExitSuccess indicates successful execution with no failing issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates error-severity issues were reported.
	ExitIssuesFound = 1

	// ExitWarningsFound indicates warnings were reported in strict mode.
	ExitWarningsFound = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates an invalid configuration.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrIssuesFound signals a non-zero exit after issues were reported.
// It is not logged.
var ErrIssuesFound = errors.New("issues found")

// ExitError pairs an error with the process exit code it maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result.HasErrors():
		return ExitIssuesFound
	case strict && result.HasWarnings():
		return ExitWarningsFound
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) || errors.Is(err, lint.ErrInvalidConfig) {
		return ExitConfigError
	}

	return ExitInternalError
}

// ShouldLog reports whether err deserves an error log line, as opposed
// to being a plain exit status signal.
func ShouldLog(err error) bool {
	return err != nil && !errors.Is(err, ErrIssuesFound)
}
