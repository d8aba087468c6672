package cli

import (
	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
)

// Exit codes for the dailyrelease CLI
// These codes let CI jobs tell a bad invocation from a failed release
const (
	// ExitSuccess indicates a release was published, previewed, or skipped
	// because nothing was merged
	ExitSuccess = 0

	// ExitFailure indicates the release failed while running
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates missing or invalid configuration
	ExitConfigError = 6
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	default:
		return ExitFailure
	}
}
