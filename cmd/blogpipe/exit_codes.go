package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"blogpipe/internal/apperr"
	"blogpipe/internal/models"
)

// Exit codes for the blogpipe CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Post published
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or configuration
	ExitIO      = 3 // Local file or extraction errors
	ExitFetch   = 4 // Source page could not be downloaded
	ExitPublish = 5 // Ghost rejected or could not be reached
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrAllowRepublishRequired) ||
		errors.Is(err, ErrSourceRequired) ||
		errors.Is(err, ErrSourceConflict) ||
		errors.Is(err, models.ErrInvalidStatus) ||
		errors.Is(err, apperr.ErrConfig) {
		return ExitUsage
	}

	// Fetch errors (exit 4)
	if errors.Is(err, apperr.ErrFetch) {
		return ExitFetch
	}

	// Publish errors (exit 5)
	if errors.Is(err, apperr.ErrPublish) {
		return ExitPublish
	}

	// I/O and extraction errors (exit 3)
	if errors.Is(err, apperr.ErrIO) ||
		errors.Is(err, apperr.ErrExtract) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
