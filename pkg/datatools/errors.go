package datatools

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := pipe.Run(cfg, policy)
//	if errors.Is(err, datatools.ErrInputDirectory) {
//	    // Input directory missing or unreadable
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputDirectory indicates the input directory is missing or unreadable.
	// This is fatal and reported before any file task starts.
	ErrInputDirectory = errors.New("input directory unavailable")

	// ErrOutputDirectory indicates the output directory could not be created.
	ErrOutputDirectory = errors.New("output directory unavailable")

	// ErrMalformedRecord indicates a line in a data file could not be parsed
	// into a key-value record. The containing file task fails as a whole and
	// no partial output is written.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrTasksFailed indicates one or more file tasks failed during a run.
	// The failures themselves are reported through the RunSummary; this
	// sentinel only drives the process exit code.
	ErrTasksFailed = errors.New("one or more files failed to transform")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputDirectory):
		return ExitInputDirError
	case errors.Is(err, ErrOutputDirectory):
		return ExitOutputDirError
	case errors.Is(err, ErrTasksFailed):
		return ExitGeneralError
	}

	return ExitGeneralError
}
