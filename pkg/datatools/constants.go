package datatools

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // All file tasks completed successfully
	ExitGeneralError   = 1  // Unknown error, or one or more file tasks failed
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or parameters
	ExitInputDirError  = 20 // Input directory missing or unreadable
	ExitOutputDirError = 21 // Output directory could not be created
)

const (
	// DefaultInputDir is the directory data files are read from when
	// --input-dir is not given.
	DefaultInputDir = "data"

	// DefaultOutputDir is the directory transformed files are written to
	// when --output-dir is not given.
	DefaultOutputDir = "transformed-data"

	// DefaultProcesses is the default number of parallel workers.
	DefaultProcesses = 5

	// ManifestFileName is the name of the optional per-run manifest written
	// to the output directory for downstream load verification.
	ManifestFileName = "manifest.json"

	// TempFilePrefix is prepended to output file names while a transform is
	// in flight. Completed files are renamed into place so readers of the
	// output directory never observe a partially written file.
	TempFilePrefix = "."
)
