package datatools

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransformConfig contains all parameters needed for a transform run.
// It is built once by the CLI layer and passed into the pipeline; nothing
// reads configuration from ambient process state, so tests can run isolated
// pipelines against temporary directories.
type TransformConfig struct {
	// InputDir is the directory data files are read from.
	InputDir string

	// OutputDir is the directory transformed files are written to.
	// Created if it does not exist. Output paths mirror the relative
	// paths of input files.
	OutputDir string

	// Processes is the number of parallel workers transforming files.
	Processes int

	// PathContains, when non-empty, restricts the run to input files whose
	// directory path contains the given substring.
	PathContains string

	// Fields restricts which fields are kept in transformed records.
	// Entries are dot-joined paths ("metric.tenant"); a leading "-"
	// excludes the field instead.
	Fields []string

	// SkipExisting resolves a task as skipped when its output file already
	// exists, instead of overwriting it.
	SkipExisting bool

	// Manifest enables writing manifest.json to the output directory with
	// per-file record counts and checksums.
	Manifest bool

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the TransformConfig has all required fields and valid
// values. All violations are reported together.
func (c *TransformConfig) Validate() error {
	var errs []error

	if c.InputDir == "" {
		errs = append(errs, fmt.Errorf("InputDir is required: %w", ErrInvalidConfig))
	}

	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	if c.InputDir != "" && c.InputDir == c.OutputDir {
		errs = append(errs, fmt.Errorf("InputDir and OutputDir must differ: %w", ErrInvalidConfig))
	}

	if c.Processes < 1 {
		errs = append(errs, fmt.Errorf("Processes must be at least 1, got %d: %w", c.Processes, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// TaskStatus describes how a single file task resolved.
type TaskStatus string

const (
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
	TaskSkipped   TaskStatus = "skipped"
)

// TaskResult is the outcome of one file task. A task is owned by exactly one
// worker; its result is written once and never mutated afterwards.
type TaskResult struct {
	// RelativePath of the input file below the input directory.
	RelativePath string

	// OutputPath is the absolute path the transformed file was written to.
	OutputPath string

	// Status is the terminal state of the task.
	Status TaskStatus

	// Records is the number of records written for succeeded tasks.
	Records int

	// ChecksumRaw is the SHA-256 of the output file bytes as written.
	ChecksumRaw string

	// ChecksumContent is the SHA-256 of the decompressed output content.
	// Equal to ChecksumRaw for uncompressed files.
	ChecksumContent string

	// Err holds the failure cause for failed tasks, nil otherwise.
	Err error
}

// RunSummary is the aggregate result of a pipeline invocation across all
// file tasks. It is finalized once every task has resolved.
type RunSummary struct {
	// RunID uniquely identifies this pipeline invocation.
	RunID uuid.UUID

	// Results holds one entry per file task, ordered by relative path so
	// reports are stable regardless of worker interleaving.
	Results []TaskResult

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Total returns the number of file tasks in the run.
func (s *RunSummary) Total() int { return len(s.Results) }

// Succeeded returns the number of tasks that completed successfully.
func (s *RunSummary) Succeeded() int { return s.countStatus(TaskSucceeded) }

// Failed returns the number of tasks that failed.
func (s *RunSummary) Failed() int { return s.countStatus(TaskFailed) }

// Skipped returns the number of tasks skipped because their output already
// existed.
func (s *RunSummary) Skipped() int { return s.countStatus(TaskSkipped) }

// Failures returns the results of failed tasks only.
func (s *RunSummary) Failures() []TaskResult {
	var failures []TaskResult
	for _, r := range s.Results {
		if r.Status == TaskFailed {
			failures = append(failures, r)
		}
	}
	return failures
}

func (s *RunSummary) countStatus(status TaskStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}
