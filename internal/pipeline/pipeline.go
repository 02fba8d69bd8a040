package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/confluentinc/data-tools/internal/checksum"
	"github.com/confluentinc/data-tools/internal/files/filesystem"
	"github.com/confluentinc/data-tools/internal/files/scanner"
	"github.com/confluentinc/data-tools/internal/sanitize"
	"github.com/confluentinc/data-tools/internal/transform"
	"github.com/confluentinc/data-tools/pkg/datatools"
)

// Pipeline drives a single transform run: directory preparation, discovery,
// fan-out across the worker pool, and summary aggregation.
type Pipeline struct {
	fsProvider filesystem.Provider
	scanner    *scanner.Scanner
	calculator checksum.Calculator
	logger     datatools.Logger
	policy     *sanitize.Policy
	recordFn   transform.RecordFunc
}

// New creates a pipeline with all dependencies injected.
// Panics if any dependency is nil.
func New(fsProvider filesystem.Provider, logger datatools.Logger, policy *sanitize.Policy, recordFn transform.RecordFunc) *Pipeline {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if recordFn == nil {
		panic("recordFn cannot be nil")
	}
	return &Pipeline{
		fsProvider: fsProvider,
		scanner:    scanner.NewScannerWithFS(fsProvider),
		calculator: checksum.New(),
		logger:     logger,
		policy:     policy,
		recordFn:   recordFn,
	}
}

// transformFile runs the record transform over one whole file.
func (p *Pipeline) transformFile(inputPath, outputPath string) (int, error) {
	return transform.File(p.fsProvider, inputPath, outputPath, p.policy, p.recordFn)
}

// Run executes the pipeline described by cfg and returns the run summary.
//
// The returned error covers fatal pre-flight conditions only (invalid
// config, unusable input or output directory). Per-file failures are
// recorded in the summary and reported by the caller; a run with failures
// still returns a complete summary and a nil error.
func (p *Pipeline) Run(cfg datatools.TransformConfig) (datatools.RunSummary, error) {
	summary := datatools.RunSummary{RunID: uuid.New()}

	if err := cfg.Validate(); err != nil {
		return summary, err
	}

	if _, err := p.fsProvider.Open(cfg.InputDir); err != nil {
		return summary, fmt.Errorf("%w: %v", datatools.ErrInputDirectory, err)
	}

	if err := p.fsProvider.MkdirAll(cfg.OutputDir); err != nil {
		return summary, fmt.Errorf("%w: %v", datatools.ErrOutputDirectory, err)
	}

	start := time.Now()

	dataFiles, err := p.scanner.ScanDirectory(cfg.InputDir, cfg.PathContains)
	if err != nil {
		return summary, fmt.Errorf("%w: %v", datatools.ErrInputDirectory, err)
	}

	if len(dataFiles) == 0 {
		if cfg.PathContains != "" {
			p.logger.Info("No data files found in %q dir matching %q", cfg.InputDir, cfg.PathContains)
		} else {
			p.logger.Info("No data files found in %q dir", cfg.InputDir)
		}
		summary.Duration = time.Since(start)
		return summary, nil
	}

	tasks := make([]FileTask, 0, len(dataFiles))
	for _, df := range dataFiles {
		tasks = append(tasks, FileTask{
			InputPath:    df.Path,
			RelativePath: df.RelativePath,
			OutputPath:   filepath.Join(cfg.OutputDir, filepath.FromSlash(df.RelativePath)),
		})
	}

	p.logger.Verbose("Dispatching %d task(s) across %d worker(s)", len(tasks), cfg.Processes)
	summary.Results = p.dispatch(cfg.Processes, tasks, &cfg)
	summary.Duration = time.Since(start)

	if cfg.Manifest {
		if err := p.writeManifest(cfg.OutputDir, &summary); err != nil {
			// The transformed data is already published; a manifest
			// failure is reported but does not fail the run.
			p.logger.Error("Failed to write manifest: %v", err)
		}
	}

	return summary, nil
}
