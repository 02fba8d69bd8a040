package pipeline

import (
	"errors"
	"io/fs"

	"github.com/confluentinc/data-tools/pkg/datatools"
)

// FileTask binds one input file to its mirrored output path. A task is
// created by the driver, handed to exactly one worker, and never reused.
type FileTask struct {
	// InputPath is the absolute path of the source data file.
	InputPath string

	// RelativePath is the input path below the input directory.
	RelativePath string

	// OutputPath is the destination path below the output directory.
	OutputPath string
}

// run executes one task to completion. All failures are converted into a
// failed TaskResult here; nothing escapes to the dispatcher, so one bad
// file cannot abort the run.
func (p *Pipeline) run(task FileTask, cfg *datatools.TransformConfig) datatools.TaskResult {
	result := datatools.TaskResult{
		RelativePath: task.RelativePath,
		OutputPath:   task.OutputPath,
	}

	if cfg.SkipExisting {
		if _, err := p.fsProvider.Stat(task.OutputPath); err == nil {
			p.logger.Verbose("Skipping transform as output file already exists: %s", task.OutputPath)
			result.Status = datatools.TaskSkipped
			return result
		} else if !errors.Is(err, fs.ErrNotExist) {
			result.Status = datatools.TaskFailed
			result.Err = err
			return result
		}
	}

	p.logger.Verbose("Transforming %s", task.InputPath)

	records, err := p.transformFile(task.InputPath, task.OutputPath)
	if err != nil {
		result.Status = datatools.TaskFailed
		result.Err = err
		return result
	}

	result.Status = datatools.TaskSucceeded
	result.Records = records

	// Checksums are informational; a read-back failure downgrades the
	// manifest entry, not the task.
	if output, err := p.fsProvider.ReadFile(task.OutputPath); err == nil {
		result.ChecksumRaw = p.calculator.CalculateRaw(output)
		result.ChecksumContent = p.calculator.CalculateContent(output)
	}

	return result
}
