package datatools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() TransformConfig {
	return TransformConfig{
		InputDir:  "data",
		OutputDir: "transformed-data",
		Processes: 5,
	}
}

func TestTransformConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing input dir", func(t *testing.T) {
		cfg := validConfig()
		cfg.InputDir = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("missing output dir", func(t *testing.T) {
		cfg := validConfig()
		cfg.OutputDir = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("same input and output", func(t *testing.T) {
		cfg := validConfig()
		cfg.OutputDir = cfg.InputDir
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero processes", func(t *testing.T) {
		cfg := validConfig()
		cfg.Processes = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("multiple violations reported together", func(t *testing.T) {
		cfg := TransformConfig{}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "InputDir")
		assert.Contains(t, err.Error(), "OutputDir")
		assert.Contains(t, err.Error(), "Processes")
	})
}

func TestRunSummary_Counts(t *testing.T) {
	summary := RunSummary{
		Results: []TaskResult{
			{RelativePath: "a.json", Status: TaskSucceeded},
			{RelativePath: "b.json", Status: TaskFailed, Err: errors.New("boom")},
			{RelativePath: "c.json", Status: TaskSucceeded},
			{RelativePath: "d.json", Status: TaskSkipped},
		},
	}

	assert.Equal(t, 4, summary.Total())
	assert.Equal(t, 2, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 1, summary.Skipped())

	failures := summary.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "b.json", failures[0].RelativePath)
}
