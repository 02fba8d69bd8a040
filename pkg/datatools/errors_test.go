package datatools

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, ExitSuccess},
		{"invalid config", ErrInvalidConfig, ExitConfigError},
		{"input directory", ErrInputDirectory, ExitInputDirError},
		{"output directory", ErrOutputDirectory, ExitOutputDirError},
		{"tasks failed", ErrTasksFailed, ExitGeneralError},
		{"unknown error", errors.New("mystery"), ExitGeneralError},
		{"wrapped sentinel", fmt.Errorf("context: %w", ErrInputDirectory), ExitInputDirError},
		{"deeply wrapped", fmt.Errorf("a: %w", fmt.Errorf("b: %w", ErrInvalidConfig)), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
