package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/confluentinc/data-tools/internal/cli"
	"github.com/confluentinc/data-tools/pkg/datatools"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(datatools.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(datatools.ExitCodeForError(err))
	}
}
