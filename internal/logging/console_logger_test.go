package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestConsoleLogger_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleLoggerWithWriters(true, &out, &errOut)

	l.Info("transformed %d file(s)", 3)
	l.Verbose("detail %s", "x")
	l.Error("boom")

	if got := out.String(); got != "transformed 3 file(s)\n" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(errOut.String(), "[VERBOSE] detail x") {
		t.Errorf("stderr missing verbose line: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] boom") {
		t.Errorf("stderr missing error line: %q", errOut.String())
	}
}

func TestConsoleLogger_VerboseDisabled(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleLoggerWithWriters(false, &out, &errOut)

	l.Verbose("should not appear")

	if errOut.Len() != 0 {
		t.Errorf("verbose output produced while disabled: %q", errOut.String())
	}
}

func TestConsoleLogger_ConcurrentUse(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleLoggerWithWriters(true, &out, &errOut)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Info("line")
		}()
	}
	wg.Wait()

	if got := len(strings.Split(strings.TrimRight(out.String(), "\n"), "\n")); got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}

func TestNullLogger(t *testing.T) {
	// Must simply not panic.
	l := NewNullLogger()
	l.Verbose("v")
	l.Info("i")
	l.Error("e")
}
