package transform

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/confluentinc/data-tools/internal/files/filesystem"
	"github.com/confluentinc/data-tools/internal/record"
	"github.com/confluentinc/data-tools/internal/sanitize"
	"github.com/confluentinc/data-tools/pkg/datatools"
)

// RecordFunc shapes one parsed record. Implementations must not retain rec.
type RecordFunc func(rec *record.Record, policy *sanitize.Policy) (*record.Record, error)

// maxLineBytes bounds a single JSONL record. Usage-metrics records are a few
// KB; 16MB leaves room for pathological nested payloads.
const maxLineBytes = 16 * 1024 * 1024

// File reads the JSONL file at inputPath, applies fn to every record, and
// publishes the result at outputPath in the same serialization format
// (a .gz input produces a .gz output). Parent directories are created as
// needed.
//
// The output is staged in a dot-prefixed temp file next to the destination
// and renamed into place only after every record transformed, so a failure
// on any record publishes nothing. Returns the number of records written.
func File(fsProvider filesystem.Provider, inputPath, outputPath string, policy *sanitize.Policy, fn RecordFunc) (int, error) {
	raw, err := fsProvider.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	compressed := strings.HasSuffix(inputPath, ".gz")
	content := raw
	if compressed {
		content, err = gunzip(raw)
		if err != nil {
			return 0, fmt.Errorf("failed to decompress %s: %w", inputPath, err)
		}
	}

	transformed, records, err := transformLines(content, policy, fn)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", inputPath, err)
	}

	output := transformed
	if compressed {
		output, err = gzipBytes(transformed)
		if err != nil {
			return 0, fmt.Errorf("failed to compress output for %s: %w", inputPath, err)
		}
	}

	if err := publish(fsProvider, outputPath, output); err != nil {
		return 0, err
	}

	return records, nil
}

// transformLines applies fn to each non-empty line of content and
// re-serializes the results, one record per line.
func transformLines(content []byte, policy *sanitize.Policy, fn RecordFunc) ([]byte, int, error) {
	var out bytes.Buffer
	records := 0

	scan := bufio.NewScanner(bytes.NewReader(content))
	scan.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for scan.Scan() {
		line++
		text := bytes.TrimSpace(scan.Bytes())
		if len(text) == 0 {
			continue
		}

		rec, err := record.Parse(text)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		clean, err := fn(rec, policy)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		encoded, err := clean.MarshalJSON()
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		out.Write(encoded)
		out.WriteByte('\n')
		records++
	}

	if err := scan.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", datatools.ErrMalformedRecord, err)
	}

	return out.Bytes(), records, nil
}

// publish writes data to a temp file in the destination directory and
// renames it over outputPath. The temp file is removed on failure.
func publish(fsProvider filesystem.Provider, outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := fsProvider.MkdirAll(dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempPath := filepath.Join(dir, datatools.TempFilePrefix+filepath.Base(outputPath))
	if err := fsProvider.WriteFile(tempPath, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tempPath, err)
	}

	if err := fsProvider.Rename(tempPath, outputPath); err != nil {
		_ = fsProvider.Remove(tempPath)
		return fmt.Errorf("failed to publish %s: %w", outputPath, err)
	}

	return nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
