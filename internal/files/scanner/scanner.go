package scanner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/confluentinc/data-tools/internal/files/filesystem"
)

// DataFile is one discovered input file.
type DataFile struct {
	// Path is the absolute path to the file.
	Path string

	// RelativePath is the path below the scanned directory, using forward
	// slashes. Output files mirror this path.
	RelativePath string

	// Size is the file size in bytes.
	Size int64
}

// Scanner discovers data files in an input directory tree.
// Safe for concurrent use as long as the provided filesystem is.
type Scanner struct {
	fsProvider filesystem.Provider
}

// NewScanner creates a scanner backed by the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.Provider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanDirectory recursively walks sourcePath and returns every regular file,
// ordered by relative path. When pathContains is non-empty, only files whose
// directory path contains it are returned; the file name itself is not
// matched, mirroring how upstream partitioned directories are selected
// (e.g. --path-contains 2019-07 for daily partition dirs).
//
// Dot-prefixed files are skipped: they are in-flight temp files from an
// interrupted run, never source data.
func (s *Scanner) ScanDirectory(sourcePath, pathContains string) ([]DataFile, error) {
	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []DataFile

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		if file.Info().IsDir() {
			return nil
		}

		if strings.HasPrefix(file.Info().Name(), ".") {
			return nil
		}

		relPath := filepath.ToSlash(file.RelativePath())
		if pathContains != "" {
			dirPath := path.Dir(filepath.ToSlash(file.Path()))
			if !strings.Contains(dirPath, pathContains) {
				return nil
			}
		}

		files = append(files, DataFile{
			Path:         file.Path(),
			RelativePath: relPath,
			Size:         file.Info().Size(),
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
