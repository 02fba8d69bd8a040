package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the source root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree, calling the provided function for
	// each file and directory. If the function returns an error, walking
	// stops.
	Walk(fn func(File, error) error) error
}

// Provider abstracts the filesystem for both sides of the pipeline: reading
// data files from the input directory and publishing transformed files to
// the output directory. The write operations exist so file tasks can stage
// output in a temp file and rename it into place; Rename must replace any
// existing destination.
type Provider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// WriteFile writes data to the given path, creating or truncating it
	WriteFile(path string, data []byte) error

	// Rename moves a file from oldPath to newPath, replacing any existing
	// file at newPath
	Rename(oldPath, newPath string) error

	// Remove deletes the file at the given path
	Remove(path string) error

	// MkdirAll creates the directory at path along with any missing parents
	MkdirAll(path string) error
}
