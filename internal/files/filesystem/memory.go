package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    fs.FileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		// Recover from panics in callback to prevent crashing the walk
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			// Recompute relative paths against the walked directory so
			// walking a subdirectory of the root behaves like the OS
			// implementation.
			rel := entry.relPathFrom(d.absPath)
			file := &memoryFile{
				absPath: entry.absPath,
				relPath: rel,
				content: entry.content,
				info:    entry.info,
			}
			callbackErr = fn(file, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func (f *memoryFile) relPathFrom(base string) string {
	if f.absPath == base {
		return "."
	}
	return strings.TrimPrefix(f.absPath, strings.TrimSuffix(base, "/")+"/")
}

// MemoryFileSystem implements Provider for in-memory testing.
// Safe for concurrent use; pipeline tests run parallel workers against it.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // map of absolute path -> file
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
// Paths are normalized to forward slashes (virtual filesystem convention).
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newDirEntry(root, ".")

	return mfs
}

func newDirEntry(absPath, relPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		relPath: relPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.addFile(filePath, content)
}

func (mfs *MemoryFileSystem) addFile(filePath string, content []byte) {
	absPath := mfs.abs(filePath)

	relPath, err := filepath.Rel(mfs.root, absPath)
	if err != nil {
		relPath = filePath
	}
	relPath = filepath.ToSlash(relPath)

	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: relPath,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
			isDir:   false,
		},
	}

	mfs.ensureDirectoriesExist(absPath)
}

func (mfs *MemoryFileSystem) abs(filePath string) string {
	filePath = filepath.ToSlash(filePath)
	if !strings.HasPrefix(filePath, "/") {
		filePath = path.Join(mfs.root, filePath)
	}
	return path.Clean(filePath)
}

// ensureDirectoriesExist creates directory entries for all parents
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}

	if _, exists := mfs.files[dir]; exists {
		return
	}

	mfs.files[dir] = newDirEntry(dir, strings.TrimPrefix(dir, mfs.root+"/"))
	mfs.ensureDirectoriesExist(dir)
}

// entriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	basePath = filepath.ToSlash(basePath)
	var entries []*memoryFile

	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}

		if matched {
			entries = append(entries, file)
		}
	}

	return entries
}

func (mfs *MemoryFileSystem) Open(dirPath string) (Directory, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(dirPath)
	entry, ok := mfs.files[absPath]
	if !ok {
		return nil, fmt.Errorf("failed to access path: %w", fs.ErrNotExist)
	}
	if !entry.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.files[mfs.abs(filePath)]
	if !ok || entry.info.IsDir() {
		return nil, fmt.Errorf("read %s: %w", filePath, fs.ErrNotExist)
	}
	return entry.content, nil
}

func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.files[mfs.abs(filePath)]
	if !ok {
		return nil, fmt.Errorf("stat %s: %w", filePath, fs.ErrNotExist)
	}
	return entry.info, nil
}

func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	// Parent directory must exist, mirroring OS semantics.
	dir := path.Dir(mfs.abs(filePath))
	if entry, ok := mfs.files[dir]; !ok || !entry.info.IsDir() {
		return fmt.Errorf("write %s: %w", filePath, fs.ErrNotExist)
	}

	mfs.addFile(filePath, data)
	return nil
}

func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absOld := mfs.abs(oldPath)
	entry, ok := mfs.files[absOld]
	if !ok {
		return fmt.Errorf("rename %s: %w", oldPath, fs.ErrNotExist)
	}

	delete(mfs.files, absOld)
	mfs.addFile(newPath, entry.content)
	return nil
}

func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	if _, ok := mfs.files[absPath]; !ok {
		return fmt.Errorf("remove %s: %w", filePath, fs.ErrNotExist)
	}
	delete(mfs.files, absPath)
	return nil
}

func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(dirPath)
	if entry, ok := mfs.files[absPath]; ok {
		if !entry.info.IsDir() {
			return fmt.Errorf("mkdir %s: not a directory", dirPath)
		}
		return nil
	}

	mfs.files[absPath] = newDirEntry(absPath, strings.TrimPrefix(absPath, mfs.root+"/"))
	mfs.ensureDirectoriesExist(absPath)
	return nil
}
