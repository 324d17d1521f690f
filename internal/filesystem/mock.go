package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files           map[string]*MockFile
	currentDir      string
	readDirErrors   map[string]error
	readDirCalls    []string
	caseInsensitive bool
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem rooted at "/" with
// "/workspace" as the current directory.
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:         make(map[string]*MockFile),
		currentDir:    "/workspace",
		readDirErrors: make(map[string]error),
	}
	mfs.files[string(filepath.Separator)] = &MockFile{
		Mode:    0755 | fs.ModeDir,
		ModTime: time.Now(),
		IsDir:   true,
	}
	return mfs
}

// AddFile adds a file to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
	}

	// Ensure parent directories exist
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}

	// Ensure parent directories exist
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

// SetReadDirError makes ReadDir fail for path, e.g. to simulate a
// permission error.
func (mfs *MockFileSystem) SetReadDirError(path string, err error) {
	mfs.readDirErrors[filepath.Clean(path)] = err
}

// SetCaseInsensitive makes path lookups fold case, like the default
// filesystems on macOS and Windows.
func (mfs *MockFileSystem) SetCaseInsensitive(enabled bool) {
	mfs.caseInsensitive = enabled
}

// ReadDirCalls returns the directories passed to ReadDir, in call order.
func (mfs *MockFileSystem) ReadDirCalls() []string {
	return append([]string(nil), mfs.readDirCalls...)
}

// lookup resolves path to its stored key.
func (mfs *MockFileSystem) lookup(path string) (string, *MockFile, bool) {
	cleanPath := filepath.Clean(path)
	if file, exists := mfs.files[cleanPath]; exists {
		return cleanPath, file, true
	}
	if !mfs.caseInsensitive {
		return "", nil, false
	}
	for p, file := range mfs.files {
		if strings.EqualFold(p, cleanPath) {
			return p, file, true
		}
	}
	return "", nil, false
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	_, file, exists := mfs.lookup(path)
	if !exists {
		return nil, fs.ErrNotExist
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	mfs.readDirCalls = append(mfs.readDirCalls, filepath.Clean(path))

	if err, failing := mfs.readDirErrors[filepath.Clean(path)]; failing {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	cleanPath, file, exists := mfs.lookup(path)
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		info := &mockFileInfo{
			name:    filepath.Base(p),
			size:    int64(len(f.Content)),
			mode:    f.Mode,
			modTime: f.ModTime,
			isDir:   f.IsDir,
		}
		entries = append(entries, &mockDirEntry{info: info})
	}

	// Sort entries by name for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	key, file, exists := mfs.lookup(path)
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return &mockFileInfo{
		name:    filepath.Base(key),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, _, exists := mfs.lookup(path)
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}
