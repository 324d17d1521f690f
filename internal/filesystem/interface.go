package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over the read-only file operations the
// finder needs, so searches can run against an in-memory tree in tests.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)
}
