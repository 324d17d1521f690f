package glob

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// Lister is the part of the filesystem the Expander walks.
type Lister interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Exists(path string) bool
}

// Expander resolves patterns that are anchored below a directory, such as
// "config/*.yaml", by walking only the segments the pattern names.
type Expander struct {
	fs      Lister
	matcher *Matcher
}

// NewExpander creates an Expander. MatchBase is ignored; every segment is
// compared against a single entry name. With NoCase, literal segments are
// looked up by listing the directory rather than by an existence check.
func NewExpander(fsys Lister, opts Options) *Expander {
	opts.MatchBase = false
	return &Expander{
		fs:      fsys,
		matcher: NewMatcher(opts),
	}
}

// Expand returns the first path below dir that matches pattern. Entries are
// visited in listing order and unreadable directories yield no match.
func (e *Expander) Expand(dir, pattern string) (string, bool) {
	clean := path.Clean(filepath.ToSlash(pattern))
	return e.expand(filepath.Clean(dir), strings.Split(clean, "/"))
}

func (e *Expander) expand(dir string, segments []string) (string, bool) {
	if len(segments) == 0 {
		return dir, true
	}

	segment, rest := segments[0], segments[1:]

	switch {
	case segment == "**":
		if found, ok := e.expand(dir, rest); ok {
			return found, true
		}
		entries, err := e.fs.ReadDir(dir)
		if err != nil {
			return "", false
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if found, ok := e.expand(filepath.Join(dir, entry.Name()), segments); ok {
				return found, true
			}
		}
		return "", false

	case segment == "." || segment == ".." || (!IsGlob(segment) && !e.matcher.opts.NoCase):
		next := filepath.Join(dir, segment)
		if !e.fs.Exists(next) {
			return "", false
		}
		return e.expand(next, rest)

	default:
		entries, err := e.fs.ReadDir(dir)
		if err != nil {
			return "", false
		}
		for _, entry := range entries {
			if !e.matcher.matchSegment(segment, entry.Name()) {
				continue
			}
			next := filepath.Join(dir, entry.Name())
			if len(rest) > 0 && !entry.IsDir() {
				continue
			}
			if entry.Type()&fs.ModeSymlink != 0 && !e.fs.Exists(next) {
				continue
			}
			if found, ok := e.expand(next, rest); ok {
				return found, true
			}
		}
		return "", false
	}
}
