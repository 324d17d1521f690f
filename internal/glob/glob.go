// Package glob wraps doublestar with the matching modes the finder needs:
// basename matching for separator-free patterns and case folding.
package glob

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// metaChars are the characters that turn a pattern into a glob.
const metaChars = "*?[{"

// Options configures how candidates are compared against patterns.
type Options struct {
	// NoCase folds case on both the pattern and the candidate.
	NoCase bool
	// MatchBase compares separator-free patterns against the candidate's
	// basename instead of its full path.
	MatchBase bool
}

// IsGlob reports whether pattern contains a glob metacharacter and is well
// formed. A malformed glob such as "notes[1" is an ordinary file name.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, metaChars) && doublestar.ValidatePattern(filepath.ToSlash(pattern))
}

// HasSeparator reports whether pattern spans more than one path segment.
func HasSeparator(pattern string) bool {
	return strings.Contains(filepath.ToSlash(pattern), "/")
}

// IsRecursive reports whether pattern starts with a recursive-descent marker.
func IsRecursive(pattern string) bool {
	return strings.HasPrefix(filepath.ToSlash(pattern), "**")
}

// Matcher tests candidate paths against a set of patterns.
type Matcher struct {
	opts Options
}

// NewMatcher creates a Matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{opts: opts}
}

// Match returns the patterns that match candidate, in pattern order.
func (m *Matcher) Match(candidate string, patterns []string) []string {
	var matched []string
	for _, pattern := range patterns {
		if m.MatchOne(candidate, pattern) {
			matched = append(matched, pattern)
		}
	}
	return matched
}

// MatchOne reports whether candidate matches pattern.
func (m *Matcher) MatchOne(candidate, pattern string) bool {
	pat := filepath.ToSlash(pattern)
	name := filepath.ToSlash(candidate)

	if m.opts.MatchBase && !strings.Contains(pat, "/") {
		name = path.Base(name)
	} else {
		pat = trimRoot(pat)
		name = trimRoot(name)
	}

	return m.matchSegment(pat, name)
}

func (m *Matcher) matchSegment(pattern, name string) bool {
	if m.opts.NoCase {
		pattern = strings.ToLower(pattern)
		name = strings.ToLower(name)
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// trimRoot drops the volume name and leading separators so absolute paths
// compare against patterns such as "**/go.mod".
func trimRoot(p string) string {
	p = strings.TrimPrefix(p, filepath.VolumeName(p))
	return strings.TrimLeft(p, "/")
}
