// Package findup locates the first file or directory matching a set of glob
// patterns in a starting directory or the nearest of its ancestors.
//
// At every directory the search tries, in order:
//
//  1. literal patterns (no glob metacharacters, or a malformed glob such as
//     "notes[1"), last declared first, by checking whether the joined path
//     exists;
//  2. the directory's entries, in listing order, against every glob pattern
//     that is not anchored below the directory;
//  3. anchored globs such as "config/*.yaml", last declared first, by
//     walking only the segments the pattern names.
//
// The first hit wins. Otherwise the search moves to the parent directory
// until the filesystem root, the WithStopAt boundary or the WithMaxDepth
// limit is reached.
//
// Literal existence checks follow the case rules of the underlying
// filesystem and are never folded. With WithNoCase, a literal that misses
// that check is also compared case-insensitively against the listing.
package findup

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/jakoblorz/go-findup/internal/glob"
	"github.com/mitchellh/go-homedir"
)

var errNotDirectory = errors.New("not a directory")

// FindOne is Find with a single pattern.
func FindOne(pattern string, options ...Option) (string, bool, error) {
	return Find([]string{pattern}, options...)
}

// Find returns the absolute path of the first entry matching any of
// patterns. found is false, with a nil error, when nothing matched up to the
// last directory searched. Errors are returned only for an invalid pattern
// set (ErrInvalidArgument) or an unusable starting directory (ErrUnreadable).
func Find(patterns []string, options ...Option) (path string, found bool, err error) {
	if err := validatePatterns(patterns); err != nil {
		return "", false, err
	}

	cfg := newConfig(options)
	s, err := newSearch(cfg, append([]string(nil), patterns...))
	if err != nil {
		return "", false, err
	}

	path, found = s.run()
	return path, found, nil
}

type search struct {
	cfg      *config
	start    string
	stopAt   string
	literals []string
	entries  []string
	anchored []string
	matcher  *glob.Matcher
	expander *glob.Expander
}

func newSearch(cfg *config, patterns []string) (*search, error) {
	start, err := resolveDir(cfg.fs, cfg.cwd)
	if err != nil {
		return nil, &UnreadableError{Path: cfg.cwd, Err: err}
	}

	info, err := cfg.fs.Stat(start)
	if err != nil {
		return nil, &UnreadableError{Path: start, Err: err}
	}
	if !info.IsDir() {
		return nil, &UnreadableError{Path: start, Err: errNotDirectory}
	}

	var stopAt string
	if cfg.stopAt != "" {
		stopAt, err = resolveDir(cfg.fs, cfg.stopAt)
		if err != nil {
			return nil, fmt.Errorf("%w: stop-at directory %s: %w", ErrInvalidArgument, cfg.stopAt, err)
		}
	}

	opts := glob.Options{
		NoCase:    cfg.resolveNoCase(),
		MatchBase: cfg.resolveMatchBase(patterns),
	}

	s := &search{
		cfg:      cfg,
		start:    start,
		stopAt:   stopAt,
		matcher:  glob.NewMatcher(opts),
		expander: glob.NewExpander(cfg.fs, opts),
	}

	// With NoCase a literal that misses the native existence check still
	// gets a folded comparison against the directory listing.
	listed := func(pattern string) bool {
		return glob.IsGlob(pattern) || (opts.NoCase && !filepath.IsAbs(pattern))
	}

	for i := len(patterns) - 1; i >= 0; i-- {
		pattern := patterns[i]
		if !glob.IsGlob(pattern) {
			s.literals = append(s.literals, pattern)
		}
		if listed(pattern) && isAnchored(pattern) {
			s.anchored = append(s.anchored, pattern)
		}
	}
	for _, pattern := range patterns {
		if listed(pattern) && !isAnchored(pattern) {
			s.entries = append(s.entries, pattern)
		}
	}

	cfg.log.Debug().
		Str("start", start).
		Strs("patterns", patterns).
		Bool("nocase", opts.NoCase).
		Bool("matchBase", opts.MatchBase).
		Msg("starting search")

	return s, nil
}

func (s *search) run() (string, bool) {
	dir := s.start
	for depth := 0; ; depth++ {
		s.cfg.log.Debug().Str("dir", dir).Int("depth", depth).Msg("scanning directory")

		if found, ok := s.scan(dir); ok {
			s.cfg.log.Debug().Str("path", found).Int("depth", depth).Msg("match found")
			return found, true
		}

		if s.stopAt != "" && dir == s.stopAt {
			s.cfg.log.Debug().Str("dir", dir).Msg("reached stop-at boundary")
			return "", false
		}
		if s.cfg.maxDepth >= 0 && depth >= s.cfg.maxDepth {
			s.cfg.log.Debug().Int("maxDepth", s.cfg.maxDepth).Msg("reached depth limit")
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			s.cfg.log.Debug().Str("dir", dir).Msg("reached filesystem root")
			return "", false
		}
		dir = parent
	}
}

func (s *search) scan(dir string) (string, bool) {
	for _, pattern := range s.literals {
		candidate := pattern
		if !filepath.IsAbs(pattern) {
			candidate = filepath.Join(dir, pattern)
		}
		if s.cfg.fs.Exists(candidate) {
			return candidate, true
		}
	}

	if len(s.entries) > 0 {
		if found, ok := s.scanEntries(dir); ok {
			return found, true
		}
	}

	for _, pattern := range s.anchored {
		if found, ok := s.expander.Expand(dir, pattern); ok {
			return found, true
		}
	}

	return "", false
}

func (s *search) scanEntries(dir string) (string, bool) {
	entries, err := s.cfg.fs.ReadDir(dir)
	if err != nil {
		s.cfg.log.Debug().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
		return "", false
	}

	ignore := s.loadGitIgnore(dir)

	for _, entry := range entries {
		if ignore != nil {
			if match := ignore.Relative(entry.Name(), entry.IsDir()); match != nil && match.Ignore() {
				continue
			}
		}

		candidate := filepath.Join(dir, entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 && !s.cfg.fs.Exists(candidate) {
			continue
		}
		if matched := s.matcher.Match(candidate, s.entries); len(matched) > 0 {
			s.cfg.log.Debug().Str("pattern", matched[0]).Str("entry", entry.Name()).Msg("entry matched")
			return candidate, true
		}
	}

	return "", false
}

func (s *search) loadGitIgnore(dir string) gitignore.GitIgnore {
	if !s.cfg.gitIgnore {
		return nil
	}

	ignorePath := filepath.Join(dir, ".gitignore")
	if !s.cfg.fs.Exists(ignorePath) {
		return nil
	}

	data, err := s.cfg.fs.ReadFile(ignorePath)
	if err != nil {
		s.cfg.log.Debug().Err(err).Str("path", ignorePath).Msg("ignoring unreadable .gitignore")
		return nil
	}

	return gitignore.New(bytes.NewReader(data), dir, nil)
}

// resolveDir expands "~" and makes dir absolute. An empty dir resolves to
// the working directory.
func resolveDir(fsys filesystem.FileSystem, dir string) (string, error) {
	if dir == "" {
		wd, err := fsys.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return filepath.Clean(wd), nil
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	if !filepath.IsAbs(expanded) {
		wd, err := fsys.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		expanded = filepath.Join(wd, expanded)
	}

	return filepath.Clean(expanded), nil
}

// isAnchored reports whether pattern names a path below the directory being
// scanned rather than a single entry of it.
func isAnchored(pattern string) bool {
	return glob.HasSeparator(pattern) && !glob.IsRecursive(pattern) && !filepath.IsAbs(pattern)
}

func containsRecursive(pattern string) bool {
	return strings.Contains(pattern, "**")
}
