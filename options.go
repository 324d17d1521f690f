package findup

import (
	"runtime"

	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/rs/zerolog"
)

// Option configures a search.
type Option func(*config)

type config struct {
	fs        filesystem.FileSystem
	cwd       string
	noCase    *bool
	matchBase *bool
	maxDepth  int
	stopAt    string
	gitIgnore bool
	log       zerolog.Logger
}

func newConfig(options []Option) *config {
	cfg := &config{
		maxDepth: -1,
		log:      zerolog.Nop(),
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.fs == nil {
		cfg.fs = filesystem.NewOSFileSystem()
	}

	return cfg
}

// WithCwd sets the directory the search starts from. A leading "~" is
// expanded to the user's home directory and relative paths are resolved
// against the working directory.
func WithCwd(dir string) Option {
	return func(c *config) {
		c.cwd = dir
	}
}

// WithNoCase enables or disables case-insensitive pattern matching. Without
// it the platform default applies; see DefaultNoCase.
func WithNoCase(enabled bool) Option {
	return func(c *config) {
		c.noCase = &enabled
	}
}

// WithMatchBase controls whether separator-free patterns are compared
// against basenames. Without it basename matching is on whenever at least
// one pattern lacks a "**" marker.
func WithMatchBase(enabled bool) Option {
	return func(c *config) {
		c.matchBase = &enabled
	}
}

// WithMaxDepth limits the number of parent directories visited after the
// starting directory. Zero searches the starting directory only; a negative
// value removes the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithStopAt makes dir the last directory searched. It has no effect when
// dir is not an ancestor of the starting directory.
func WithStopAt(dir string) Option {
	return func(c *config) {
		c.stopAt = dir
	}
}

// WithGitIgnore skips entries ignored by the .gitignore file of the
// directory being scanned. Literal patterns are not affected.
func WithGitIgnore(enabled bool) Option {
	return func(c *config) {
		c.gitIgnore = enabled
	}
}

// WithLogger sets the logger that receives the search trace at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

// WithFileSystem replaces the OS filesystem, e.g. with an in-memory tree.
func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(c *config) {
		c.fs = fs
	}
}

// DefaultNoCase reports whether matching folds case when WithNoCase is not
// given: true on darwin and windows, whose default filesystems are
// case-insensitive.
func DefaultNoCase() bool {
	return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
}

func (c *config) resolveNoCase() bool {
	if c.noCase != nil {
		return *c.noCase
	}
	return DefaultNoCase()
}

func (c *config) resolveMatchBase(patterns []string) bool {
	if c.matchBase != nil {
		return *c.matchBase
	}
	for _, pattern := range patterns {
		if !containsRecursive(pattern) {
			return true
		}
	}
	return false
}
