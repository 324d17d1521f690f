package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	findup "github.com/jakoblorz/go-findup"
	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/spf13/cobra"
)

// FindCommand handles the pattern search
type FindCommand struct {
	fs        filesystem.FileSystem
	cwd       string
	noCase    bool
	matchBase bool
	maxDepth  int
	stopAt    string
	gitIgnore bool
	format    string
	template  string
	verbose   bool
}

// NewFindCommand creates a new find command
func NewFindCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &FindCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "find [flags] <pattern>...",
		Short: "Find the nearest file matching a glob pattern",
		Example: `  # Locate the nearest go.mod
  findup go.mod

  # First of several candidates, in JSON
  findup --format json '.golangci.yml' '.golangci.yaml'

  # Print only the directory containing the match
  findup --format template --template '{{ .Dir }}' 'package.json'`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cmd.cwd, "cwd", "", "Directory to start the search from (default: working directory)")
	flags.BoolVar(&cmd.noCase, "nocase", false, "Match patterns case-insensitively (default: platform dependent)")
	flags.BoolVar(&cmd.matchBase, "match-base", false, "Match separator-free patterns against basenames (default: automatic)")
	flags.IntVar(&cmd.maxDepth, "max-depth", -1, "Maximum number of parent directories to visit (-1: unlimited)")
	flags.StringVar(&cmd.stopAt, "stop-at", "", "Last directory to search")
	flags.BoolVar(&cmd.gitIgnore, "gitignore", false, "Skip entries ignored by each directory's .gitignore")
	flags.StringVar(&cmd.format, "format", formatText, "Output format: text, json or template")
	flags.StringVar(&cmd.template, "template", "", "Go template for --format template (sprig functions available)")
	flags.BoolVarP(&cmd.verbose, "verbose", "v", false, "Log visited directories to stderr")

	return cobraCmd
}

// Run executes the find command
func (c *FindCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format, c.template); err != nil {
		return err
	}

	options := []findup.Option{
		findup.WithFileSystem(c.fs),
		findup.WithCwd(c.cwd),
		findup.WithMaxDepth(c.maxDepth),
		findup.WithGitIgnore(c.gitIgnore),
		findup.WithLogger(newLogger(cmd.ErrOrStderr(), c.verbose)),
	}
	if cmd.Flags().Changed("nocase") {
		options = append(options, findup.WithNoCase(c.noCase))
	}
	if cmd.Flags().Changed("match-base") {
		options = append(options, findup.WithMatchBase(c.matchBase))
	}
	if c.stopAt != "" {
		options = append(options, findup.WithStopAt(c.stopAt))
	}

	path, found, err := findup.Find(args, options...)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if !found {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("No match for "+strings.Join(args, ", ")))
		return ErrNoMatch
	}

	return writeResult(cmd.OutOrStdout(), c.format, c.template, Result{
		Path:     path,
		Dir:      filepath.Dir(path),
		Name:     filepath.Base(path),
		Patterns: args,
	})
}
