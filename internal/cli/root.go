package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrNoMatch is returned when a search completes without a match.
var ErrNoMatch = errors.New("no match")

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := NewFindCommand(fs)
	rootCmd.Use = "findup [flags] <pattern>..."
	rootCmd.Short = "Find the nearest file matching a glob pattern"
	rootCmd.Long = `Searches the current directory and then each parent directory for the
first entry matching one of the given patterns and prints its absolute path.

Literal patterns such as "go.mod" are checked directly; glob patterns are
matched against the entries of each directory. When several patterns are
given, literal patterns declared later are tried first.`
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(NewManifestCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrNoMatch) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), ErrorStyle.Render("Error: "+err.Error()))
		}
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// newLogger returns a console logger on w when verbose is set.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}
