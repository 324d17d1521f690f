package cli

import (
	"errors"
	"fmt"
	"strings"

	findup "github.com/jakoblorz/go-findup"
	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/jakoblorz/go-findup/internal/manifest"
	"github.com/spf13/cobra"
)

// ManifestCommand handles the manifest command
type ManifestCommand struct {
	fs       filesystem.FileSystem
	cwd      string
	maxDepth int
	format   string
	template string
	verbose  bool
}

// NewManifestCommand creates a new manifest command
func NewManifestCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ManifestCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Show the nearest go.work, go.mod or package.json",
		Long: `Finds the nearest project manifest and prints its kind, name and path.

Within one directory go.work wins over go.mod, which wins over package.json.
The name is the module path for go.mod, the directory name for go.work and
the "name" field for package.json.`,
		Example: `  # Module path of the enclosing Go module
  findup manifest --format template --template '{{ .Name }}'`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cmd.cwd, "cwd", "", "Directory to start the search from (default: working directory)")
	flags.IntVar(&cmd.maxDepth, "max-depth", -1, "Maximum number of parent directories to visit (-1: unlimited)")
	flags.StringVar(&cmd.format, "format", formatText, "Output format: text, json or template")
	flags.StringVar(&cmd.template, "template", "", "Go template for --format template (sprig functions available)")
	flags.BoolVarP(&cmd.verbose, "verbose", "v", false, "Log visited directories to stderr")

	return cobraCmd
}

// Run executes the manifest command
func (c *ManifestCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format, c.template); err != nil {
		return err
	}

	locator := manifest.New(c.fs, manifest.WithSearchOptions(
		findup.WithMaxDepth(c.maxDepth),
		findup.WithLogger(newLogger(cmd.ErrOrStderr(), c.verbose)),
	))

	m, err := locator.Locate(c.cwd)
	if errors.Is(err, manifest.ErrNoManifest) {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("No go.work, go.mod or package.json found"))
		return ErrNoMatch
	}
	if err != nil {
		return fmt.Errorf("failed to locate manifest: %w", err)
	}

	return render(cmd.OutOrStdout(), c.format, c.template, m, func() string {
		var sb strings.Builder
		fmt.Fprintf(&sb, "kind: %s\n", m.Kind)
		fmt.Fprintf(&sb, "name: %s\n", m.Name)
		fmt.Fprintf(&sb, "path: %s\n", m.Path)
		if len(m.Members) > 0 {
			fmt.Fprintf(&sb, "members: %s\n", strings.Join(m.Members, ", "))
		}
		return sb.String()
	})
}
