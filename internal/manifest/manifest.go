package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	findup "github.com/jakoblorz/go-findup"
	"github.com/jakoblorz/go-findup/internal/filesystem"
	"golang.org/x/mod/modfile"
)

// Kind identifies the manifest format.
type Kind string

const (
	KindGoWork  Kind = "go.work"
	KindGoMod   Kind = "go.mod"
	KindPackage Kind = "package.json"
)

// ErrNoManifest is returned when no manifest exists in the starting
// directory or any of its ancestors.
var ErrNoManifest = errors.New("no manifest found")

// Later entries win within a directory, so go.work shadows go.mod and
// go.mod shadows package.json.
var manifestPatterns = []string{
	string(KindPackage),
	string(KindGoMod),
	string(KindGoWork),
}

// Manifest describes the nearest project manifest.
type Manifest struct {
	Kind     Kind     `json:"kind"`
	Path     string   `json:"path"`
	RootPath string   `json:"root"`
	Name     string   `json:"name"`
	Members  []string `json:"members,omitempty"`
}

// Locator finds and reads project manifests.
type Locator struct {
	fs      filesystem.FileSystem
	options []findup.Option
}

// Option configures locator behavior.
type Option func(*Locator)

// WithSearchOptions passes additional options to every search.
func WithSearchOptions(options ...findup.Option) Option {
	return func(l *Locator) {
		l.options = append(l.options, options...)
	}
}

// New creates a new Locator.
func New(fs filesystem.FileSystem, options ...Option) *Locator {
	l := &Locator{fs: fs}

	for _, option := range options {
		option(l)
	}

	return l
}

// Locate searches from cwd upward for go.work, go.mod or package.json and
// reads the first one found. An empty cwd starts at the working directory.
func (l *Locator) Locate(cwd string) (*Manifest, error) {
	options := append([]findup.Option{
		findup.WithFileSystem(l.fs),
		findup.WithCwd(cwd),
	}, l.options...)

	path, found, err := findup.Find(manifestPatterns, options...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoManifest
	}

	return l.Load(path)
}

// Load reads the manifest at path.
func (l *Locator) Load(path string) (*Manifest, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	root := filepath.Dir(path)

	switch Kind(strings.ToLower(filepath.Base(path))) {
	case KindGoWork:
		return loadGoWork(path, root, data)
	case KindGoMod:
		return loadGoMod(path, root, data)
	case KindPackage:
		return loadPackageJSON(path, root, data)
	default:
		return nil, fmt.Errorf("unsupported manifest %s", path)
	}
}

func loadGoWork(path, root string, data []byte) (*Manifest, error) {
	workFile, err := modfile.ParseWork(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.work: %w", err)
	}

	members := make([]string, 0, len(workFile.Use))
	for _, use := range workFile.Use {
		members = append(members, use.Path)
	}

	return &Manifest{
		Kind:     KindGoWork,
		Path:     path,
		RootPath: root,
		Name:     filepath.Base(root),
		Members:  members,
	}, nil
}

func loadGoMod(path, root string, data []byte) (*Manifest, error) {
	modFile, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	if modFile.Module == nil {
		return nil, fmt.Errorf("go.mod at %s has no module directive", path)
	}

	return &Manifest{
		Kind:     KindGoMod,
		Path:     path,
		RootPath: root,
		Name:     modFile.Module.Mod.Path,
	}, nil
}

// packageJSON represents a minimal subset of package.json.
// Workspaces can be an array or an object with a packages array.
type packageJSON struct {
	Name       string      `json:"name"`
	Workspaces interface{} `json:"workspaces"`
}

func loadPackageJSON(path, root string, data []byte) (*Manifest, error) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	name := pkg.Name
	if strings.TrimSpace(name) == "" {
		name = filepath.Base(root)
	}

	return &Manifest{
		Kind:     KindPackage,
		Path:     path,
		RootPath: root,
		Name:     name,
		Members:  extractWorkspaces(pkg),
	}, nil
}

func extractWorkspaces(pkg packageJSON) []string {
	switch v := pkg.Workspaces.(type) {
	case nil:
		return nil
	case []interface{}:
		return convertWorkspaceArray(v)
	case map[string]interface{}:
		if raw, ok := v["packages"]; ok {
			if arr, ok := raw.([]interface{}); ok {
				return convertWorkspaceArray(arr)
			}
		}
	}
	return nil
}

func convertWorkspaceArray(values []interface{}) []string {
	var result []string
	for _, item := range values {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			result = append(result, s)
		}
	}
	return result
}
