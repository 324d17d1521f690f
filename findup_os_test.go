package findup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// newFixtureTree writes a/b/c/d/e/f/g with one.txt in a/b/c/d and two.txt
// in a/b/c below a fresh temporary directory.
func newFixtureTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c", "d", "e", "f", "g")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "c", "d", "one.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "c", "two.txt"), nil, 0o644))
	return root
}

func TestFind_OSFixtureTree(t *testing.T) {
	root := newFixtureTree(t)
	deep := filepath.Join(root, "a", "b", "c", "d", "e", "f", "g")

	path, found, err := FindOne("**/two.txt", WithCwd(deep), WithStopAt(root))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, filepath.Join(root, "a", "b", "c", "two.txt"), path)

	path, found, err = FindOne("**/one.txt", WithCwd(deep), WithStopAt(root))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, filepath.Join(root, "a", "b", "c", "d", "one.txt"), path)

	_, found, err = FindOne("**/three.txt", WithCwd(deep), WithStopAt(root))
	require.NoError(t, err)
	require.False(t, found)
}

func TestFind_OSNativeCaseSensitivity(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Mochafile.txt"), nil, 0o644))

	path, found, err := FindOne("mochafile.txt", WithCwd(root), WithStopAt(root), WithNoCase(true))
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, strings.EqualFold("Mochafile.txt", filepath.Base(path)))

	_, found, err = FindOne("mochafile.txt", WithCwd(root), WithStopAt(root), WithNoCase(false))
	require.NoError(t, err)

	switch runtime.GOOS {
	case "darwin", "windows":
		require.True(t, found, "default filesystem is case-insensitive")
	case "linux":
		require.False(t, found, "default filesystem is case-sensitive")
	default:
		t.Skipf("case sensitivity of %s filesystems not asserted", runtime.GOOS)
	}
}

func TestFind_OSConcurrentSearches(t *testing.T) {
	root := newFixtureTree(t)
	deep := filepath.Join(root, "a", "b", "c", "d", "e", "f", "g")

	patterns := map[string]string{
		"**/one.txt": filepath.Join(root, "a", "b", "c", "d", "one.txt"),
		"**/two.txt": filepath.Join(root, "a", "b", "c", "two.txt"),
		"two.txt":    filepath.Join(root, "a", "b", "c", "two.txt"),
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(patterns)*4)
	for i := 0; i < 4; i++ {
		for pattern, want := range patterns {
			wg.Add(1)
			go func(pattern, want string) {
				defer wg.Done()
				path, found, err := FindOne(pattern, WithCwd(deep), WithStopAt(root), WithNoCase(false))
				if err != nil {
					errs <- err
					return
				}
				if !found || path != want {
					errs <- fmt.Errorf("%s: got %q (found=%v), want %q", pattern, path, found, want)
				}
			}(pattern, want)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestFind_OSDanglingSymlinkIsSkipped(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cfg.yaml"), nil, 0o644))
	if err := os.Symlink(filepath.Join(root, "missing.yaml"), filepath.Join(sub, "cfg.yaml")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	for _, pattern := range []string{"cfg.yaml", "*.yaml"} {
		path, found, err := FindOne(pattern, WithCwd(sub), WithStopAt(root))
		require.NoError(t, err)
		require.True(t, found, pattern)
		require.Equal(t, filepath.Join(root, "cfg.yaml"), path, pattern)

		_, err = os.Stat(path)
		require.NoError(t, err)
	}
}

func TestFind_OSMalformedGlobIsLiteral(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes[1"), nil, 0o644))

	path, found, err := FindOne("notes[1", WithCwd(root), WithStopAt(root))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, filepath.Join(root, "notes[1"), path)
}
