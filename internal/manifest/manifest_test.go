package manifest

import (
	"errors"
	"testing"

	findup "github.com/jakoblorz/go-findup"
	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestLocate_GoWorkWinsOverGoMod(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.work", []byte("go 1.21\nuse ./auth\nuse ./billing\n"))
	fs.AddFile("/workspace/go.mod", []byte("module github.com/test/root\n\ngo 1.21\n"))
	fs.AddDir("/workspace/auth/internal")

	m, err := New(fs).Locate("/workspace/auth/internal")
	require.NoError(t, err)
	require.Equal(t, KindGoWork, m.Kind)
	require.Equal(t, "/workspace/go.work", m.Path)
	require.Equal(t, "/workspace", m.RootPath)
	require.Equal(t, "workspace", m.Name)
	require.Equal(t, []string{"./auth", "./billing"}, m.Members)
}

func TestLocate_NearestGoMod(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.work", []byte("go 1.21\nuse ./auth\n"))
	fs.AddFile("/workspace/auth/go.mod", []byte("module github.com/test/auth\n\ngo 1.21\n"))
	fs.AddDir("/workspace/auth/cmd/server")

	m, err := New(fs).Locate("/workspace/auth/cmd/server")
	require.NoError(t, err)
	require.Equal(t, KindGoMod, m.Kind)
	require.Equal(t, "/workspace/auth/go.mod", m.Path)
	require.Equal(t, "github.com/test/auth", m.Name)
}

func TestLocate_PackageJSON(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/web/package.json", []byte(`{"name":"","workspaces":{"packages":["apps/*","packages/*"]}}`))
	fs.SetCurrentDir("/web/apps/site")
	fs.AddDir("/web/apps/site")

	m, err := New(fs).Locate("")
	require.NoError(t, err)
	require.Equal(t, KindPackage, m.Kind)
	require.Equal(t, "web", m.Name)
	require.Equal(t, []string{"apps/*", "packages/*"}, m.Members)
}

func TestLocate_NoManifest(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/empty/dir")

	_, err := New(fs).Locate("/empty/dir")
	require.True(t, errors.Is(err, ErrNoManifest))
}

func TestLocate_RespectsSearchOptions(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/go.mod", []byte("module github.com/test/root\n"))
	fs.AddDir("/workspace/a/b")

	_, err := New(fs, WithSearchOptions(findup.WithMaxDepth(1))).Locate("/workspace/a/b")
	require.ErrorIs(t, err, ErrNoManifest)

	m, err := New(fs, WithSearchOptions(findup.WithMaxDepth(2))).Locate("/workspace/a/b")
	require.NoError(t, err)
	require.Equal(t, "github.com/test/root", m.Name)
}

func TestLoad_InvalidGoMod(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/broken/go.mod", []byte("this is not a go.mod\n"))

	_, err := New(fs).Locate("/broken")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse go.mod")
}
