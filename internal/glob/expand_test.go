package glob

import (
	"os"
	"testing"

	"github.com/jakoblorz/go-findup/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func newExpandFS() *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/config/app.yaml", nil)
	fs.AddFile("/repo/config/db.yaml", nil)
	fs.AddFile("/repo/deploy/prod/values.yaml", nil)
	fs.AddFile("/repo/deploy/staging/Values.yaml", nil)
	return fs
}

func TestExpander_Wildcards(t *testing.T) {
	e := NewExpander(newExpandFS(), Options{})

	found, ok := e.Expand("/repo", "config/*.yaml")
	require.True(t, ok)
	require.Equal(t, "/repo/config/app.yaml", found)

	found, ok = e.Expand("/repo", "deploy/*/values.yaml")
	require.True(t, ok)
	require.Equal(t, "/repo/deploy/prod/values.yaml", found)

	_, ok = e.Expand("/repo", "config/*.json")
	require.False(t, ok)
}

func TestExpander_RecursiveSegment(t *testing.T) {
	e := NewExpander(newExpandFS(), Options{})

	found, ok := e.Expand("/repo", "deploy/**/Values.yaml")
	require.True(t, ok)
	require.Equal(t, "/repo/deploy/staging/Values.yaml", found)

	found, ok = e.Expand("/repo", "config/**/db.yaml")
	require.True(t, ok)
	require.Equal(t, "/repo/config/db.yaml", found)
}

func TestExpander_NoCase(t *testing.T) {
	fs := newExpandFS()

	_, ok := NewExpander(fs, Options{}).Expand("/repo", "CONFIG/*.yaml")
	require.False(t, ok)

	found, ok := NewExpander(fs, Options{NoCase: true}).Expand("/repo", "CONFIG/DB.*")
	require.True(t, ok)
	require.Equal(t, "/repo/config/db.yaml", found)
}

func TestExpander_UnreadableDirectoryYieldsNothing(t *testing.T) {
	fs := newExpandFS()
	fs.SetReadDirError("/repo/config", os.ErrPermission)

	_, ok := NewExpander(fs, Options{}).Expand("/repo", "config/*.yaml")
	require.False(t, ok)
}

func TestExpander_ParentSegment(t *testing.T) {
	found, ok := NewExpander(newExpandFS(), Options{NoCase: true}).Expand("/repo/deploy", "../config/app.*")
	require.True(t, ok)
	require.Equal(t, "/repo/config/app.yaml", found)
}
