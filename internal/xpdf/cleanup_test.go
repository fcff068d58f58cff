package xpdf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isWindows() bool {
	return runtime.GOOS == "windows"
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.txt")
	tree := filepath.Join(dir, "run")
	require.NoError(t, os.WriteFile(file, []byte("text"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "nested"), 0o750))

	var c Cleanup
	c.Register(file)
	c.Register(tree)
	c.Register(filepath.Join(dir, "never-created"))
	assert.Len(t, c.Pending(), 3)

	c.Run()

	assert.NoFileExists(t, file)
	assert.NoDirExists(t, tree)
	assert.Empty(t, c.Pending())
}

func TestDeleteOnExit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	DeleteOnExit(file)
	assert.Contains(t, exitCleanup.Pending(), file)

	RunExitCleanup()
	assert.NoFileExists(t, file)
}

func TestCleanup_Unregister(t *testing.T) {
	var c Cleanup
	c.Register("a")
	c.Register("b")
	c.Register("c")

	c.Unregister("b")
	c.Unregister("missing")
	assert.Equal(t, []string{"a", "c"}, c.Pending())
}

func TestRemoveNow(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o750))

	DeleteOnExit(dir)
	require.NoError(t, RemoveNow(dir))

	assert.NoDirExists(t, dir)
	assert.NotContains(t, exitCleanup.Pending(), dir)
}
