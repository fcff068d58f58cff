package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathValidator(t *testing.T) {
	_, err := NewPathValidator("")
	assert.EqualError(t, err, "configured directory cannot be empty")

	dir := t.TempDir()
	v, err := NewPathValidator(dir)
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, v.GetConfiguredDirectory())
}

func TestPathValidator_NormalizePath(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "pdfs")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "inner")))
	require.NoError(t, os.Symlink(base, filepath.Join(dir, "outer")))

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{name: "directory itself", path: dir, want: dir},
		{name: "file below", path: filepath.Join(dir, "a.pdf"), want: filepath.Join(dir, "a.pdf")},
		{name: "relative", path: "sub/a.pdf", want: filepath.Join(dir, "sub", "a.pdf")},
		{name: "missing parents", path: filepath.Join(dir, "x", "y", "img"), want: filepath.Join(dir, "x", "y", "img")},
		{name: "symlink inside", path: filepath.Join(dir, "inner", "a.pdf"), want: filepath.Join(dir, "inner", "a.pdf")},
		{name: "empty", path: "", wantErr: "path cannot be empty"},
		{name: "null byte", path: "a\x00b", wantErr: "null byte"},
		{name: "absolute outside", path: filepath.Join(base, "a.pdf"), wantErr: "outside configured directory"},
		{name: "dot dot", path: "../a.pdf", wantErr: "outside configured directory"},
		{name: "sibling prefix", path: dir + "-other/a.pdf", wantErr: "outside configured directory"},
		{name: "symlink outside", path: filepath.Join(dir, "outer", "a.pdf"), wantErr: "outside configured directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.NormalizePath(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
