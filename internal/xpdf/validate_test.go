package xpdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePages_ValidRanges(t *testing.T) {
	for start := 1; start <= 10; start++ {
		for stop := start; stop <= 10; stop++ {
			assert.NoError(t, ValidatePages(Page(start), Page(stop)), "start=%d stop=%d", start, stop)
		}
	}
	assert.NoError(t, ValidatePages(nil, nil))
	assert.NoError(t, ValidatePages(Page(5), nil))
	assert.NoError(t, ValidatePages(nil, Page(5)))
}

func TestValidatePages_NonPositiveStart(t *testing.T) {
	for _, start := range []int{0, -1, -100} {
		for _, stop := range []*int{nil, Page(-3), Page(0), Page(1), Page(50)} {
			err := ValidatePages(Page(start), stop)
			require.Error(t, err)
			assert.Equal(t, "PageStart must be greater than zero", err.(*Error).Message)
		}
	}
}

func TestValidatePages_Messages(t *testing.T) {
	tests := []struct {
		name        string
		start, stop *int
		want        string
	}{
		{"stop zero", nil, Page(0), "PageStop must be greater than zero"},
		{"stop negative", Page(1), Page(-2), "PageStop must be greater than zero"},
		{"stop before start", Page(2), Page(1), "PageStop must be greater than or equal to PageStart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePages(tt.start, tt.stop)
			var xerr *Error
			require.ErrorAs(t, err, &xerr)
			assert.Equal(t, KindValidation, xerr.Kind)
			assert.Equal(t, tt.want, xerr.Message)
		})
	}
}

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("%PDF-1.4"), 0o644))

	assert.NoError(t, ValidateInput(existing))

	for _, path := range []string{"", filepath.Join(dir, "missing.pdf"), "doc\x00.pdf"} {
		err := ValidateInput(path)
		require.Error(t, err)
		assert.Equal(t, "PdfFile does not exist", err.(*Error).Message)
	}
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("TextFile", ""))
	assert.NoError(t, ValidateOutputPath("TextFile", filepath.Join(t.TempDir(), "new", "out.txt")))

	err := ValidateOutputPath("TextFile", "out\x00.txt")
	require.Error(t, err)
	assert.Equal(t, "Invalid path given for TextFile", err.(*Error).Message)
}

func TestValidateEnum(t *testing.T) {
	assert.NoError(t, ValidateEnum("Color", color(""), colorArgs))
	assert.NoError(t, ValidateEnum("Color", color("red"), colorArgs))

	err := ValidateEnum("Color", color("green"), colorArgs)
	require.Error(t, err)
	assert.Equal(t, "Color must be one of: blue, red", err.(*Error).Message)
}

func TestCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.pdf")
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	link := filepath.Join(dir, "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	resolvedTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	got, err := CanonicalPath(link)
	require.NoError(t, err)
	assert.Equal(t, resolvedTarget, got)

	missing := filepath.Join(dir, "missing", "out.txt")
	got, err = CanonicalPath(missing)
	require.NoError(t, err)
	assert.Equal(t, missing, got)

	_, err = CanonicalPath("")
	assert.Error(t, err)
}
