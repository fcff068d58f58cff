package pdfinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

func TestOptionsArgs(t *testing.T) {
	args, err := (*Options)(nil).Args()
	require.NoError(t, err)
	assert.Equal(t, []string{}, args)

	args, err = (&Options{
		PageStart:             xpdf.Page(1),
		Encoding:              EncodingLatin1,
		BoundingBoxesIncluded: true,
		MetadataIncluded:      true,
		DatesUndecoded:        true,
		OwnerPassword:         "owner",
		NativeOptions:         xpdf.NativeOptions{xpdf.Option("-cfg", "rc")},
	}).Args()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-f", "1", "-enc", "Latin1", "-box", "-meta", "-rawdates", "-opw", "owner", "-cfg", "rc",
	}, args)
}

func TestOptionsArgs_Encodings(t *testing.T) {
	for _, name := range Encodings() {
		args, err := (&Options{Encoding: Encoding(name)}).Args()
		require.NoError(t, err)
		assert.Equal(t, []string{"-enc", name}, args)
	}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, (*Options)(nil).validate())
	assert.NoError(t, (&Options{PageStart: xpdf.Page(2), PageStop: xpdf.Page(2)}).validate())

	err := (&Options{Encoding: "EBCDIC"}).validate()
	assert.ErrorIs(t, err, xpdf.ErrValidation)

	err = (&Options{PageStart: xpdf.Page(4), PageStop: xpdf.Page(1)}).validate()
	require.Error(t, err)
	assert.Equal(t, "PageStop must be greater than or equal to PageStart", err.(*xpdf.Error).Message)
}
