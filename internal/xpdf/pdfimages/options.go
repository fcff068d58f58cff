package pdfimages

import (
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

// FileFormat selects how images are written. Unset writes PPM/PBM files.
type FileFormat string

const (
	// FileFormatJPEG keeps DCT-encoded images as .jpg files.
	FileFormatJPEG FileFormat = "jpeg"
	// FileFormatRaw writes every image in its raw PDF stream format.
	FileFormatRaw FileFormat = "raw"
)

var fileFormatArgs = map[FileFormat][]string{
	FileFormatJPEG: {"-j"},
	FileFormatRaw:  {"-raw"},
}

// Options are the pdfimages command options.
type Options struct {
	PageStart *int `json:"page_start,omitempty"`
	PageStop  *int `json:"page_stop,omitempty"`

	FileFormat FileFormat `json:"file_format,omitempty"`

	// MetadataIncluded prints one line of information per image to
	// standard output.
	MetadataIncluded bool `json:"metadata_included,omitempty"`

	OwnerPassword string `json:"-"`
	UserPassword  string `json:"-"`

	NativeOptions xpdf.NativeOptions `json:"native_options,omitempty"`
}

// Args encodes the options as command line tokens.
func (o *Options) Args() ([]string, error) {
	if o == nil {
		return []string{}, nil
	}

	args := xpdf.PageArgs(o.PageStart, o.PageStop)

	fileFormat, err := xpdf.LookupArgs("FileFormat", o.FileFormat, fileFormatArgs)
	if err != nil {
		return nil, err
	}
	args = append(args, fileFormat...)

	if o.MetadataIncluded {
		args = append(args, "-list")
	}

	args = append(args, xpdf.PasswordArgs(o.OwnerPassword, o.UserPassword)...)
	args = append(args, o.NativeOptions.Args()...)
	return args, nil
}

func (o *Options) validate() error {
	if o == nil {
		return nil
	}
	if err := xpdf.ValidatePages(o.PageStart, o.PageStop); err != nil {
		return err
	}
	return xpdf.ValidateEnum("FileFormat", o.FileFormat, fileFormatArgs)
}

// FileFormats lists the supported FileFormat values.
func FileFormats() []string { return xpdf.Variants(fileFormatArgs) }
