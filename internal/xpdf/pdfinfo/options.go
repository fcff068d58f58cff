package pdfinfo

import (
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

// Encoding selects the encoding of the printed metadata.
type Encoding string

const (
	EncodingLatin1       Encoding = "Latin1"
	EncodingASCII7       Encoding = "ASCII7"
	EncodingUTF8         Encoding = "UTF-8"
	EncodingUCS2         Encoding = "UCS-2"
	EncodingSymbol       Encoding = "Symbol"
	EncodingZapfDingbats Encoding = "ZapfDingbats"
)

var encodingArgs = map[Encoding][]string{
	EncodingLatin1:       {"-enc", "Latin1"},
	EncodingASCII7:       {"-enc", "ASCII7"},
	EncodingUTF8:         {"-enc", "UTF-8"},
	EncodingUCS2:         {"-enc", "UCS-2"},
	EncodingSymbol:       {"-enc", "Symbol"},
	EncodingZapfDingbats: {"-enc", "ZapfDingbats"},
}

// Options are the pdfinfo command options.
type Options struct {
	// Page bounds select the pages whose sizes (and boxes) are printed.
	PageStart *int `json:"page_start,omitempty"`
	PageStop  *int `json:"page_stop,omitempty"`

	Encoding Encoding `json:"encoding,omitempty"`

	BoundingBoxesIncluded bool `json:"bounding_boxes_included,omitempty"`
	MetadataIncluded      bool `json:"metadata_included,omitempty"`
	DatesUndecoded        bool `json:"dates_undecoded,omitempty"`

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

	encoding, err := xpdf.LookupArgs("Encoding", o.Encoding, encodingArgs)
	if err != nil {
		return nil, err
	}
	args = append(args, encoding...)

	if o.BoundingBoxesIncluded {
		args = append(args, "-box")
	}
	if o.MetadataIncluded {
		args = append(args, "-meta")
	}
	if o.DatesUndecoded {
		args = append(args, "-rawdates")
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
	return xpdf.ValidateEnum("Encoding", o.Encoding, encodingArgs)
}

// Encodings lists the supported Encoding values.
func Encodings() []string { return xpdf.Variants(encodingArgs) }
