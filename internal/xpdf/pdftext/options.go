package pdftext

import (
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

// Format selects the text layout mode of pdftotext.
type Format string

const (
	FormatLayout      Format = "layout"
	FormatSimple      Format = "simple"
	FormatSimple2     Format = "simple2"
	FormatTable       Format = "table"
	FormatLinePrinter Format = "lineprinter"
	FormatRaw         Format = "raw"
)

var formatArgs = map[Format][]string{
	FormatLayout:      {"-layout"},
	FormatSimple:      {"-simple"},
	FormatSimple2:     {"-simple2"},
	FormatTable:       {"-table"},
	FormatLinePrinter: {"-lineprinter"},
	FormatRaw:         {"-raw"},
}

// Encoding selects the output text encoding.
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

// EndOfLine selects the line terminator written by pdftotext.
type EndOfLine string

const (
	EndOfLineDOS  EndOfLine = "dos"
	EndOfLineMac  EndOfLine = "mac"
	EndOfLineUnix EndOfLine = "unix"
)

var endOfLineArgs = map[EndOfLine][]string{
	EndOfLineDOS:  {"-eol", "dos"},
	EndOfLineMac:  {"-eol", "mac"},
	EndOfLineUnix: {"-eol", "unix"},
}

// Options are the pdftotext command options. Anything not modeled here can
// be passed through NativeOptions, e.g. xpdf.Option("-cfg", "xpdfrc").
type Options struct {
	PageStart *int `json:"page_start,omitempty"`
	PageStop  *int `json:"page_stop,omitempty"`

	Format    Format    `json:"format,omitempty"`
	Encoding  Encoding  `json:"encoding,omitempty"`
	EndOfLine EndOfLine `json:"end_of_line,omitempty"`

	// PageBreakExcluded drops the form feed written after each page.
	PageBreakExcluded bool `json:"page_break_excluded,omitempty"`

	OwnerPassword string `json:"-"`
	UserPassword  string `json:"-"`

	NativeOptions xpdf.NativeOptions `json:"native_options,omitempty"`
}

// Args encodes the options as command line tokens. A nil receiver encodes
// to nothing.
func (o *Options) Args() ([]string, error) {
	if o == nil {
		return []string{}, nil
	}

	args := xpdf.PageArgs(o.PageStart, o.PageStop)

	format, err := xpdf.LookupArgs("Format", o.Format, formatArgs)
	if err != nil {
		return nil, err
	}
	args = append(args, format...)

	encoding, err := xpdf.LookupArgs("Encoding", o.Encoding, encodingArgs)
	if err != nil {
		return nil, err
	}
	args = append(args, encoding...)

	endOfLine, err := xpdf.LookupArgs("EndOfLine", o.EndOfLine, endOfLineArgs)
	if err != nil {
		return nil, err
	}
	args = append(args, endOfLine...)

	if o.PageBreakExcluded {
		args = append(args, "-nopgbrk")
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
	if err := xpdf.ValidateEnum("Format", o.Format, formatArgs); err != nil {
		return err
	}
	if err := xpdf.ValidateEnum("Encoding", o.Encoding, encodingArgs); err != nil {
		return err
	}
	return xpdf.ValidateEnum("EndOfLine", o.EndOfLine, endOfLineArgs)
}

// Formats lists the supported Format values.
func Formats() []string { return xpdf.Variants(formatArgs) }

// Encodings lists the supported Encoding values.
func Encodings() []string { return xpdf.Variants(encodingArgs) }

// EndOfLines lists the supported EndOfLine values.
func EndOfLines() []string { return xpdf.Variants(endOfLineArgs) }
