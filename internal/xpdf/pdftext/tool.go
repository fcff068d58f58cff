// Package pdftext extracts text from PDF files with the Xpdf pdftotext
// executable.
package pdftext

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

const (
	// ExecutableName is the base name of the bundled executable.
	ExecutableName = "pdftotext"
	// ToolDir is the tool's directory under the temp root.
	ToolDir = "pdf-text"
	// DefaultTimeout applies when the config does not set one.
	DefaultTimeout = 30 * time.Second

	// Stdout as TextFile makes pdftotext print the text to standard output.
	Stdout = "-"
)

// Request asks for the text of PdfFile.
type Request struct {
	// PdfFile is the input PDF. Required.
	PdfFile string `json:"pdf_file"`
	// TextFile receives the text. When empty a temporary file is created
	// and deleted when the program exits; Stdout sends the text to
	// Response.StandardOutput instead.
	TextFile string   `json:"text_file,omitempty"`
	Options  *Options `json:"options,omitempty"`
}

// Response carries the extracted text file. TextFile is empty when the
// request asked for Stdout.
type Response struct {
	TextFile       string `json:"text_file,omitempty"`
	StandardOutput string `json:"standard_output"`
}

// Tool runs pdftotext. It is safe for concurrent use.
type Tool struct {
	engine    *xpdf.Engine
	outputDir string
}

// NewTool provisions pdftotext and returns a tool for it.
func NewTool(cfg xpdf.ToolConfig) (*Tool, error) {
	engine, outputDir, err := xpdf.NewToolEngine(cfg, xpdf.ToolSpec{
		BaseName:       ExecutableName,
		Dir:            ToolDir,
		DefaultTimeout: DefaultTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Tool{engine: engine, outputDir: outputDir}, nil
}

// ExecutablePath returns the path of the executable in use.
func (t *Tool) ExecutablePath() string {
	return t.engine.Executable()
}

// Timeout returns the per-request timeout.
func (t *Tool) Timeout() time.Duration {
	return t.engine.Timeout()
}

// Process extracts the text of a PDF file.
func (t *Tool) Process(ctx context.Context, req *Request) (*Response, error) {
	var textFile string

	result, err := t.engine.Execute(ctx, xpdf.Job{
		Validate: func() error {
			return validate(req)
		},
		Describe: "output text file",
		Prepare: func() error {
			var err error
			textFile, err = t.initTextFile(req)
			return err
		},
		Args: func() ([]string, error) {
			return commandArgs(req, textFile)
		},
	})
	if err != nil {
		return nil, err
	}

	if textFile == Stdout {
		textFile = ""
	}
	return &Response{
		TextFile:       textFile,
		StandardOutput: result.Stdout,
	}, nil
}

func validate(req *Request) error {
	if req == nil {
		return xpdf.NewValidationError("Request cannot be null")
	}
	if err := xpdf.ValidateInput(req.PdfFile); err != nil {
		return err
	}
	if err := xpdf.ValidateOutputPath("TextFile", req.TextFile); err != nil {
		return err
	}
	return req.Options.validate()
}

func (t *Tool) initTextFile(req *Request) (string, error) {
	var textFile string
	if req.TextFile == Stdout {
		return Stdout, nil
	}
	if req.TextFile != "" {
		textFile = req.TextFile
	} else {
		textFile = filepath.Join(t.outputDir, uuid.NewString()+".txt")
		xpdf.DeleteOnExit(textFile)
	}

	textFile, err := xpdf.CanonicalPath(textFile)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(textFile), xpdf.DefaultDirPerm); err != nil {
		return "", err
	}
	return textFile, nil
}

func commandArgs(req *Request, textFile string) ([]string, error) {
	options, err := req.Options.Args()
	if err != nil {
		return nil, err
	}
	pdfFile, err := xpdf.CanonicalPath(req.PdfFile)
	if err != nil {
		return nil, err
	}
	return append(options, pdfFile, textFile), nil
}
