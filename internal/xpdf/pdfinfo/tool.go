// Package pdfinfo reads document information from PDF files with the Xpdf
// pdfinfo executable.
package pdfinfo

import (
	"context"
	"time"

	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

const (
	// ExecutableName is the base name of the bundled executable.
	ExecutableName = "pdfinfo"
	// ToolDir is the tool's directory under the temp root.
	ToolDir = "pdf-info"
	// DefaultTimeout applies when the config does not set one.
	DefaultTimeout = 5 * time.Second
)

// Request asks for the document information of PdfFile.
type Request struct {
	PdfFile string   `json:"pdf_file"`
	Options *Options `json:"options,omitempty"`
}

// Response carries what pdfinfo printed.
type Response struct {
	StandardOutput string `json:"standard_output"`
}

// Tool runs pdfinfo. It is safe for concurrent use.
type Tool struct {
	engine *xpdf.Engine
}

// NewTool provisions pdfinfo and returns a tool for it.
func NewTool(cfg xpdf.ToolConfig) (*Tool, error) {
	engine, _, err := xpdf.NewToolEngine(cfg, xpdf.ToolSpec{
		BaseName:       ExecutableName,
		Dir:            ToolDir,
		DefaultTimeout: DefaultTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Tool{engine: engine}, nil
}

// ExecutablePath returns the path of the executable in use.
func (t *Tool) ExecutablePath() string {
	return t.engine.Executable()
}

// Timeout returns the per-request timeout.
func (t *Tool) Timeout() time.Duration {
	return t.engine.Timeout()
}

// Process runs pdfinfo against a PDF file.
func (t *Tool) Process(ctx context.Context, req *Request) (*Response, error) {
	result, err := t.engine.Execute(ctx, xpdf.Job{
		Validate: func() error {
			return validate(req)
		},
		Args: func() ([]string, error) {
			return commandArgs(req)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Response{StandardOutput: result.Stdout}, nil
}

func validate(req *Request) error {
	if req == nil {
		return xpdf.NewValidationError("Request cannot be null")
	}
	if err := xpdf.ValidateInput(req.PdfFile); err != nil {
		return err
	}
	return req.Options.validate()
}

func commandArgs(req *Request) ([]string, error) {
	options, err := req.Options.Args()
	if err != nil {
		return nil, err
	}
	pdfFile, err := xpdf.CanonicalPath(req.PdfFile)
	if err != nil {
		return nil, err
	}
	return append(options, pdfFile), nil
}
