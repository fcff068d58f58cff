// Package pdfimages extracts embedded images from PDF files with the Xpdf
// pdfimages executable.
package pdfimages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

const (
	// ExecutableName is the base name of the bundled executable.
	ExecutableName = "pdfimages"
	// ToolDir is the tool's directory under the temp root.
	ToolDir = "pdf-images"
	// DefaultTimeout applies when the config does not set one.
	DefaultTimeout = 30 * time.Second

	defaultPrefixName = "image"
)

// Request asks for the images embedded in PdfFile.
type Request struct {
	// PdfFile is the input PDF. Required.
	PdfFile string `json:"pdf_file"`
	// ImageFilePathPrefix is passed to pdfimages, which writes
	// <prefix>-NNN.<ext>. When empty the images go to a fresh temporary
	// directory that is deleted when the program exits.
	ImageFilePathPrefix string   `json:"image_file_path_prefix,omitempty"`
	Options             *Options `json:"options,omitempty"`
}

// Response lists the extracted image files in directory order.
type Response struct {
	ImageFiles     []string `json:"image_files"`
	StandardOutput string   `json:"standard_output"`

	tempDir string
}

// Temporary reports whether the images live in a temporary directory.
func (r *Response) Temporary() bool {
	return r.tempDir != ""
}

// Remove deletes the temporary image directory now instead of at exit.
// It does nothing when the caller chose the prefix.
func (r *Response) Remove() error {
	if r.tempDir == "" {
		return nil
	}
	return xpdf.RemoveNow(r.tempDir)
}

// Tool runs pdfimages. It is safe for concurrent use.
type Tool struct {
	engine    *xpdf.Engine
	outputDir string
}

// NewTool provisions pdfimages and returns a tool for it.
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

// Process extracts the images of a PDF file.
func (t *Tool) Process(ctx context.Context, req *Request) (*Response, error) {
	var (
		prefix     string
		tempDir    string
		imageFiles []string
	)

	result, err := t.engine.Execute(ctx, xpdf.Job{
		Validate: func() error {
			return validate(req)
		},
		Describe: "output image file path prefix",
		Prepare: func() error {
			var err error
			prefix, tempDir, err = t.initPrefix(req)
			return err
		},
		Args: func() ([]string, error) {
			return commandArgs(req, prefix)
		},
		Collect: func(*xpdf.Result) error {
			var err error
			imageFiles, err = matchingImageFiles(prefix)
			return err
		},
	})
	if err != nil {
		if tempDir != "" {
			_ = xpdf.RemoveNow(tempDir)
		}
		return nil, err
	}

	return &Response{
		ImageFiles:     imageFiles,
		StandardOutput: result.Stdout,
		tempDir:        tempDir,
	}, nil
}

func validate(req *Request) error {
	if req == nil {
		return xpdf.NewValidationError("Request cannot be null")
	}
	if err := xpdf.ValidateInput(req.PdfFile); err != nil {
		return err
	}
	if err := xpdf.ValidateOutputPath("ImageFilePathPrefix", req.ImageFilePathPrefix); err != nil {
		return err
	}
	return req.Options.validate()
}

// initPrefix returns the canonical prefix and, when it made one up, the
// temporary run directory holding it.
func (t *Tool) initPrefix(req *Request) (prefix, runDir string, err error) {
	if req.ImageFilePathPrefix != "" {
		prefix = req.ImageFilePathPrefix
	} else {
		runDir = filepath.Join(t.outputDir, uuid.NewString())
		xpdf.DeleteOnExit(runDir)
		prefix = filepath.Join(runDir, defaultPrefixName)
	}

	if prefix, err = xpdf.CanonicalPath(prefix); err != nil {
		return "", runDir, err
	}
	if err := os.MkdirAll(filepath.Dir(prefix), xpdf.DefaultDirPerm); err != nil {
		return "", runDir, err
	}
	return prefix, runDir, nil
}

func commandArgs(req *Request, prefix string) ([]string, error) {
	options, err := req.Options.Args()
	if err != nil {
		return nil, err
	}
	pdfFile, err := xpdf.CanonicalPath(req.PdfFile)
	if err != nil {
		return nil, err
	}
	return append(options, pdfFile, prefix), nil
}

// matchingImageFiles lists the files pdfimages wrote for prefix, named
// <prefix>-<number>.<extension>.
func matchingImageFiles(prefix string) ([]string, error) {
	dir := filepath.Dir(prefix)
	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(filepath.Base(prefix)) + `-[0-9]+\..+$`)
	if err != nil {
		return nil, fmt.Errorf("failed to build image file pattern: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list image directory: %w", err)
	}

	imageFiles := []string{}
	for _, entry := range entries {
		if entry.Type().IsRegular() && pattern.MatchString(entry.Name()) {
			imageFiles = append(imageFiles, filepath.Join(dir, entry.Name()))
		}
	}
	return imageFiles, nil
}
