// Package testutil holds fixtures shared by the xpdf tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// SampleText is printed on every page of the PDFs written by WritePDF.
const SampleText = "Hello from xpdf"

// WritePDF writes a PDF with the given number of pages, each showing
// SampleText, and checks that pdfcpu reads it back with that page count.
func WritePDF(t *testing.T, dir string, pages int) string {
	t.Helper()

	data, err := buildPDF(pages)
	if err != nil {
		t.Fatalf("Failed to generate sample PDF: %v", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sample-%d.pdf", pages))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write sample PDF: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open sample PDF: %v", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		t.Fatalf("Sample PDF is not readable: %v", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		t.Fatalf("Sample PDF has no page count: %v", err)
	}
	if ctx.PageCount != pages {
		t.Fatalf("Sample PDF has %d pages, want %d", ctx.PageCount, pages)
	}
	return path
}

// PageCount reads the number of pages of a PDF file.
func PageCount(t *testing.T, path string) int {
	t.Helper()

	f, r, err := ledongthuc.Open(path)
	if err != nil {
		t.Fatalf("Failed to read PDF %s: %v", path, err)
	}
	defer f.Close()
	return r.NumPage()
}

// buildPDF renders one page per count with fpdf, each showing SampleText
// and its page number.
func buildPDF(pages int) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Cell(80, 10, fmt.Sprintf("%s %d", SampleText, i+1))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
