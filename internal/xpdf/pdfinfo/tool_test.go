package pdfinfo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-xpdf/internal/log"
	"github.com/a3tai/mcp-xpdf/internal/testutil"
	"github.com/a3tai/mcp-xpdf/internal/xpdf"
)

func stubTool(t *testing.T, body string, timeout time.Duration) (*Tool, string) {
	t.Helper()
	dir := t.TempDir()
	tool, err := NewTool(xpdf.ToolConfig{
		ExecutablePath: testutil.WriteScript(t, dir, ExecutableName, body),
		Timeout:        timeout,
		TempRoot:       t.TempDir(),
		Logger:         log.Nop(),
	})
	require.NoError(t, err)

	pdf := filepath.Join(dir, "in.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n"), 0o644))
	return tool, pdf
}

func TestNewTool_DefaultTimeout(t *testing.T) {
	tool, _ := stubTool(t, testutil.EchoArgs, 0)
	assert.Equal(t, 5*time.Second, tool.Timeout())
}

func TestProcess_CommandLine(t *testing.T) {
	tool, pdf := stubTool(t, testutil.EchoArgs, 5*time.Second)

	resp, err := tool.Process(context.Background(), &Request{
		PdfFile: pdf,
		Options: &Options{MetadataIncluded: true},
	})
	require.NoError(t, err)

	canonical, err := xpdf.CanonicalPath(pdf)
	require.NoError(t, err)
	assert.Equal(t, "-meta\n"+canonical+"\n", resp.StandardOutput)
}

func TestProcess_Errors(t *testing.T) {
	tool, pdf := stubTool(t, testutil.ExitWith("1"), 5*time.Second)

	_, err := tool.Process(context.Background(), nil)
	assert.ErrorIs(t, err, xpdf.ErrValidation)
	assert.EqualError(t, err, "xpdf VALIDATION: Request cannot be null")

	_, err = tool.Process(context.Background(), &Request{PdfFile: pdf + ".missing"})
	assert.ErrorIs(t, err, xpdf.ErrValidation)

	_, err = tool.Process(context.Background(), &Request{PdfFile: pdf})
	var xerr *xpdf.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xpdf.KindExecution, xerr.Kind)
	assert.Equal(t, 1, xerr.ExitCode)
	assert.Equal(t, "Error opening the PDF file", xerr.Message)
}

func TestProcess_Timeout(t *testing.T) {
	tool, pdf := stubTool(t, testutil.Sleeper, time.Second)

	_, err := tool.Process(context.Background(), &Request{PdfFile: pdf})
	assert.ErrorIs(t, err, xpdf.ErrTimeout)
}

func TestProcess_RealExecutable(t *testing.T) {
	exe := testutil.LookPathOrSkip(t, ExecutableName)
	pdf := testutil.WritePDF(t, t.TempDir(), 2)

	tool, err := NewTool(xpdf.ToolConfig{ExecutablePath: exe, TempRoot: t.TempDir(), Logger: log.Nop()})
	require.NoError(t, err)

	resp, err := tool.Process(context.Background(), &Request{PdfFile: pdf})
	require.NoError(t, err)

	var pages string
	for _, line := range strings.Split(resp.StandardOutput, "\n") {
		if strings.HasPrefix(line, "Pages:") {
			pages = strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))
		}
	}
	assert.Equal(t, "2", pages)
}
