package main

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-xpdf/internal/config"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()
	version = "1.2.3"
	buildTime = "2023-12-01_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	for _, want := range []string{
		"MCP Xpdf",
		"Version: 1.2.3",
		"Build Time: 2023-12-01_10:30:00",
		"Git Commit: abc123",
		"Built with: " + runtime.Version(),
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestVersionRequested(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--mode=stdio"}, false},
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"--loglevel=debug", "-v"}, true},
		{[]string{"--verbose"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, versionRequested(tt.args), "args %v", tt.args)
	}
}

func TestRun_ProvisioningFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TempRoot = t.TempDir()
	cfg.PDFText.Path = filepath.Join(t.TempDir(), "missing-pdftotext")

	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set up pdftotext")
}
