package xpdf

import (
	"io/fs"
	"time"

	"github.com/a3tai/mcp-xpdf/internal/log"
)

// ToolConfig is the caller-facing configuration of a tool. Every field is
// optional.
type ToolConfig struct {
	// ExecutablePath skips provisioning from the bundle.
	ExecutablePath string
	// Timeout of a single invocation; zero selects the tool default.
	Timeout time.Duration

	// TempRoot defaults to DefaultTempRoot().
	TempRoot string
	// Bundle defaults to the embedded executables.
	Bundle fs.FS
	// Target defaults to CurrentTargetSystem().
	Target string

	// Logger defaults to log.Default.
	Logger log.Logger
}

// ToolSpec identifies one of the Xpdf executables.
type ToolSpec struct {
	BaseName       string
	Dir            string
	DefaultTimeout time.Duration
}

// NewToolEngine provisions the executable named by tool and returns an
// engine for it along with the tool's output staging directory.
func NewToolEngine(cfg ToolConfig, tool ToolSpec) (*Engine, string, error) {
	if cfg.Timeout < 0 {
		return nil, "", NewRuntimeError("Timeout cannot be negative", nil)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = tool.DefaultTimeout
	}
	if cfg.TempRoot == "" {
		cfg.TempRoot = DefaultTempRoot()
	}

	executable, err := Provision(ProvisionConfig{
		ExecutablePath: cfg.ExecutablePath,
		BaseName:       tool.BaseName,
		ToolDir:        tool.Dir,
		TempRoot:       cfg.TempRoot,
		Bundle:         cfg.Bundle,
		Target:         cfg.Target,
	})
	if err != nil {
		return nil, "", err
	}

	engine := NewEngine(executable, cfg.Timeout, cfg.Logger)
	return engine, OutputPath(cfg.TempRoot, tool.Dir), nil
}
