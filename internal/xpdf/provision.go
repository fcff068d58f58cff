package xpdf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a3tai/mcp-xpdf/internal/xpdf/bundle"
)

// ProvisionConfig describes where an executable comes from.
// Zero values are resolved by Provision: TempRoot to DefaultTempRoot(),
// Bundle to the embedded bundle and Target to CurrentTargetSystem().
type ProvisionConfig struct {
	// ExecutablePath, when set, is used as-is and nothing is copied.
	ExecutablePath string

	BaseName string // e.g. "pdftotext"
	ToolDir  string // e.g. "pdf-text"

	TempRoot string
	Bundle   fs.FS
	Target   string
}

func (c *ProvisionConfig) resolve() error {
	if c.TempRoot == "" {
		c.TempRoot = DefaultTempRoot()
	}
	if c.Bundle == nil {
		c.Bundle = bundle.FS
	}
	if c.Target == "" {
		target, err := CurrentTargetSystem()
		if err != nil {
			return err
		}
		c.Target = target
	}
	return nil
}

// Provision returns the path of a usable executable.
//
// A configured ExecutablePath must exist. Otherwise the bundled executable
// for the target system is copied to TempRoot/ToolDir/bin once; later calls
// find the copy in place and reuse it. Either way the file is made
// executable.
func Provision(cfg ProvisionConfig) (string, error) {
	if cfg.ExecutablePath != "" {
		path, err := filepath.Abs(cfg.ExecutablePath)
		if err != nil {
			return "", NewRuntimeError("Invalid path given for executable", err)
		}
		if _, err := os.Stat(path); err != nil {
			return "", NewRuntimeError("The configured executable does not exist", err)
		}
		if err := setExecutable(path); err != nil {
			return "", err
		}
		return path, nil
	}

	if err := cfg.resolve(); err != nil {
		return "", err
	}

	name := ExecutableName(cfg.BaseName, cfg.Target)
	path := ExecutablePath(cfg.TempRoot, cfg.ToolDir, name)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := copyResource(cfg.Bundle, ResourceName(cfg.Target, name), path); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", NewRuntimeError("Unable to access provisioned executable", err)
	}

	if err := setExecutable(path); err != nil {
		return "", err
	}
	return path, nil
}

// copyResource writes the resource next to dst and renames it into place so
// a concurrent provisioner never observes a partial file.
func copyResource(bundleFS fs.FS, resource, dst string) error {
	src, err := bundleFS.Open(resource)
	if err != nil {
		return NewRuntimeError("Unable to locate executable in resources", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), DefaultDirPerm); err != nil {
		return NewRuntimeError("Unable to copy executable from resources to local system", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return NewRuntimeError("Unable to copy executable from resources to local system", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return NewRuntimeError("Unable to copy executable from resources to local system", err)
	}
	if err := tmp.Close(); err != nil {
		return NewRuntimeError("Unable to copy executable from resources to local system", err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		// Lost the race to another provisioner; its copy is identical.
		if _, statErr := os.Stat(dst); statErr == nil {
			return nil
		}
		return NewRuntimeError(fmt.Sprintf("Unable to copy executable to %s", dst), err)
	}
	return nil
}

func setExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return NewRuntimeError("Unable to set execute permissions on executable", err)
	}
	if info.IsDir() {
		return NewRuntimeError("Unable to set execute permissions on executable",
			fmt.Errorf("%s is a directory", path))
	}
	if info.Mode().Perm()&0o111 == 0o111 {
		return nil
	}
	if err := os.Chmod(path, info.Mode().Perm()|0o111); err != nil {
		return NewRuntimeError("Unable to set execute permissions on executable", err)
	}
	return nil
}
