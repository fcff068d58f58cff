package xpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const (
	// Namespace is the directory name shared by the bundle layout and the
	// temp root.
	Namespace = "xpdf"

	// DefaultTempDirName is the directory created under os.TempDir().
	DefaultTempDirName = "xpdf-api"

	binDir = "bin"
	outDir = "out"

	// DefaultDirPerm is used for every directory the tools create.
	DefaultDirPerm = 0o750
)

// TargetSystem maps an operating system name (as reported by runtime.GOOS)
// and a pointer width in bits to the directory of the bundled executables,
// e.g. "linux-64".
func TargetSystem(goos string, bits int) (string, error) {
	if bits != 32 && bits != 64 {
		return "", NewRuntimeError(fmt.Sprintf("Unsupported bit architecture: %d", bits), nil)
	}

	var osName string
	switch goos {
	case "linux":
		osName = "linux"
	case "windows":
		osName = "windows"
	case "darwin":
		if bits != 64 {
			return "", NewRuntimeError("Xpdf tools can only be run as 64-bit on Mac operating system", nil)
		}
		osName = "mac"
	default:
		return "", NewRuntimeError("Xpdf tools can only be run on Windows, Linux, or Mac operating systems", nil)
	}

	return osName + "-" + strconv.Itoa(bits), nil
}

// CurrentTargetSystem returns the target system of the running process.
func CurrentTargetSystem() (string, error) {
	return TargetSystem(runtime.GOOS, strconv.IntSize)
}

// ExecutableName appends the platform suffix to a base executable name.
func ExecutableName(base, target string) string {
	if strings.HasPrefix(target, "windows") {
		return base + ".exe"
	}
	return base
}

// ResourceName is the location of an executable inside the bundle.
// Bundles always use forward slashes (io/fs semantics).
func ResourceName(target, executableName string) string {
	return Namespace + "/" + target + "/" + executableName
}

// DefaultTempRoot returns the root directory for provisioned executables
// and default outputs.
func DefaultTempRoot() string {
	return filepath.Join(os.TempDir(), DefaultTempDirName)
}

// ExecutablePath is where a bundled executable is provisioned.
func ExecutablePath(tempRoot, toolDir, executableName string) string {
	return filepath.Join(tempRoot, toolDir, binDir, executableName)
}

// OutputPath is the staging directory for outputs the caller did not place.
func OutputPath(tempRoot, toolDir string) string {
	return filepath.Join(tempRoot, toolDir, outDir)
}
