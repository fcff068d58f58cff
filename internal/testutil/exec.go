package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// RequireShell skips tests that rely on /bin/sh stub executables.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables are shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteScript writes an executable shell script and returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	RequireShell(t)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("Failed to write script %s: %v", name, err)
	}
	return path
}

// EchoArgs is a script body printing each argument on its own line.
const EchoArgs = `for a in "$@"; do echo "$a"; done`

// ExitWith is a script body that writes to both streams and exits with code.
func ExitWith(code string) string {
	return "echo out; echo err >&2; exit " + code
}

// Sleeper is a script body that replaces the shell with a long sleep, so
// the pid the tool kills is the one that would otherwise linger.
const Sleeper = "echo started; exec sleep 30"

// LookPathOrSkip returns the path of a real executable or skips the test.
func LookPathOrSkip(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found in PATH", name)
	}
	return path
}
