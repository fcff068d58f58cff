//go:build windows

package xpdf

import (
	"os/exec"
	"strconv"
)

func isolate(*exec.Cmd) {}

// killTree kills the process and its descendants with taskkill, falling
// back to killing the process alone.
func killTree(cmd *exec.Cmd) error {
	pid := strconv.Itoa(cmd.Process.Pid)
	if err := exec.Command("taskkill", "/T", "/F", "/PID", pid).Run(); err != nil {
		return cmd.Process.Kill()
	}
	return nil
}
