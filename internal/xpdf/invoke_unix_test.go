//go:build !windows

package xpdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-xpdf/internal/testutil"
)

// forking starts a background sleep, records its pid and waits for it, so
// the pid the tool started is not the one holding the pipes open.
func forking(pidFile string) string {
	return "sleep 30 & echo $! > " + pidFile + "; wait"
}

func readPid(t *testing.T, pidFile string) int {
	t.Helper()
	var pid int
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(pidFile)
		if err != nil {
			return false
		}
		pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	return pid
}

// running reports whether pid is a live process. Zombies waiting for init
// to reap them count as dead.
func running(pid int) bool {
	if data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat")); err == nil {
		fields := strings.Fields(string(data[strings.LastIndexByte(string(data), ')')+1:]))
		return len(fields) > 0 && fields[0] != "Z"
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

func TestInvoke_TimeoutKillsChildren(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "pid")
	script := testutil.WriteScript(t, dir, "forking", forking(pidFile))

	start := time.Now()
	_, err := Invoke(context.Background(), []string{script}, time.Second)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Less(t, elapsed, time.Second+waitDelay)

	pid := readPid(t, pidFile)
	assert.Eventually(t, func() bool { return !running(pid) }, 5*time.Second, 50*time.Millisecond,
		"child %d should be gone", pid)
}

func TestInvoke_ContextCanceledKillsChildren(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "pid")
	script := testutil.WriteScript(t, dir, "forking", forking(pidFile))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		for i := 0; i < 250; i++ {
			if data, err := os.ReadFile(pidFile); err == nil && len(data) > 0 {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	_, err := Invoke(ctx, []string{script}, 0)
	assert.ErrorIs(t, err, context.Canceled)

	pid := readPid(t, pidFile)
	assert.Eventually(t, func() bool { return !running(pid) }, 5*time.Second, 50*time.Millisecond,
		"child %d should be gone", pid)
}
