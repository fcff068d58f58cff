package xpdf

import (
	"context"
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

func TestInvoke_Success(t *testing.T) {
	script := testutil.WriteScript(t, t.TempDir(), "echo", testutil.EchoArgs)

	result, err := Invoke(context.Background(), []string{script, "-f", "1", "a b"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "-f\n1\na b\n", result.Stdout)
	assert.Empty(t, result.Stderr)
	assert.Positive(t, result.Duration)
}

func TestInvoke_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	for _, code := range []int{1, 2, 3, 42, 99} {
		t.Run(strconv.Itoa(code), func(t *testing.T) {
			script := testutil.WriteScript(t, dir, "exit"+strconv.Itoa(code), testutil.ExitWith(strconv.Itoa(code)))

			result, err := Invoke(context.Background(), []string{script}, 5*time.Second)
			require.NoError(t, err)
			assert.Equal(t, code, result.ExitCode)
			assert.Equal(t, "out\n", result.Stdout)
			assert.Equal(t, "err\n", result.Stderr)
		})
	}
}

func TestInvoke_LargeOutput(t *testing.T) {
	// Well past a pipe buffer; the child would block if nobody read it.
	script := testutil.WriteScript(t, t.TempDir(), "big",
		`i=0; while [ $i -lt 20000 ]; do echo "line $i of output"; i=$((i+1)); done`)

	result, err := Invoke(context.Background(), []string{script}, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 20000, strings.Count(result.Stdout, "\n"))
}

func TestInvoke_Timeout(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "pid")
	script := testutil.WriteScript(t, dir, "sleeper", "echo $$ > "+pidFile+"; "+testutil.Sleeper)

	start := time.Now()
	_, err := Invoke(context.Background(), []string{script}, time.Second)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Less(t, elapsed, 10*time.Second)

	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "Timeout reached before process could finish", xerr.Message)
	assert.Equal(t, "started\n", xerr.StandardOutput)

	data, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	proc, err := os.FindProcess(pid)
	if err == nil {
		assert.Error(t, proc.Signal(syscall.Signal(0)), "process %d should be gone", pid)
	}
}

func TestInvoke_ContextCanceled(t *testing.T) {
	script := testutil.WriteScript(t, t.TempDir(), "sleeper", testutil.Sleeper)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	_, err := Invoke(ctx, []string{script}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTimeout(err))
}

func TestInvoke_StartFailure(t *testing.T) {
	_, err := Invoke(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")

	_, err = Invoke(context.Background(), nil, time.Second)
	assert.Error(t, err)
}
