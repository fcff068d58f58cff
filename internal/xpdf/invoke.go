package xpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait keeps draining pipes after the process
// is gone, for executables that leave children holding stdout open.
const waitDelay = 2 * time.Second

// Result is the outcome of a process that exited on its own.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Invoke runs argv[0] with the remaining arguments and waits at most
// timeout for it to exit. Stdout and stderr are drained while the process
// runs. A timeout kills the process group and returns a KindTimeout *Error;
// a done ctx kills it and returns ctx.Err(). A non-zero exit code is not an
// error here. A timeout <= 0 disables the limit.
func Invoke(ctx context.Context, argv []string, timeout time.Duration) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command cannot be empty")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	isolate(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case err := <-done:
		result := &Result{
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Duration: time.Since(start),
		}
		if err == nil {
			return result, nil
		}
		if cmd.ProcessState == nil {
			return nil, fmt.Errorf("failed to wait for %s: %w", argv[0], err)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
			return nil, fmt.Errorf("failed to wait for %s: %w", argv[0], err)
		}
		result.ExitCode = cmd.ProcessState.ExitCode()
		return result, nil

	case <-expired:
		terminate(cmd, done)
		timeoutErr := NewTimeoutError()
		timeoutErr.StandardOutput = stdout.String()
		timeoutErr.ErrorOutput = stderr.String()
		return nil, timeoutErr

	case <-ctx.Done():
		terminate(cmd, done)
		return nil, ctx.Err()
	}
}

// terminate kills the process with everything it forked and waits until it
// has been reaped, after which the output buffers are no longer written.
func terminate(cmd *exec.Cmd, done <-chan error) {
	_ = killTree(cmd)
	<-done
}
