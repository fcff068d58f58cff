package xpdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/a3tai/mcp-xpdf/internal/log"
)

// Engine runs one xpdf executable. It is immutable after construction and
// safe for concurrent use; every Execute call spawns its own process.
type Engine struct {
	executable string
	timeout    time.Duration
	logger     log.Logger
}

// NewEngine creates an engine for an already provisioned executable.
// A nil logger uses log.Default.
func NewEngine(executable string, timeout time.Duration, logger log.Logger) *Engine {
	if logger == nil {
		logger = log.Default
	}
	return &Engine{
		executable: executable,
		timeout:    timeout,
		logger:     logger,
	}
}

// Executable returns the path of the executable.
func (e *Engine) Executable() string {
	return e.executable
}

// Timeout returns the per-invocation timeout.
func (e *Engine) Timeout() time.Duration {
	return e.timeout
}

// Job holds the tool-specific steps of one invocation.
type Job struct {
	// Validate checks the request. Required.
	Validate func() error

	// Prepare sets up the output location; Describe names it in the log.
	Prepare  func() error
	Describe string

	// Args returns everything after the executable path. Required.
	Args func() ([]string, error)

	// Collect runs after a zero exit code.
	Collect func(*Result) error
}

// Execute runs the job: validate, prepare output, build the command,
// invoke the executable and collect output. Every failure is an *Error;
// errors that are not already one are wrapped as KindProcessing.
func (e *Engine) Execute(ctx context.Context, job Job) (result *Result, err error) {
	e.logger.Debugf("Process starting")
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			err = AsProcessingError(err)
			e.logger.Debugf("Process failed; error: %v", err)
		}
		e.logger.Debugf("Process finished")
	}()

	e.logger.Debugf("Validating request")
	if err := job.Validate(); err != nil {
		return nil, err
	}

	if job.Prepare != nil {
		e.logger.Debugf("Configuring %s", job.Describe)
		if err := job.Prepare(); err != nil {
			return nil, err
		}
	}

	e.logger.Debugf("Building command")
	args, err := job.Args()
	if err != nil {
		return nil, err
	}
	argv := append([]string{e.executable}, args...)

	e.logger.Debugf("Invoking executable; command: %s", redact(argv))
	result, err = Invoke(ctx, argv, e.timeout)
	if err != nil {
		if IsTimeout(err) {
			e.logger.Debugf("Invocation timed out")
		}
		return nil, err
	}
	e.logger.Debugf("Invocation completed; exit code: %d, standard output: %s", result.ExitCode, result.Stdout)

	if result.ExitCode != 0 {
		e.logger.Debugf("Invocation failed; error output: %s", result.Stderr)
		return nil, NewExecutionError(result.ExitCode, result.Stdout, result.Stderr)
	}

	e.logger.Debugf("Invocation succeeded")
	if job.Collect != nil {
		if err := job.Collect(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// IsTimeout reports whether err is a KindTimeout *Error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// redact hides password values in a command line before it is logged.
func redact(argv []string) string {
	parts := make([]string, len(argv))
	copy(parts, argv)
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "-opw" || parts[i] == "-upw" {
			parts[i+1] = "***"
			i++
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
