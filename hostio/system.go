package hostio

import (
	"context"
	stdErrors "errors"
	"io"
	"os/exec"
	"time"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// SystemOption is a functional option for configuring System.
type SystemOption func(*systemConfig)

type systemConfig struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	shell   string
	timeout time.Duration
}

func defaultSystemConfig() systemConfig {
	return systemConfig{
		shell:   "/bin/sh",
		timeout: 0, // no limit
	}
}

// WithShell sets the shell the command line is passed to with -c.
func WithShell(shell string) SystemOption {
	return func(c *systemConfig) {
		if shell != "" {
			c.shell = shell
		}
	}
}

// WithSystemTimeout bounds the command's run time. A zero or negative
// duration means no limit.
func WithSystemTimeout(d time.Duration) SystemOption {
	return func(c *systemConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithStdio connects the command to the given streams. Nil streams are
// discarded.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) SystemOption {
	return func(c *systemConfig) {
		c.stdin = stdin
		c.stdout = stdout
		c.stderr = stderr
	}
}

// System runs cmdline through the shell and returns its exit code. A
// command that exits non-zero is not an error; failing to start it, or
// running past the timeout, is.
func System(ctx context.Context, cmdline string, opts ...SystemOption) (int, error) {
	cfg := defaultSystemConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	//nolint:gosec // G204: running guest-supplied command lines is what os.System does
	cmd := exec.CommandContext(ctx, cfg.shell, "-c", cmdline)
	cmd.Stdin = cfg.stdin
	cmd.Stdout = cfg.stdout
	cmd.Stderr = cfg.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return -1, &errors.IOError{Operation: "system", Err: context.DeadlineExceeded}
	}

	var exitErr *exec.ExitError
	if stdErrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, &errors.IOError{Operation: "system", Err: err}
}
