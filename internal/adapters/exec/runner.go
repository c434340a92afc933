// Package exec provides the process runner adapter.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	osexec "os/exec"
	"strings"
	"syscall"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxCapturedBytes bounds each captured stream. Crashing compilers can dump
// megabytes of IR to stderr; the head is enough for signature matching.
const maxCapturedBytes = 4 << 20

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new process runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes argv with captured output and blocks until the child exits.
// The argument vector is passed literally, never through a shell.
func (r *Runner) Run(ctx context.Context, argv []string, dir string) (*domain.RunResult, error) {
	if len(argv) == 0 {
		return nil, zerr.New("empty argument vector")
	}

	cmd := osexec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv comes from the reproducer under reduction
	cmd.Dir = dir
	cmd.Stdin = nil

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open stdout pipe")
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start command"), "cmd", argv[0])
	}

	var stdout, stderr bytes.Buffer
	g := new(errgroup.Group)
	g.Go(func() error { return drain(&stdout, stdoutPipe) })
	g.Go(func() error { return drain(&stderr, stderrPipe) })

	copyErr := g.Wait()
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return nil, zerr.Wrap(ctx.Err(), "command canceled")
	}
	if copyErr != nil {
		return nil, zerr.Wrap(copyErr, "failed to capture command output")
	}

	res := &domain.RunResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if waitErr != nil {
		var exitErr *osexec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, zerr.With(zerr.Wrap(waitErr, "command failed"), "cmd", argv[0])
		}
		res.ExitCode = exitErr.ExitCode()
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.Signaled = true
			res.Signal = ws.Signal().String()
		}
	}

	r.logger.Debug("ran command",
		"cmd", strings.Join(argv, " "),
		"exit_code", res.ExitCode,
		"signaled", res.Signaled,
	)
	return res, nil
}

// drain copies a stream into buf up to maxCapturedBytes, then discards the
// rest so the child never blocks on a full pipe.
func drain(buf *bytes.Buffer, r io.Reader) error {
	if _, err := io.CopyN(buf, r, maxCapturedBytes); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	_, err := io.Copy(io.Discard, r)
	return err
}
