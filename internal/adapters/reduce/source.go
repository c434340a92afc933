package reduce

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Source drives the external statement-level source reducer. It is the
// backend for every frontend crash: the crash depends on the full
// compilation pipeline, so reduction has to happen on the source text.
type Source struct {
	runner ports.Runner
	logger ports.Logger
	tools  domain.ToolPaths

	// SkipPrepass disables the include/comment stripping pre-pass.
	SkipPrepass bool

	// MaxRegionLines overrides the pre-pass skip bound when positive.
	MaxRegionLines int
}

// NewSource creates the source-level reduction backend.
func NewSource(runner ports.Runner, logger ports.Logger, tools domain.ToolPaths) *Source {
	return &Source{runner: runner, logger: logger, tools: tools}
}

// Preprocess strips pre-expanded include regions, whole-line comments and
// #if 0 blocks into a candidate file next to the working input. The caller
// decides whether the candidate still reproduces the crash before adopting
// it; a pre-pass that changes the failure must not silently win.
func (s *Source) Preprocess(_ context.Context, job *domain.ReductionJob) (string, error) {
	if s.SkipPrepass {
		return job.Input, nil
	}

	data, err := os.ReadFile(job.Input) //nolint:gosec // working copy in the scratch dir
	if err != nil {
		return "", zerr.Wrap(err, "failed to read working input")
	}
	lines := strings.Split(string(data), "\n")
	stripped, err := stripSource(lines, s.MaxRegionLines)
	if err != nil {
		return "", err
	}
	if len(stripped) == len(lines) {
		return job.Input, nil
	}

	candidate := filepath.Join(job.ScratchDir, "prepass-"+filepath.Base(job.Input))
	if err := os.WriteFile(candidate, []byte(strings.Join(stripped, "\n")), 0o644); err != nil { //nolint:gosec // scratch file
		return "", zerr.Wrap(err, "failed to write pre-pass candidate")
	}
	s.logger.Info("pre-pass stripped lines",
		"before", len(lines),
		"after", len(stripped),
	)
	return candidate, nil
}

// Script renders the interestingness script for the job.
func (s *Source) Script(job *domain.ReductionJob) string {
	return BuildScript(job, s.tools)
}

// Reduce verifies the interestingness script once and hands the input to the
// external reducer, which rewrites the working file in place.
func (s *Source) Reduce(ctx context.Context, job *domain.ReductionJob) error {
	script, err := writeScript(job, s.Script(job))
	if err != nil {
		return zerr.Wrap(err, "failed to write interestingness script")
	}
	if err := verifyScript(ctx, s.runner, script, job); err != nil {
		return err
	}

	argv := []string{s.tools.Path(domain.ToolCreduce), script, job.Input}
	argv = append(argv, job.ExtraArgs...)
	s.logger.Info("running source-level reducer", "cmd", argv[0])

	res, err := s.runner.Run(ctx, argv, filepath.Dir(job.Input))
	if err != nil {
		return err
	}
	if !res.Ok() {
		return zerr.With(zerr.With(zerr.New("source-level reducer failed"),
			"exit_code", res.ExitCode),
			"stderr", tail(res.Stderr),
		)
	}
	return nil
}
