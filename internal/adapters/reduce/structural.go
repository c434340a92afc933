package reduce

import (
	"context"
	"os"
	"path/filepath"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.trai.ch/zerr"
)

// reducedBitcodeName is the artifact the structural reducer leaves in its
// working directory on success.
const reducedBitcodeName = "bugpoint-reduced-simplified.bc"

// Structural drives the intermediate-representation reducer. It is faster
// and coarser-grained than source-level reduction: whole functions and
// instructions are removed instead of source statements.
type Structural struct {
	runner ports.Runner
	logger ports.Logger
	tools  domain.ToolPaths
}

// NewStructural creates the structural reduction backend.
func NewStructural(runner ports.Runner, logger ports.Logger, tools domain.ToolPaths) *Structural {
	return &Structural{runner: runner, logger: logger, tools: tools}
}

// Preprocess is a no-op for IR inputs: the reducer itself works on whole
// structural units and gains nothing from a textual pre-pass.
func (s *Structural) Preprocess(_ context.Context, job *domain.ReductionJob) (string, error) {
	return job.Input, nil
}

// Script renders the interestingness script for the job.
func (s *Structural) Script(job *domain.ReductionJob) string {
	return BuildScript(job, s.tools)
}

// Reduce verifies the interestingness script, runs the external reducer and
// disassembles its bitcode artifact back over the working input.
func (s *Structural) Reduce(ctx context.Context, job *domain.ReductionJob) error {
	script, err := writeScript(job, s.Script(job))
	if err != nil {
		return zerr.Wrap(err, "failed to write interestingness script")
	}
	if err := verifyScript(ctx, s.runner, script, job); err != nil {
		return err
	}

	argv := s.reducerArgv(job, script)
	s.logger.Info("running structural reducer", "cmd", argv[0])
	res, err := s.runner.Run(ctx, argv, job.ScratchDir)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return zerr.With(zerr.With(zerr.New("structural reducer failed"),
			"exit_code", res.ExitCode),
			"stderr", tail(res.Stderr),
		)
	}

	artifact := filepath.Join(job.ScratchDir, reducedBitcodeName)
	if _, err := os.Stat(artifact); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactMissing, "reducer produced no bitcode"), "artifact", artifact)
	}
	return s.disassemble(ctx, artifact, job.Input)
}

// reducerArgv picks between the interestingness-script mode and, when no
// crash-signature filtering is needed and the job reduces a codegen-tool
// invocation, the reducer's native codegen mode with a restricted argument
// list.
func (s *Structural) reducerArgv(job *domain.ReductionJob, script string) []string {
	argv := []string{s.tools.Path(domain.ToolBugpoint), job.Input}

	first := job.Directives[job.CrashIndex].Command
	llc := filepath.Base(s.tools.Path(domain.ToolLLC))
	if job.Signature.Empty() && len(first) > 0 && filepath.Base(first[0]) == llc {
		argv = append(argv, "-run-llc", "--tool-args")
		argv = append(argv, codegenFlags(first)...)
	} else {
		argv = append(argv, "-compile-custom", "-compile-command="+script)
	}
	return append(argv, job.ExtraArgs...)
}

// disassemble turns the reduced bitcode back into textual IR and overwrites
// the working input with it.
func (s *Structural) disassemble(ctx context.Context, artifact, dest string) error {
	out := artifact + ".ll"
	res, err := s.runner.Run(ctx, []string{s.tools.Path(domain.ToolLLVMDis), artifact, "-o", out}, "")
	if err != nil {
		return err
	}
	if !res.Ok() {
		return zerr.With(zerr.New("disassembler failed"), "exit_code", res.ExitCode)
	}
	data, err := os.ReadFile(out) //nolint:gosec // scratch-dir artifact
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactMissing, "disassembled output unreadable"), "artifact", out)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil { //nolint:gosec // test output
		return zerr.Wrap(err, "failed to write minimized input")
	}
	return nil
}

// codegenFlags returns the tool arguments of a codegen invocation: everything
// but the executable, the input placeholder and the output redirection.
func codegenFlags(cmd []string) []string {
	var out []string
	for i := 1; i < len(cmd); i++ {
		switch {
		case cmd[i] == domain.InputPlaceholder:
		case cmd[i] == "-o":
			i++
		default:
			out = append(out, cmd[i])
		}
	}
	return out
}

// verifyScript runs the freshly generated interestingness script against the
// current input. A script that does not reproduce the crash would let the
// external reducer silently produce garbage minimized output.
func verifyScript(ctx context.Context, runner ports.Runner, script string, job *domain.ReductionJob) error {
	res, err := runner.Run(ctx, []string{"/bin/sh", script, job.Input}, job.ScratchDir)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrScriptNotInteresting, "script exits non-zero on the unreduced input"), "script", script), "input", job.Input)
	}
	return nil
}

// tail keeps the last few hundred bytes of a stream for error reports.
func tail(s string) string {
	const n = 400
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
