// Package classify determines whether a compiler crash lives in the front
// end or in the code generator, and derives the equivalent lower-level
// invocation for backend crashes.
package classify

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.skade.ch/crashmin/internal/engine/simplify"
	"go.trai.ch/zerr"
)

// emitIRFlag requests intermediate-representation-only emission, skipping
// code generation entirely.
const emitIRFlag = "-emit-llvm"

// Classifier walks the crashing invocation through verification, flag
// stripping and the frontend/backend probes.
type Classifier struct {
	oracle simplify.Oracle
	runner ports.Runner
	logger ports.Logger
	tools  domain.ToolPaths
}

// New creates a Classifier.
func New(o simplify.Oracle, runner ports.Runner, logger ports.Logger, tools domain.ToolPaths) *Classifier {
	return &Classifier{oracle: o, runner: runner, logger: logger, tools: tools}
}

// Classify runs the classification state machine:
//
//	VerifyReproduces -> StripDebugInfo -> StripFloatFlags -> StripVerifierFlag
//	-> ProbeFrontend -> {FrontendCrash | ProbeBackend -> {BackendCrash | FrontendCrash}}
//
// scratch receives the emitted intermediate artifact for backend probing.
func (c *Classifier) Classify(
	ctx context.Context,
	inv domain.Invocation,
	input string,
	scratch string,
) (domain.Classification, error) {
	// VerifyReproduces. Nothing below makes sense on an invocation that
	// does not actually crash.
	ok, err := c.oracle.IsInteresting(ctx, inv, input)
	if err != nil {
		return domain.Classification{}, err
	}
	if !ok {
		return domain.Classification{}, zerr.With(zerr.Wrap(domain.ErrNoLongerCrashes, "verification run succeeded"), "input", input)
	}

	// Strip passes, fixed order.
	for _, spec := range []domain.RemovalSpec{
		simplify.DebugInfoSpec(),
		simplify.FloatABISpec(),
		simplify.VerifierSpec(),
	} {
		inv, err = simplify.TryRemove(ctx, c.oracle, c.logger, inv, input, spec)
		if err != nil {
			return domain.Classification{}, err
		}
	}

	// ProbeFrontend: does the crash survive with code generation skipped?
	frontendInv := inv.Append(emitIRFlag)
	ok, err = c.oracle.IsInteresting(ctx, frontendInv, input)
	if err != nil {
		return domain.Classification{}, err
	}
	if ok {
		c.logger.Info("crash reproduces with IR-only emission", "site", "frontend")
		return domain.FrontendCrash(frontendInv), nil
	}

	return c.probeBackend(ctx, inv, input, scratch)
}

// probeBackend emits the intermediate artifact without any crash requirement
// and asks the oracle about the translated code-generator invocation.
func (c *Classifier) probeBackend(
	ctx context.Context,
	inv domain.Invocation,
	input string,
	scratch string,
) (domain.Classification, error) {
	artifact := filepath.Join(scratch, irArtifactName(input))

	emit := inv.Apply(domain.RemovalSpec{Paired: []string{"-o"}}).
		Append(emitIRFlag, "-o", artifact)
	res, err := c.runner.Run(ctx, emit.Resolve(input), "")
	if err != nil {
		return domain.Classification{}, err
	}
	if !res.Ok() || !fileExists(artifact) {
		// Code generation cannot be isolated if the front end cannot even
		// emit the intermediate form.
		c.logger.Info("IR emission failed, keeping full pipeline", "site", "frontend")
		return domain.FrontendCrash(inv), nil
	}

	llcInv, err := TranslateToLLC(inv, c.tools.Path(domain.ToolLLC))
	if err != nil {
		return domain.Classification{}, err
	}

	ok, err := c.oracle.IsInteresting(ctx, llcInv, artifact)
	if err != nil {
		return domain.Classification{}, err
	}
	if !ok {
		// The crash is sensitive to the full compilation pipeline and cannot
		// be cleanly isolated to code generation.
		c.logger.Info("translated codegen invocation does not crash", "site", "frontend")
		return domain.FrontendCrash(inv), nil
	}

	c.logger.Info("crash isolated to code generation", "site", "backend", "artifact", artifact)
	return domain.BackendCrash(llcInv, artifact), nil
}

func irArtifactName(input string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".ll"
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}
