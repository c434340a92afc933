// Package app implements the application layer for crashmin: the pipeline
// that turns a crash reproducer into a minimized regression test.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.skade.ch/crashmin/internal/adapters/reduce"
	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.skade.ch/crashmin/internal/engine/classify"
	"go.skade.ch/crashmin/internal/engine/oracle"
	"go.skade.ch/crashmin/internal/engine/testgen"
	"go.trai.ch/zerr"
)

// Options are the per-run settings assembled from the config file and the
// command line. The command line wins on conflicts.
type Options struct {
	// Tools locates the external executables.
	Tools domain.ToolPaths

	// Reducer forces a reduction backend ("structural" or "source").
	// Empty picks one from the classified crash site.
	Reducer string

	// Signature pins the crash message the reduction must preserve.
	Signature domain.CrashSignature

	// NoPrepass disables the source-stripping pre-pass.
	NoPrepass bool

	// MaxRegionLines overrides the pre-pass include-region bound.
	MaxRegionLines int

	// Output overrides the synthesized test path.
	Output string

	// KeepScratch leaves the scratch directory behind for inspection.
	KeepScratch bool

	// ExtraArgs are forwarded verbatim to the external reducer.
	ExtraArgs []string
}

// App wires the pipeline stages together.
type App struct {
	loader   ports.ReproLoader
	runner   ports.Runner
	logger   ports.Logger
	reporter ports.Reporter
}

// New creates a new App instance.
func New(loader ports.ReproLoader, runner ports.Runner, logger ports.Logger, reporter ports.Reporter) *App {
	return &App{loader: loader, runner: runner, logger: logger, reporter: reporter}
}

// Run executes the full pipeline for one reproducer: parse, verify,
// classify, reduce, synthesize. It returns the path of the synthesized
// regression test.
//
// Reduction honors ctx cancellation gracefully: an interrupted reducer
// leaves its best result so far in the working copy, and the pipeline
// continues to synthesis with it.
func (a *App) Run(ctx context.Context, path string, opts Options) (string, error) {
	var repro *domain.Reproducer
	err := a.stage("parse reproducer", func() error {
		var err error
		repro, err = a.loader.Load(path, opts.Tools)
		return err
	})
	if err != nil {
		return "", err
	}

	scratch, err := os.MkdirTemp("", "crashmin-")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create scratch directory")
	}
	if opts.KeepScratch {
		a.logger.Info("keeping scratch directory", "path", scratch)
	} else {
		defer os.RemoveAll(scratch)
	}

	working := filepath.Join(scratch, filepath.Base(repro.Input))
	if err := copyFile(repro.Input, working); err != nil {
		return "", err
	}
	linesBefore, err := countLines(working)
	if err != nil {
		return "", err
	}

	o := oracle.New(a.runner, a.logger, opts.Signature)
	job := &domain.ReductionJob{
		Input:      working,
		Directives: repro.Directives,
		Signature:  opts.Signature,
		ScratchDir: scratch,
		ExtraArgs:  opts.ExtraArgs,
	}

	site := domain.SiteFrontend
	if repro.Kind == domain.KindCrashScript {
		var cls domain.Classification
		err = a.stage("classify crash site", func() error {
			inv, err := domain.NewInvocation(repro.Directives[0].Command)
			if err != nil {
				return err
			}
			cls, err = classify.New(o, a.runner, a.logger, opts.Tools).
				Classify(ctx, inv, working, scratch)
			return err
		})
		if err != nil {
			return "", err
		}
		site = cls.Site
		a.logger.Info("classified crash", "site", cls.Site.String())

		job.Directives = []domain.Directive{{Command: cls.Invocation.Tokens()}}
		if cls.Site == domain.SiteBackend {
			job.Input = cls.Artifact
		}
	} else {
		err = a.stage("verify crash", func() error {
			idx, err := a.verifyDirectives(ctx, o, repro.Directives, working)
			if err != nil {
				return err
			}
			job.CrashIndex = idx
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	reducer, err := a.pickReducer(opts, site, job.Input)
	if err != nil {
		return "", err
	}

	if err := a.stage("pre-pass", func() error {
		return a.preprocess(ctx, o, reducer, job)
	}); err != nil {
		return "", err
	}

	err = a.stage("reduce", func() error {
		return reducer.Reduce(ctx, job)
	})
	if err != nil {
		if ctx.Err() == nil {
			return "", err
		}
		// Interrupted. The working copy holds the reducer's best result.
		a.logger.Warn("reduction interrupted, synthesizing from best result so far")
	}

	output := opts.Output
	if output == "" {
		output = testgen.OutputPath(repro.Input, job.Input)
	}
	err = a.stage("synthesize test", func() error {
		return testgen.New(a.logger, opts.Tools).Synthesize(job, output)
	})
	if err != nil {
		return "", err
	}

	linesAfter, err := countLines(job.Input)
	if err != nil {
		return "", err
	}
	a.reporter.Result(output, linesBefore, linesAfter)
	return output, nil
}

// verifyDirectives checks that at least one captured directive still
// reproduces the crash against the working copy and returns the index of the
// first one that does.
func (a *App) verifyDirectives(ctx context.Context, o *oracle.Oracle, directives []domain.Directive, input string) (int, error) {
	for i, d := range directives {
		inv, err := domain.NewInvocation(d.Command)
		if err != nil {
			return 0, err
		}
		ok, err := o.IsInteresting(ctx, inv, input)
		if err != nil {
			return 0, err
		}
		if ok {
			return i, nil
		}
	}
	return 0, zerr.With(zerr.Wrap(domain.ErrNoLongerCrashes, "no directive reproduces the crash"), "input", input)
}

// pickReducer selects the reduction backend: an explicit choice wins,
// otherwise backend crashes and IR inputs get the structural reducer and
// everything else the source-level one.
func (a *App) pickReducer(opts Options, site domain.CrashSite, input string) (ports.Reducer, error) {
	choice := opts.Reducer
	if choice == "" {
		ext := filepath.Ext(input)
		if site == domain.SiteBackend || ext == ".ll" || ext == ".bc" {
			choice = "structural"
		} else {
			choice = "source"
		}
	}

	switch choice {
	case "structural":
		return reduce.NewStructural(a.runner, a.logger, opts.Tools), nil
	case "source":
		src := reduce.NewSource(a.runner, a.logger, opts.Tools)
		src.SkipPrepass = opts.NoPrepass
		src.MaxRegionLines = opts.MaxRegionLines
		return src, nil
	default:
		return nil, zerr.With(zerr.New("unknown reducer"), "reducer", choice)
	}
}

// preprocess runs the backend's pre-pass and adopts the candidate only when
// it still reproduces the crash.
func (a *App) preprocess(ctx context.Context, o *oracle.Oracle, r ports.Reducer, job *domain.ReductionJob) error {
	candidate, err := r.Preprocess(ctx, job)
	if err != nil {
		return err
	}
	if candidate == job.Input {
		return nil
	}

	for _, d := range job.Directives {
		inv, err := domain.NewInvocation(d.Command)
		if err != nil {
			return err
		}
		ok, err := o.IsInteresting(ctx, inv, candidate)
		if err != nil {
			return err
		}
		if ok {
			return copyFile(candidate, job.Input)
		}
	}

	a.logger.Warn("pre-pass result no longer reproduces the crash, discarding it")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // user-provided reproducer
	if err != nil {
		return zerr.Wrap(err, "failed to open input")
	}
	defer in.Close()

	out, err := os.Create(dst) //nolint:gosec // scratch-dir path
	if err != nil {
		return zerr.Wrap(err, "failed to create working copy")
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.Wrap(err, "failed to copy input")
	}
	return out.Close()
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // pipeline-owned file
	if err != nil {
		return 0, zerr.Wrap(err, "failed to read input")
	}
	return len(strings.Split(strings.TrimRight(string(data), "\n"), "\n")), nil
}

// stage reports a pipeline stage around fn.
func (a *App) stage(name string, fn func() error) error {
	a.reporter.StageStart(name)
	err := fn()
	a.reporter.StageDone(name, err)
	return err
}
