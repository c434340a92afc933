package app_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skade.ch/crashmin/internal/adapters/logger"
	"go.skade.ch/crashmin/internal/app"
	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var appTools = domain.ToolPaths{
	Clang: "/opt/llvm/bin/clang",
	LLC:   "/opt/llvm/bin/llc",
	Not:   "/opt/llvm/bin/not",
}

// dispatchRunner routes fake process runs by executable base name.
type dispatchRunner struct {
	run func(argv []string, dir string) (*domain.RunResult, error)
}

func (r *dispatchRunner) Run(_ context.Context, argv []string, dir string) (*domain.RunResult, error) {
	return r.run(argv, dir)
}

func quietReporter(ctrl *gomock.Controller) *mocks.MockReporter {
	rep := mocks.NewMockReporter(ctrl)
	rep.EXPECT().StageStart(gomock.Any()).AnyTimes()
	rep.EXPECT().StageDone(gomock.Any(), gomock.Any()).AnyTimes()
	rep.EXPECT().Result(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return rep
}

func crashResult() *domain.RunResult {
	return &domain.RunResult{ExitCode: -1, Signaled: true, Signal: "SIGSEGV", Stderr: "Stack dump:\n..."}
}

func TestRun_RunTestThroughSourceReducer(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int a;\nint main(void) { return 0; }\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindRunTest,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "-O2", "%s"}},
		},
		Input: input,
	}, nil)

	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		switch filepath.Base(argv[0]) {
		case "clang":
			return crashResult(), nil
		case "sh":
			return &domain.RunResult{ExitCode: 0}, nil
		case "creduce":
			// argv is [creduce, script, input]; minimize in place.
			require.NoError(t, os.WriteFile(argv[2], []byte("int a;\n"), 0o644))
			return &domain.RunResult{ExitCode: 0}, nil
		}
		t.Fatalf("unexpected command %v", argv)
		return nil, nil
	}

	output := filepath.Join(t.TempDir(), "crash-reduced.c")
	a := app.New(loader, runner, logger.New(), quietReporter(ctrl))
	got, err := a.Run(context.Background(), input, app.Options{
		Tools:  appTools,
		Output: output,
	})
	require.NoError(t, err)
	assert.Equal(t, output, got)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "// RUN: %clang_cc1 -O2 %s\nint a;\n", string(data))
}

func TestRun_CrashScriptClassifiedFrontend(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int main(void) { return 0; }\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindCrashScript,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "-O2", "%s"}},
		},
		Input: input,
	}, nil)

	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		switch filepath.Base(argv[0]) {
		case "clang":
			// Crashes with and without IR-only emission: a frontend crash.
			return crashResult(), nil
		case "sh":
			return &domain.RunResult{ExitCode: 0}, nil
		case "creduce":
			require.NoError(t, os.WriteFile(argv[2], []byte("int x;\n"), 0o644))
			return &domain.RunResult{ExitCode: 0}, nil
		}
		t.Fatalf("unexpected command %v", argv)
		return nil, nil
	}

	output := filepath.Join(t.TempDir(), "out.c")
	a := app.New(loader, runner, logger.New(), quietReporter(ctrl))
	_, err := a.Run(context.Background(), input, app.Options{
		Tools:  appTools,
		Output: output,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	// The classifier's simplified invocation carries the IR-only flag.
	assert.Equal(t, "// RUN: %clang_cc1 -O2 %s -emit-llvm\nint x;\n", string(data))
}

func TestRun_LaterDirectiveCarriesTheCrash(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int a;\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindRunTest,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/opt", "-O2", "%s", "-o", "/dev/null"}},
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "%s"}},
		},
		Input: input,
	}, nil)

	var script string
	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		switch filepath.Base(argv[0]) {
		case "opt":
			// The first directive runs clean; only the second one crashes.
			return &domain.RunResult{ExitCode: 0}, nil
		case "clang":
			return crashResult(), nil
		case "sh":
			return &domain.RunResult{ExitCode: 0}, nil
		case "creduce":
			data, err := os.ReadFile(argv[1])
			require.NoError(t, err)
			script = string(data)
			return &domain.RunResult{ExitCode: 0}, nil
		}
		t.Fatalf("unexpected command %v", argv)
		return nil, nil
	}

	output := filepath.Join(t.TempDir(), "out.c")
	a := app.New(loader, runner, logger.New(), quietReporter(ctrl))
	_, err := a.Run(context.Background(), input, app.Options{Tools: appTools, Output: output})
	require.NoError(t, err)

	// The crash assertion sits on the crashing directive, not the first one.
	assert.Contains(t, script, "out=$(/opt/llvm/bin/opt -O2 \"$INPUT\" -o /dev/null 2>&1) || exit 1\n")
	assert.Contains(t, script, "out=$(/opt/llvm/bin/not --crash /opt/llvm/bin/clang -cc1 \"$INPUT\" 2>&1) || exit 1\n")
}

func TestRun_NoLongerCrashes(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int x;\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindRunTest,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "%s"}},
		},
		Input: input,
	}, nil)

	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		return &domain.RunResult{ExitCode: 0}, nil
	}

	a := app.New(loader, runner, logger.New(), quietReporter(ctrl))
	_, err := a.Run(context.Background(), input, app.Options{Tools: appTools})
	assert.ErrorIs(t, err, domain.ErrNoLongerCrashes)
}

func TestRun_UnknownReducer(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int x;\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindRunTest,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "%s"}},
		},
		Input: input,
	}, nil)

	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		return crashResult(), nil
	}

	a := app.New(loader, runner, logger.New(), quietReporter(ctrl))
	_, err := a.Run(context.Background(), input, app.Options{Tools: appTools, Reducer: "bisect"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reducer")
}

func TestRun_InterruptedReductionSynthesizesBestSoFar(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int a;\nint b;\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindRunTest,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "%s"}},
		},
		Input: input,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		switch filepath.Base(argv[0]) {
		case "clang":
			return crashResult(), nil
		case "sh":
			return &domain.RunResult{ExitCode: 0}, nil
		case "creduce":
			// Partial progress, then the user hits Ctrl-C.
			require.NoError(t, os.WriteFile(argv[2], []byte("int a;\n"), 0o644))
			cancel()
			return nil, context.Canceled
		}
		t.Fatalf("unexpected command %v", argv)
		return nil, nil
	}

	output := filepath.Join(t.TempDir(), "out.c")
	a := app.New(loader, runner, logger.New(), quietReporter(ctrl))
	_, err := a.Run(ctx, input, app.Options{Tools: appTools, Output: output})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "// RUN: %clang_cc1 %s\nint a;\n", string(data))
}

func TestRun_ReportsStagesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(input, []byte("int a;\n"), 0o644))

	loader := mocks.NewMockReproLoader(ctrl)
	loader.EXPECT().Load(input, appTools).Return(&domain.Reproducer{
		Kind: domain.KindRunTest,
		Directives: []domain.Directive{
			{Command: []string{"/opt/llvm/bin/clang", "-cc1", "%s"}},
		},
		Input: input,
	}, nil)

	runner := &dispatchRunner{}
	runner.run = func(argv []string, _ string) (*domain.RunResult, error) {
		if filepath.Base(argv[0]) == "clang" {
			return crashResult(), nil
		}
		return &domain.RunResult{ExitCode: 0}, nil
	}

	var stages []string
	rep := mocks.NewMockReporter(ctrl)
	rep.EXPECT().StageStart(gomock.Any()).Do(func(name string) {
		stages = append(stages, name)
	}).AnyTimes()
	rep.EXPECT().StageDone(gomock.Any(), nil).AnyTimes()
	rep.EXPECT().Result(gomock.Any(), 1, 1).Times(1)

	a := app.New(loader, runner, logger.New(), rep)
	_, err := a.Run(context.Background(), input, app.Options{
		Tools:  appTools,
		Output: filepath.Join(t.TempDir(), "out.c"),
	})
	require.NoError(t, err)

	assert.True(t, slices.Equal(stages, []string{
		"parse reproducer", "verify crash", "pre-pass", "reduce", "synthesize test",
	}), "got stages %v", stages)
}
