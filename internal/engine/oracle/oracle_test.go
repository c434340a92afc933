package oracle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skade.ch/crashmin/internal/adapters/logger"
	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports/mocks"
	"go.skade.ch/crashmin/internal/engine/oracle"
	"go.uber.org/mock/gomock"
)

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crash.c")
	require.NoError(t, os.WriteFile(path, []byte("int main(void) { return 0; }\n"), 0o644))
	return path
}

func mustInvocation(t *testing.T, tokens ...string) domain.Invocation {
	t.Helper()
	inv, err := domain.NewInvocation(tokens)
	require.NoError(t, err)
	return inv
}

func TestOracle_IsInteresting(t *testing.T) {
	tests := []struct {
		name      string
		signature domain.CrashSignature
		result    *domain.RunResult
		want      bool
	}{
		{
			name:   "abort is interesting",
			result: &domain.RunResult{ExitCode: -1, Signaled: true, Signal: "aborted"},
			want:   true,
		},
		{
			name:   "clean exit is not interesting",
			result: &domain.RunResult{ExitCode: 0},
			want:   false,
		},
		{
			name:   "diagnosed compile error is not interesting",
			result: &domain.RunResult{ExitCode: 1, Stderr: "crash.c:3:1: error: expected ';'\n"},
			want:   false,
		},
		{
			name:   "crash-range exit code is interesting",
			result: &domain.RunResult{ExitCode: 70, Stderr: "Stack dump:\n"},
			want:   true,
		},
		{
			name:   "shell-reported kill status is interesting",
			result: &domain.RunResult{ExitCode: 134},
			want:   true,
		},
		{
			name:   "fatal marker on clean exit is interesting",
			result: &domain.RunResult{ExitCode: 0, Stderr: "fatal error: error in backend: ran out of registers\n"},
			want:   true,
		},
		{
			name:      "matching signature",
			signature: "Cannot select",
			result:    &domain.RunResult{ExitCode: 134, Stderr: "fatal error: Cannot select: t5: i64 = subc\n"},
			want:      true,
		},
		{
			name:      "different crash is not interesting",
			signature: "Cannot select",
			result:    &domain.RunResult{ExitCode: 134, Stderr: "Assertion `N->getOpcode()' failed.\n"},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockRunner(ctrl)

			input := writeInput(t)
			inv := mustInvocation(t, "clang", "-cc1", domain.InputPlaceholder)

			runner.EXPECT().
				Run(gomock.Any(), []string{"clang", "-cc1", input}, "").
				Return(tt.result, nil)

			o := oracle.New(runner, logger.New(), tt.signature)
			got, err := o.IsInteresting(context.Background(), inv, input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOracle_MemoizesIdenticalCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)

	input := writeInput(t)
	inv := mustInvocation(t, "clang", "-cc1", domain.InputPlaceholder)

	// A single child process run serves both queries.
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any(), "").
		Return(&domain.RunResult{ExitCode: -1, Signaled: true}, nil).
		Times(1)

	o := oracle.New(runner, logger.New(), "")
	for range 2 {
		got, err := o.IsInteresting(context.Background(), inv, input)
		require.NoError(t, err)
		assert.True(t, got)
	}
}

func TestOracle_ReRunsWhenInputChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)

	input := writeInput(t)
	inv := mustInvocation(t, "clang", "-cc1", domain.InputPlaceholder)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any(), "").
		Return(&domain.RunResult{ExitCode: -1, Signaled: true}, nil).
		Times(2)

	o := oracle.New(runner, logger.New(), "")
	_, err := o.IsInteresting(context.Background(), inv, input)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(input, []byte("int x;\n"), 0o644))
	_, err = o.IsInteresting(context.Background(), inv, input)
	require.NoError(t, err)
}
