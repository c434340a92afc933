// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.skade.ch/crashmin/internal/core/domain"
)

// Runner executes one external process and reports its outcome.
//
// Arguments are passed as a literal vector, never through a shell. The call
// blocks until the child exits; output streams are captured in full.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes argv with the given working directory. dir may be empty
	// to inherit the current directory. A non-zero exit is not an error:
	// the exit status is part of the result. An error means the process
	// could not be started or was torn down by context cancellation.
	Run(ctx context.Context, argv []string, dir string) (*domain.RunResult, error)
}
