package ports

import (
	"context"

	"go.skade.ch/crashmin/internal/core/domain"
)

// Reducer is the contract shared by the two reduction backends. A backend is
// selected once per session and never swapped mid-run.
//
//go:generate mockgen -source=reducer.go -destination=mocks/mock_reducer.go -package=mocks
type Reducer interface {
	// Preprocess may shrink the search space before the main reduction loop
	// and returns the path of the working input to reduce (possibly the
	// unchanged job input).
	Preprocess(ctx context.Context, job *domain.ReductionJob) (string, error)

	// Reduce drives the external delta-debugging tool until it converges.
	// On success the job's working input file holds the minimized result.
	// The call blocks, possibly for hours; cancellation is delivered through
	// ctx and treated by the caller as a graceful stop.
	Reduce(ctx context.Context, job *domain.ReductionJob) error

	// Script renders the POSIX interestingness script handed to the external
	// reducer for the given job.
	Script(job *domain.ReductionJob) string
}
