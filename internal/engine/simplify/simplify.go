// Package simplify implements the coarse flag-removal pass that strips
// irrelevant noise from a crashing invocation before the heavyweight
// reduction starts.
package simplify

import (
	"context"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
)

// Oracle is the subset of the interestingness oracle the simplifier needs.
type Oracle interface {
	IsInteresting(ctx context.Context, inv domain.Invocation, input string) (bool, error)
}

// TryRemove deletes every token matched by the spec in one batch pass and
// keeps the candidate only if it is still interesting. This is deliberately a
// single coarse step, not delta debugging: exhaustive minimization is
// delegated to the external reducers.
//
// The returned invocation is always one the oracle has accepted (or the
// untouched original, which the caller has already verified).
func TryRemove(
	ctx context.Context,
	o Oracle,
	log ports.Logger,
	inv domain.Invocation,
	input string,
	spec domain.RemovalSpec,
) (domain.Invocation, error) {
	candidate := inv.Apply(spec)
	if candidate.Equal(inv) {
		return inv, nil
	}

	ok, err := o.IsInteresting(ctx, candidate, input)
	if err != nil {
		return inv, err
	}
	if !ok {
		log.Debug("flag removal changed the crash, keeping original", "spec", spec.Name)
		return inv, nil
	}
	log.Debug("removed flags", "spec", spec.Name, "cmd", candidate.String())
	return candidate, nil
}
