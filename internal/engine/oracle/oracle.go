// Package oracle implements the interestingness oracle: the predicate every
// reduction step consults to decide whether a candidate still reproduces the
// target crash.
package oracle

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
)

// fatalMarkers are stderr fragments that identify an internal compiler error
// even when the process manages a clean exit. Some internal errors are caught
// and reported without a crash-like exit status.
var fatalMarkers = []string{
	"LLVM ERROR:",
	"fatal error: error in backend",
	"UNREACHABLE executed",
	"Assertion",
	"Stack dump:",
}

// Oracle decides whether a candidate invocation/input pair still reproduces
// the crash this session is chasing. It is pure apart from the spawned child
// process and is safe to call in a tight loop; identical candidates are
// answered from a memo without re-running the child.
type Oracle struct {
	runner    ports.Runner
	logger    ports.Logger
	signature domain.CrashSignature
	memo      map[uint64]bool
}

// New creates an Oracle for one reduction session.
func New(runner ports.Runner, logger ports.Logger, signature domain.CrashSignature) *Oracle {
	return &Oracle{
		runner:    runner,
		logger:    logger,
		signature: signature,
		memo:      make(map[uint64]bool),
	}
}

// IsInteresting runs the invocation against the input file and reports
// whether the result counts as the same crash. A run is interesting when it
// terminates abnormally (killed by a signal or a crash-range exit code), or
// when standard error carries a fatal internal-error marker despite a clean
// exit. Plain diagnosed errors are not interesting. If a crash signature is
// configured, standard error must additionally contain that literal
// substring.
func (o *Oracle) IsInteresting(ctx context.Context, inv domain.Invocation, input string) (bool, error) {
	key, keyed := o.key(inv, input)
	if keyed {
		if hit, ok := o.memo[key]; ok {
			o.logger.Debug("oracle memo hit", "cmd", inv.String(), "interesting", hit)
			return hit, nil
		}
	}

	res, err := o.runner.Run(ctx, inv.Resolve(input), "")
	if err != nil {
		return false, err
	}

	interesting := o.judge(res)
	if keyed {
		o.memo[key] = interesting
	}
	return interesting, nil
}

func (o *Oracle) judge(res *domain.RunResult) bool {
	crashed := res.Crashed() || hasFatalMarker(res.Stderr)
	if !crashed {
		return false
	}
	if !o.signature.Matches(res.Stderr) {
		// Crashed, but not the crash we are reducing. Treating it as
		// interesting would let the reduction drift to an unrelated bug.
		o.logger.Debug("different crash", "want", string(o.signature))
		return false
	}
	return true
}

// key builds the memo key from the argv and the input file identity. When the
// input cannot be stat'ed the run is not memoized: the file is mutating under
// an external reducer.
func (o *Oracle) key(inv domain.Invocation, input string) (uint64, bool) {
	fi, err := os.Stat(input)
	if err != nil {
		return 0, false
	}
	h := xxhash.New()
	for _, tok := range inv.Tokens() {
		_, _ = h.WriteString(tok)
		_, _ = h.WriteString("\x00")
	}
	_, _ = h.WriteString(input)
	_, _ = h.WriteString("\x00" + strconv.FormatInt(fi.Size(), 10))
	_, _ = h.WriteString("\x00" + strconv.FormatInt(fi.ModTime().UnixNano(), 10))
	return h.Sum64(), true
}

func hasFatalMarker(stderr string) bool {
	for _, m := range fatalMarkers {
		if strings.Contains(stderr, m) {
			return true
		}
	}
	return false
}
