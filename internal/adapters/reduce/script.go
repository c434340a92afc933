// Package reduce implements the two reduction backend adapters behind the
// ports.Reducer contract: a structural intermediate-representation reducer
// and a source-level statement reducer.
package reduce

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
)

// scriptName is the interestingness script file written into the scratch dir.
const scriptName = "interesting.sh"

// BuildScript renders the POSIX interestingness script for a job. The script
// re-runs every captured directive against the candidate input; the directive
// at the job's CrashIndex carries the crash assertion (the `not --crash`
// wrapper) and, when a crash signature is configured, a literal-substring
// grep over the captured output. The other directives only have to run
// without failing. Exit code 0 means "still interesting", per the convention
// both external reducers share.
//
// The candidate is taken from $1 when the reducer passes one, falling back to
// the working input's basename for reducers that run the script next to a
// copy of the file.
func BuildScript(job *domain.ReductionJob, tools domain.ToolPaths) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Interestingness test generated by crashmin.\n")
	b.WriteString("# Exits 0 when the target crash still reproduces on the candidate input.\n")
	fmt.Fprintf(&b, "INPUT=\"${1:-%s}\"\n\n", filepath.Base(job.Input))

	not := domain.QuoteToken(tools.Path(domain.ToolNot))
	for i, d := range job.Directives {
		if i != job.CrashIndex {
			fmt.Fprintf(&b, "out=$(%s 2>&1) || exit 1\n", renderCommand(d.Command))
			continue
		}
		fmt.Fprintf(&b, "out=$(%s --crash %s 2>&1) || exit 1\n", not, renderCommand(d.Command))
		if !job.Signature.Empty() {
			fmt.Fprintf(&b, "printf '%%s\\n' \"$out\" | grep -qF -- %s || exit 1\n",
				domain.QuoteToken(string(job.Signature)))
		}
	}
	b.WriteString("\nexit 0\n")
	return b.String()
}

// renderCommand quotes a directive command for the script, substituting the
// input placeholder with the $INPUT variable.
func renderCommand(cmd []string) string {
	parts := make([]string, len(cmd))
	for i, tok := range cmd {
		if tok == domain.InputPlaceholder {
			parts[i] = `"$INPUT"`
		} else {
			parts[i] = domain.QuoteToken(tok)
		}
	}
	return strings.Join(parts, " ")
}

// writeScript materializes the script in the job's scratch dir, executable.
func writeScript(job *domain.ReductionJob, content string) (string, error) {
	path := filepath.Join(job.ScratchDir, scriptName)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil { //nolint:gosec // the script must be executable
		return "", err
	}
	return path, nil
}
