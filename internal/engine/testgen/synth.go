// Package testgen synthesizes a self-contained regression test from a
// finished reduction: the captured run directives contracted back to their
// lit-style aliases, followed by the minimized input.
package testgen

import (
	"os"
	"path/filepath"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Synthesizer renders and writes regression test files.
type Synthesizer struct {
	logger ports.Logger
	tools  domain.ToolPaths
}

// New creates a test synthesizer.
func New(logger ports.Logger, tools domain.ToolPaths) *Synthesizer {
	return &Synthesizer{logger: logger, tools: tools}
}

// OutputPath derives the regression test path from the original reproducer
// input and the minimized working file: the original's stem with a
// "-reduced" suffix, the minimized file's extension, next to the original.
func OutputPath(original, minimized string) string {
	base := filepath.Base(original)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(original), stem+"-reduced"+filepath.Ext(minimized))
}

// Synthesize writes the regression test for a job to dest: one RUN line per
// directive and the minimized input as the body. Synthesizing the result of
// a previous synthesis reproduces it byte for byte.
func (s *Synthesizer) Synthesize(job *domain.ReductionJob, dest string) error {
	body, err := os.ReadFile(job.Input) //nolint:gosec // reduction output
	if err != nil {
		return zerr.Wrap(err, "failed to read minimized input")
	}

	prefix := commentPrefix(dest)
	var b strings.Builder
	for _, d := range job.Directives {
		b.WriteString(prefix)
		b.WriteString(" RUN: ")
		b.WriteString(strings.Join(s.contract(d.Command), " "))
		b.WriteString("\n")
	}
	for _, line := range strings.Split(strings.TrimRight(string(body), "\n"), "\n") {
		if isRunLine(line) {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if err := os.WriteFile(dest, []byte(b.String()), 0o644); err != nil { //nolint:gosec // test output
		return zerr.Wrap(err, "failed to write regression test")
	}
	s.logger.Info("wrote regression test", "path", dest)
	return nil
}

// contract rewrites a normalized command back into directive form: the
// executable and any implied flags fold into the most specific matching
// alias, tool paths shrink to bare names.
func (s *Synthesizer) contract(cmd []string) []string {
	if len(cmd) == 0 {
		return nil
	}
	for _, a := range domain.Aliases {
		if !s.isTool(cmd[0], a.Tool) {
			continue
		}
		rest, matched := removeSubsequence(cmd[1:], a.Flags)
		if !matched {
			continue
		}
		return append([]string{a.Token}, s.bareTools(rest)...)
	}
	return append([]string{filepath.Base(cmd[0])}, s.bareTools(cmd[1:])...)
}

// isTool reports whether an argv token names the given tool, either by its
// configured path or by bare name.
func (s *Synthesizer) isTool(token string, kind domain.ToolKind) bool {
	return token == s.tools.Path(kind) || filepath.Base(token) == string(kind)
}

// bareTools shrinks known tool paths inside a tail of arguments back to bare
// names, so synthesized tests do not hardcode this machine's layout.
func (s *Synthesizer) bareTools(args []string) []string {
	kinds := []domain.ToolKind{
		domain.ToolClang, domain.ToolLLC, domain.ToolOpt,
		domain.ToolNot, domain.ToolLLVMDis,
	}
	out := make([]string, len(args))
	for i, tok := range args {
		out[i] = tok
		for _, k := range kinds {
			if tok == s.tools.Path(k) {
				out[i] = string(k)
				break
			}
		}
	}
	return out
}

// removeSubsequence deletes flags from args when they occur in order,
// returning the remainder and whether all flags were found.
func removeSubsequence(args, flags []string) ([]string, bool) {
	if len(flags) == 0 {
		return args, true
	}
	out := make([]string, 0, len(args))
	j := 0
	for _, tok := range args {
		if j < len(flags) && tok == flags[j] {
			j++
			continue
		}
		out = append(out, tok)
	}
	if j != len(flags) {
		return args, false
	}
	return out, true
}

// commentPrefix picks the directive comment leader for a test file.
func commentPrefix(path string) string {
	switch filepath.Ext(path) {
	case ".ll", ".mir", ".s":
		return ";"
	default:
		return "//"
	}
}

// isRunLine reports whether a body line is a leftover run directive from a
// previous synthesis or from the original test file.
func isRunLine(line string) bool {
	trimmed := strings.TrimLeft(strings.TrimSpace(line), "/;# ")
	return strings.HasPrefix(trimmed, "RUN:")
}
