// Package repro parses reproducer files: clang crash-report shell scripts
// and test files with embedded RUN: directives.
package repro

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.trai.ch/zerr"
)

// runDirective matches a RUN: line with an arbitrary leading comment-prefix
// token from any comment syntax (//, ;, #, REM, ...).
var runDirective = regexp.MustCompile(`^\s*(?:\S+\s+)?RUN:\s*(.+)$`)

// Loader implements ports.ReproLoader.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load parses the reproducer at path, resolving tool aliases against tools.
// Shell scripts are treated as crash reproducer scripts; every other
// extension is scanned for RUN: directives.
func (l *Loader) Load(path string, tools domain.ToolPaths) (*domain.Reproducer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve reproducer path")
	}
	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read reproducer")
	}

	if filepath.Ext(abs) == ".sh" {
		return l.parseCrashScript(abs, string(data), tools)
	}
	return l.parseRunTest(abs, string(data), tools)
}

// parseCrashScript handles the script clang emits next to a crash report: a
// sequence of shell invocation lines under a block of # comments. The first
// invocation must name the compiler; its last token is the real source file,
// relative to the script's directory.
func (l *Loader) parseCrashScript(path, content string, tools domain.ToolPaths) (*domain.Reproducer, error) {
	var commands [][]string
	var texts []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		tokens, err := splitCommand(trimmed)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrMalformedReproducer, err.Error())
		}
		if len(tokens) < 2 {
			return nil, zerr.With(zerr.Wrap(domain.ErrMalformedReproducer, "command line has no arguments"), "line", trimmed)
		}
		commands = append(commands, tokens)
		texts = append(texts, trimmed)
	}
	if len(commands) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedReproducer, "no command lines"), "file", path)
	}

	first := commands[0]
	compiler := filepath.Base(tools.Path(domain.ToolClang))
	if !strings.Contains(filepath.Base(first[0]), compiler) {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrMalformedReproducer, "first command is not the compiler"),
			"file", path),
			"executable", first[0],
		)
	}

	srcToken := first[len(first)-1]
	src := srcToken
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(path), src)
	}
	if _, err := os.Stat(src); err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrMalformedReproducer, "source file missing"), "file", path), "source", src)
	}

	directives := make([]domain.Directive, 0, len(commands))
	for i, tokens := range commands {
		cmd := make([]string, len(tokens))
		for j, tok := range tokens {
			switch {
			case tok == srcToken:
				cmd[j] = domain.InputPlaceholder
			case j == 0 && tools.Clang != "":
				// Point the directive at the configured compiler rather
				// than the absolute path baked into the script.
				cmd[j] = tools.Clang
			default:
				cmd[j] = tok
			}
		}
		directives = append(directives, domain.Directive{Text: texts[i], Command: cmd})
	}

	l.logger.Debug("parsed crash script", "file", path, "source", src, "commands", len(directives))
	return &domain.Reproducer{
		Kind:       domain.KindCrashScript,
		Directives: directives,
		Input:      src,
	}, nil
}

// parseRunTest collects RUN: directives from a test file. Every command must
// reference the input through the placeholder token, because the same
// directive set is replayed against a shrinking input later.
func (l *Loader) parseRunTest(path, content string, tools domain.ToolPaths) (*domain.Reproducer, error) {
	var texts []string
	var pending string
	for _, line := range strings.Split(content, "\n") {
		m := runDirective.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if pending != "" {
			text = pending + " " + text
			pending = ""
		}
		if strings.HasSuffix(text, "\\") {
			pending = strings.TrimSpace(strings.TrimSuffix(text, "\\"))
			continue
		}
		texts = append(texts, text)
	}
	if pending != "" {
		texts = append(texts, pending)
	}
	if len(texts) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoDirectivesFound, "no RUN lines"), "file", path)
	}

	directives := make([]domain.Directive, 0, len(texts))
	for _, text := range texts {
		tokens, err := splitCommand(text)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrMalformedReproducer, err.Error())
		}
		cmd := l.normalize(tokens, tools)
		if !hasPlaceholder(cmd) {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrNoInputPlaceholder, "directive never reads the input"), "file", path), "directive", text)
		}
		directives = append(directives, domain.Directive{Text: text, Command: cmd})
	}

	l.logger.Debug("parsed RUN directives", "file", path, "count", len(directives))
	return &domain.Reproducer{
		Kind:       domain.KindRunTest,
		Directives: directives,
		Input:      path,
	}, nil
}

// normalize expands lit-style aliases into concrete tool vectors and drops
// the shell tail from the first pipe onward: directives are replayed as
// literal argument vectors, and output checkers have no bearing on whether
// the compiler crashes.
func (l *Loader) normalize(tokens []string, tools domain.ToolPaths) []string {
	var out []string
	for _, tok := range tokens {
		if tok == "|" {
			break
		}
		switch {
		case strings.HasPrefix(tok, "%"):
			if alias, ok := domain.LookupAlias(tok); ok {
				out = append(out, tools.Path(alias.Tool))
				out = append(out, alias.Flags...)
				continue
			}
			out = append(out, tok)
		case tok == "not":
			out = append(out, tools.Path(domain.ToolNot))
		default:
			out = append(out, tok)
		}
	}
	return out
}

func hasPlaceholder(tokens []string) bool {
	for _, tok := range tokens {
		if tok == domain.InputPlaceholder {
			return true
		}
	}
	return false
}
