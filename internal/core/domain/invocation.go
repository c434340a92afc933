// Package domain holds the core types of the crash-minimization pipeline.
package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// InputPlaceholder is the canonical token standing in for the input file
// inside an Invocation or a Directive command. It matches the placeholder
// convention used by RUN: directives.
const InputPlaceholder = "%s"

// Invocation is an ordered command-line vector: executable path, flags and
// exactly one input placeholder. Invocations are immutable; every transform
// returns a new value.
type Invocation struct {
	tokens []string
}

// NewInvocation validates the token vector and returns an Invocation.
// Exactly one token must be the input placeholder.
func NewInvocation(tokens []string) (Invocation, error) {
	if len(tokens) == 0 {
		return Invocation{}, zerr.New("empty invocation")
	}
	n := 0
	for _, tok := range tokens {
		if tok == InputPlaceholder {
			n++
		}
	}
	if n != 1 {
		return Invocation{}, zerr.With(zerr.Wrap(ErrNoInputPlaceholder, "invocation needs exactly one input slot"), "tokens", strings.Join(tokens, " "))
	}
	return Invocation{tokens: slices.Clone(tokens)}, nil
}

// Executable returns the first token of the vector.
func (inv Invocation) Executable() string {
	if len(inv.tokens) == 0 {
		return ""
	}
	return inv.tokens[0]
}

// Tokens returns a copy of the token vector, placeholder included.
func (inv Invocation) Tokens() []string {
	return slices.Clone(inv.tokens)
}

// Resolve substitutes the input placeholder and returns the concrete argv.
func (inv Invocation) Resolve(input string) []string {
	argv := make([]string, len(inv.tokens))
	for i, tok := range inv.tokens {
		if tok == InputPlaceholder {
			argv[i] = input
		} else {
			argv[i] = tok
		}
	}
	return argv
}

// Append returns a new Invocation with the given flags added at the end.
// The placeholder invariant is unaffected: appended tokens are opaque flags.
func (inv Invocation) Append(flags ...string) Invocation {
	tokens := make([]string, 0, len(inv.tokens)+len(flags))
	tokens = append(tokens, inv.tokens...)
	tokens = append(tokens, flags...)
	return Invocation{tokens: tokens}
}

// Apply deletes every token matched by the spec in a single pass and returns
// the result. The executable and the input placeholder are never removed.
func (inv Invocation) Apply(spec RemovalSpec) Invocation {
	out := make([]string, 0, len(inv.tokens))
	skipNext := false
	for i, tok := range inv.tokens {
		if skipNext {
			skipNext = false
			continue
		}
		if i == 0 || tok == InputPlaceholder {
			out = append(out, tok)
			continue
		}
		if spec.matchesExact(tok) || spec.matchesPrefix(tok) {
			continue
		}
		if next, ok := inv.peek(i); ok && spec.matchesPair(tok, next) && next != InputPlaceholder {
			skipNext = true
			continue
		}
		out = append(out, tok)
	}
	return Invocation{tokens: out}
}

// Equal reports whether two invocations carry the same token vector.
func (inv Invocation) Equal(other Invocation) bool {
	return slices.Equal(inv.tokens, other.tokens)
}

// String renders the vector for logging. Tokens containing whitespace are
// quoted so the output can be pasted into a shell.
func (inv Invocation) String() string {
	parts := make([]string, len(inv.tokens))
	for i, tok := range inv.tokens {
		parts[i] = QuoteToken(tok)
	}
	return strings.Join(parts, " ")
}

func (inv Invocation) peek(i int) (string, bool) {
	if i+1 >= len(inv.tokens) {
		return "", false
	}
	return inv.tokens[i+1], true
}

// QuoteToken wraps a token in double quotes when it contains characters that
// a POSIX shell would interpret.
func QuoteToken(tok string) string {
	if tok == "" {
		return `""`
	}
	if strings.ContainsAny(tok, " \t\"'$&|;<>()*?[]#~") {
		return `"` + strings.ReplaceAll(tok, `"`, `\"`) + `"`
	}
	return tok
}
