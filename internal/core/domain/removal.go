package domain

import "strings"

// ValuePredicate tests the value token following a paired flag. The pair is
// only removed when the predicate accepts the value.
type ValuePredicate func(value string) bool

// RemovalSpec is a declarative bundle of flag-removal predicates applied to an
// Invocation in one batch pass. Four classes are supported: exact no-argument
// flags, prefix-matched no-argument flags, flags that consume the following
// value token, and flags whose value must satisfy a predicate before the pair
// is removed.
type RemovalSpec struct {
	// Name identifies the spec in logs.
	Name string

	// Exact lists no-argument flags removed on exact match.
	Exact []string

	// Prefixes lists flag prefixes; any token starting with one is removed.
	Prefixes []string

	// Paired lists flags that consume one following value token. Both tokens
	// are removed together.
	Paired []string

	// PairedIf maps flags to a predicate over the following value token. The
	// pair is removed only when the predicate holds.
	PairedIf map[string]ValuePredicate
}

// Empty reports whether the spec matches nothing.
func (s RemovalSpec) Empty() bool {
	return len(s.Exact) == 0 && len(s.Prefixes) == 0 && len(s.Paired) == 0 && len(s.PairedIf) == 0
}

func (s RemovalSpec) matchesExact(tok string) bool {
	for _, f := range s.Exact {
		if tok == f {
			return true
		}
	}
	return false
}

func (s RemovalSpec) matchesPrefix(tok string) bool {
	for _, p := range s.Prefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}

func (s RemovalSpec) matchesPair(tok, next string) bool {
	for _, f := range s.Paired {
		if tok == f {
			return true
		}
	}
	if pred, ok := s.PairedIf[tok]; ok {
		return pred(next)
	}
	return false
}
