package domain

import "strings"

// CrashSignature is an optional literal substring that must appear on
// captured standard error for a run to count as the same crash. An empty
// signature matches any crash.
type CrashSignature string

// Matches reports whether the captured standard error satisfies the
// signature. The comparison is a verbatim substring match.
func (s CrashSignature) Matches(stderr string) bool {
	if s == "" {
		return true
	}
	return strings.Contains(stderr, string(s))
}

// Empty reports whether no signature filtering is configured.
func (s CrashSignature) Empty() bool { return s == "" }
