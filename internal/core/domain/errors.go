package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedReproducer is returned when a crash-reproducer script does
	// not satisfy the parser's structural contract.
	ErrMalformedReproducer = zerr.New("malformed crash reproducer")

	// ErrNoDirectivesFound is returned when a test file contains no RUN: lines.
	ErrNoDirectivesFound = zerr.New("no RUN: directives found")

	// ErrNoInputPlaceholder is returned when a directive command or an
	// invocation lacks the canonical input placeholder token.
	ErrNoInputPlaceholder = zerr.New("missing input placeholder")

	// ErrNoLongerCrashes is returned by the sanity check before any reduction
	// work when the original invocation no longer reproduces the crash.
	ErrNoLongerCrashes = zerr.New("reproducer no longer crashes")

	// ErrScriptNotInteresting is returned when the generated interestingness
	// script does not itself reproduce the crash. Handing it to an external
	// reducer would silently produce garbage output.
	ErrScriptNotInteresting = zerr.New("interestingness script is not interesting")

	// ErrArtifactMissing is returned when an external tool reported success
	// but the expected output artifact is absent.
	ErrArtifactMissing = zerr.New("expected output artifact is missing")

	// ErrIncludeRegionTooLarge is returned when the source pre-pass would have
	// to skip more consecutive lines inside one expanded-include region than
	// the configured bound allows.
	ErrIncludeRegionTooLarge = zerr.New("expanded include region exceeds skip threshold")

	// ErrToolNotFound is returned when a required external tool cannot be
	// resolved from configuration or PATH.
	ErrToolNotFound = zerr.New("external tool not found")
)
