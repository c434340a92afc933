package domain

// ReproducerKind discriminates the two accepted input shapes.
type ReproducerKind int

const (
	// KindCrashScript is a clang crash-report shell script.
	KindCrashScript ReproducerKind = iota
	// KindRunTest is a test file with embedded RUN: directives.
	KindRunTest
)

// Directive is one run-instruction extracted from a test file: the original
// directive text paired with the normalized command vector it encodes. The
// command references the input file through the placeholder token, never by
// a hardcoded path, so it can be replayed against a shrinking input.
type Directive struct {
	// Text is the directive as it appeared in the source file, comment
	// prefix stripped.
	Text string

	// Command is the normalized argv, with InputPlaceholder standing in for
	// the input file and lit-style tool aliases expanded to concrete paths.
	Command []string
}

// Reproducer is the parser's output: the ordered directive list and the
// resolved input file the directives run against.
type Reproducer struct {
	Kind       ReproducerKind
	Directives []Directive
	// Input is the absolute path of the real source file.
	Input string
}
