package domain

// ReductionJob is the unit handed to a reduction backend. It is owned
// exclusively by the backend for the duration of one reduction run: the
// working input file is overwritten in place with the minimized result.
type ReductionJob struct {
	// Input is the working copy of the source or IR file being shrunk.
	Input string

	// Directives are the commands the interestingness script must satisfy,
	// in original order.
	Directives []Directive

	// CrashIndex names the directive that carries the crash assertion. The
	// remaining directives only have to run, they are not required to crash.
	CrashIndex int

	// Signature optionally pins the crash message the reduction must keep.
	Signature CrashSignature

	// ScratchDir is the per-session working directory for generated scripts
	// and reducer artifacts.
	ScratchDir string

	// ExtraArgs are forwarded verbatim to the external reducer.
	ExtraArgs []string
}
