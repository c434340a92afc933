package domain

// RunResult captures the observable outcome of one external process run:
// exit status and both output streams. Success or failure of a run is judged
// only from these fields, never from tool-specific knowledge.
type RunResult struct {
	// ExitCode is the process exit code, or -1 when the process was killed
	// by a signal before exiting.
	ExitCode int

	// Signaled is true when the process terminated abnormally (killed by a
	// signal rather than exiting).
	Signaled bool

	// Signal names the terminating signal when Signaled is true.
	Signal string

	Stdout string
	Stderr string
}

// crashExitThreshold is the lowest exit code treated as a crash. Ordinary
// diagnosed failures exit with small codes; crash handlers and abort-style
// terminations use 70 and up (128+signal when the shell reports the kill).
const crashExitThreshold = 70

// Crashed reports whether the run terminated abnormally: killed by a signal
// or exited with a crash-range code. A plain compile error does not count.
func (r *RunResult) Crashed() bool {
	return r.Signaled || r.ExitCode >= crashExitThreshold
}

// Ok reports a clean zero exit.
func (r *RunResult) Ok() bool {
	return !r.Signaled && r.ExitCode == 0
}
