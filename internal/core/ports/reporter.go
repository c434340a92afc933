package ports

// Reporter is the abstraction for user-facing progress output. It decouples
// pipeline control flow from presentation, so stages report events without
// knowing whether a styled terminal or plain CI logs consume them.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// StageStart is called when a pipeline stage begins.
	StageStart(name string)

	// StageDone is called when a stage finishes. err is nil on success.
	StageDone(name string, err error)

	// Result reports the final artifact: the synthesized test path and the
	// input line counts before and after reduction.
	Result(output string, linesBefore, linesAfter int)
}
