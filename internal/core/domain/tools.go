package domain

import "go.trai.ch/zerr"

// ToolPaths names the external executables the pipeline drives. Every tool is
// consumed through its command-line contract only; an empty field means the
// bare tool name is used and resolution is left to PATH.
type ToolPaths struct {
	// Clang is the compiler under test.
	Clang string `yaml:"clang"`
	// LLC is the lower-level code-generation tool used to isolate backend
	// crashes.
	LLC string `yaml:"llc"`
	// Opt is the standalone optimizer, used when directives reference it.
	Opt string `yaml:"opt"`
	// Not is the crash-assertion wrapper (`not --crash`) used inside
	// generated interestingness scripts.
	Not string `yaml:"not"`
	// LLVMDis disassembles reduced bitcode back to textual IR.
	LLVMDis string `yaml:"llvm-dis"`
	// Bugpoint is the structural intermediate-representation reducer.
	Bugpoint string `yaml:"bugpoint"`
	// Creduce is the source-level statement reducer.
	Creduce string `yaml:"creduce"`
}

// ToolKind identifies one slot of ToolPaths.
type ToolKind string

const (
	ToolClang    ToolKind = "clang"
	ToolLLC      ToolKind = "llc"
	ToolOpt      ToolKind = "opt"
	ToolNot      ToolKind = "not"
	ToolLLVMDis  ToolKind = "llvm-dis"
	ToolBugpoint ToolKind = "bugpoint"
	ToolCreduce  ToolKind = "creduce"
)

// Path returns the configured path for the given tool, falling back to the
// bare tool name.
func (t ToolPaths) Path(kind ToolKind) string {
	var p string
	switch kind {
	case ToolClang:
		p = t.Clang
	case ToolLLC:
		p = t.LLC
	case ToolOpt:
		p = t.Opt
	case ToolNot:
		p = t.Not
	case ToolLLVMDis:
		p = t.LLVMDis
	case ToolBugpoint:
		p = t.Bugpoint
	case ToolCreduce:
		p = t.Creduce
	}
	if p == "" {
		return string(kind)
	}
	return p
}

// Require returns the configured path or ErrToolNotFound when the slot is
// empty and must not fall back to PATH.
func (t ToolPaths) Require(kind ToolKind) (string, error) {
	p := t.Path(kind)
	if p == "" {
		return "", zerr.With(zerr.Wrap(ErrToolNotFound, "no path configured"), "tool", string(kind))
	}
	return p, nil
}
