package simplify

import "go.skade.ch/crashmin/internal/core/domain"

// The three fixed removal specs, applied in order by the classifier. Later
// passes assume earlier irrelevant noise is already gone, which keeps the
// crash message stable across the sequence.

// DebugInfoSpec strips debug-info emission flags. Debug info is almost never
// part of a codegen crash and bloats the reduction search space.
func DebugInfoSpec() domain.RemovalSpec {
	return domain.RemovalSpec{
		Name: "debug-info",
		Exact: []string{
			"-dwarf-column-info",
			"-munwind-tables",
			"-mcrel-debug",
		},
		Prefixes: []string{
			"-debug-info-kind",
			"-dwarf-version",
			"-debugger-tuning",
			"-gcodeview",
			"-split-dwarf",
		},
		Paired: []string{
			"-coverage-notes-file",
			"-coverage-data-file",
			"-fdebug-compilation-dir",
			"-main-file-name",
		},
	}
}

// FloatABISpec strips soft-float selection. The pair predicates only fire on
// the soft variants; an explicit hard-float choice is left alone.
func FloatABISpec() domain.RemovalSpec {
	return domain.RemovalSpec{
		Name:  "float-abi",
		Exact: []string{"-msoft-float"},
		PairedIf: map[string]domain.ValuePredicate{
			"-mfloat-abi": func(v string) bool { return v == "soft" },
			"-target-feature": func(v string) bool {
				return v == "+soft-float" || v == "-hard-float"
			},
		},
	}
}

// VerifierSpec strips the IR-verifier disable flag. Reductions are more
// trustworthy with the verifier active.
func VerifierSpec() domain.RemovalSpec {
	return domain.RemovalSpec{
		Name:  "verifier",
		Exact: []string{"-disable-llvm-verifier"},
	}
}
