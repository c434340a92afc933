package classify

import (
	"os"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
)

// TranslateToLLC rewrites the relevant cc1 flags of a frontend invocation
// into the equivalent flags for the lower-level code-generation tool. Flags
// with no llc counterpart are dropped; the result reads the intermediate
// artifact through the input placeholder and discards its output.
func TranslateToLLC(inv domain.Invocation, llc string) (domain.Invocation, error) {
	tokens := inv.Tokens()
	out := []string{llc}
	var features []string
	softFloat := false

	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		next := func() (string, bool) {
			if i+1 < len(tokens) && tokens[i+1] != domain.InputPlaceholder {
				return tokens[i+1], true
			}
			return "", false
		}

		switch tok {
		case "-triple":
			if v, ok := next(); ok {
				out = append(out, "-mtriple="+v)
				i++
			}
		case "-target-cpu":
			if v, ok := next(); ok {
				out = append(out, "-mcpu="+v)
				i++
			}
		case "-target-feature":
			if v, ok := next(); ok {
				features = append(features, v)
				i++
			}
		case "-target-abi":
			if v, ok := next(); ok {
				out = append(out, "-target-abi="+v)
				i++
			}
		case "-mrelocation-model":
			if v, ok := next(); ok {
				out = append(out, "-relocation-model="+v)
				i++
			}
		case "-mllvm":
			// Internal-optimizer options pass straight through.
			if v, ok := next(); ok {
				out = append(out, v)
				i++
			}
		case "-msoft-float":
			softFloat = true
		case "-mfloat-abi":
			if v, ok := next(); ok {
				if v == "soft" {
					softFloat = true
				}
				i++
			}
		default:
			if lvl, ok := optLevel(tok); ok {
				out = append(out, lvl)
			}
		}
	}

	if softFloat {
		out = append(out, "-float-abi=soft")
	}
	if len(features) > 0 {
		out = append(out, "-mattr="+strings.Join(features, ","))
	}
	out = append(out, domain.InputPlaceholder, "-o", os.DevNull)
	return domain.NewInvocation(out)
}

// optLevel maps cc1 optimization levels onto the ones llc understands.
func optLevel(tok string) (string, bool) {
	switch tok {
	case "-O0", "-O1", "-O2", "-O3":
		return tok, true
	case "-Os", "-Oz", "-O4":
		return "-O2", true
	default:
		return "", false
	}
}
