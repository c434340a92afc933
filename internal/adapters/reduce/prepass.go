package reduce

import (
	"regexp"
	"strconv"
	"strings"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.trai.ch/zerr"
)

// defaultMaxRegionLines bounds how many consecutive lines inside one
// expanded-include region the pre-pass may skip before giving up. Beyond
// this, silently producing a gutted file is worse than leaving the work to
// the external reducer.
const defaultMaxRegionLines = 100

// linemarker matches GNU preprocessor linemarkers: `# <line> "<file>" <flags>`.
// Flag 1 opens an included file, flag 2 returns to the includer.
var linemarker = regexp.MustCompile(`^#\s+(\d+)\s+"([^"]*)"((?:\s+\d+)*)\s*$`)

// stripSource is the cheap pre-pass run before source-level reduction: it
// deletes pre-expanded include regions, whole-line comments and #if 0
// blocks, shrinking the reducer's search space. Every other line is
// preserved verbatim.
func stripSource(lines []string, maxRegionLines int) ([]string, error) {
	if maxRegionLines <= 0 {
		maxRegionLines = defaultMaxRegionLines
	}

	out := make([]string, 0, len(lines))
	includeDepth := 0
	regionLines := 0
	ifDepth := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := linemarker.FindStringSubmatch(trimmed); m != nil {
			for _, flag := range strings.Fields(m[3]) {
				switch flag {
				case "1":
					includeDepth++
				case "2":
					if includeDepth > 0 {
						includeDepth--
					}
				}
			}
			if includeDepth == 0 {
				regionLines = 0
			}
			// Linemarkers themselves never survive the pre-pass.
			continue
		}

		if includeDepth > 0 {
			regionLines++
			if regionLines > maxRegionLines {
				return nil, zerr.With(zerr.Wrap(domain.ErrIncludeRegionTooLarge, "expanded include exceeds the skip bound"),
					"limit", strconv.Itoa(maxRegionLines))
			}
			continue
		}

		if ifDepth > 0 {
			switch {
			case strings.HasPrefix(trimmed, "#if"):
				ifDepth++
			case strings.HasPrefix(trimmed, "#endif"):
				ifDepth--
			}
			continue
		}
		if isIfZero(trimmed) {
			ifDepth = 1
			continue
		}

		if strings.HasPrefix(trimmed, "//") {
			continue
		}

		out = append(out, line)
	}
	return out, nil
}

func isIfZero(trimmed string) bool {
	rest, ok := strings.CutPrefix(trimmed, "#if")
	if !ok {
		return false
	}
	fields := strings.Fields(rest)
	return len(fields) == 1 && fields[0] == "0"
}
