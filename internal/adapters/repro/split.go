package repro

import "go.trai.ch/zerr"

// splitCommand tokenizes one shell command line into an argument vector,
// honoring single quotes, double quotes and backslash escapes. It is
// deliberately not a shell: no expansion, no substitution, just quoting.
func splitCommand(line string) ([]string, error) {
	var (
		tokens  []string
		current []rune
		open    bool
	)
	const (
		stateBare = iota
		stateSingle
		stateDouble
	)
	state := stateBare

	flush := func() {
		if open || len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
			open = false
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch state {
		case stateBare:
			switch ch {
			case ' ', '\t':
				flush()
			case '\'':
				state = stateSingle
				open = true
			case '"':
				state = stateDouble
				open = true
			case '\\':
				if i+1 < len(runes) {
					i++
					current = append(current, runes[i])
				}
			default:
				current = append(current, ch)
			}
		case stateSingle:
			if ch == '\'' {
				state = stateBare
			} else {
				current = append(current, ch)
			}
		case stateDouble:
			switch ch {
			case '"':
				state = stateBare
			case '\\':
				if i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\' || runes[i+1] == '$') {
					i++
					current = append(current, runes[i])
				} else {
					current = append(current, ch)
				}
			default:
				current = append(current, ch)
			}
		}
	}
	if state != stateBare {
		return nil, zerr.With(zerr.New("unterminated quote"), "line", line)
	}
	flush()
	return tokens, nil
}
