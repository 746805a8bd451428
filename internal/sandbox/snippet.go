package sandbox

import (
	"fmt"
	"regexp"
	"strings"
)

var assignPattern = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\s*=([^=].*|)$`)

// PythonMath runs a small line-oriented snippet: assignments, bare
// expressions and print(...) calls over the same allow-listed functions
// as the calculator. No loops, no imports, no attribute access.
//
// The reported output is, in order of preference: captured print lines,
// a variable named result, a variable named risultato, the last
// assigned variable, or a fixed no-output message.
func PythonMath(code string) Result {
	res := Result{Tool: "python_math", Input: code}
	code = strings.ReplaceAll(code, "math.", "")

	lines := splitStatements(code)
	if len(lines) == 0 {
		res.Err = "codice vuoto"
		return res
	}

	// Names assigned anywhere in the snippet are legal references;
	// everything else must come from the allow-list. The scan runs
	// before execution so a forbidden name never evaluates at all.
	assigned := map[string]bool{"print": true}
	for _, line := range lines {
		if m := assignPattern.FindStringSubmatch(line); m != nil {
			assigned[m[1]] = true
		}
	}
	for _, line := range lines {
		if err := checkIdentifiers(line, assigned); err != nil {
			res.Err = err.Error()
			return res
		}
	}

	vars := make(map[string]Value)
	var prints []string
	var lastAssigned string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "print(") && strings.HasSuffix(line, ")"):
			inner := line[len("print(") : len(line)-1]
			var parts []string
			for _, arg := range splitTopLevel(inner) {
				v, err := evalExpression(arg, vars)
				if err != nil {
					res.Err = err.Error()
					return res
				}
				parts = append(parts, FormatValue(v))
			}
			prints = append(prints, strings.Join(parts, " "))
		default:
			if m := assignPattern.FindStringSubmatch(line); m != nil {
				v, err := evalExpression(strings.TrimSpace(m[2]), vars)
				if err != nil {
					res.Err = err.Error()
					return res
				}
				vars[m[1]] = v
				lastAssigned = m[1]
				continue
			}
			if _, err := evalExpression(line, vars); err != nil {
				res.Err = err.Error()
				return res
			}
		}
	}

	switch {
	case len(prints) > 0:
		res.Output = strings.Join(prints, "\n")
	default:
		if v, ok := vars["result"]; ok {
			res.Output = FormatValue(v)
		} else if v, ok := vars["risultato"]; ok {
			res.Output = FormatValue(v)
		} else if lastAssigned != "" {
			res.Output = fmt.Sprintf("%s = %s", lastAssigned, FormatValue(vars[lastAssigned]))
		} else {
			res.Output = "Codice eseguito senza output"
		}
	}
	res.Success = true
	return res
}

// splitStatements breaks the snippet into trimmed statements, dropping
// blank lines and # comments. Semicolons separate statements too.
func splitStatements(code string) []string {
	var out []string
	for _, raw := range strings.Split(code, "\n") {
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		for _, stmt := range strings.Split(raw, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt != "" {
				out = append(out, stmt)
			}
		}
	}
	return out
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}
