package sandbox

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of one sandboxed tool call.
type Result struct {
	Tool    string
	Input   string
	Output  string
	Success bool
	Err     string
}

var identPattern = regexp.MustCompile(`[a-zA-Z_]+`)

// normalize rewrites common math notation into the evaluator's syntax.
func normalize(expr string) string {
	expr = strings.ReplaceAll(expr, "math.", "")
	expr = strings.ReplaceAll(expr, "^", "**")
	expr = strings.ReplaceAll(expr, "×", "*")
	expr = strings.ReplaceAll(expr, "÷", "/")
	expr = strings.ReplaceAll(expr, "√", "sqrt")
	return strings.TrimSpace(expr)
}

// checkIdentifiers scans for bare names and rejects anything outside the
// allow-list before evaluation runs. extra holds snippet-local variable
// names that are also permitted.
func checkIdentifiers(expr string, extra map[string]bool) error {
	for _, id := range identPattern.FindAllString(expr, -1) {
		lower := strings.ToLower(id)
		if id == "_" || allowedFunctions[lower] {
			continue
		}
		if _, ok := mathConstants[lower]; ok {
			continue
		}
		if extra != nil && extra[id] {
			continue
		}
		return fmt.Errorf("Funzione non consentita: %s", id)
	}
	return nil
}

// Calculator evaluates a single arithmetic expression with no ambient
// state. Any identifier outside the allow-list fails the call outright.
func Calculator(expression string) Result {
	res := Result{Tool: "calculator", Input: expression}
	expr := normalize(expression)
	if expr == "" {
		res.Err = "espressione vuota"
		return res
	}
	if err := checkIdentifiers(expr, nil); err != nil {
		res.Err = err.Error()
		return res
	}
	v, err := evalExpression(expr, nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Output = FormatValue(v)
	res.Success = true
	return res
}
