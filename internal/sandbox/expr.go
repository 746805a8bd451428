package sandbox

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a number or a boolean. Comparisons produce booleans so
// verification snippets like `abs(x-4) < 1e-9` work.
type Value struct {
	Num    float64
	Bool   bool
	IsBool bool
}

func number(f float64) Value { return Value{Num: f} }
func boolean(b bool) Value   { return Value{Bool: b, IsBool: true} }

func (v Value) asNumber() (float64, error) {
	if v.IsBool {
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	}
	return v.Num, nil
}

// FormatValue renders a value the way the tool reports it: booleans as
// True/False, integral floats without a decimal part, everything else
// rounded to 10 decimals.
func FormatValue(v Value) string {
	if v.IsBool {
		if v.Bool {
			return "True"
		}
		return "False"
	}
	f := v.Num
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	rounded := math.Round(f*1e10) / 1e10
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// ---- tokenizer ----

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func tokenize(input string) ([]token, error) {
	var out []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			seenExp := false
			for j < len(input) {
				ch := input[j]
				if ch >= '0' && ch <= '9' || ch == '.' {
					j++
					continue
				}
				if (ch == 'e' || ch == 'E') && !seenExp && j+1 < len(input) {
					next := input[j+1]
					if next >= '0' && next <= '9' || next == '+' || next == '-' {
						seenExp = true
						j += 2
						continue
					}
				}
				break
			}
			f, err := strconv.ParseFloat(input[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("numero non valido: %s", input[i:j])
			}
			out = append(out, token{kind: tokNumber, num: f})
			i = j
		case isIdentChar(c):
			j := i
			for j < len(input) && (isIdentChar(input[j]) || input[j] >= '0' && input[j] <= '9') {
				j++
			}
			out = append(out, token{kind: tokIdent, text: input[i:j]})
			i = j
		case c == '(':
			out = append(out, token{kind: tokLParen})
			i++
		case c == ')':
			out = append(out, token{kind: tokRParen})
			i++
		case c == ',':
			out = append(out, token{kind: tokComma})
			i++
		case c == '[' || c == ']':
			// The original tolerated brackets in expressions; treat as parens.
			if c == '[' {
				out = append(out, token{kind: tokLParen})
			} else {
				out = append(out, token{kind: tokRParen})
			}
			i++
		default:
			op, n := matchOperator(input[i:])
			if n == 0 {
				return nil, fmt.Errorf("carattere non valido: %q", string(c))
			}
			out = append(out, token{kind: tokOp, text: op})
			i += n
		}
	}
	out = append(out, token{kind: tokEOF})
	return out, nil
}

func matchOperator(s string) (string, int) {
	for _, op := range []string{"**", "//", "==", "!=", "<=", ">="} {
		if strings.HasPrefix(s, op) {
			return op, 2
		}
	}
	switch s[0] {
	case '+', '-', '*', '/', '%', '<', '>':
		return s[:1], 1
	}
	return "", 0
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// ---- parser / evaluator ----

type evaluator struct {
	toks []token
	pos  int
	vars map[string]Value
}

func evalExpression(input string, vars map[string]Value) (Value, error) {
	toks, err := tokenize(input)
	if err != nil {
		return Value{}, err
	}
	ev := &evaluator{toks: toks, vars: vars}
	v, err := ev.comparison()
	if err != nil {
		return Value{}, err
	}
	if ev.peek().kind != tokEOF {
		return Value{}, fmt.Errorf("espressione non valida")
	}
	return v, nil
}

func (ev *evaluator) peek() token { return ev.toks[ev.pos] }
func (ev *evaluator) next() token {
	t := ev.toks[ev.pos]
	if t.kind != tokEOF {
		ev.pos++
	}
	return t
}

func (ev *evaluator) comparison() (Value, error) {
	left, err := ev.additive()
	if err != nil {
		return Value{}, err
	}
	t := ev.peek()
	if t.kind != tokOp {
		return left, nil
	}
	switch t.text {
	case "==", "!=", "<", "<=", ">", ">=":
		ev.next()
		right, err := ev.additive()
		if err != nil {
			return Value{}, err
		}
		a, err := left.asNumber()
		if err != nil {
			return Value{}, err
		}
		b, err := right.asNumber()
		if err != nil {
			return Value{}, err
		}
		switch t.text {
		case "==":
			return boolean(a == b), nil
		case "!=":
			return boolean(a != b), nil
		case "<":
			return boolean(a < b), nil
		case "<=":
			return boolean(a <= b), nil
		case ">":
			return boolean(a > b), nil
		default:
			return boolean(a >= b), nil
		}
	}
	return left, nil
}

func (ev *evaluator) additive() (Value, error) {
	left, err := ev.term()
	if err != nil {
		return Value{}, err
	}
	for {
		t := ev.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		ev.next()
		right, err := ev.term()
		if err != nil {
			return Value{}, err
		}
		a, _ := left.asNumber()
		b, _ := right.asNumber()
		if t.text == "+" {
			left = number(a + b)
		} else {
			left = number(a - b)
		}
	}
}

func (ev *evaluator) term() (Value, error) {
	left, err := ev.unary()
	if err != nil {
		return Value{}, err
	}
	for {
		t := ev.peek()
		if t.kind != tokOp {
			return left, nil
		}
		switch t.text {
		case "*", "/", "%", "//":
		default:
			return left, nil
		}
		ev.next()
		right, err := ev.unary()
		if err != nil {
			return Value{}, err
		}
		a, _ := left.asNumber()
		b, _ := right.asNumber()
		switch t.text {
		case "*":
			left = number(a * b)
		case "/":
			if b == 0 {
				return Value{}, fmt.Errorf("divisione per zero")
			}
			left = number(a / b)
		case "//":
			if b == 0 {
				return Value{}, fmt.Errorf("divisione per zero")
			}
			left = number(math.Floor(a / b))
		case "%":
			if b == 0 {
				return Value{}, fmt.Errorf("divisione per zero")
			}
			m := math.Mod(a, b)
			// Python semantics: result takes the sign of the divisor.
			if m != 0 && (m < 0) != (b < 0) {
				m += b
			}
			left = number(m)
		}
	}
}

func (ev *evaluator) unary() (Value, error) {
	t := ev.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		ev.next()
		v, err := ev.unary()
		if err != nil {
			return Value{}, err
		}
		n, err := v.asNumber()
		if err != nil {
			return Value{}, err
		}
		if t.text == "-" {
			return number(-n), nil
		}
		return number(n), nil
	}
	return ev.power()
}

func (ev *evaluator) power() (Value, error) {
	base, err := ev.atom()
	if err != nil {
		return Value{}, err
	}
	t := ev.peek()
	if t.kind == tokOp && t.text == "**" {
		ev.next()
		// Right-associative; exponent may carry a unary sign.
		exp, err := ev.unary()
		if err != nil {
			return Value{}, err
		}
		a, _ := base.asNumber()
		b, _ := exp.asNumber()
		return number(math.Pow(a, b)), nil
	}
	return base, nil
}

func (ev *evaluator) atom() (Value, error) {
	t := ev.next()
	switch t.kind {
	case tokNumber:
		return number(t.num), nil
	case tokLParen:
		v, err := ev.comparison()
		if err != nil {
			return Value{}, err
		}
		if ev.next().kind != tokRParen {
			return Value{}, fmt.Errorf("parentesi non bilanciate")
		}
		return v, nil
	case tokIdent:
		name := strings.ToLower(t.text)
		if ev.peek().kind == tokLParen {
			ev.next()
			args, err := ev.callArgs()
			if err != nil {
				return Value{}, err
			}
			return callFunction(name, args)
		}
		if c, ok := mathConstants[name]; ok {
			return number(c), nil
		}
		if ev.vars != nil {
			if v, ok := ev.vars[t.text]; ok {
				return v, nil
			}
		}
		return Value{}, fmt.Errorf("nome non definito: %s", t.text)
	default:
		return Value{}, fmt.Errorf("espressione non valida")
	}
}

func (ev *evaluator) callArgs() ([]Value, error) {
	var args []Value
	if ev.peek().kind == tokRParen {
		ev.next()
		return args, nil
	}
	for {
		v, err := ev.comparison()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		t := ev.next()
		if t.kind == tokRParen {
			return args, nil
		}
		if t.kind != tokComma {
			return nil, fmt.Errorf("parentesi non bilanciate")
		}
	}
}
