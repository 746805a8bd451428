package sandbox

import (
	"strings"
	"testing"
)

func TestCalculatorPrecedence(t *testing.T) {
	res := Calculator("2+2*3")
	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Err)
	}
	if res.Output != "8" {
		t.Fatalf("expected 8, got %q", res.Output)
	}
}

func TestCalculatorNotationNormalization(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2^10", "1024"},
		{"3×4", "12"},
		{"10÷4", "2.5"},
		{"sqrt(16)", "4"},
		{"√(25)", "5"},
		{"math.sqrt(9)", "3"},
	}
	for _, c := range cases {
		res := Calculator(c.expr)
		if !res.Success {
			t.Fatalf("%s: expected success, got error: %s", c.expr, res.Err)
		}
		if res.Output != c.want {
			t.Fatalf("%s: expected %s, got %q", c.expr, c.want, res.Output)
		}
	}
}

func TestCalculatorFunctions(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"sin(pi/2)", "1"},
		{"log(100, 10)", "2"},
		{"pow(2, 8)", "256"},
		{"max(3, 7, 5)", "7"},
		{"factorial(5)", "120"},
		{"gcd(12, 18)", "6"},
		{"abs(-4) < 5", "True"},
		{"round(3.14159, 2)", "3.14"},
	}
	for _, c := range cases {
		res := Calculator(c.expr)
		if !res.Success {
			t.Fatalf("%s: expected success, got error: %s", c.expr, res.Err)
		}
		if res.Output != c.want {
			t.Fatalf("%s: expected %s, got %q", c.expr, c.want, res.Output)
		}
	}
}

func TestCalculatorRejectsUnknownIdentifier(t *testing.T) {
	for _, expr := range []string{
		"__import__('os')",
		"open('/etc/passwd')",
		"exec(1)",
		"system(1+1)",
	} {
		res := Calculator(expr)
		if res.Success {
			t.Fatalf("%s: expected rejection, got output %q", expr, res.Output)
		}
		if !strings.Contains(res.Err, "non consentita") {
			t.Fatalf("%s: expected allow-list error, got %q", expr, res.Err)
		}
	}
}

func TestCalculatorStructuredErrors(t *testing.T) {
	for _, expr := range []string{"1/0", "2+*3", "sqrt(-1)", ""} {
		res := Calculator(expr)
		if res.Success {
			t.Fatalf("%s: expected failure, got output %q", expr, res.Output)
		}
		if res.Err == "" {
			t.Fatalf("%s: expected a structured error message", expr)
		}
	}
}

func TestCalculatorFloatFormatting(t *testing.T) {
	res := Calculator("1/3")
	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Err)
	}
	if res.Output != "0.3333333333" {
		t.Fatalf("expected 10-decimal rounding, got %q", res.Output)
	}
}

func TestCalculatorPythonModulo(t *testing.T) {
	res := Calculator("-7 % 3")
	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Err)
	}
	if res.Output != "2" {
		t.Fatalf("expected divisor-sign modulo, got %q", res.Output)
	}
}
