package sandbox

import (
	"fmt"
	"math"
)

// mathConstants are the only bare names an expression may reference
// (besides variables bound inside a snippet).
var mathConstants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"inf": math.Inf(1),
}

// allowedFunctions is the calculator allow-list. Any identifier outside
// this set (and mathConstants) fails the call before evaluation.
var allowedFunctions = map[string]bool{
	"abs": true, "round": true, "min": true, "max": true, "sum": true,
	"pow": true, "sqrt": true,
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true, "atan2": true,
	"sinh": true, "cosh": true, "tanh": true,
	"exp": true, "log": true, "log10": true, "log2": true,
	"floor": true, "ceil": true,
	"factorial": true, "gcd": true, "lcm": true,
	"degrees": true, "radians": true,
}

func callFunction(name string, args []Value) (Value, error) {
	if !allowedFunctions[name] {
		return Value{}, fmt.Errorf("Funzione non consentita: %s", name)
	}
	nums := make([]float64, len(args))
	for i, a := range args {
		n, err := a.asNumber()
		if err != nil {
			return Value{}, err
		}
		nums[i] = n
	}
	one := func(fn func(float64) float64) (Value, error) {
		if len(nums) != 1 {
			return Value{}, fmt.Errorf("%s richiede 1 argomento", name)
		}
		return number(fn(nums[0])), nil
	}
	switch name {
	case "abs":
		return one(math.Abs)
	case "sqrt":
		if len(nums) == 1 && nums[0] < 0 {
			return Value{}, fmt.Errorf("radice quadrata di un numero negativo")
		}
		return one(math.Sqrt)
	case "sin":
		return one(math.Sin)
	case "cos":
		return one(math.Cos)
	case "tan":
		return one(math.Tan)
	case "asin":
		return one(math.Asin)
	case "acos":
		return one(math.Acos)
	case "atan":
		return one(math.Atan)
	case "sinh":
		return one(math.Sinh)
	case "cosh":
		return one(math.Cosh)
	case "tanh":
		return one(math.Tanh)
	case "exp":
		return one(math.Exp)
	case "log10":
		return one(math.Log10)
	case "log2":
		return one(math.Log2)
	case "floor":
		return one(math.Floor)
	case "ceil":
		return one(math.Ceil)
	case "degrees":
		return one(func(x float64) float64 { return x * 180 / math.Pi })
	case "radians":
		return one(func(x float64) float64 { return x * math.Pi / 180 })
	case "log":
		switch len(nums) {
		case 1:
			return number(math.Log(nums[0])), nil
		case 2:
			if nums[1] <= 0 || nums[1] == 1 {
				return Value{}, fmt.Errorf("base del logaritmo non valida")
			}
			return number(math.Log(nums[0]) / math.Log(nums[1])), nil
		default:
			return Value{}, fmt.Errorf("log richiede 1 o 2 argomenti")
		}
	case "atan2":
		if len(nums) != 2 {
			return Value{}, fmt.Errorf("atan2 richiede 2 argomenti")
		}
		return number(math.Atan2(nums[0], nums[1])), nil
	case "pow":
		if len(nums) != 2 {
			return Value{}, fmt.Errorf("pow richiede 2 argomenti")
		}
		return number(math.Pow(nums[0], nums[1])), nil
	case "round":
		switch len(nums) {
		case 1:
			return number(math.Round(nums[0])), nil
		case 2:
			shift := math.Pow(10, math.Trunc(nums[1]))
			return number(math.Round(nums[0]*shift) / shift), nil
		default:
			return Value{}, fmt.Errorf("round richiede 1 o 2 argomenti")
		}
	case "min":
		if len(nums) == 0 {
			return Value{}, fmt.Errorf("min richiede almeno 1 argomento")
		}
		m := nums[0]
		for _, n := range nums[1:] {
			m = math.Min(m, n)
		}
		return number(m), nil
	case "max":
		if len(nums) == 0 {
			return Value{}, fmt.Errorf("max richiede almeno 1 argomento")
		}
		m := nums[0]
		for _, n := range nums[1:] {
			m = math.Max(m, n)
		}
		return number(m), nil
	case "sum":
		var s float64
		for _, n := range nums {
			s += n
		}
		return number(s), nil
	case "factorial":
		if len(nums) != 1 {
			return Value{}, fmt.Errorf("factorial richiede 1 argomento")
		}
		n := nums[0]
		if n < 0 || n != math.Trunc(n) {
			return Value{}, fmt.Errorf("factorial richiede un intero non negativo")
		}
		if n > 170 {
			return Value{}, fmt.Errorf("factorial: argomento troppo grande")
		}
		f := 1.0
		for i := 2.0; i <= n; i++ {
			f *= i
		}
		return number(f), nil
	case "gcd", "lcm":
		if len(nums) < 2 {
			return Value{}, fmt.Errorf("%s richiede almeno 2 argomenti", name)
		}
		ints := make([]int64, len(nums))
		for i, n := range nums {
			if n != math.Trunc(n) {
				return Value{}, fmt.Errorf("%s richiede argomenti interi", name)
			}
			ints[i] = int64(math.Abs(n))
		}
		acc := ints[0]
		for _, n := range ints[1:] {
			if name == "gcd" {
				acc = gcd(acc, n)
			} else {
				if acc == 0 || n == 0 {
					acc = 0
					continue
				}
				acc = acc / gcd(acc, n) * n
			}
		}
		return number(float64(acc)), nil
	}
	return Value{}, fmt.Errorf("Funzione non consentita: %s", name)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
