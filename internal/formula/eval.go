package formula

import "math"

// Vars binds the three order dimensions a formula may reference.
type Vars struct {
	W, H, D float64
}

// Eval interprets a parsed formula over the given dimensions. Unknown
// symbols, unknown functions and non-finite results are KindEval errors,
// never a silently substituted zero.
func Eval(e Expr, vars Vars) (float64, error) {
	v, err := eval(e, vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, evalErrorf("sonuç sonlu bir sayı değil")
	}
	return v, nil
}

// Evaluate parses and evaluates in one step.
func Evaluate(src string, vars Vars) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(e, vars)
}

func eval(e Expr, vars Vars) (float64, error) {
	switch n := e.(type) {
	case Literal:
		return n.Value, nil
	case Variable:
		switch n.Name {
		case "W":
			return vars.W, nil
		case "H":
			return vars.H, nil
		case "D":
			return vars.D, nil
		}
		return 0, evalErrorf("bilinmeyen sembol %q (sadece W, H, D)", n.Name)
	case Unary:
		x, err := eval(n.X, vars)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case Binary:
		l, err := eval(n.L, vars)
		if err != nil {
			return 0, err
		}
		r, err := eval(n.R, vars)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		case '/':
			if r == 0 {
				return 0, evalErrorf("sıfıra bölme")
			}
			return l / r, nil
		}
		return 0, evalErrorf("bilinmeyen işlem %q", string(n.Op))
	case Call:
		arg, err := eval(n.Arg, vars)
		if err != nil {
			return 0, err
		}
		switch n.Func {
		case "ROUND":
			// math.Round ties away from zero, the round-half-up the shop
			// expects for positive dimensions.
			return math.Round(arg), nil
		case "ROUND5":
			return math.Round(arg/5) * 5, nil
		}
		return 0, evalErrorf("bilinmeyen fonksiyon %q (sadece ROUND, ROUND5)", n.Func)
	}
	return 0, evalErrorf("bilinmeyen ifade")
}

// Validate is the save-time check for rule formulas: the text must parse and
// every symbol must be one of W/H/D/ROUND/ROUND5. Returns a KindSyntax error
// for malformed text and a KindEval error for unknown symbols so rule saves
// can be rejected before any order trips over them.
func Validate(src string) error {
	e, err := Parse(src)
	if err != nil {
		return err
	}
	return checkSymbols(e)
}

func checkSymbols(e Expr) error {
	switch n := e.(type) {
	case Literal:
		return nil
	case Variable:
		if n.Name != "W" && n.Name != "H" && n.Name != "D" {
			return evalErrorf("bilinmeyen sembol %q (sadece W, H, D)", n.Name)
		}
		return nil
	case Unary:
		return checkSymbols(n.X)
	case Binary:
		if err := checkSymbols(n.L); err != nil {
			return err
		}
		return checkSymbols(n.R)
	case Call:
		if n.Func != "ROUND" && n.Func != "ROUND5" {
			return evalErrorf("bilinmeyen fonksiyon %q (sadece ROUND, ROUND5)", n.Func)
		}
		return checkSymbols(n.Arg)
	}
	return evalErrorf("bilinmeyen ifade")
}

// DependsOn walks the AST and reports whether the formula references the
// given variable. Used to mark width-dependent rules at save time instead
// of string-matching the formula text.
func DependsOn(e Expr, name string) bool {
	switch n := e.(type) {
	case Variable:
		return n.Name == name
	case Unary:
		return DependsOn(n.X, name)
	case Binary:
		return DependsOn(n.L, name) || DependsOn(n.R, name)
	case Call:
		return DependsOn(n.Arg, name)
	}
	return false
}
