package formula

import "fmt"

type ErrorKind int

const (
	// KindSyntax: the formula text is malformed. Detected when a rule is
	// saved; a rule with a syntax error must not reach the catalog.
	KindSyntax ErrorKind = iota
	// KindEval: the formula parsed but cannot produce a finite number for
	// the given dimensions (unknown symbol, unknown function, division
	// blowing up). Surfaced at compile time with the offending rule.
	KindEval
)

type Error struct {
	Kind ErrorKind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	if e.Kind == KindSyntax {
		return fmt.Sprintf("formül söz dizimi hatası (konum %d): %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("formül hesaplama hatası: %s", e.Msg)
}

func syntaxErrorf(pos int, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func evalErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindEval, Msg: fmt.Sprintf(format, args...)}
}

// IsSyntax reports whether err is a formula syntax error.
func IsSyntax(err error) bool {
	fe, ok := err.(*Error)
	return ok && fe.Kind == KindSyntax
}
