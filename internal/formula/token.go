package formula

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// tokenize splits a formula into tokens. Anything outside the restricted
// alphabet (digits, letters, + - * / parens, whitespace) is a syntax error.
func tokenize(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.':
			start := i
			dots := 0
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.') {
				if runes[i] == '.' {
					dots++
				}
				i++
			}
			text := string(runes[start:i])
			if dots > 1 {
				return nil, syntaxErrorf(start, "geçersiz sayı %q", text)
			}
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, syntaxErrorf(start, "geçersiz sayı %q", text)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: n, pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		case r == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case r == '*':
			toks = append(toks, token{kind: tokStar, text: "*", pos: i})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, syntaxErrorf(i, "beklenmeyen karakter %q", string(r))
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(runes)})
	return toks, nil
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}
