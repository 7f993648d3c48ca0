// Package formula evaluates the restricted cut-measurement expression
// language: numeric literals, the dimensions W, H and D, the operators
// + - * / with the usual precedence, parentheses, unary minus, and the two
// rounding helpers ROUND and ROUND5. Formulas are parsed into a small AST
// and interpreted; formula text is never handed to anything executable.
package formula

// Expr is a parsed formula node.
type Expr interface{ exprNode() }

type Literal struct {
	Value float64
}

type Variable struct {
	Name string
}

type Unary struct {
	Op rune // '-'
	X  Expr
}

type Binary struct {
	Op   rune // '+', '-', '*', '/'
	L, R Expr
}

type Call struct {
	Func string
	Arg  Expr
}

func (Literal) exprNode()  {}
func (Variable) exprNode() {}
func (Unary) exprNode()    {}
func (Binary) exprNode()   {}
func (Call) exprNode()     {}

type parser struct {
	toks []token
	i    int
}

// Parse builds the AST for a formula. The grammar is:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | ident | ident "(" expr ")" | "(" expr ")" | "-" factor
func Parse(src string) (Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, syntaxErrorf(p.cur().pos, "beklenmeyen %q", p.cur().text)
	}
	return e, nil
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: '+', L: left, R: right}
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: '-', L: left, R: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().kind {
		case tokStar:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: '*', L: left, R: right}
		case tokSlash:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: '/', L: left, R: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseFactor() (Expr, error) {
	t := p.cur()
	switch t.kind {
	case tokNumber:
		p.next()
		return Literal{Value: t.num}, nil
	case tokMinus:
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return Unary{Op: '-', X: x}, nil
	case tokLParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().kind != tokRParen {
			return nil, syntaxErrorf(p.cur().pos, "kapatma parantezi eksik")
		}
		p.next()
		return e, nil
	case tokIdent:
		p.next()
		if p.cur().kind == tokLParen {
			p.next()
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.cur().kind != tokRParen {
				return nil, syntaxErrorf(p.cur().pos, "kapatma parantezi eksik")
			}
			p.next()
			return Call{Func: t.text, Arg: arg}, nil
		}
		return Variable{Name: t.text}, nil
	case tokEOF:
		return nil, syntaxErrorf(t.pos, "ifade eksik")
	default:
		return nil, syntaxErrorf(t.pos, "beklenmeyen %q", t.text)
	}
}
