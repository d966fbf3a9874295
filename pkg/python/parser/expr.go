package parser

import (
	"github.com/jleen/supriya/pkg/python/ast"
)

// parseExprList parses a comma-separated expression list at statement
// level ("a, b = 1, 2"). More than one element, or a trailing comma,
// builds a tuple.
func (p *parser) parseExprList() (ast.Expr, error) {
	first, err := p.parseStarOrTernary()
	if err != nil {
		return nil, err
	}
	if !p.atOp(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.atOp(",") {
		p.advance()
		if p.at(TypeNewline) || p.at(TypeEOF) || p.atOp("=", ";", ":") {
			break
		}
		e, err := p.parseStarOrTernary()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	return &ast.Tuple{Elts: elts}, nil
}

func (p *parser) parseStarOrTernary() (ast.Expr, error) {
	if p.atOp("*") {
		p.advance()
		v, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		return &ast.Starred{Value: v}, nil
	}
	return p.parseTernary()
}

func (p *parser) parseTernary() (ast.Expr, error) {
	if p.atKeyword("lambda") {
		return p.parseLambda()
	}
	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("if") {
		return body, nil
	}
	p.advance()
	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	orelse, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.IfExp{Test: test, Body: body, OrElse: orelse}, nil
}

func (p *parser) parseLambda() (ast.Expr, error) {
	p.advance() // lambda
	sig, err := p.parseParams(":", false)
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Sig: sig, Body: body}, nil
}

func (p *parser) parseOr() (ast.Expr, error) {
	first, err := p.parseAnd()
	if err != nil || !p.atKeyword("or") {
		return first, err
	}
	values := []ast.Expr{first}
	for p.atKeyword("or") {
		p.advance()
		v, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &ast.BoolOp{Op: "or", Values: values}, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	first, err := p.parseNot()
	if err != nil || !p.atKeyword("and") {
		return first, err
	}
	values := []ast.Expr{first}
	for p.atKeyword("and") {
		p.advance()
		v, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &ast.BoolOp{Op: "and", Values: values}, nil
}

func (p *parser) parseNot() (ast.Expr, error) {
	if p.atKeyword("not") {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	var ops []string
	var comparators []ast.Expr
	for {
		var op string
		switch {
		case p.atOp("<", "<=", ">", ">=", "==", "!="):
			op = p.advance().Value
		case p.atKeyword("in"):
			p.advance()
			op = "in"
		case p.atKeyword("not") && p.peek(1).Type == TypeIdent && p.peek(1).Value == "in":
			p.advance()
			p.advance()
			op = "not in"
		case p.atKeyword("is"):
			p.advance()
			op = "is"
			if p.atKeyword("not") {
				p.advance()
				op = "is not"
			}
		default:
			if len(ops) == 0 {
				return left, nil
			}
			return &ast.Compare{Left: left, Ops: ops, Comparators: comparators}, nil
		}
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
}

func (p *parser) parseBinary(ops []string, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.atOp(ops...) {
		op := p.advance().Value
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseBitOr() (ast.Expr, error) {
	return p.parseBinary([]string{"|"}, p.parseBitXor)
}

func (p *parser) parseBitXor() (ast.Expr, error) {
	return p.parseBinary([]string{"^"}, p.parseBitAnd)
}

func (p *parser) parseBitAnd() (ast.Expr, error) {
	return p.parseBinary([]string{"&"}, p.parseShift)
}

func (p *parser) parseShift() (ast.Expr, error) {
	return p.parseBinary([]string{"<<", ">>"}, p.parseArith)
}

func (p *parser) parseArith() (ast.Expr, error) {
	return p.parseBinary([]string{"+", "-"}, p.parseTerm)
}

func (p *parser) parseTerm() (ast.Expr, error) {
	return p.parseBinary([]string{"*", "/", "//", "%", "@"}, p.parseFactor)
}

func (p *parser) parseFactor() (ast.Expr, error) {
	if p.atOp("+", "-", "~") {
		op := p.advance().Value
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.atOp("**") {
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Left: left, Op: "**", Right: right}, nil
	}
	return left, nil
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atOp("("):
			p.advance()
			args, kws, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			e = &ast.Call{Func: e, Args: args, Keywords: kws}
		case p.atOp("["):
			p.advance()
			e, err = p.parseSubscript(e)
			if err != nil {
				return nil, err
			}
		case p.atOp("."):
			p.advance()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			e = &ast.Attribute{Value: e, Attr: name.Value}
		default:
			return e, nil
		}
	}
}

func (p *parser) parseAtom() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case TypeNumber:
		p.advance()
		return &ast.Constant{Kind: ast.ConstNumber, Raw: tok.Value}, nil
	case TypeString:
		return p.parseStringGroup()
	case TypeIdent:
		switch tok.Value {
		case "True", "False":
			p.advance()
			return &ast.Constant{Kind: ast.ConstBool, Raw: tok.Value, Bool: tok.Value == "True"}, nil
		case "None":
			p.advance()
			return &ast.Constant{Kind: ast.ConstNone, Raw: tok.Value}, nil
		case "lambda":
			return p.parseLambda()
		}
		if pythonKeywords[tok.Value] {
			return nil, p.unexpected("expression")
		}
		p.advance()
		return &ast.Name{ID: tok.Value}, nil
	case TypeOp:
		switch tok.Value {
		case "(":
			p.advance()
			return p.parseGroup()
		case "[":
			p.advance()
			return p.parseListDisplay()
		case "{":
			p.advance()
			return p.parseBraceDisplay()
		case "...":
			p.advance()
			return &ast.Constant{Kind: ast.ConstEllipsis, Raw: "..."}, nil
		}
	}
	return nil, p.unexpected("expression")
}

// parseCallArgs parses call arguments after the opening parenthesis and
// consumes the closing one. Also used for class definition bases.
func (p *parser) parseCallArgs() ([]ast.Expr, []ast.Keyword, error) {
	var args []ast.Expr
	var kws []ast.Keyword
	for !p.atOp(")") {
		switch {
		case p.atOp("**"):
			p.advance()
			v, err := p.parseTernary()
			if err != nil {
				return nil, nil, err
			}
			kws = append(kws, ast.Keyword{Value: v})
		case p.atOp("*"):
			p.advance()
			v, err := p.parseTernary()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, &ast.Starred{Value: v})
		case p.cur().Type == TypeIdent && !pythonKeywords[p.cur().Value] &&
			p.peek(1).Type == TypeOp && p.peek(1).Value == "=":
			name := p.advance()
			p.advance()
			v, err := p.parseTernary()
			if err != nil {
				return nil, nil, err
			}
			kws = append(kws, ast.Keyword{Name: name.Value, Value: v})
		default:
			e, err := p.parseTernary()
			if err != nil {
				return nil, nil, err
			}
			if p.atComprehensionFor() {
				clauses, err := p.parseCompClauses()
				if err != nil {
					return nil, nil, err
				}
				e = &ast.GeneratorExp{Elt: e, Clauses: clauses}
			}
			args = append(args, e)
		}
		if !p.atOp(",") {
			break
		}
		p.advance()
	}
	if err := p.expectOp(")"); err != nil {
		return nil, nil, err
	}
	return args, kws, nil
}

// parseGroup parses a parenthesized form after the opening parenthesis:
// a grouped expression, a tuple display or a generator expression.
func (p *parser) parseGroup() (ast.Expr, error) {
	if p.atOp(")") {
		p.advance()
		return &ast.Tuple{}, nil
	}
	first, err := p.parseStarOrTernary()
	if err != nil {
		return nil, err
	}
	if p.atComprehensionFor() {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &ast.GeneratorExp{Elt: first, Clauses: clauses}, nil
	}
	if p.atOp(",") {
		elts := []ast.Expr{first}
		for p.atOp(",") {
			p.advance()
			if p.atOp(")") {
				break
			}
			e, err := p.parseStarOrTernary()
			if err != nil {
				return nil, err
			}
			elts = append(elts, e)
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &ast.Tuple{Elts: elts}, nil
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *parser) parseListDisplay() (ast.Expr, error) {
	if p.atOp("]") {
		p.advance()
		return &ast.List{}, nil
	}
	first, err := p.parseStarOrTernary()
	if err != nil {
		return nil, err
	}
	if p.atComprehensionFor() {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("]"); err != nil {
			return nil, err
		}
		return &ast.ListComp{Elt: first, Clauses: clauses}, nil
	}
	elts := []ast.Expr{first}
	for p.atOp(",") {
		p.advance()
		if p.atOp("]") {
			break
		}
		e, err := p.parseStarOrTernary()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	if err := p.expectOp("]"); err != nil {
		return nil, err
	}
	return &ast.List{Elts: elts}, nil
}

// parseBraceDisplay parses dict and set displays and comprehensions after
// the opening brace.
func (p *parser) parseBraceDisplay() (ast.Expr, error) {
	if p.atOp("}") {
		p.advance()
		return &ast.Dict{}, nil
	}
	if p.atOp("**") {
		p.advance()
		v, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		return p.parseDictTail(&ast.Dict{Keys: []ast.Expr{nil}, Values: []ast.Expr{v}})
	}
	first, err := p.parseStarOrTernary()
	if err != nil {
		return nil, err
	}
	if p.atOp(":") {
		p.advance()
		val, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if p.atComprehensionFor() {
			clauses, err := p.parseCompClauses()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp("}"); err != nil {
				return nil, err
			}
			return &ast.DictComp{Key: first, Value: val, Clauses: clauses}, nil
		}
		return p.parseDictTail(&ast.Dict{Keys: []ast.Expr{first}, Values: []ast.Expr{val}})
	}
	if p.atComprehensionFor() {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("}"); err != nil {
			return nil, err
		}
		return &ast.SetComp{Elt: first, Clauses: clauses}, nil
	}
	elts := []ast.Expr{first}
	for p.atOp(",") {
		p.advance()
		if p.atOp("}") {
			break
		}
		e, err := p.parseStarOrTernary()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return &ast.Set{Elts: elts}, nil
}

func (p *parser) parseDictTail(d *ast.Dict) (ast.Expr, error) {
	for p.atOp(",") {
		p.advance()
		if p.atOp("}") {
			break
		}
		if p.atOp("**") {
			p.advance()
			v, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}
			d.Keys = append(d.Keys, nil)
			d.Values = append(d.Values, v)
			continue
		}
		k, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		v, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		d.Keys = append(d.Keys, k)
		d.Values = append(d.Values, v)
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return d, nil
}

// parseSubscript parses the index after the opening bracket. Multiple
// items or a trailing comma build a tuple index.
func (p *parser) parseSubscript(value ast.Expr) (ast.Expr, error) {
	var items []ast.Expr
	sawComma := false
	for {
		item, err := p.parseSubscriptItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.atOp(",") {
			break
		}
		sawComma = true
		p.advance()
		if p.atOp("]") {
			break
		}
	}
	if err := p.expectOp("]"); err != nil {
		return nil, err
	}
	if len(items) == 1 && !sawComma {
		return &ast.Subscript{Value: value, Index: items[0]}, nil
	}
	return &ast.Subscript{Value: value, Index: &ast.Tuple{Elts: items}}, nil
}

func (p *parser) parseSubscriptItem() (ast.Expr, error) {
	var lower ast.Expr
	if !p.atOp(":") {
		e, err := p.parseStarOrTernary()
		if err != nil {
			return nil, err
		}
		if !p.atOp(":") {
			return e, nil
		}
		lower = e
	}
	p.advance() // first colon
	sl := &ast.Slice{Lower: lower}
	if !p.atOp(":", ",", "]") {
		var err error
		sl.Upper, err = p.parseTernary()
		if err != nil {
			return nil, err
		}
	}
	if p.atOp(":") {
		p.advance()
		if !p.atOp(",", "]") {
			var err error
			sl.Step, err = p.parseTernary()
			if err != nil {
				return nil, err
			}
		}
	}
	return sl, nil
}

func (p *parser) atComprehensionFor() bool {
	return p.atKeyword("for") ||
		(p.atKeyword("async") && p.peek(1).Type == TypeIdent && p.peek(1).Value == "for")
}

func (p *parser) parseCompClauses() ([]ast.CompClause, error) {
	var clauses []ast.CompClause
	for {
		var cl ast.CompClause
		if p.atKeyword("async") {
			cl.Async = true
			p.advance()
		}
		if err := p.expectKeyword("for"); err != nil {
			return nil, err
		}
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		cl.Target = target
		if err := p.expectKeyword("in"); err != nil {
			return nil, err
		}
		cl.Iter, err = p.parseOr()
		if err != nil {
			return nil, err
		}
		for p.atKeyword("if") {
			p.advance()
			cond, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			cl.Ifs = append(cl.Ifs, cond)
		}
		clauses = append(clauses, cl)
		if !p.atComprehensionFor() {
			return clauses, nil
		}
	}
}

// parseTargetList parses assignment targets in comprehension clauses,
// stopping before the "in" keyword.
func (p *parser) parseTargetList() (ast.Expr, error) {
	first, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	if !p.atOp(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.atOp(",") {
		p.advance()
		if p.atKeyword("in") {
			break
		}
		t, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		elts = append(elts, t)
	}
	return &ast.Tuple{Elts: elts}, nil
}

func (p *parser) parseTarget() (ast.Expr, error) {
	if p.atOp("*") {
		p.advance()
		t, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		return &ast.Starred{Value: t}, nil
	}
	return p.parsePostfix()
}
