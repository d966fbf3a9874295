package parser

import (
	"github.com/cockroachdb/errors"

	"github.com/jleen/supriya/pkg/python/ast"
)

var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true, "import": true,
	"in": true, "is": true, "lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true, "try": true,
	"while": true, "with": true, "yield": true,
}

// Parse parses Python source text into a module tree. Lexical and
// indentation errors fail the whole file; statements the grammar subset
// cannot model (imports, control flow, augmented assignment and so on)
// degrade to Opaque nodes instead of failing.
func Parse(filename string, src []byte) (*ast.Module, error) {
	toks, err := Tokenize(filename, string(src))
	if err != nil {
		return nil, err
	}
	p := &parser{file: filename, toks: toks}
	mod := p.parseModule()
	if p.fail != nil {
		return nil, p.fail
	}
	return mod, nil
}

type parser struct {
	file string
	toks []Token
	pos  int

	// fail records a block-structure violation. Unlike shape mismatches,
	// which degrade to Opaque, it aborts the whole file.
	fail error
}

func (p *parser) cur() Token {
	return p.peek(0)
}

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) at(typ string) bool {
	return p.cur().Type == typ
}

func (p *parser) atOp(vals ...string) bool {
	tok := p.cur()
	if tok.Type != TypeOp {
		return false
	}
	for _, v := range vals {
		if tok.Value == v {
			return true
		}
	}
	return false
}

func (p *parser) atKeyword(kw string) bool {
	tok := p.cur()
	return tok.Type == TypeIdent && tok.Value == kw
}

func (p *parser) expectOp(val string) error {
	if !p.atOp(val) {
		return p.unexpected(val)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return p.unexpected(kw)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (Token, error) {
	tok := p.cur()
	if tok.Type != TypeIdent || pythonKeywords[tok.Value] {
		return Token{}, p.unexpected("identifier")
	}
	p.advance()
	return tok, nil
}

func (p *parser) unexpected(want string) error {
	tok := p.cur()
	got := tok.Value
	if tok.Type == TypeNewline || got == "" {
		got = tok.Type
	}
	return errors.Newf("%s:%d:%d: expected %s, found %q", p.file, tok.Line, tok.Col, want, got)
}

func (p *parser) parseModule() *ast.Module {
	mod := &ast.Module{}
	for !p.at(TypeEOF) && p.fail == nil {
		if p.at(TypeIndent) {
			p.fail = errors.Newf("%s:%d: unexpected indent", p.file, p.cur().Line)
			break
		}
		mod.Body = append(mod.Body, p.parseStmt()...)
	}
	return mod
}

// parseStmt parses one statement, or a run of semicolon-separated simple
// statements sharing a line. It never fails: constructs outside the
// grammar subset are consumed whole and returned as Opaque.
func (p *parser) parseStmt() []ast.Stmt {
	tok := p.cur()
	if tok.Type == TypeOp && tok.Value == "@" {
		return p.parseDecorated()
	}
	if tok.Type == TypeIdent {
		switch tok.Value {
		case "class":
			return p.definitionOrOpaque(func() (ast.Stmt, error) {
				return p.parseClassDef(nil)
			})
		case "def":
			return p.definitionOrOpaque(func() (ast.Stmt, error) {
				return p.parseFuncDef(nil, false)
			})
		case "async":
			if next := p.peek(1); next.Type == TypeIdent && next.Value == "def" {
				return p.definitionOrOpaque(func() (ast.Stmt, error) {
					p.advance()
					return p.parseFuncDef(nil, true)
				})
			}
			p.skipOpaque()
			return []ast.Stmt{&ast.Opaque{}}
		case "if", "elif", "else", "for", "while", "try", "except", "finally", "with":
			p.skipOpaque()
			return []ast.Stmt{&ast.Opaque{}}
		case "import", "from", "pass", "break", "continue", "return",
			"raise", "global", "nonlocal", "del", "assert", "yield", "await":
			p.skipToNewline()
			return []ast.Stmt{&ast.Opaque{}}
		}
	}
	return p.parseSimpleLine()
}

// definitionOrOpaque runs a class or function definition parse and, if any
// part of the construct does not fit the subset, rewinds and swallows the
// whole thing as a single Opaque statement.
func (p *parser) definitionOrOpaque(parse func() (ast.Stmt, error)) []ast.Stmt {
	start := p.pos
	st, err := parse()
	if err != nil {
		if p.fail != nil {
			return nil
		}
		p.pos = start
		p.skipOpaque()
		return []ast.Stmt{&ast.Opaque{}}
	}
	return []ast.Stmt{st}
}

func (p *parser) parseDecorated() []ast.Stmt {
	start := p.pos
	st, err := p.parseDecoratedDef()
	if err != nil {
		if p.fail != nil {
			return nil
		}
		p.pos = start
		p.skipOpaque()
		return []ast.Stmt{&ast.Opaque{}}
	}
	return []ast.Stmt{st}
}

func (p *parser) parseDecoratedDef() (ast.Stmt, error) {
	var decorators []ast.Expr
	for p.atOp("@") {
		p.advance()
		expr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if !p.at(TypeNewline) {
			return nil, p.unexpected("newline after decorator")
		}
		p.advance()
		decorators = append(decorators, expr)
	}
	switch {
	case p.atKeyword("class"):
		return p.parseClassDef(decorators)
	case p.atKeyword("def"):
		return p.parseFuncDef(decorators, false)
	case p.atKeyword("async") && p.peek(1).Value == "def":
		p.advance()
		return p.parseFuncDef(decorators, true)
	}
	return nil, p.unexpected("class or def after decorators")
}

func (p *parser) parseClassDef(decorators []ast.Expr) (ast.Stmt, error) {
	p.advance() // class
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	cls := &ast.ClassDef{Name: name.Value, Decorators: decorators}
	if p.atOp("(") {
		p.advance()
		cls.Bases, cls.Keywords, err = p.parseCallArgs()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	cls.Body, err = p.parseSuite()
	if err != nil {
		return nil, err
	}
	return cls, nil
}

func (p *parser) parseFuncDef(decorators []ast.Expr, async bool) (ast.Stmt, error) {
	p.advance() // def
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDef{Name: name.Value, Decorators: decorators, Async: async}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	fn.Sig, err = p.parseParams(")", true)
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	if p.atOp("->") {
		p.advance()
		fn.Returns, err = p.parseTernary()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	fn.Body, err = p.parseSuite()
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// parseParams parses a parameter list up to (not including) the terminator
// token, which is ")" for def headers and ":" for lambdas. Annotations are
// only legal in def headers.
func (p *parser) parseParams(terminator string, allowAnnotations bool) (ast.Signature, error) {
	var sig ast.Signature
	seenStar := false
	for !p.atOp(terminator) {
		switch {
		case p.atOp("/"):
			p.advance()
			if seenStar || sig.PosOnly != nil {
				return sig, p.unexpected("parameter")
			}
			sig.PosOnly = sig.Params
			sig.Params = nil
		case p.atOp("*"):
			p.advance()
			if seenStar {
				return sig, p.unexpected("parameter")
			}
			seenStar = true
			if p.cur().Type == TypeIdent && !pythonKeywords[p.cur().Value] {
				prm, err := p.parseOneParam(allowAnnotations, false)
				if err != nil {
					return sig, err
				}
				sig.VarArg = &prm
			}
		case p.atOp("**"):
			p.advance()
			prm, err := p.parseOneParam(allowAnnotations, false)
			if err != nil {
				return sig, err
			}
			sig.KwArg = &prm
		default:
			prm, err := p.parseOneParam(allowAnnotations, true)
			if err != nil {
				return sig, err
			}
			if seenStar {
				sig.KwOnly = append(sig.KwOnly, prm)
			} else {
				sig.Params = append(sig.Params, prm)
			}
		}
		if !p.atOp(",") {
			break
		}
		p.advance()
	}
	return sig, nil
}

func (p *parser) parseOneParam(allowAnnotation, allowDefault bool) (ast.Param, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.Param{}, err
	}
	prm := ast.Param{Name: name.Value}
	if allowAnnotation && p.atOp(":") {
		p.advance()
		prm.Annotation, err = p.parseTernary()
		if err != nil {
			return ast.Param{}, err
		}
	}
	if allowDefault && p.atOp("=") {
		p.advance()
		prm.Default, err = p.parseTernary()
		if err != nil {
			return ast.Param{}, err
		}
	}
	return prm, nil
}

// parseSuite parses the body of a class or def: either an indented block
// or simple statements inline after the colon.
func (p *parser) parseSuite() ([]ast.Stmt, error) {
	if !p.at(TypeNewline) {
		return p.parseSimpleLine(), nil
	}
	p.advance()
	if !p.at(TypeIndent) {
		return nil, p.unexpected("indented block")
	}
	p.advance()
	var body []ast.Stmt
	for !p.at(TypeDedent) && !p.at(TypeEOF) && p.fail == nil {
		if p.at(TypeIndent) {
			p.fail = errors.Newf("%s:%d: unexpected indent", p.file, p.cur().Line)
			return nil, p.fail
		}
		body = append(body, p.parseStmt()...)
	}
	if p.fail != nil {
		return nil, p.fail
	}
	if p.at(TypeDedent) {
		p.advance()
	}
	return body, nil
}

// parseSimpleLine parses one logical line of semicolon-separated simple
// statements. A piece that fails to parse turns the rest of the line (and
// a trailing indented block, if the line headed one) into a single Opaque.
func (p *parser) parseSimpleLine() []ast.Stmt {
	var out []ast.Stmt
	for {
		start := p.pos
		st, err := p.trySimpleStmt()
		if err == nil {
			switch {
			case p.at(TypeNewline):
				p.advance()
				return append(out, st)
			case p.atOp(";"):
				p.advance()
				out = append(out, st)
				if p.at(TypeNewline) {
					p.advance()
					return out
				}
				continue
			}
			// trailing tokens the parse did not account for
		}
		p.pos = start
		p.skipOpaque()
		return append(out, &ast.Opaque{})
	}
}

func (p *parser) trySimpleStmt() (ast.Stmt, error) {
	first, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	switch {
	case p.atOp(":"):
		p.advance()
		ann, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		st := &ast.AnnAssign{Target: first, Annotation: ann}
		if p.atOp("=") {
			p.advance()
			st.Value, err = p.parseExprList()
			if err != nil {
				return nil, err
			}
		}
		return st, nil
	case p.atOp("="):
		exprs := []ast.Expr{first}
		for p.atOp("=") {
			p.advance()
			e, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		}
		return &ast.Assign{Targets: exprs[:len(exprs)-1], Value: exprs[len(exprs)-1]}, nil
	case p.atOp("+=", "-=", "*=", "/=", "//=", "%=", "**=", "&=", "|=", "^=", ">>=", "<<=", "@=", ":="):
		return nil, p.unexpected("newline")
	}
	return &ast.ExprStmt{Value: first}, nil
}

// skipToNewline consumes the rest of the current logical line including
// its newline.
func (p *parser) skipToNewline() {
	for !p.at(TypeNewline) && !p.at(TypeEOF) {
		p.advance()
	}
	if p.at(TypeNewline) {
		p.advance()
	}
}

// skipOpaque consumes the rest of the current logical line and, if the
// line headed an indented block, the whole block as well.
func (p *parser) skipOpaque() {
	p.skipToNewline()
	if !p.at(TypeIndent) {
		return
	}
	depth := 0
	for {
		switch p.cur().Type {
		case TypeIndent:
			depth++
		case TypeDedent:
			depth--
		case TypeEOF:
			return
		}
		p.advance()
		if depth == 0 {
			return
		}
	}
}
