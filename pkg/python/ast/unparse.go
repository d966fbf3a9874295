package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator precedence levels, lowest binding first. writeExpr adds
// parentheses whenever a node's own level is below the level its context
// requires, which is how round-tripped text stays re-parseable.
const (
	precLowest = iota
	precTest   // lambda, conditional expression
	precOr
	precAnd
	precNot
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precFactor // unary + - ~
	precPower
	precAtom
)

// Unparse renders an expression as Python source text.
func Unparse(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, precLowest)
	return b.String()
}

// Literal renders the constant as Python source text. Strings and bytes are
// re-quoted the way Python's repr writes them; numbers keep their source
// spelling.
func (c *Constant) Literal() string {
	switch c.Kind {
	case ConstString:
		return reprString(c.Str, false)
	case ConstBytes:
		return "b" + reprString(c.Str, true)
	case ConstNumber:
		return c.Raw
	case ConstBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case ConstEllipsis:
		return "..."
	default:
		return "None"
	}
}

func binOpPrec(op string) int {
	switch op {
	case "|":
		return precBitOr
	case "^":
		return precBitXor
	case "&":
		return precBitAnd
	case "<<", ">>":
		return precShift
	case "+", "-":
		return precArith
	case "*", "/", "//", "%", "@":
		return precTerm
	default: // **
		return precPower
	}
}

func writeExpr(b *strings.Builder, e Expr, ctx int) {
	switch v := e.(type) {
	case *Name:
		b.WriteString(v.ID)

	case *Constant:
		b.WriteString(v.Literal())

	case *FString:
		b.WriteString(v.Raw)

	case *Attribute:
		// A numeric literal directly before a dot would read as a float.
		if c, ok := v.Value.(*Constant); ok && c.Kind == ConstNumber {
			b.WriteByte('(')
			b.WriteString(c.Raw)
			b.WriteByte(')')
		} else {
			writeExpr(b, v.Value, precAtom)
		}
		b.WriteByte('.')
		b.WriteString(v.Attr)

	case *Call:
		writeExpr(b, v.Func, precAtom)
		if len(v.Args) == 1 && len(v.Keywords) == 0 {
			if g, ok := v.Args[0].(*GeneratorExp); ok {
				// the generator's own parentheses double as the call's
				writeExpr(b, g, precLowest)
				return
			}
		}
		b.WriteByte('(')
		n := 0
		for _, a := range v.Args {
			if n > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a, precTest)
			n++
		}
		for _, kw := range v.Keywords {
			if n > 0 {
				b.WriteString(", ")
			}
			if kw.Name == "" {
				b.WriteString("**")
				writeExpr(b, kw.Value, precBitOr)
			} else {
				b.WriteString(kw.Name)
				b.WriteByte('=')
				writeExpr(b, kw.Value, precTest)
			}
			n++
		}
		b.WriteByte(')')

	case *Subscript:
		writeExpr(b, v.Value, precAtom)
		b.WriteByte('[')
		writeBareTuple(b, v.Index)
		b.WriteByte(']')

	case *Slice:
		if v.Lower != nil {
			writeExpr(b, v.Lower, precTest)
		}
		b.WriteByte(':')
		if v.Upper != nil {
			writeExpr(b, v.Upper, precTest)
		}
		if v.Step != nil {
			b.WriteByte(':')
			writeExpr(b, v.Step, precTest)
		}

	case *Starred:
		b.WriteByte('*')
		writeExpr(b, v.Value, precBitOr)

	case *Tuple:
		b.WriteByte('(')
		writeExprList(b, v.Elts)
		if len(v.Elts) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')

	case *List:
		b.WriteByte('[')
		writeExprList(b, v.Elts)
		b.WriteByte(']')

	case *Set:
		b.WriteByte('{')
		writeExprList(b, v.Elts)
		b.WriteByte('}')

	case *Dict:
		b.WriteByte('{')
		for i := range v.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			if v.Keys[i] == nil {
				b.WriteString("**")
				writeExpr(b, v.Values[i], precBitOr)
			} else {
				writeExpr(b, v.Keys[i], precTest)
				b.WriteString(": ")
				writeExpr(b, v.Values[i], precTest)
			}
		}
		b.WriteByte('}')

	case *BinOp:
		p := binOpPrec(v.Op)
		wrap := p < ctx
		if wrap {
			b.WriteByte('(')
		}
		lp, rp := p, p+1
		if v.Op == "**" {
			lp, rp = p+1, p
		}
		writeExpr(b, v.Left, lp)
		b.WriteByte(' ')
		b.WriteString(v.Op)
		b.WriteByte(' ')
		writeExpr(b, v.Right, rp)
		if wrap {
			b.WriteByte(')')
		}

	case *UnaryOp:
		p := precFactor
		if v.Op == "not" {
			p = precNot
		}
		wrap := p < ctx
		if wrap {
			b.WriteByte('(')
		}
		b.WriteString(v.Op)
		if v.Op == "not" {
			b.WriteByte(' ')
		}
		writeExpr(b, v.Operand, p)
		if wrap {
			b.WriteByte(')')
		}

	case *BoolOp:
		p := precOr
		if v.Op == "and" {
			p = precAnd
		}
		wrap := p < ctx
		if wrap {
			b.WriteByte('(')
		}
		for i, val := range v.Values {
			if i > 0 {
				b.WriteByte(' ')
				b.WriteString(v.Op)
				b.WriteByte(' ')
			}
			writeExpr(b, val, p+1)
		}
		if wrap {
			b.WriteByte(')')
		}

	case *Compare:
		wrap := precCmp < ctx
		if wrap {
			b.WriteByte('(')
		}
		writeExpr(b, v.Left, precCmp+1)
		for i, op := range v.Ops {
			b.WriteByte(' ')
			b.WriteString(op)
			b.WriteByte(' ')
			writeExpr(b, v.Comparators[i], precCmp+1)
		}
		if wrap {
			b.WriteByte(')')
		}

	case *IfExp:
		wrap := precTest < ctx
		if wrap {
			b.WriteByte('(')
		}
		writeExpr(b, v.Body, precTest+1)
		b.WriteString(" if ")
		writeExpr(b, v.Test, precTest+1)
		b.WriteString(" else ")
		writeExpr(b, v.OrElse, precTest)
		if wrap {
			b.WriteByte(')')
		}

	case *Lambda:
		wrap := precTest < ctx
		if wrap {
			b.WriteByte('(')
		}
		b.WriteString("lambda")
		if sigHasParams(v.Sig) {
			b.WriteByte(' ')
			writeSigParams(b, v.Sig)
		}
		b.WriteString(": ")
		writeExpr(b, v.Body, precTest)
		if wrap {
			b.WriteByte(')')
		}

	case *ListComp:
		b.WriteByte('[')
		writeExpr(b, v.Elt, precTest)
		writeClauses(b, v.Clauses)
		b.WriteByte(']')

	case *SetComp:
		b.WriteByte('{')
		writeExpr(b, v.Elt, precTest)
		writeClauses(b, v.Clauses)
		b.WriteByte('}')

	case *DictComp:
		b.WriteByte('{')
		writeExpr(b, v.Key, precTest)
		b.WriteString(": ")
		writeExpr(b, v.Value, precTest)
		writeClauses(b, v.Clauses)
		b.WriteByte('}')

	case *GeneratorExp:
		b.WriteByte('(')
		writeExpr(b, v.Elt, precTest)
		writeClauses(b, v.Clauses)
		b.WriteByte(')')
	}
}

func writeExprList(b *strings.Builder, elts []Expr) {
	for i, el := range elts {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, el, precTest)
	}
}

// writeBareTuple writes a tuple without its surrounding parentheses, as in
// a subscript index or a comprehension target; other expressions pass
// through unchanged.
func writeBareTuple(b *strings.Builder, e Expr) {
	if t, ok := e.(*Tuple); ok && len(t.Elts) > 0 {
		writeExprList(b, t.Elts)
		if len(t.Elts) == 1 {
			b.WriteByte(',')
		}
		return
	}
	writeExpr(b, e, precTest)
}

func writeClauses(b *strings.Builder, clauses []CompClause) {
	for _, c := range clauses {
		if c.Async {
			b.WriteString(" async for ")
		} else {
			b.WriteString(" for ")
		}
		writeBareTuple(b, c.Target)
		b.WriteString(" in ")
		writeExpr(b, c.Iter, precOr)
		for _, cond := range c.Ifs {
			b.WriteString(" if ")
			writeExpr(b, cond, precOr)
		}
	}
}

func sigHasParams(sig Signature) bool {
	return len(sig.PosOnly) > 0 || len(sig.Params) > 0 || sig.VarArg != nil ||
		len(sig.KwOnly) > 0 || sig.KwArg != nil
}

// writeSigParams renders a signature the way Python spells parameter lists:
// bare defaults as name=value, annotated defaults as name: ann = value.
func writeSigParams(b *strings.Builder, sig Signature) {
	n := 0
	sep := func() {
		if n > 0 {
			b.WriteString(", ")
		}
		n++
	}
	one := func(p Param) {
		sep()
		b.WriteString(p.Name)
		if p.Annotation != nil {
			b.WriteString(": ")
			writeExpr(b, p.Annotation, precTest)
			if p.Default != nil {
				b.WriteString(" = ")
				writeExpr(b, p.Default, precTest)
			}
		} else if p.Default != nil {
			b.WriteByte('=')
			writeExpr(b, p.Default, precTest)
		}
	}
	for _, p := range sig.PosOnly {
		one(p)
	}
	if len(sig.PosOnly) > 0 {
		sep()
		b.WriteByte('/')
	}
	for _, p := range sig.Params {
		one(p)
	}
	switch {
	case sig.VarArg != nil:
		sep()
		b.WriteByte('*')
		b.WriteString(sig.VarArg.Name)
		if sig.VarArg.Annotation != nil {
			b.WriteString(": ")
			writeExpr(b, sig.VarArg.Annotation, precTest)
		}
	case len(sig.KwOnly) > 0:
		sep()
		b.WriteByte('*')
	}
	for _, p := range sig.KwOnly {
		one(p)
	}
	if sig.KwArg != nil {
		sep()
		b.WriteString("**")
		b.WriteString(sig.KwArg.Name)
		if sig.KwArg.Annotation != nil {
			b.WriteString(": ")
			writeExpr(b, sig.KwArg.Annotation, precTest)
		}
	}
}

// reprString quotes s the way Python's repr does: single quotes unless the
// content holds a single quote and no double quote.
func reprString(s string, bytes bool) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, "\"") {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	if bytes {
		for i := 0; i < len(s); i++ {
			writeEscapedByte(&b, s[i], quote)
		}
	} else {
		for _, r := range s {
			writeEscapedRune(&b, r, quote)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func writeEscapedByte(b *strings.Builder, c byte, quote byte) {
	switch {
	case c == '\\' || c == quote:
		b.WriteByte('\\')
		b.WriteByte(c)
	case c == '\n':
		b.WriteString(`\n`)
	case c == '\r':
		b.WriteString(`\r`)
	case c == '\t':
		b.WriteString(`\t`)
	case c < 0x20 || c >= 0x7f:
		fmt.Fprintf(b, `\x%02x`, c)
	default:
		b.WriteByte(c)
	}
}

func writeEscapedRune(b *strings.Builder, r rune, quote byte) {
	switch {
	case r == '\\' || r == rune(quote):
		b.WriteByte('\\')
		b.WriteRune(r)
	case r == '\n':
		b.WriteString(`\n`)
	case r == '\r':
		b.WriteString(`\r`)
	case r == '\t':
		b.WriteString(`\t`)
	case r < 0x20 || r == 0x7f:
		fmt.Fprintf(b, `\x%02x`, r)
	case r > 0x7f && !strconv.IsPrint(r):
		if r > 0xffff {
			fmt.Fprintf(b, `\U%08x`, r)
		} else {
			fmt.Fprintf(b, `\u%04x`, r)
		}
	default:
		b.WriteRune(r)
	}
}
