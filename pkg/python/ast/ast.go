// Package ast defines syntax tree nodes for the subset of Python that the
// stub generator inspects, plus an unparser that renders expressions back to
// source text. The node set is closed: statements the parser does not model
// are represented by Opaque so that class bodies keep their declaration
// order without the tree having to understand every construct.
package ast

import (
	"strconv"
	"strings"
)

// Stmt is implemented by all statement nodes.
type Stmt interface {
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	exprNode()
}

// Module is the root of a parsed source file.
type Module struct {
	Body []Stmt
}

// ClassDef is a class statement with its decorators and body.
type ClassDef struct {
	Name       string
	Decorators []Expr
	Bases      []Expr
	Keywords   []Keyword // class keyword arguments such as metaclass=...
	Body       []Stmt
}

func (*ClassDef) stmtNode() {}

// FunctionDef is a def statement. Only the signature is modeled in detail;
// the body is kept as parsed statements, typically Opaque.
type FunctionDef struct {
	Name       string
	Decorators []Expr
	Sig        Signature
	Returns    Expr // nil when the def carries no return annotation
	Async      bool
	Body       []Stmt
}

func (*FunctionDef) stmtNode() {}

// Assign is a plain assignment, possibly chained: a = b = value.
type Assign struct {
	Targets []Expr
	Value   Expr
}

func (*Assign) stmtNode() {}

// AnnAssign is an annotated assignment: target: annotation = value.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr // nil for a bare declaration without a value
}

func (*AnnAssign) stmtNode() {}

// ExprStmt is an expression used as a statement, such as a docstring.
type ExprStmt struct {
	Value Expr
}

func (*ExprStmt) stmtNode() {}

// Opaque is a statement the parser consumed structurally but does not model.
type Opaque struct{}

func (*Opaque) stmtNode() {}

// Param is a single formal parameter in a function signature.
type Param struct {
	Name       string
	Annotation Expr // nil when absent
	Default    Expr // nil when absent
}

// Signature captures the parameter list of a def or lambda. A nil VarArg
// together with a non-empty KwOnly list means a bare * separator.
type Signature struct {
	PosOnly []Param // parameters before a / separator
	Params  []Param // positional-or-keyword parameters
	VarArg  *Param  // *args parameter, nil when absent
	KwOnly  []Param // keyword-only parameters
	KwArg   *Param  // **kwargs parameter, nil when absent
}

// Name is an identifier reference.
type Name struct {
	ID string
}

func (*Name) exprNode() {}

// Attribute is a dotted access: Value.Attr.
type Attribute struct {
	Value Expr
	Attr  string
}

func (*Attribute) exprNode() {}

// ConstKind discriminates the literal families a Constant can hold.
type ConstKind int

const (
	ConstString ConstKind = iota
	ConstBytes
	ConstNumber
	ConstBool
	ConstNone
	ConstEllipsis
)

// Constant is a literal value: a string, bytes, number, bool, None or
// Ellipsis. Raw preserves the source text of string, bytes and number
// literals; Str holds the decoded content of string and bytes literals.
// Formatted strings are not constants, see FString.
type Constant struct {
	Kind ConstKind
	Raw  string
	Str  string
	Bool bool
}

func (*Constant) exprNode() {}

// Truthy reports the Python truth value of the literal.
func (c *Constant) Truthy() bool {
	switch c.Kind {
	case ConstString, ConstBytes:
		return len(c.Str) > 0
	case ConstNumber:
		return numberTruthy(c.Raw)
	case ConstBool:
		return c.Bool
	case ConstEllipsis:
		return true
	default: // None
		return false
	}
}

func numberTruthy(raw string) bool {
	s := strings.ReplaceAll(raw, "_", "")
	if n := len(s); n > 0 && (s[n-1] == 'j' || s[n-1] == 'J') {
		s = s[:n-1]
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v != 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v != 0
	}
	return true
}

// FString is a formatted string literal, kept verbatim. It is deliberately
// not a Constant: formatted strings never count as literal argument values.
type FString struct {
	Raw string
}

func (*FString) exprNode() {}

// Keyword is a name=value argument in a call. Name is empty for a **
// expansion.
type Keyword struct {
	Name  string
	Value Expr
}

// Call is a call expression. Args holds positional arguments including
// Starred expansions; Keywords holds keyword arguments and ** expansions.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (*Call) exprNode() {}

// Subscript is an indexing expression: Value[Index]. Index may be a Slice
// or a Tuple of indices.
type Subscript struct {
	Value Expr
	Index Expr
}

func (*Subscript) exprNode() {}

// Slice is a lower:upper:step slice; any part may be nil.
type Slice struct {
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*Slice) exprNode() {}

// Tuple is a tuple display.
type Tuple struct {
	Elts []Expr
}

func (*Tuple) exprNode() {}

// List is a list display.
type List struct {
	Elts []Expr
}

func (*List) exprNode() {}

// Set is a set display.
type Set struct {
	Elts []Expr
}

func (*Set) exprNode() {}

// Dict is a dict display. A nil key marks a ** expansion of the paired
// value.
type Dict struct {
	Keys   []Expr
	Values []Expr
}

func (*Dict) exprNode() {}

// BinOp is a binary operation; Op is the operator token text.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinOp) exprNode() {}

// UnaryOp is a unary operation; Op is one of + - ~ not.
type UnaryOp struct {
	Op      string
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// BoolOp is an n-ary and/or chain.
type BoolOp struct {
	Op     string
	Values []Expr
}

func (*BoolOp) exprNode() {}

// Compare is a comparison chain: Left Ops[0] Comparators[0] Ops[1] ... .
type Compare struct {
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (*Compare) exprNode() {}

// IfExp is a conditional expression: Body if Test else OrElse.
type IfExp struct {
	Test   Expr
	Body   Expr
	OrElse Expr
}

func (*IfExp) exprNode() {}

// Lambda is a lambda expression.
type Lambda struct {
	Sig  Signature
	Body Expr
}

func (*Lambda) exprNode() {}

// Starred is a *expr expansion in a call or display.
type Starred struct {
	Value Expr
}

func (*Starred) exprNode() {}

// CompClause is one for-in clause of a comprehension with its if filters.
type CompClause struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
	Async  bool
}

// ListComp is a list comprehension.
type ListComp struct {
	Elt     Expr
	Clauses []CompClause
}

func (*ListComp) exprNode() {}

// SetComp is a set comprehension.
type SetComp struct {
	Elt     Expr
	Clauses []CompClause
}

func (*SetComp) exprNode() {}

// DictComp is a dict comprehension.
type DictComp struct {
	Key     Expr
	Value   Expr
	Clauses []CompClause
}

func (*DictComp) exprNode() {}

// GeneratorExp is a generator expression.
type GeneratorExp struct {
	Elt     Expr
	Clauses []CompClause
}

func (*GeneratorExp) exprNode() {}
