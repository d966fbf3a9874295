package ast

import "testing"

func ident(id string) *Name       { return &Name{ID: id} }
func number(raw string) *Constant { return &Constant{Kind: ConstNumber, Raw: raw} }

func strlit(content string) *Constant {
	return &Constant{Kind: ConstString, Str: content}
}

func TestUnparse(t *testing.T) {
	none := &Constant{Kind: ConstNone}
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"name", ident("UGen"), "UGen"},
		{"attribute", &Attribute{Value: ident("core"), Attr: "UGen"}, "core.UGen"},
		{"nested attribute", &Attribute{Value: &Attribute{Value: ident("supriya"), Attr: "ugens"}, Attr: "PV_ChainUGen"}, "supriya.ugens.PV_ChainUGen"},
		{"union annotation", &BinOp{Left: ident("SupportsFloat"), Op: "|", Right: none}, "SupportsFloat | None"},
		{"generic subscript", &Subscript{Value: ident("dict"), Index: &Tuple{Elts: []Expr{ident("str"), ident("float")}}}, "dict[str, float]"},
		{"open tuple subscript", &Subscript{Value: ident("tuple"), Index: &Tuple{Elts: []Expr{ident("int"), &Constant{Kind: ConstEllipsis}}}}, "tuple[int, ...]"},
		{"literal string subscript", &Subscript{Value: ident("Literal"), Index: strlit("linear")}, "Literal['linear']"},
		{"slice", &Subscript{Value: ident("x"), Index: &Slice{Lower: number("1"), Upper: number("2")}}, "x[1:2]"},
		{"step slice", &Subscript{Value: ident("x"), Index: &Slice{Step: number("2")}}, "x[::2]"},
		{"negative number", &UnaryOp{Op: "-", Operand: number("1")}, "-1"},
		{"arith grouping", &BinOp{Left: &BinOp{Left: ident("a"), Op: "+", Right: ident("b")}, Op: "*", Right: ident("c")}, "(a + b) * c"},
		{"no redundant parens", &BinOp{Left: ident("a"), Op: "+", Right: &BinOp{Left: ident("b"), Op: "*", Right: ident("c")}}, "a + b * c"},
		{"unary of sum", &UnaryOp{Op: "-", Operand: &BinOp{Left: ident("a"), Op: "+", Right: ident("b")}}, "-(a + b)"},
		{"call with keywords", &Call{Func: ident("param"), Args: []Expr{number("0.0")}, Keywords: []Keyword{{Name: "unexpanded", Value: &Constant{Kind: ConstBool, Bool: true}}}}, "param(0.0, unexpanded=True)"},
		{"call star args", &Call{Func: ident("f"), Args: []Expr{&Starred{Value: ident("xs")}}, Keywords: []Keyword{{Name: "", Value: ident("kw")}}}, "f(*xs, **kw)"},
		{"call on result", &Attribute{Value: &Call{Func: ident("f")}, Attr: "x"}, "f().x"},
		{"tuple", &Tuple{Elts: []Expr{number("1"), number("2")}}, "(1, 2)"},
		{"singleton tuple", &Tuple{Elts: []Expr{number("1")}}, "(1,)"},
		{"empty tuple", &Tuple{}, "()"},
		{"list", &List{Elts: []Expr{strlit("ar"), strlit("kr")}}, "['ar', 'kr']"},
		{"dict", &Dict{Keys: []Expr{strlit("rate"), nil}, Values: []Expr{ident("x"), ident("rest")}}, "{'rate': x, **rest}"},
		{"set", &Set{Elts: []Expr{number("1")}}, "{1}"},
		{"compare", &Compare{Left: ident("x"), Ops: []string{"is not"}, Comparators: []Expr{none}}, "x is not None"},
		{"bool op mix", &BoolOp{Op: "or", Values: []Expr{&BoolOp{Op: "and", Values: []Expr{ident("a"), ident("b")}}, ident("c")}}, "a and b or c"},
		{"bool op grouping", &BoolOp{Op: "and", Values: []Expr{&BoolOp{Op: "or", Values: []Expr{ident("a"), ident("b")}}, ident("c")}}, "(a or b) and c"},
		{"conditional", &IfExp{Test: ident("flag"), Body: number("1"), OrElse: number("2")}, "1 if flag else 2"},
		{"conditional in binop", &BinOp{Left: &IfExp{Test: ident("b"), Body: ident("a"), OrElse: ident("c")}, Op: "|", Right: ident("d")}, "(a if b else c) | d"},
		{"not", &UnaryOp{Op: "not", Operand: ident("x")}, "not x"},
		{"lambda", &Lambda{Sig: Signature{Params: []Param{{Name: "x", Default: number("1")}}}, Body: ident("x")}, "lambda x=1: x"},
		{"bare lambda", &Lambda{Body: none}, "lambda: None"},
		{"list comprehension", &ListComp{Elt: ident("x"), Clauses: []CompClause{{Target: ident("x"), Iter: ident("xs"), Ifs: []Expr{ident("x")}}}}, "[x for x in xs if x]"},
		{"generator", &GeneratorExp{Elt: ident("x"), Clauses: []CompClause{{Target: ident("x"), Iter: ident("xs")}}}, "(x for x in xs)"},
		{"fstring verbatim", &FString{Raw: `f"rate={rate}"`}, `f"rate={rate}"`},
		{"bool literal", &Constant{Kind: ConstBool, Bool: false}, "False"},
		{"none literal", none, "None"},
		{"number keeps spelling", number("1_000.5e3"), "1_000.5e3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unparse(tt.expr); got != tt.want {
				t.Errorf("Unparse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnparseLambdaSignature(t *testing.T) {
	sig := Signature{
		Params: []Param{{Name: "a"}, {Name: "b", Default: number("2")}},
		VarArg: &Param{Name: "args"},
		KwOnly: []Param{{Name: "c", Default: strlit("x")}},
		KwArg:  &Param{Name: "kw"},
	}
	got := Unparse(&Lambda{Sig: sig, Body: ident("a")})
	want := "lambda a, b=2, *args, c='x', **kw: a"
	if got != want {
		t.Errorf("Unparse() = %q, want %q", got, want)
	}

	bareStar := Signature{KwOnly: []Param{{Name: "c"}}}
	got = Unparse(&Lambda{Sig: bareStar, Body: ident("c")})
	want = "lambda *, c: c"
	if got != want {
		t.Errorf("Unparse() = %q, want %q", got, want)
	}
}

func TestStringRepr(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"linear", "'linear'"},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`both ' and "`, `'both \' and "'`},
		{"tab\there", `'tab\there'`},
		{"line\nbreak", `'line\nbreak'`},
		{`back\slash`, `'back\\slash'`},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := strlit(tt.content).Literal(); got != tt.want {
			t.Errorf("Literal(%q) = %s, want %s", tt.content, got, tt.want)
		}
	}
}

func TestConstantTruthy(t *testing.T) {
	tests := []struct {
		name string
		c    *Constant
		want bool
	}{
		{"true", &Constant{Kind: ConstBool, Bool: true}, true},
		{"false", &Constant{Kind: ConstBool, Bool: false}, false},
		{"none", &Constant{Kind: ConstNone}, false},
		{"ellipsis", &Constant{Kind: ConstEllipsis}, true},
		{"zero", number("0"), false},
		{"one", number("1"), true},
		{"zero float", number("0.0"), false},
		{"zero hex", number("0x0"), false},
		{"grouped int", number("1_000"), true},
		{"zero imaginary", number("0j"), false},
		{"empty string", strlit(""), false},
		{"string", strlit("x"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}
