// Package parser turns Python source text into the syntax tree defined in
// pkg/python/ast. Lexing is done with a participle rule table; block
// structure is recovered afterwards by assembling logical lines and
// synthesizing Indent/Dedent tokens from leading whitespace, the same way
// Python's own tokenizer works. Keywords are not lexer rules: the parser
// checks identifier values so that names like "classname" never collide
// with a keyword prefix.
package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"
)

var pythonLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "LineJoin", Pattern: `\\\r?\n`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `(?s)[rRbBuUfF]{0,2}(?:"{3}(?:[^"\\]|\\.|"{1,2}(?:[^"\\]|\\.))*"{3,5}|'{3}(?:[^'\\]|\\.|'{1,2}(?:[^'\\]|\\.))*'{3,5}|"(?:[^"\n\\]|\\.)*"|'(?:[^'\n\\]|\\.)*')`},
	{Name: "Number", Pattern: `0[xX](?:_?[0-9a-fA-F])+|0[oO](?:_?[0-7])+|0[bB](?:_?[01])+|(?:\d(?:_?\d)*)?\.\d(?:_?\d)*(?:[eE][+-]?\d(?:_?\d)*)?[jJ]?|\d(?:_?\d)*\.(?:\d(?:_?\d)*)?(?:[eE][+-]?\d(?:_?\d)*)?[jJ]?|\d(?:_?\d)*[eE][+-]?\d(?:_?\d)*[jJ]?|\d(?:_?\d)*[jJ]?`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
	{Name: "Op", Pattern: `\*\*=|//=|<<=|>>=|\.\.\.|->|:=|<=|>=|==|!=|\+=|-=|\*=|/=|%=|&=|\|=|\^=|@=|\*\*|//|<<|>>|[+\-*/%@<>=&|^~:;,.()\[\]{}]`},
	{Name: "NL", Pattern: `\r?\n`},
	{Name: "WS", Pattern: `[ \t\f]+`},
})

var symbolNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, typ := range pythonLexer.Symbols() {
		names[typ] = name
	}
	return names
}()

// Token type names produced by Tokenize.
const (
	TypeIdent   = "Ident"
	TypeNumber  = "Number"
	TypeString  = "String"
	TypeOp      = "Op"
	TypeNewline = "Newline"
	TypeIndent  = "Indent"
	TypeDedent  = "Dedent"
	TypeEOF     = "EOF"
)

// Token is one logical-line token.
type Token struct {
	Type  string
	Value string
	Line  int
	Col   int
}

// Tokenize lexes source text into logical-line tokens. Comments, blank
// lines, explicit backslash joins and newlines inside brackets are
// resolved away; Indent and Dedent tokens mark block structure; a Newline
// token ends every logical line and an EOF token ends the stream.
// Lexical errors (stray characters, unterminated strings, inconsistent
// dedents) are returned as errors.
func Tokenize(filename, input string) ([]Token, error) {
	input = strings.TrimPrefix(input, "\ufeff")
	lex, err := pythonLexer.LexString(filename, input)
	if err != nil {
		return nil, err
	}

	var out []Token
	stack := []int{0}
	depth := 0
	atLineStart := true
	indent := 0
	lastLine := 1

	for {
		raw, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if raw.EOF() {
			break
		}
		line, col := raw.Pos.Line, raw.Pos.Column
		lastLine = line

		switch symbolNames[raw.Type] {
		case "WS":
			if atLineStart {
				indent = indentWidth(raw.Value)
			}
		case "Comment", "LineJoin":
			// no logical significance

		case "NL":
			if depth > 0 {
				continue // implicit join inside brackets
			}
			if atLineStart {
				indent = 0 // blank or comment-only line
				continue
			}
			out = append(out, Token{Type: TypeNewline, Value: "\n", Line: line, Col: col})
			atLineStart = true
			indent = 0

		default:
			if atLineStart {
				top := stack[len(stack)-1]
				switch {
				case indent > top:
					stack = append(stack, indent)
					out = append(out, Token{Type: TypeIndent, Line: line, Col: col})
				case indent < top:
					for len(stack) > 1 && stack[len(stack)-1] > indent {
						stack = stack[:len(stack)-1]
						out = append(out, Token{Type: TypeDedent, Line: line, Col: col})
					}
					if stack[len(stack)-1] != indent {
						return nil, errors.Newf("%s:%d: unindent does not match any outer indentation level", filename, line)
					}
				}
				atLineStart = false
			}
			if symbolNames[raw.Type] == "Op" {
				switch raw.Value {
				case "(", "[", "{":
					depth++
				case ")", "]", "}":
					if depth > 0 {
						depth--
					}
				}
			}
			out = append(out, Token{Type: symbolNames[raw.Type], Value: raw.Value, Line: line, Col: col})
		}
	}

	if !atLineStart {
		out = append(out, Token{Type: TypeNewline, Value: "\n", Line: lastLine})
	}
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		out = append(out, Token{Type: TypeDedent, Line: lastLine})
	}
	out = append(out, Token{Type: TypeEOF, Line: lastLine})
	return out, nil
}

// indentWidth measures leading whitespace with tabs advancing to the next
// multiple of eight columns, matching Python's tokenizer.
func indentWidth(ws string) int {
	col := 0
	for _, r := range ws {
		switch r {
		case '\t':
			col = col/8*8 + 8
		case '\f':
			col = 0
		default:
			col++
		}
	}
	return col
}
