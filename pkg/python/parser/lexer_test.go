package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []Token) []string {
	types := make([]string, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeStatements(t *testing.T) {
	toks, err := Tokenize("test.py", "x = 1\ndef f():\n    return x\n")
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeOp, TypeNumber, TypeNewline,
		TypeIdent, TypeIdent, TypeOp, TypeOp, TypeOp, TypeNewline,
		TypeIndent, TypeIdent, TypeIdent, TypeNewline, TypeDedent,
		TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeNestedBlocks(t *testing.T) {
	src := "class A:\n    def f(self):\n        pass\n    x = 1\ny = 2\n"
	toks, err := Tokenize("test.py", src)
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeIdent, TypeOp, TypeNewline,
		TypeIndent, TypeIdent, TypeIdent, TypeOp, TypeIdent, TypeOp, TypeOp, TypeNewline,
		TypeIndent, TypeIdent, TypeNewline,
		TypeDedent, TypeIdent, TypeOp, TypeNumber, TypeNewline,
		TypeDedent, TypeIdent, TypeOp, TypeNumber, TypeNewline,
		TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeImplicitJoin(t *testing.T) {
	toks, err := Tokenize("test.py", "xs = [\n    1,\n    2,\n]\n")
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeOp, TypeOp, TypeNumber, TypeOp, TypeNumber, TypeOp, TypeOp,
		TypeNewline, TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeBackslashJoin(t *testing.T) {
	toks, err := Tokenize("test.py", "total = 1 + \\\n    2\n")
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeOp, TypeNumber, TypeOp, TypeNumber, TypeNewline, TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeCommentsAndBlankLines(t *testing.T) {
	src := "# header\n\nx = 1\n\n    # indented comment\n\ny = 2\n"
	toks, err := Tokenize("test.py", src)
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeOp, TypeNumber, TypeNewline,
		TypeIdent, TypeOp, TypeNumber, TypeNewline,
		TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeTripleQuotedString(t *testing.T) {
	toks, err := Tokenize("test.py", "s = \"\"\"one\ntwo\"\"\"\nt = 2\n")
	require.NoError(t, err)
	require.Equal(t, []string{
		TypeIdent, TypeOp, TypeString, TypeNewline,
		TypeIdent, TypeOp, TypeNumber, TypeNewline,
		TypeEOF,
	}, tokenTypes(toks))
	assert.Equal(t, "\"\"\"one\ntwo\"\"\"", toks[2].Value)
	assert.Equal(t, 3, toks[4].Line, "statement after a multiline string keeps its line number")
}

func TestTokenizeStringForms(t *testing.T) {
	literals := []string{
		`'it'`,
		`"she said \"hi\""`,
		`r"raw\n"`,
		`b'bytes'`,
		`rb'raw bytes'`,
		`f"{x}"`,
		`'''triple'''`,
		`''`,
	}
	for _, lit := range literals {
		t.Run(lit, func(t *testing.T) {
			toks, err := Tokenize("test.py", "v = "+lit+"\n")
			require.NoError(t, err)
			require.Equal(t, []string{
				TypeIdent, TypeOp, TypeString, TypeNewline, TypeEOF,
			}, tokenTypes(toks))
			assert.Equal(t, lit, toks[2].Value)
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	numbers := []string{
		"0", "42", "1_000", "3.14", ".5", "1.", "1e10", "2.5e-3",
		"0x1F", "0o755", "0b1010", "2j", "1.5J",
	}
	for _, num := range numbers {
		t.Run(num, func(t *testing.T) {
			toks, err := Tokenize("test.py", "v = "+num+"\n")
			require.NoError(t, err)
			require.Equal(t, []string{
				TypeIdent, TypeOp, TypeNumber, TypeNewline, TypeEOF,
			}, tokenTypes(toks))
			assert.Equal(t, num, toks[2].Value)
		})
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks, err := Tokenize("test.py", "a ** b // c -> d ... <= != **\n")
	require.NoError(t, err)
	var ops []string
	for _, tok := range toks {
		if tok.Type == TypeOp {
			ops = append(ops, tok.Value)
		}
	}
	assert.Equal(t, []string{"**", "//", "->", "...", "<=", "!=", "**"}, ops)
}

func TestTokenizeTabIndentation(t *testing.T) {
	toks, err := Tokenize("test.py", "if x:\n\ty = 1\n")
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeIdent, TypeOp, TypeNewline,
		TypeIndent, TypeIdent, TypeOp, TypeNumber, TypeNewline, TypeDedent,
		TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeEmpty(t *testing.T) {
	for _, src := range []string{"", "\n", "\n\n", "# comment only\n"} {
		toks, err := Tokenize("test.py", src)
		require.NoError(t, err)
		assert.Equal(t, []string{TypeEOF}, tokenTypes(toks))
	}
}

func TestTokenizeMissingFinalNewline(t *testing.T) {
	toks, err := Tokenize("test.py", "x = 1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		TypeIdent, TypeOp, TypeNumber, TypeNewline, TypeEOF,
	}, tokenTypes(toks))
}

func TestTokenizeDedentMismatch(t *testing.T) {
	_, err := Tokenize("test.py", "def f():\n        a = 1\n    b = 2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unindent")
}

func TestTokenizeInvalidInput(t *testing.T) {
	for _, src := range []string{"x = $\n", "s = \"abc\n", "y = 'unclosed"} {
		t.Run(src, func(t *testing.T) {
			_, err := Tokenize("test.py", src)
			assert.Error(t, err)
		})
	}
}

func TestIndentWidth(t *testing.T) {
	tests := []struct {
		ws   string
		want int
	}{
		{"", 0},
		{"    ", 4},
		{"\t", 8},
		{"  \t", 8},
		{"\t ", 9},
		{"\t\t", 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, indentWidth(tt.ws), "%q", tt.ws)
	}
}
