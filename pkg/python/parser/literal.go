package parser

import (
	"strings"

	"github.com/jleen/supriya/pkg/python/ast"
)

// parseStringGroup parses a run of adjacent string literals as one
// constant, applying implicit concatenation. A group containing any
// f-string stays an opaque FString since its value is not a literal.
func (p *parser) parseStringGroup() (ast.Expr, error) {
	var raws []string
	var content strings.Builder
	formatted := false
	bytesKind := false
	for p.at(TypeString) {
		tok := p.advance()
		raws = append(raws, tok.Value)
		prefix, body := splitStringLiteral(tok.Value)
		if strings.ContainsAny(prefix, "fF") {
			formatted = true
			continue
		}
		isBytes := strings.ContainsAny(prefix, "bB")
		bytesKind = bytesKind || isBytes
		if strings.ContainsAny(prefix, "rR") {
			content.WriteString(body)
		} else {
			content.WriteString(decodeEscapes(body, isBytes))
		}
	}
	raw := strings.Join(raws, " ")
	if formatted {
		return &ast.FString{Raw: raw}, nil
	}
	kind := ast.ConstString
	if bytesKind {
		kind = ast.ConstBytes
	}
	return &ast.Constant{Kind: kind, Raw: raw, Str: content.String()}, nil
}

// splitStringLiteral separates a raw string token into its prefix letters
// and the body between the quotes.
func splitStringLiteral(raw string) (prefix, body string) {
	i := 0
	for i < len(raw) && raw[i] != '"' && raw[i] != '\'' {
		i++
	}
	prefix = raw[:i]
	rest := raw[i:]
	quote := rest[0]
	if len(rest) >= 6 && rest[1] == quote && rest[2] == quote {
		return prefix, rest[3 : len(rest)-3]
	}
	return prefix, rest[1 : len(rest)-1]
}

// decodeEscapes resolves backslash escapes the way Python string literals
// do. Unknown escapes keep the backslash, matching Python's behavior.
func decodeEscapes(s string, bytes bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		switch e := s[i+1]; e {
		case '\n':
			i += 2 // escaped newline joins lines
		case '\r':
			i += 2
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			b.WriteByte(e)
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'a':
			b.WriteByte('\a')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val, j := 0, i+1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				val = val*8 + int(s[j]-'0')
				j++
			}
			writeCode(&b, val, bytes)
			i = j
		case 'x':
			if v, n := hexVal(s[i+2:], 2); n == 2 {
				writeCode(&b, v, bytes)
				i += 4
			} else {
				b.WriteByte(c)
				i++
			}
		case 'u', 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			if v, n := hexVal(s[i+2:], width); !bytes && n == width {
				b.WriteRune(rune(v))
				i += 2 + width
			} else {
				b.WriteByte(c)
				i++
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func writeCode(b *strings.Builder, v int, bytes bool) {
	if bytes || v < 0x80 {
		b.WriteByte(byte(v))
	} else {
		b.WriteRune(rune(v))
	}
}

func hexVal(s string, width int) (val, n int) {
	for n < width && n < len(s) {
		var d int
		switch c := s[n]; {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			return val, n
		}
		val = val*16 + d
		n++
	}
	return val, n
}
