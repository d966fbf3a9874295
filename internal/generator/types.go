package generator

import (
	"strconv"
	"strings"

	"github.com/jleen/supriya/pkg/python/ast"
)

// Options holds the literal keyword arguments collected from a class's
// @ugen decorator. Values keep their parsed literal form; lookups follow
// Python truthiness, so ar=1 enables a rate just like ar=True.
type Options map[string]*ast.Constant

func (o Options) truthy(key string) bool {
	c, ok := o[key]
	return ok && c.Truthy()
}

// IsMultichannel reports whether the UGen declares a variable channel count.
func (o Options) IsMultichannel() bool { return o.truthy("is_multichannel") }

// HasFixedChannelCount reports whether the channel count is baked in, which
// suppresses the channel_count constructor argument.
func (o Options) HasFixedChannelCount() bool { return o.truthy("fixed_channel_count") }

// RateEnabled reports whether the named rate constructor was requested.
func (o Options) RateEnabled(rate string) bool { return o.truthy(rate) }

// ChannelCount renders the declared channel_count default, or 1 when the
// decorator does not set one.
func (o Options) ChannelCount() string {
	c, ok := o["channel_count"]
	if !ok {
		return "1"
	}
	return constText(c)
}

// constText renders a literal the way Python's str() shows its value:
// strings unquoted, integers in decimal whatever their source base.
func constText(c *ast.Constant) string {
	switch c.Kind {
	case ast.ConstString:
		return c.Str
	case ast.ConstNumber:
		raw := strings.ReplaceAll(c.Raw, "_", "")
		if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return c.Raw
	default:
		return c.Literal()
	}
}

// Parameter is one param() declaration from a UGen class body.
type Parameter struct {
	Name       string
	Unexpanded bool
}

// UGenClass is everything the stub renderer needs for a @ugen class.
type UGenClass struct {
	Name   string
	Opts   Options
	Params []Parameter
}

// calculationRates lists the rate constructors in the order stubs emit them.
var calculationRates = []string{"ar", "kr", "ir", "dr", "new"}
