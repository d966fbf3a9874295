package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jleen/supriya/pkg/python/ast"
	"github.com/jleen/supriya/pkg/python/parser"
)

func extractSource(t *testing.T, src string) ([]UGenClass, []*ast.ClassDef) {
	t.Helper()
	mod, err := parser.Parse("test.py", []byte(src))
	require.NoError(t, err)
	return newTestGenerator(nil).Extract(mod)
}

func TestExtractAnnotatedParam(t *testing.T) {
	src := `@ugen(ar=True)
class Decay(UGen):
    source: UGenScalarInput = param()
    decay_time = param(1.0)
`
	ugens, plains := extractSource(t, src)
	require.Len(t, ugens, 1)
	assert.Empty(t, plains)
	require.Len(t, ugens[0].Params, 2)
	assert.Equal(t, "source", ugens[0].Params[0].Name)
	assert.Equal(t, "decay_time", ugens[0].Params[1].Name)
}

func TestExtractChainedParamTargets(t *testing.T) {
	src := `@ugen(ar=True)
class Mix(UGen):
    left = right = param(0.0)
    gain = param(1.0)
`
	ugens, _ := extractSource(t, src)
	require.Len(t, ugens, 1)
	var names []string
	for _, p := range ugens[0].Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"left", "right", "gain"}, names)
}

func TestExtractIgnoresNonParamValues(t *testing.T) {
	src := `@ugen(kr=True)
class Line(UGen):
    start = param(0.0)
    _ordered_keys = ("start",)
    helper = make_param()
    rate: int = 2
`
	ugens, _ := extractSource(t, src)
	require.Len(t, ugens, 1)
	require.Len(t, ugens[0].Params, 1)
	assert.Equal(t, "start", ugens[0].Params[0].Name)
}

func TestExtractUnexpandedRequiresLiteral(t *testing.T) {
	src := `@ugen(dr=True)
class Dser(UGen):
    sequence = param(unexpanded=UNEXPANDED)
    repeats = param(unexpanded=False)
    values = param(unexpanded=1)
`
	ugens, _ := extractSource(t, src)
	require.Len(t, ugens, 1)
	params := ugens[0].Params
	require.Len(t, params, 3)
	assert.False(t, params[0].Unexpanded)
	assert.False(t, params[1].Unexpanded)
	assert.True(t, params[2].Unexpanded)
}

func TestExtractQualifiedDecoratorIsNotMarker(t *testing.T) {
	src := `@core.ugen(ar=True)
class NotMarked(Base):
    source = param()
`
	ugens, plains := extractSource(t, src)
	assert.Empty(t, ugens)
	require.Len(t, plains, 1)
	assert.Equal(t, "NotMarked", plains[0].Name)
}

func TestExtractBareMarker(t *testing.T) {
	src := `@ugen
class Control(UGen):
    pass
`
	ugens, _ := extractSource(t, src)
	require.Len(t, ugens, 1)
	assert.Empty(t, ugens[0].Opts)
	assert.Empty(t, ugens[0].Params)
}

func TestExtractPositionalDecoratorArgsIgnored(t *testing.T) {
	src := `@ugen("audio", ar=True)
class Osc(UGen):
    pass
`
	ugens, _ := extractSource(t, src)
	require.Len(t, ugens, 1)
	assert.True(t, ugens[0].Opts.RateEnabled("ar"))
	assert.Len(t, ugens[0].Opts, 1)
}

func TestExtractNestedClassesInvisible(t *testing.T) {
	src := `class Outer:
    @ugen(ar=True)
    class Inner(UGen):
        source = param()
`
	ugens, plains := extractSource(t, src)
	assert.Empty(t, ugens)
	require.Len(t, plains, 1)
	assert.Equal(t, "Outer", plains[0].Name)
}
