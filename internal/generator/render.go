package generator

import (
	"strings"

	"github.com/jleen/supriya/pkg/python/ast"
)

// stubPreamble opens every generated stub. The core import carries every
// name a stub body can reference.
var stubPreamble = []string{
	"from typing import Any",
	"",
	"from supriya.typing import CalculationRateLike",
	"from supriya.ugens.core import UGen, UGenOperable, UGenRecursiveInput, UGenScalar, UGenScalarInput, UGenVector, UGenVectorInput",
	"",
}

// specialMethods are the underscore methods that still appear in plain
// class stubs.
var specialMethods = map[string]bool{
	"__str__":  true,
	"__repr__": true,
	"__plot__": true,
}

// renderDocument assembles a complete stub file: preamble, plain class
// stubs, then ugen class stubs, each followed by a blank line.
func renderDocument(ugens []UGenClass, plains []*ast.ClassDef) string {
	lines := append([]string{}, stubPreamble...)
	for _, cls := range plains {
		lines = append(lines, renderPlainStub(cls), "")
	}
	for _, u := range ugens {
		lines = append(lines, renderUGenStub(u), "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// renderUGenStub emits the typed surface the ugen decorator synthesizes at
// runtime: the keyword-only constructor, one property per parameter, and a
// classmethod per enabled calculation rate.
func renderUGenStub(u UGenClass) string {
	lines := []string{"class " + u.Name + "(UGen):"}

	initParams := []string{"self", "*", "calculation_rate: CalculationRateLike"}
	variableChannels := u.Opts.IsMultichannel() && !u.Opts.HasFixedChannelCount()
	if variableChannels {
		initParams = append(initParams, "channel_count: int = "+u.Opts.ChannelCount())
	}
	for _, p := range u.Params {
		hint := "UGenScalarInput"
		if p.Unexpanded {
			hint = "UGenVectorInput"
		}
		initParams = append(initParams, p.Name+": "+hint+" = ...")
	}
	initParams = append(initParams, "**kwargs: Any")
	lines = append(lines, "    def __init__("+strings.Join(initParams, ", ")+") -> None: ...")

	for _, p := range u.Params {
		ret := "UGenScalar"
		if p.Unexpanded {
			ret = "UGenVector"
		}
		lines = append(lines,
			"    @property",
			"    def "+p.Name+"(self) -> "+ret+": ...")
	}

	for _, rate := range calculationRates {
		if !u.Opts.RateEnabled(rate) {
			continue
		}
		rateParams := []string{"cls"}
		if len(u.Params) > 0 {
			rateParams = append(rateParams, "*")
		}
		for _, p := range u.Params {
			rateParams = append(rateParams, p.Name+": UGenRecursiveInput = ...")
		}
		if variableChannels {
			rateParams = append(rateParams, "channel_count: int = "+u.Opts.ChannelCount())
		}
		lines = append(lines,
			"    @classmethod",
			"    def "+rate+"("+strings.Join(rateParams, ", ")+") -> UGenOperable: ...")
	}

	return strings.Join(lines, "\n")
}

// renderPlainStub emits a minimal stub for a class without the ugen
// decorator: the header with name-or-dotted bases, __init__ if present, and
// the public synchronous methods. A class with no synchronous methods gets
// a bare ellipsis body.
func renderPlainStub(cls *ast.ClassDef) string {
	name := "class " + cls.Name
	var bases []string
	for _, base := range cls.Bases {
		switch b := base.(type) {
		case *ast.Name:
			bases = append(bases, b.ID)
		case *ast.Attribute:
			bases = append(bases, ast.Unparse(b.Value)+"."+b.Attr)
		}
	}
	if len(bases) > 0 {
		name += "(" + strings.Join(bases, ", ") + ")"
	}
	lines := []string{name + ":"}

	hasMethods := false
	for _, item := range cls.Body {
		fn, ok := item.(*ast.FunctionDef)
		if !ok || fn.Async {
			continue
		}
		hasMethods = true
		switch {
		case fn.Name == "__init__":
			lines = append(lines, "    def __init__("+formatParams(fn.Sig)+") -> None: ...")
		case strings.HasPrefix(fn.Name, "_") && !specialMethods[fn.Name]:
			// Private methods leave no trace in the stub.
		case hasBareDecorator(fn.Decorators, "property"):
			lines = append(lines,
				"    @property",
				"    def "+fn.Name+"(self) -> "+returnAnnotation(fn)+": ...")
		case hasBareDecorator(fn.Decorators, "staticmethod"):
			lines = append(lines,
				"    @staticmethod",
				"    def "+fn.Name+"("+formatParams(fn.Sig)+") -> "+returnAnnotation(fn)+": ...")
		case hasBareDecorator(fn.Decorators, "classmethod"):
			lines = append(lines,
				"    @classmethod",
				"    def "+fn.Name+"("+formatParams(fn.Sig)+") -> "+returnAnnotation(fn)+": ...")
		default:
			lines = append(lines, "    def "+fn.Name+"("+formatParams(fn.Sig)+") -> "+returnAnnotation(fn)+": ...")
		}
	}
	if !hasMethods {
		lines = append(lines, "    ...")
	}
	return strings.Join(lines, "\n")
}

// formatParams renders a signature the way stubs expect it: positional-only
// parameters and the bare keyword-only separator are dropped, everything
// else keeps its annotation and default.
func formatParams(sig ast.Signature) string {
	var params []string
	for _, p := range sig.Params {
		params = append(params, formatParam(p))
	}
	if sig.VarArg != nil {
		s := "*" + sig.VarArg.Name
		if sig.VarArg.Annotation != nil {
			s += ": " + ast.Unparse(sig.VarArg.Annotation)
		}
		params = append(params, s)
	}
	for _, p := range sig.KwOnly {
		params = append(params, formatParam(p))
	}
	if sig.KwArg != nil {
		s := "**" + sig.KwArg.Name
		if sig.KwArg.Annotation != nil {
			s += ": " + ast.Unparse(sig.KwArg.Annotation)
		}
		params = append(params, s)
	}
	return strings.Join(params, ", ")
}

func formatParam(p ast.Param) string {
	s := p.Name
	if p.Annotation != nil {
		s += ": " + ast.Unparse(p.Annotation)
	}
	if p.Default != nil {
		s += " = " + ast.Unparse(p.Default)
	}
	return s
}

func returnAnnotation(fn *ast.FunctionDef) string {
	if fn.Returns != nil {
		return ast.Unparse(fn.Returns)
	}
	return "Any"
}

func hasBareDecorator(decorators []ast.Expr, name string) bool {
	for _, dec := range decorators {
		if n, ok := dec.(*ast.Name); ok && n.ID == name {
			return true
		}
	}
	return false
}
