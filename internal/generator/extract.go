package generator

import (
	"github.com/jleen/supriya/pkg/python/ast"
)

// Extract walks the module's top-level class definitions and splits them
// into @ugen classes, reduced to the data their stubs need, and plain
// classes kept whole for the minimal-stub renderer.
func (g *Generator) Extract(mod *ast.Module) ([]UGenClass, []*ast.ClassDef) {
	var ugens []UGenClass
	var plains []*ast.ClassDef
	for _, st := range mod.Body {
		cls, ok := st.(*ast.ClassDef)
		if !ok {
			continue
		}
		dec, ok := findUGenDecorator(cls)
		if !ok {
			plains = append(plains, cls)
			continue
		}
		ugens = append(ugens, UGenClass{
			Name:   cls.Name,
			Opts:   g.decoratorOptions(cls.Name, dec),
			Params: classParams(cls),
		})
	}
	return ugens, plains
}

// findUGenDecorator returns the first decorator that is the ugen marker,
// either bare or called. Anything else, including an attribute-qualified
// core.ugen, does not count.
func findUGenDecorator(cls *ast.ClassDef) (ast.Expr, bool) {
	for _, dec := range cls.Decorators {
		switch d := dec.(type) {
		case *ast.Call:
			if name, ok := d.Func.(*ast.Name); ok && name.ID == "ugen" {
				return d, true
			}
		case *ast.Name:
			if d.ID == "ugen" {
				return d, true
			}
		}
	}
	return nil, false
}

// decoratorOptions collects the decorator's literal keyword arguments. A
// bare @ugen has none. Non-literal values cannot be carried into a stub,
// so they are dropped with a warning.
func (g *Generator) decoratorOptions(className string, dec ast.Expr) Options {
	opts := Options{}
	call, ok := dec.(*ast.Call)
	if !ok {
		return opts
	}
	for _, kw := range call.Keywords {
		if kw.Name == "" {
			continue
		}
		c, ok := kw.Value.(*ast.Constant)
		if !ok {
			g.log.Warnw("ignoring non-literal decorator argument",
				"class", className,
				"argument", kw.Name,
				"value", ast.Unparse(kw.Value))
			continue
		}
		opts[kw.Name] = c
	}
	return opts
}

// classParams collects param() declarations from a class body in source
// order. Both bare and annotated assignments count; a chained assignment
// registers every plain-name target.
func classParams(cls *ast.ClassDef) []Parameter {
	var params []Parameter
	for _, item := range cls.Body {
		switch st := item.(type) {
		case *ast.AnnAssign:
			call, ok := paramCall(st.Value)
			if !ok {
				continue
			}
			if name, ok := st.Target.(*ast.Name); ok {
				params = append(params, Parameter{Name: name.ID, Unexpanded: unexpandedArg(call)})
			}
		case *ast.Assign:
			call, ok := paramCall(st.Value)
			if !ok {
				continue
			}
			for _, target := range st.Targets {
				if name, ok := target.(*ast.Name); ok {
					params = append(params, Parameter{Name: name.ID, Unexpanded: unexpandedArg(call)})
				}
			}
		}
	}
	return params
}

func paramCall(e ast.Expr) (*ast.Call, bool) {
	call, ok := e.(*ast.Call)
	if !ok {
		return nil, false
	}
	name, ok := call.Func.(*ast.Name)
	if !ok || name.ID != "param" {
		return nil, false
	}
	return call, true
}

// unexpandedArg reads the unexpanded keyword of a param() call, applying
// Python truthiness to its literal value. Missing or non-literal means
// expanded.
func unexpandedArg(call *ast.Call) bool {
	for _, kw := range call.Keywords {
		if kw.Name == "unexpanded" {
			if c, ok := kw.Value.(*ast.Constant); ok {
				return c.Truthy()
			}
		}
	}
	return false
}
