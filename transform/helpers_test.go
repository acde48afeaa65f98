package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/teranos/adaptgen/model"
)

func newPackage(modules ...*model.Module) *model.Package {
	pkg := model.NewPackage("lib")
	for _, m := range modules {
		pkg.Modules.Add(m)
	}
	return pkg
}

func newModule(name string, decls ...model.Declaration) *model.Module {
	m := model.NewModule(name)
	for _, d := range decls {
		switch d := d.(type) {
		case *model.Class:
			m.Classes.Add(d)
		case *model.Function:
			m.Functions.Add(d)
		}
	}
	return m
}

func newClass(name string, methods ...*model.Function) *model.Class {
	c := model.NewClass(name)
	for _, m := range methods {
		c.Methods.Add(m)
	}
	return c
}

func newFunction(name string, params ...*model.Parameter) *model.Function {
	f := model.NewFunction(name)
	for _, p := range params {
		f.Parameters.Add(p)
	}
	return f
}

func newParam(name string, annotations ...model.Annotation) *model.Parameter {
	p := model.NewParameter(name)
	for _, a := range annotations {
		p.AddAnnotation(a)
	}
	return p
}

func withDefault(p *model.Parameter, v string) *model.Parameter {
	p.SetDefault(v)
	return p
}

func annotate[T model.Annotated](d T, annotations ...model.Annotation) T {
	for _, a := range annotations {
		d.AddAnnotation(a)
	}
	return d
}

func run(pkg *model.Package) *Report {
	return Run(context.Background(), pkg)
}

// dump renders the tree one node per line so whole-tree changes can be
// compared as text.
func dump(pkg *model.Package) string {
	var sb strings.Builder
	depth := func(n model.Node) int {
		d := 0
		for cur := n.Parent(); cur != nil; cur = cur.Parent() {
			d++
		}
		return d
	}
	for n := range model.Descendants(pkg, nil) {
		sb.WriteString(strings.Repeat("  ", depth(n)-1))
		switch d := n.(type) {
		case *model.Module:
			fmt.Fprintf(&sb, "module %s", d.Name)
		case *model.Class:
			fmt.Fprintf(&sb, "class %s", d.Name)
		case *model.Constructor:
			sb.WriteString("constructor")
		case *model.Function:
			fmt.Fprintf(&sb, "function %s pure=%t calledAfter=%v", d.Name, d.IsPure, d.CalledAfter)
		case *model.Parameter:
			def := "<none>"
			if d.DefaultValue != nil {
				def = *d.DefaultValue
			}
			fmt.Fprintf(&sb, "parameter %s %s default=%s type=%s", d.Name, d.Assignment, def, model.TypeName(d.Type))
		case *model.Attribute:
			fmt.Fprintf(&sb, "attribute %s", d.Name)
		case *model.Result:
			fmt.Fprintf(&sb, "result %s", d.Name)
		case *model.Enum:
			fmt.Fprintf(&sb, "enum %s", d.Name)
		case *model.EnumInstance:
			fmt.Fprintf(&sb, "instance %s=%s", d.Name, d.Value)
		case *model.Call:
			fmt.Fprintf(&sb, "call %s", d.Receiver)
		case *model.Argument:
			fmt.Fprintf(&sb, "argument %q", d.Name)
		case *model.Reference:
			fmt.Fprintf(&sb, "reference %s", d.Declaration.GetName())
		case *model.Identifier:
			fmt.Fprintf(&sb, "identifier %s", d.Name)
		default:
			fmt.Fprintf(&sb, "%T", d)
		}
		if a, ok := n.(model.Annotated); ok {
			for _, ann := range a.AnnotationList() {
				fmt.Fprintf(&sb, " @%s", ann.Kind())
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// argumentFor returns the argument of call whose value refers to p.
func argumentFor(call *model.Call, p *model.Parameter) *model.Argument {
	for _, ref := range model.CrossReferencesTo(p) {
		if arg, ok := model.Closest[*model.Argument](ref); ok && arg.Parent() == model.Node(call) {
			return arg
		}
	}
	return nil
}

// literal unwraps the Go value of a literal expression.
func literal(e model.Expression) any {
	switch l := e.(type) {
	case *model.BooleanLiteral:
		return l.Value
	case *model.IntLiteral:
		return l.Value
	case *model.FloatLiteral:
		return l.Value
	case *model.StringLiteral:
		return l.Value
	case *model.NoneLiteral:
		return nil
	}
	return e
}
