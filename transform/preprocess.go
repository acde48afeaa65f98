package transform

import (
	"github.com/teranos/adaptgen/model"
)

// attachOriginals snapshots the identity of every class, function and
// parameter and builds each function's call into the wrapped API. It runs
// once per package.
func attachOriginals(pkg *model.Package, _ *Report) {
	if pkg.OriginalsAttached {
		return
	}
	pkg.OriginalsAttached = true

	var functions []*model.Function
	for n := range model.Descendants(pkg, nil) {
		switch d := n.(type) {
		case *model.Class:
			d.Original = &model.OriginalDeclaration{QualifiedName: model.QualifiedName(d)}
		case *model.Function:
			d.Original = &model.OriginalDeclaration{QualifiedName: model.QualifiedName(d)}
			functions = append(functions, d)
		case *model.Parameter:
			d.Original = &model.OriginalDeclaration{
				QualifiedName: model.QualifiedName(d),
				Assignment:    d.Assignment,
			}
		}
	}

	for _, f := range functions {
		f.CallToOriginalAPI.Set(callToOriginalAPI(f))
	}
}

// callToOriginalAPI forwards every explicit parameter of f to the function
// it wraps. Instance methods call through the wrapped instance.
//
// Arguments whose parameter can be passed by name are named, so dropping one
// of them later cannot shift the positions of the rest. Before a *args
// parameter everything stays positional.
func callToOriginalAPI(f *model.Function) *model.Call {
	receiver := f.Original.QualifiedName
	if f.IsMethod() && !f.IsStatic() && !f.IsInitializer() {
		receiver = "self.instance." + f.Name
	}

	params := f.Parameters.All()
	hasPositionalVararg := false
	for _, p := range params {
		if p.Assignment == model.PositionalVararg {
			hasPositionalVararg = true
		}
	}

	call := model.NewCall(receiver)
	for i, p := range params {
		if isImplicitAt(f, i) {
			continue
		}
		var value model.Expression = model.NewReference(p)
		name := ""
		switch p.Assignment {
		case model.PositionalVararg:
			value = model.NewPositionalSpread(value)
		case model.NamedVararg:
			value = model.NewNamedSpread(value)
		case model.NameOnly:
			name = p.Name
		case model.PositionOrName:
			if p.DefaultValue != nil && !hasPositionalVararg {
				name = p.Name
			}
		}
		call.Arguments.Add(model.NewArgument(name, value))
	}
	return call
}

func isImplicitAt(f *model.Function, i int) bool {
	return i == 0 && f.IsMethod() && !f.IsStatic()
}

// updateParameterAssignment derives how each parameter is passed: the
// receiver of a method or constructor is implicit, parameters with a default
// are keyword-only and the rest are positional-or-keyword. Variadic
// parameters keep their kind.
func updateParameterAssignment(pkg *model.Package, _ *Report) {
	for _, p := range model.DescendantsOf[*model.Parameter](pkg, nil) {
		switch {
		case isImplicit(p):
			p.Assignment = model.Implicit
		case p.IsVariadic():
		case p.DefaultValue == nil:
			p.Assignment = model.PositionOrName
		default:
			p.Assignment = model.NameOnly
		}
	}
}

func isImplicit(p *model.Parameter) bool {
	switch owner := p.Parent().(type) {
	case *model.Function:
		return owner.IsMethod() && !owner.IsStatic() && owner.Parameters.Index(p) == 0
	case *model.Constructor:
		return owner.Parameters.Index(p) == 0
	}
	return false
}
