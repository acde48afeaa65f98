package transform

import (
	"slices"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/model"
)

// processRemoveAnnotations drops classes and functions marked for removal.
func processRemoveAnnotations(pkg *model.Package, _ *Report) {
	for n := range model.Descendants(pkg, nil) {
		switch d := n.(type) {
		case *model.Class:
			if d.HasAnnotation(model.KindRemove) {
				d.Release()
			}
		case *model.Function:
			if d.HasAnnotation(model.KindRemove) {
				d.Release()
			}
		}
	}
}

func processBoundaryAnnotations(pkg *model.Package, _ *Report) {
	for _, p := range model.DescendantsOf[*model.Parameter](pkg, nil) {
		for _, a := range model.AnnotationsOf[*model.BoundaryAnnotation](p) {
			b := a.Boundary
			p.Boundary = &b
			p.RemoveAnnotation(a)
		}
	}
}

// processValueAnnotations applies Constant, Omitted, Optional and Required.
func processValueAnnotations(pkg *model.Package, r *Report) {
	for _, p := range model.DescendantsOf[*model.Parameter](pkg, nil) {
		for _, a := range p.AnnotationList() {
			var released bool
			var err error
			switch a := a.(type) {
			case *model.ConstantAnnotation:
				released, err = replaceWithConstant(p, a.DefaultValue)
			case *model.OmittedAnnotation:
				released, err = omit(p)
			case *model.OptionalAnnotation:
				p.Assignment = model.NameOnly
				p.SetDefault(a.DefaultValue.PythonLiteral())
			case *model.RequiredAnnotation:
				p.Assignment = model.PositionOrName
				p.DefaultValue = nil
			default:
				continue
			}
			if err != nil {
				r.problem(PassValue, p, err)
				break
			}
			p.RemoveAnnotation(a)
			if released {
				break
			}
		}
	}
}

// referencingArgument returns the single argument whose value refers to p.
func referencingArgument(p *model.Parameter) (*model.Argument, error) {
	var args []*model.Argument
	for _, ref := range model.CrossReferencesTo(p) {
		if arg, ok := model.Closest[*model.Argument](ref); ok && !slices.Contains(args, arg) {
			args = append(args, arg)
		}
	}
	if len(args) != 1 {
		return nil, referenceCountError(len(args))
	}
	return args[0], nil
}

func replaceWithConstant(p *model.Parameter, v model.DefaultValue) (bool, error) {
	arg, err := referencingArgument(p)
	if err != nil {
		return false, err
	}
	arg.Value.Set(model.Literal(v))
	p.Release()
	return true, nil
}

func omit(p *model.Parameter) (bool, error) {
	arg, err := referencingArgument(p)
	if err != nil {
		return false, err
	}
	arg.Release()
	p.Release()
	return true, nil
}

// processAttributeAnnotations turns initializer parameters into class
// attributes with a fixed value.
func processAttributeAnnotations(pkg *model.Package, r *Report) {
	for _, p := range model.DescendantsOf[*model.Parameter](pkg, nil) {
		annotations := model.AnnotationsOf[*model.AttributeAnnotation](p)
		if len(annotations) == 0 {
			continue
		}
		a := annotations[0]

		class, ok := model.Closest[*model.Class](p)
		if !ok {
			r.problem(PassAttribute, p, errors.NewStructuralInvariantError("parameter is not owned by a class"))
			continue
		}
		arg, err := referencingArgument(p)
		if err != nil {
			r.problem(PassAttribute, p, err)
			continue
		}

		arg.Value.Set(model.Literal(a.DefaultValue))

		attr := model.NewAttribute(p.Name)
		attr.Type = p.Type
		attr.Description = p.Description
		attr.Boundary = p.Boundary
		attr.Value.Set(model.Literal(a.DefaultValue))
		for _, rename := range model.AnnotationsOf[*model.RenameAnnotation](p) {
			attr.AddAnnotation(&model.RenameAnnotation{NewName: rename.NewName})
		}
		class.Attributes.Add(attr)

		p.RemoveAnnotation(a)
		p.Release()
	}
}

// processEnumAnnotations replaces string parameters with generated enums.
// An enum is shared by every parameter of the module that declares the same
// name and instances.
func processEnumAnnotations(pkg *model.Package, r *Report) {
	for _, p := range model.DescendantsOf[*model.Parameter](pkg, nil) {
		for _, a := range model.AnnotationsOf[*model.EnumAnnotation](p) {
			mod, ok := model.Closest[*model.Module](p)
			if !ok {
				break
			}

			enum, err := findOrCreateEnum(mod, p, a)
			if err != nil {
				r.problem(PassEnum, p, err)
				break
			}

			p.Type = model.NamedType{Declaration: enum}
			for _, ref := range model.CrossReferencesTo(p) {
				if arg, ok := ref.Parent().(*model.Argument); ok {
					arg.Value.Set(model.NewMemberAccess(model.NewReference(p), model.NewIdentifier("value")))
				}
			}
			p.RemoveAnnotation(a)
		}
	}
}

func findOrCreateEnum(mod *model.Module, p *model.Parameter, a *model.EnumAnnotation) (*model.Enum, error) {
	name := upperFirst(a.EnumName)
	existing, found := mod.Enums.Find(func(e *model.Enum) bool { return e.Name == name })
	if found {
		if !sameInstances(existing, a.Pairs) {
			return nil, conflictingEnumError(a.EnumName, mod.Name, model.QualifiedName(p))
		}
		return existing, nil
	}

	enum := model.NewEnum(name)
	for _, pair := range a.Pairs {
		enum.Instances.Add(model.NewEnumInstance(pair.InstanceName, pair.StringValue))
	}
	mod.Enums.Add(enum)
	return enum, nil
}

func sameInstances(e *model.Enum, pairs []model.EnumPair) bool {
	if e.Instances.Len() != len(pairs) {
		return false
	}
	for i, pair := range pairs {
		inst := e.Instances.At(i)
		if inst.Name != pair.InstanceName || inst.Value != pair.StringValue {
			return false
		}
	}
	return true
}

// processMoveAnnotations reparents global classes and functions into their
// destination module, creating it when needed.
func processMoveAnnotations(pkg *model.Package, _ *Report) {
	for _, mod := range pkg.Modules.All() {
		for _, c := range mod.Classes.All() {
			for _, a := range model.AnnotationsOf[*model.MoveAnnotation](c) {
				if a.Destination != mod.Name {
					destinationModule(pkg, a.Destination).Classes.Add(c)
				}
				c.RemoveAnnotation(a)
			}
		}
		for _, f := range mod.Functions.All() {
			for _, a := range model.AnnotationsOf[*model.MoveAnnotation](f) {
				if a.Destination != mod.Name {
					destinationModule(pkg, a.Destination).Functions.Add(f)
				}
				f.RemoveAnnotation(a)
			}
		}
	}
}

func destinationModule(pkg *model.Package, name string) *model.Module {
	if mod, ok := pkg.Module(name); ok {
		return mod
	}
	mod := model.NewModule(name)
	pkg.Modules.Add(mod)
	return mod
}

// processMetadataAnnotations copies Pure, CalledAfter, Description and Todo
// onto the declarations they annotate.
func processMetadataAnnotations(pkg *model.Package, _ *Report) {
	for n := range model.Descendants(pkg, nil) {
		d, ok := n.(model.Annotated)
		if !ok {
			continue
		}
		for _, a := range d.AnnotationList() {
			switch a := a.(type) {
			case *model.PureAnnotation:
				if f, ok := n.(*model.Function); ok {
					f.IsPure = true
				}
			case *model.CalledAfterAnnotation:
				if f, ok := n.(*model.Function); ok {
					f.CalledAfter = append(f.CalledAfter, a.CalledAfterName)
				}
			case *model.DescriptionAnnotation:
				setDescription(n, a.NewDescription)
			case *model.TodoAnnotation:
				setTodo(n, a.NewTodo)
			default:
				continue
			}
			d.RemoveAnnotation(a)
		}
	}
}

func setDescription(n model.Node, text string) {
	switch d := n.(type) {
	case *model.Class:
		d.Description = text
	case *model.Function:
		d.Description = text
	case *model.Parameter:
		d.Description = text
	case *model.Attribute:
		d.Description = text
	case *model.Result:
		d.Description = text
	}
}

func setTodo(n model.Node, text string) {
	switch d := n.(type) {
	case *model.Class:
		d.Todo = text
	case *model.Function:
		d.Todo = text
	case *model.Parameter:
		d.Todo = text
	}
}
