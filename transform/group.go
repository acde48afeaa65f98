package transform

import (
	"slices"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/model"
)

// processGroupAnnotations moves grouped parameters into a parameter-object
// class and replaces them with a single parameter of that class.
//
// Functions of one module that declare the same group name with the same
// members share the class.
func processGroupAnnotations(pkg *model.Package, r *Report) {
	for _, f := range model.DescendantsOf[*model.Function](pkg, nil) {
		for _, a := range model.AnnotationsOf[*model.GroupAnnotation](f) {
			if err := applyGroup(f, a); err != nil {
				r.problem(PassGroup, f, err)
				continue
			}
			f.RemoveAnnotation(a)
		}
	}
}

func applyGroup(f *model.Function, a *model.GroupAnnotation) error {
	mod, ok := model.Closest[*model.Module](f)
	if !ok {
		return errors.NewStructuralInvariantError("function is not owned by a module")
	}

	var members []*model.Parameter
	for _, p := range f.Parameters.All() {
		if slices.Contains(a.Parameters, p.Name) {
			members = append(members, p)
		}
	}
	if len(members) == 0 {
		return errors.NewStructuralInvariantError("group '%s' names no parameter of the function", a.GroupName)
	}

	position := f.Parameters.Index(members[0])
	class, err := findOrCreateGroupClass(mod, f, a.GroupName, members)
	if err != nil {
		return err
	}
	ctor := class.Constructor.Value()

	groupParam := model.NewParameter(lowerFirst(a.GroupName))
	groupParam.Type = model.NamedType{Declaration: class}
	groupParam.Assignment = model.PositionOrName
	f.Parameters.Insert(position, groupParam)

	for _, m := range members {
		field, _ := ctor.Parameters.Find(func(p *model.Parameter) bool { return p.Name == m.Name })
		for _, ref := range model.CrossReferencesTo(m) {
			if arg, ok := ref.Parent().(*model.Argument); ok {
				arg.Value.Set(model.NewMemberAccess(model.NewReference(groupParam), model.NewReference(field)))
			}
		}
		// Members of a shared class stay where the first function put them.
		if field != m {
			m.Release()
		}
	}
	return nil
}

func findOrCreateGroupClass(mod *model.Module, f *model.Function, groupName string, members []*model.Parameter) (*model.Class, error) {
	name := upperFirst(groupName)
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}

	if existing, ok := mod.Classes.Find(func(c *model.Class) bool { return c.Name == name }); ok {
		if existing.Original != nil || !slices.Equal(groupFieldNames(existing), names) {
			return nil, conflictingGroupError(groupName, mod.Name, model.QualifiedName(f))
		}
		return existing, nil
	}

	ctor := model.NewConstructor()
	self := model.NewParameter("self")
	self.Assignment = model.Implicit
	ctor.Parameters.Add(self)
	for _, m := range members {
		ctor.Parameters.Add(m)
	}

	class := model.NewClass(name)
	class.Constructor.Set(ctor)
	mod.Classes.Add(class)
	return class, nil
}

func groupFieldNames(c *model.Class) []string {
	ctor, ok := c.Constructor.Get()
	if !ok {
		return nil
	}
	var names []string
	for _, p := range ctor.Parameters.All() {
		if !p.IsImplicit() {
			names = append(names, p.Name)
		}
	}
	return names
}
