package transform

import (
	"cmp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/adaptgen/model"
)

// extractConstructors turns `__init__` methods into constructors. A class
// without one that wraps an original class gets a constructor that
// instantiates it without arguments. Classes only live in modules, so the
// walk stops at functions.
func extractConstructors(pkg *model.Package, _ *Report) {
	notFunction := func(n model.Node) bool {
		_, ok := n.(*model.Function)
		return !ok
	}
	for _, c := range model.DescendantsOf[*model.Class](pkg, notFunction) {
		if !c.Constructor.IsSet() {
			createConstructor(c)
		}
	}
}

func createConstructor(c *model.Class) {
	init, ok := c.Method(model.InitializerName)
	if !ok {
		if c.Original != nil {
			self := model.NewParameter("self")
			self.Assignment = model.Implicit
			ctor := model.NewConstructor()
			ctor.Parameters.Add(self)
			ctor.CallToOriginalAPI.Set(model.NewCall(c.Original.QualifiedName))
			c.Constructor.Set(ctor)
		}
		return
	}

	if call, ok := init.CallToOriginalAPI.Get(); ok {
		ctor := model.NewConstructor()
		for _, p := range init.Parameters.All() {
			ctor.Parameters.Add(p)
		}
		call.Receiver = strings.TrimSuffix(call.Receiver, "."+model.InitializerName)
		ctor.CallToOriginalAPI.Set(call)
		c.Constructor.Set(ctor)
	}
	init.Release()
}

// createAttributes adds an attribute for every explicit, non-variadic
// constructor parameter. Attributes follow the parameter's rename.
func createAttributes(pkg *model.Package, _ *Report) {
	for _, c := range model.DescendantsOf[*model.Class](pkg, nil) {
		ctor, ok := c.Constructor.Get()
		if !ok {
			continue
		}
		for _, p := range ctor.Parameters.All() {
			if p.IsImplicit() || p.IsVariadic() {
				continue
			}
			if _, exists := c.Attributes.Find(func(a *model.Attribute) bool { return a.Name == p.Name }); exists {
				continue
			}

			attr := model.NewAttribute(p.Name)
			attr.Type = p.Type
			attr.Description = p.Description
			attr.Boundary = p.Boundary
			attr.Value.Set(model.NewReference(p))
			for _, rename := range model.AnnotationsOf[*model.RenameAnnotation](p) {
				attr.AddAnnotation(&model.RenameAnnotation{NewName: rename.NewName})
			}
			c.Attributes.Add(attr)
		}
	}
}

// processRenameAnnotations renames declarations top-down, so a parent's new
// name is in place before any child is visited.
func processRenameAnnotations(pkg *model.Package, _ *Report) {
	for n := range model.Descendants(pkg, nil) {
		d, ok := n.(interface {
			model.Declaration
			model.Annotated
		})
		if !ok {
			continue
		}
		for _, a := range model.AnnotationsOf[*model.RenameAnnotation](d) {
			d.SetName(a.NewName)
			d.RemoveAnnotation(a)
		}
	}
}

// reorderParameters stable-sorts every parameter list into the syntactic
// order of assignment kinds.
func reorderParameters(pkg *model.Package, _ *Report) {
	byAssignment := func(a, b *model.Parameter) int {
		return cmp.Compare(a.Assignment, b.Assignment)
	}
	for n := range model.Descendants(pkg, nil) {
		switch d := n.(type) {
		case *model.Function:
			d.Parameters.SortStableFunc(byAssignment)
		case *model.Constructor:
			d.Parameters.SortStableFunc(byAssignment)
		}
	}
}

func removeEmptyModules(pkg *model.Package, _ *Report) {
	for _, m := range pkg.Modules.All() {
		if m.IsEmpty() {
			m.Release()
		}
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
