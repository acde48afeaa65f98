// Package validation checks that annotations are attached to declarations
// they apply to and that annotations sharing a declaration can be combined.
//
// Validate never stops at the first problem; an editor shows every finding
// at once, so all of them are returned.
package validation

import (
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
)

// Validate returns every annotation problem in pkg in declaration order.
// Annotations on the package and on modules are not checked.
func Validate(pkg *model.Package) []Error {
	v := &validator{}
	for _, m := range pkg.Modules.All() {
		for _, c := range m.Classes.All() {
			v.class(c)
		}
		for _, f := range m.Functions.All() {
			v.function(f, TargetGlobalFunction)
		}
	}
	logger.Debugw("Validated annotations",
		"package", pkg.Name,
		logger.FieldCount, len(v.errs))
	return v.errs
}

type validator struct {
	errs []Error
}

func (v *validator) class(c *model.Class) {
	for _, m := range c.Methods.All() {
		v.function(m, TargetMethod)
	}
	v.declaration(c, TargetClass)
}

func (v *validator) function(f *model.Function, target Target) {
	grouped := groupedParameterNames(f)
	paramTarget := TargetFunctionParameter
	if target == TargetMethod && f.Name == model.InitializerName {
		paramTarget = TargetConstructorParameter
	}

	for _, p := range f.Parameters.All() {
		v.declaration(p, paramTarget)
		if _, ok := grouped[p.Name]; ok {
			v.groupMember(p)
		}
	}
	v.declaration(f, target)
}

type annotatedDeclaration interface {
	model.Declaration
	model.Annotated
}

func (v *validator) declaration(d annotatedDeclaration, target Target) {
	qn := model.QualifiedName(d)
	annotations := d.AnnotationList()

	for _, a := range annotations {
		if !IsApplicable(a.Kind(), target) {
			v.errs = append(v.errs, AnnotationTargetError{Declaration: qn, Annotation: a.Kind(), Target: target})
		}
	}

	for i := range annotations {
		for j := i + 1; j < len(annotations); j++ {
			first, second := annotations[i].Kind(), annotations[j].Kind()
			if !CanCombine(first, second) {
				v.errs = append(v.errs, AnnotationCombinationError{Declaration: qn, First: first, Second: second})
			}
		}
	}
}

func (v *validator) groupMember(p *model.Parameter) {
	qn := model.QualifiedName(p)
	for _, a := range p.AnnotationList() {
		if !AllowedInGroup(a.Kind()) {
			v.errs = append(v.errs, GroupAnnotationCombinationError{Declaration: qn, Annotation: a.Kind()})
		}
	}
}

func groupedParameterNames(f *model.Function) map[string]struct{} {
	names := make(map[string]struct{})
	for _, g := range model.AnnotationsOf[*model.GroupAnnotation](f) {
		for _, name := range g.Parameters {
			names[name] = struct{}{}
		}
	}
	return names
}
