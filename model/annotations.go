package model

import (
	"slices"
	"strconv"
	"strings"
)

// AnnotationKind names an annotation variant. The names double as keys of
// the validator's combination table and as the wire discriminator.
type AnnotationKind string

const (
	KindAttribute   AnnotationKind = "Attribute"
	KindBoundary    AnnotationKind = "Boundary"
	KindCalledAfter AnnotationKind = "CalledAfter"
	KindConstant    AnnotationKind = "Constant"
	KindDescription AnnotationKind = "Description"
	KindEnum        AnnotationKind = "Enum"
	KindGroup       AnnotationKind = "Group"
	KindMove        AnnotationKind = "Move"
	KindOmitted     AnnotationKind = "Omitted"
	KindOptional    AnnotationKind = "Optional"
	KindPure        AnnotationKind = "Pure"
	KindRemove      AnnotationKind = "Remove"
	KindRename      AnnotationKind = "Rename"
	KindRequired    AnnotationKind = "Required"
	KindTodo        AnnotationKind = "Todo"
)

// AnnotationKinds lists every variant in alphabetical order.
var AnnotationKinds = []AnnotationKind{
	KindAttribute, KindBoundary, KindCalledAfter, KindConstant, KindDescription,
	KindEnum, KindGroup, KindMove, KindOmitted, KindOptional, KindPure,
	KindRemove, KindRename, KindRequired, KindTodo,
}

// Annotation is a user-authored directive attached to a declaration.
// The set of implementations is closed; consumers switch over the concrete
// pointer types.
type Annotation interface {
	Kind() AnnotationKind
	annotation()
}

type AttributeAnnotation struct{ DefaultValue DefaultValue }
type BoundaryAnnotation struct{ Boundary Boundary }
type CalledAfterAnnotation struct{ CalledAfterName string }
type ConstantAnnotation struct{ DefaultValue DefaultValue }
type DescriptionAnnotation struct{ NewDescription string }
type EnumAnnotation struct {
	EnumName string
	Pairs    []EnumPair
}
type GroupAnnotation struct {
	GroupName  string
	Parameters []string
}
type MoveAnnotation struct{ Destination string }
type OmittedAnnotation struct{}
type OptionalAnnotation struct{ DefaultValue DefaultValue }
type PureAnnotation struct{}
type RemoveAnnotation struct{}
type RenameAnnotation struct{ NewName string }
type RequiredAnnotation struct{}
type TodoAnnotation struct{ NewTodo string }

// EnumPair maps a string value accepted by the original API to the name of
// the generated enum instance.
type EnumPair struct {
	StringValue  string
	InstanceName string
}

func (*AttributeAnnotation) Kind() AnnotationKind   { return KindAttribute }
func (*BoundaryAnnotation) Kind() AnnotationKind    { return KindBoundary }
func (*CalledAfterAnnotation) Kind() AnnotationKind { return KindCalledAfter }
func (*ConstantAnnotation) Kind() AnnotationKind    { return KindConstant }
func (*DescriptionAnnotation) Kind() AnnotationKind { return KindDescription }
func (*EnumAnnotation) Kind() AnnotationKind        { return KindEnum }
func (*GroupAnnotation) Kind() AnnotationKind       { return KindGroup }
func (*MoveAnnotation) Kind() AnnotationKind        { return KindMove }
func (*OmittedAnnotation) Kind() AnnotationKind     { return KindOmitted }
func (*OptionalAnnotation) Kind() AnnotationKind    { return KindOptional }
func (*PureAnnotation) Kind() AnnotationKind        { return KindPure }
func (*RemoveAnnotation) Kind() AnnotationKind      { return KindRemove }
func (*RenameAnnotation) Kind() AnnotationKind      { return KindRename }
func (*RequiredAnnotation) Kind() AnnotationKind    { return KindRequired }
func (*TodoAnnotation) Kind() AnnotationKind        { return KindTodo }

func (*AttributeAnnotation) annotation()   {}
func (*BoundaryAnnotation) annotation()    {}
func (*CalledAfterAnnotation) annotation() {}
func (*ConstantAnnotation) annotation()    {}
func (*DescriptionAnnotation) annotation() {}
func (*EnumAnnotation) annotation()        {}
func (*GroupAnnotation) annotation()       {}
func (*MoveAnnotation) annotation()        {}
func (*OmittedAnnotation) annotation()     {}
func (*OptionalAnnotation) annotation()    {}
func (*PureAnnotation) annotation()        {}
func (*RemoveAnnotation) annotation()      {}
func (*RenameAnnotation) annotation()      {}
func (*RequiredAnnotation) annotation()    {}
func (*TodoAnnotation) annotation()        {}

// DefaultValue is the typed value carried by Constant, Optional and
// Attribute annotations.
type DefaultValue interface {
	// PythonLiteral renders the value in Python source syntax.
	PythonLiteral() string
	defaultValue()
}

type BooleanValue struct{ Value bool }
type NumberValue struct{ Value float64 }
type StringValue struct{ Value string }
type NoneValue struct{}

func (BooleanValue) defaultValue() {}
func (NumberValue) defaultValue()  {}
func (StringValue) defaultValue()  {}
func (NoneValue) defaultValue()    {}

func (v BooleanValue) PythonLiteral() string {
	if v.Value {
		return "True"
	}
	return "False"
}

// PythonLiteral drops the fraction of integral numbers.
func (v NumberValue) PythonLiteral() string {
	if i, ok := v.Int(); ok {
		return strconv.FormatInt(i, 10)
	}
	return FormatFloat(v.Value)
}

// Int returns the value as an integer when it has no fractional part.
func (v NumberValue) Int() (int64, bool) {
	i := int64(v.Value)
	return i, float64(i) == v.Value
}

func (v StringValue) PythonLiteral() string {
	return QuotePython(v.Value)
}

func (NoneValue) PythonLiteral() string { return "None" }

// QuotePython renders s as a single-quoted Python string literal.
func QuotePython(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// Annotations is the mutable annotation list carried by declarations.
type Annotations struct {
	annotations []Annotation
}

// AnnotationList returns a snapshot of the attached annotations.
func (a *Annotations) AnnotationList() []Annotation {
	return slices.Clone(a.annotations)
}

// AddAnnotation attaches ann.
func (a *Annotations) AddAnnotation(ann Annotation) {
	a.annotations = append(a.annotations, ann)
}

// RemoveAnnotation detaches ann by identity. It reports whether ann was attached.
func (a *Annotations) RemoveAnnotation(ann Annotation) bool {
	i := slices.Index(a.annotations, ann)
	if i < 0 {
		return false
	}
	a.annotations = slices.Delete(a.annotations, i, i+1)
	return true
}

// HasAnnotation reports whether an annotation of kind k is attached.
func (a *Annotations) HasAnnotation(k AnnotationKind) bool {
	return slices.ContainsFunc(a.annotations, func(x Annotation) bool { return x.Kind() == k })
}

func (a *Annotations) annotationsBase() *Annotations { return a }

// Annotated is implemented by every node that carries annotations.
type Annotated interface {
	AnnotationList() []Annotation
	AddAnnotation(Annotation)
	RemoveAnnotation(Annotation) bool
	HasAnnotation(AnnotationKind) bool
	annotationsBase() *Annotations
}

// AnnotationsOf returns the annotations of d with concrete type T.
func AnnotationsOf[T Annotation](d Annotated) []T {
	var out []T
	for _, a := range d.annotationsBase().annotations {
		if t, ok := a.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
