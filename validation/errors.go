package validation

import (
	"fmt"
	"strings"

	"github.com/teranos/adaptgen/model"
)

// Error is one validation finding. Findings are values, not Go errors: the
// validator collects all of them before anything is reported.
type Error interface {
	// QualifiedName identifies the offending declaration.
	QualifiedName() string
	Message() string
}

// AnnotationTargetError is an annotation attached to a kind of declaration
// it does not apply to.
type AnnotationTargetError struct {
	Declaration string
	Annotation  model.AnnotationKind
	Target      Target
}

func (e AnnotationTargetError) QualifiedName() string { return e.Declaration }

func (e AnnotationTargetError) Message() string {
	return fmt.Sprintf("the annotation '%s' cannot be set on a %s: %s",
		strings.ToLower(string(e.Annotation)), e.Target, e.Declaration)
}

// AnnotationCombinationError is a pair of annotations that may not coexist.
type AnnotationCombinationError struct {
	Declaration string
	First       model.AnnotationKind
	Second      model.AnnotationKind
}

func (e AnnotationCombinationError) QualifiedName() string { return e.Declaration }

func (e AnnotationCombinationError) Message() string {
	return "(" + strings.ToLower(string(e.First)) + ", " + strings.ToLower(string(e.Second)) + ") " +
		"cannot both be set for element: " + e.Declaration
}

// GroupAnnotationCombinationError is an annotation on a grouped parameter
// that grouping does not allow.
type GroupAnnotationCombinationError struct {
	Declaration string
	Annotation  model.AnnotationKind
}

func (e GroupAnnotationCombinationError) QualifiedName() string { return e.Declaration }

func (e GroupAnnotationCombinationError) Message() string {
	return fmt.Sprintf("'%s' cannot be set on a parameter that is part of a group: %s",
		strings.ToLower(string(e.Annotation)), e.Declaration)
}

// Record is the serializable form of an Error.
type Record struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

// Records converts findings for JSON output.
func Records(errs []Error) []Record {
	out := make([]Record, 0, len(errs))
	for _, e := range errs {
		out = append(out, Record{Target: e.QualifiedName(), Message: e.Message()})
	}
	return out
}

// Messages returns the message of every finding in order.
func Messages(errs []Error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message())
	}
	return out
}
