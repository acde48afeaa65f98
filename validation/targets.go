package validation

import (
	"slices"

	"github.com/teranos/adaptgen/model"
)

// Target is the kind of declaration an annotation is attached to.
type Target string

const (
	TargetClass                Target = "class"
	TargetGlobalFunction       Target = "global function"
	TargetMethod               Target = "method"
	TargetConstructorParameter Target = "constructor parameter"
	TargetFunctionParameter    Target = "function parameter"
)

var (
	classes    = []Target{TargetClass}
	functions  = []Target{TargetGlobalFunction, TargetMethod}
	parameters = []Target{TargetConstructorParameter, TargetFunctionParameter}
	anything   = slices.Concat(classes, functions, parameters)
)

// validTargets lists where each annotation kind may be attached.
var validTargets = map[model.AnnotationKind][]Target{
	model.KindAttribute:   {TargetConstructorParameter},
	model.KindBoundary:    parameters,
	model.KindCalledAfter: functions,
	model.KindConstant:    parameters,
	model.KindDescription: anything,
	model.KindEnum:        parameters,
	model.KindGroup:       functions,
	model.KindMove:        {TargetClass, TargetGlobalFunction},
	model.KindOmitted:     parameters,
	model.KindOptional:    parameters,
	model.KindPure:        functions,
	model.KindRemove:      {TargetClass, TargetGlobalFunction, TargetMethod},
	model.KindRename:      anything,
	model.KindRequired:    parameters,
	model.KindTodo:        anything,
}

// IsApplicable reports whether an annotation of kind k may be attached to t.
func IsApplicable(k model.AnnotationKind, t Target) bool {
	return slices.Contains(validTargets[k], t)
}
