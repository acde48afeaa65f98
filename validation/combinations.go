package validation

import (
	"github.com/teranos/adaptgen/model"
)

type kindSet map[model.AnnotationKind]struct{}

func setOf(kinds ...model.AnnotationKind) kindSet {
	s := make(kindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

func (s kindSet) has(k model.AnnotationKind) bool {
	_, ok := s[k]
	return ok
}

// possibleCombinations maps the first annotation of a pair to the kinds that
// may follow it on the same declaration. Lookups are directional: the table
// is read as-is and is not symmetric.
//
// The row under KindGroup doubles as the whitelist for annotations on
// parameters that a Group annotation collects.
var possibleCombinations = map[model.AnnotationKind]kindSet{
	model.KindAttribute: setOf(
		model.KindBoundary, model.KindEnum, model.KindRename,
		model.KindDescription, model.KindTodo,
	),
	model.KindBoundary: setOf(
		model.KindAttribute, model.KindGroup, model.KindOptional, model.KindRename, model.KindRequired,
		model.KindDescription, model.KindTodo,
	),
	model.KindCalledAfter: setOf(
		model.KindCalledAfter, model.KindGroup, model.KindMove, model.KindRename,
		model.KindPure, model.KindDescription, model.KindTodo,
	),
	model.KindConstant: setOf(
		model.KindDescription, model.KindTodo,
	),
	model.KindEnum: setOf(
		model.KindAttribute, model.KindGroup, model.KindOptional, model.KindRename, model.KindRequired,
		model.KindDescription, model.KindTodo,
	),
	model.KindGroup: setOf(
		model.KindCalledAfter, model.KindGroup, model.KindMove, model.KindRename,
		model.KindPure, model.KindDescription, model.KindTodo,
	),
	model.KindMove: setOf(
		model.KindCalledAfter, model.KindGroup, model.KindRename,
		model.KindPure, model.KindDescription, model.KindTodo,
	),
	model.KindOmitted: setOf(
		model.KindDescription, model.KindTodo,
	),
	model.KindOptional: setOf(
		model.KindBoundary, model.KindEnum, model.KindGroup, model.KindRename,
		model.KindDescription, model.KindTodo,
	),
	model.KindPure: setOf(
		model.KindCalledAfter, model.KindDescription, model.KindGroup, model.KindMove, model.KindRename, model.KindTodo,
	),
	model.KindRemove: setOf(
		model.KindDescription, model.KindTodo,
	),
	model.KindRename: setOf(
		model.KindAttribute, model.KindBoundary, model.KindCalledAfter, model.KindEnum,
		model.KindGroup, model.KindMove, model.KindOptional, model.KindRequired,
		model.KindPure, model.KindDescription, model.KindTodo,
	),
	model.KindRequired: setOf(
		model.KindBoundary, model.KindEnum, model.KindGroup, model.KindRename,
		model.KindDescription, model.KindTodo,
	),
	model.KindDescription: setOf(model.AnnotationKinds...),
	model.KindTodo:        setOf(model.AnnotationKinds...),
}

// CanCombine reports whether second may be attached to a declaration that
// already carries first.
func CanCombine(first, second model.AnnotationKind) bool {
	return possibleCombinations[first].has(second)
}

// AllowedInGroup reports whether a parameter collected by a Group annotation
// may carry an annotation of kind k.
func AllowedInGroup(k model.AnnotationKind) bool {
	return possibleCombinations[model.KindGroup].has(k)
}
