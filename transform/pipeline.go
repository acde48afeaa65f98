// Package transform rewrites an annotated declaration tree into the shape
// the code generators render.
//
// Run applies a fixed sequence of whole-tree passes. Each pass consumes the
// annotations it is responsible for and strips them, so running the
// pipeline again on its own output changes nothing.
package transform

import (
	"context"
	"time"

	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
)

// Pass names, in execution order.
const (
	PassOriginals    = "attach originals"
	PassAssignment   = "parameter assignment"
	PassRemove       = "remove"
	PassBoundary     = "boundary"
	PassValue        = "value annotations"
	PassAttribute    = "attribute annotations"
	PassEnum         = "enum annotations"
	PassGroup        = "group annotations"
	PassMove         = "move annotations"
	PassMetadata     = "function metadata"
	PassConstructors = "extract constructors"
	PassAttributes   = "create attributes"
	PassRename       = "rename"
	PassReorder      = "reorder parameters"
	PassEmptyModules = "remove empty modules"
)

type pass struct {
	name string
	run  func(*model.Package, *Report)
}

var passes = []pass{
	{PassOriginals, attachOriginals},
	{PassAssignment, updateParameterAssignment},
	{PassRemove, processRemoveAnnotations},
	{PassBoundary, processBoundaryAnnotations},
	{PassValue, processValueAnnotations},
	{PassAttribute, processAttributeAnnotations},
	{PassEnum, processEnumAnnotations},
	{PassGroup, processGroupAnnotations},
	{PassMove, processMoveAnnotations},
	{PassMetadata, processMetadataAnnotations},
	{PassConstructors, extractConstructors},
	{PassAttributes, createAttributes},
	{PassRename, processRenameAnnotations},
	{PassReorder, reorderParameters},
	{PassEmptyModules, removeEmptyModules},
}

// PassNames returns the names of all passes in execution order.
func PassNames() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}

// Run transforms pkg in place. Structural problems are collected in the
// returned report; they never stop the run.
func Run(ctx context.Context, pkg *model.Package) *Report {
	log := logger.LoggerFromContext(ctx).Named("transform")
	r := &Report{log: log}

	for _, p := range passes {
		start := time.Now()
		before := len(r.Problems)

		p.run(pkg, r)

		log.Debugw("Pass finished",
			logger.FieldPass, p.name,
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
			logger.FieldCount, len(r.Problems)-before)
	}
	return r
}
