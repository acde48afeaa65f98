// Package adapt runs the whole generation: build the declaration tree from
// an annotated package, validate it, transform it and render every module.
//
// Validation is a gate. When any annotation is misplaced or combined with
// an annotation it cannot be combined with, nothing is transformed and no
// file is produced; the findings are returned so a caller can show all of
// them at once.
package adapt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/codegen"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
	"github.com/teranos/adaptgen/transform"
	"github.com/teranos/adaptgen/validation"
)

// Options controls a run.
type Options struct {
	// Generators overrides the default adapter and stub generators.
	Generators []codegen.Generator

	// FailOnProblems turns structural problems found by the pipeline into
	// an error. The generated files are still returned.
	FailOnProblems bool
}

// Result is everything a run produced.
type Result struct {
	RunID string

	// ValidationErrors is non-empty only when the run was refused.
	ValidationErrors []validation.Error

	// Problems lists declarations the pipeline had to leave untouched.
	Problems []transform.Problem

	// Output is nil when the run was refused.
	Output *codegen.Output

	// Counts describes the transformed tree. It stays zero when the run
	// was refused.
	Counts Counts

	Duration time.Duration
}

// Counts tallies the declarations left after transformation. Methods count
// as functions.
type Counts struct {
	Modules   int `json:"modules"`
	Classes   int `json:"classes"`
	Functions int `json:"functions"`
	Enums     int `json:"enums"`
}

func countDeclarations(tree *model.Package) Counts {
	var c Counts
	for _, m := range tree.Modules.All() {
		c.Modules++
		c.Classes += m.Classes.Len()
		c.Functions += m.Functions.Len()
		c.Enums += m.Enums.Len()
		for _, class := range m.Classes.All() {
			c.Functions += class.Methods.Len()
		}
	}
	return c
}

// Files returns the generated files, or nil when nothing was generated.
func (r *Result) Files() []codegen.File {
	if r.Output == nil {
		return nil
	}
	return r.Output.Files
}

// Run generates the adapter and stub files for pkg.
//
// The returned Result is never nil. The error is marked with
// errors.ErrValidation when validation refused the run, and with
// errors.ErrStructuralInvariant when opts.FailOnProblems is set and the
// pipeline skipped declarations.
func Run(ctx context.Context, pkg *apidata.Package, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	ctx = logger.WithRunID(ctx, result.RunID)
	log := logger.LoggerFromContext(ctx).Named("adapt")
	start := time.Now()

	tree, err := pkg.ToModel()
	if err != nil {
		return result, errors.Wrapf(err, "failed to build declaration tree of %s", pkg.Name)
	}
	log.Infow("Starting generation",
		"package", tree.Name,
		"modules", tree.Modules.Len())

	out, err := RunModel(ctx, tree, opts, result)
	result.Duration = time.Since(start)
	log.Infow("Generation done",
		"package", tree.Name,
		logger.FieldCount, len(result.Files()),
		logger.FieldDurationMS, result.Duration.Milliseconds())
	result.Output = out
	return result, err
}

// RunModel runs validation, transformation and generation on an already
// built tree. Findings are recorded in result; the tree is modified in place.
func RunModel(ctx context.Context, tree *model.Package, opts Options, result *Result) (*codegen.Output, error) {
	if errs := validation.Validate(tree); len(errs) > 0 {
		result.ValidationErrors = errs
		logger.LoggerFromContext(ctx).Warnw("Generation refused",
			"package", tree.Name,
			logger.FieldCount, len(errs))
		return nil, validationError(errs)
	}

	report := transform.Run(ctx, tree)
	result.Problems = report.Problems
	result.Counts = countDeclarations(tree)

	out := codegen.Generate(ctx, tree, opts.Generators...)

	if opts.FailOnProblems && report.HasProblems() {
		return out, errors.WithHint(report.Err(),
			"set pipeline.fail_on_problems = false to keep going past skipped declarations")
	}
	return out, nil
}

// Validate builds the tree for pkg and returns every annotation finding.
func Validate(pkg *apidata.Package) ([]validation.Error, error) {
	tree, err := pkg.ToModel()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build declaration tree of %s", pkg.Name)
	}
	return validation.Validate(tree), nil
}

func validationError(errs []validation.Error) error {
	err := errors.Newf("%d annotation error(s)", len(errs))
	err = errors.WithDetail(err, strings.Join(validation.Messages(errs), "\n"))
	err = errors.WithHint(err, "run 'adaptgen validate' to list every problem")
	return errors.Mark(err, errors.ErrValidation)
}
