package transform

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
)

// Problem is a structural problem found while rewriting one declaration.
// The declaration is left as it was; the pipeline continues with the rest.
type Problem struct {
	QualifiedName string
	Pass          string
	Err           error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s: %v", p.Pass, p.QualifiedName, p.Err)
}

func (p Problem) Unwrap() error { return p.Err }

// Report collects the problems of one pipeline run.
type Report struct {
	Problems []Problem

	log *zap.SugaredLogger
}

// HasProblems reports whether any declaration was skipped.
func (r *Report) HasProblems() bool { return len(r.Problems) > 0 }

// Err folds the problems into a single error, or nil when there are none.
// Every problem is kept as a detail of the returned error.
func (r *Report) Err() error {
	if !r.HasProblems() {
		return nil
	}
	lines := make([]string, 0, len(r.Problems))
	for _, p := range r.Problems {
		lines = append(lines, p.Error())
	}
	err := errors.Newf("%d declaration(s) could not be transformed", len(r.Problems))
	err = errors.WithDetail(err, strings.Join(lines, "\n"))
	return errors.Mark(err, errors.ErrStructuralInvariant)
}

func (r *Report) problem(pass string, d model.Declaration, err error) {
	p := Problem{QualifiedName: model.QualifiedName(d), Pass: pass, Err: err}
	r.Problems = append(r.Problems, p)
	r.logger().Warnw("Declaration skipped",
		logger.FieldPass, pass,
		logger.FieldQualifiedName, p.QualifiedName,
		logger.FieldError, err)
}

func (r *Report) logger() *zap.SugaredLogger {
	if r.log == nil {
		return logger.Logger
	}
	return r.log
}

func referenceCountError(n int) error {
	return errors.NewStructuralInvariantError(
		"expected parameter to be referenced in exactly one argument but was used in %d", n)
}

func conflictingEnumError(enumName, module, parameter string) error {
	return errors.NewStructuralInvariantError(
		"Enum '%s' for parameter '%s' already exists in module '%s' with conflicting instances.",
		upperFirst(enumName), parameter, module)
}

func conflictingGroupError(groupName, module, function string) error {
	return errors.NewStructuralInvariantError(
		"Group '%s' for function '%s' already exists in module '%s' with conflicting parameters.",
		upperFirst(groupName), function, module)
}
