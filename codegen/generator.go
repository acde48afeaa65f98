// Package codegen turns a transformed package into generated files.
//
// # Architecture
//
// Rendering is split by target:
//  1. codegen/python renders the adapter module that wraps the original library
//  2. codegen/stub renders the interface description of the same module
//
// Both implement Generator. Generate runs every generator over every module
// and collects the resulting files; writing them to disk or into an archive
// is a separate step (WriteDir, WriteZip).
//
// # Fault isolation
//
// Each module is rendered inside its own recovery boundary. A module whose
// rendering fails is logged and left out of the output; the other modules
// are unaffected. A module is either emitted by every generator or by none.
package codegen

import (
	"context"
	"sort"
	"time"

	"github.com/teranos/adaptgen/codegen/python"
	"github.com/teranos/adaptgen/codegen/stub"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
)

// Generator renders one file per module for a target.
type Generator interface {
	// Language names the target, e.g. "python"
	Language() string

	// FileExtension returns the extension of generated files without the dot
	FileExtension() string

	// OutputDir returns the slash-separated directory, relative to the
	// output root, that holds every file of this target
	OutputDir() string

	// Path returns the slash-separated output path of a module's file,
	// relative to the output root
	Path(module string) string

	// GenerateFile renders a whole module
	GenerateFile(m *model.Module) string
}

// Ensure the built-in generators satisfy the interface.
var (
	_ Generator = (*python.Generator)(nil)
	_ Generator = (*stub.Generator)(nil)
)

// Default returns the adapter and stub generators with their default layout.
func Default() []Generator {
	return []Generator{python.NewGenerator(), stub.NewGenerator()}
}

// File is one generated artifact.
type File struct {
	Path     string `json:"path"`
	Module   string `json:"module"`
	Language string `json:"language"`
	Content  string `json:"-"`
}

// ModuleFailure records a module that was left out of the output.
type ModuleFailure struct {
	Module string
	Err    error
}

// Output is the result of a generation run.
type Output struct {
	Files  []File
	Failed []ModuleFailure
}

// Modules returns the names of the modules that were generated, sorted.
func (o *Output) Modules() []string {
	seen := make(map[string]bool)
	var modules []string
	for _, f := range o.Files {
		if !seen[f.Module] {
			seen[f.Module] = true
			modules = append(modules, f.Module)
		}
	}
	sort.Strings(modules)
	return modules
}

// Generate renders every module of pkg with every generator.
func Generate(ctx context.Context, pkg *model.Package, generators ...Generator) *Output {
	if len(generators) == 0 {
		generators = Default()
	}
	log := logger.LoggerFromContext(ctx).Named("codegen")
	start := time.Now()

	out := &Output{}
	for _, m := range pkg.Modules.All() {
		files, err := generateModule(m, generators)
		if err != nil {
			err = errors.Mark(errors.Wrapf(err, "module %s", m.Name), errors.ErrGeneration)
			log.Errorw("Module generation failed",
				logger.FieldModule, m.Name,
				logger.FieldError, err)
			out.Failed = append(out.Failed, ModuleFailure{Module: m.Name, Err: err})
			continue
		}
		out.Files = append(out.Files, files...)
	}

	log.Debugw("Generation finished",
		logger.FieldCount, len(out.Files),
		"failed", len(out.Failed),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return out
}

// generateModule renders all files of one module. A panic in a generator is
// converted to an error so the caller can skip the module.
func generateModule(m *model.Module, generators []Generator) (files []File, err error) {
	defer func() {
		if r := recover(); r != nil {
			files = nil
			if e, ok := r.(error); ok {
				err = errors.WithStack(e)
			} else {
				err = errors.AssertionFailedf("panic while rendering: %v", r)
			}
		}
	}()

	for _, g := range generators {
		files = append(files, File{
			Path:     g.Path(m.Name),
			Module:   m.Name,
			Language: g.Language(),
			Content:  g.GenerateFile(m),
		})
	}
	return files, nil
}
