// Package python renders the adapter module: Python source that exposes the
// transformed API and forwards every call to the original library.
package python

import (
	"path"
	"slices"
	"strings"

	"github.com/teranos/adaptgen/model"
)

// Generator renders adapter modules.
type Generator struct {
	// Dir is the output directory of adapter files, relative to the output root.
	Dir string
	// Extension is the file extension without the dot.
	Extension string
}

// NewGenerator creates a Python generator with the default layout.
func NewGenerator() *Generator {
	return &Generator{Dir: "adapter", Extension: "py"}
}

// Language returns "python"
func (g *Generator) Language() string {
	return "python"
}

// FileExtension returns the adapter file extension
func (g *Generator) FileExtension() string {
	return g.Extension
}

// OutputDir returns the directory holding all adapter files.
func (g *Generator) OutputDir() string {
	return g.Dir
}

// Path places module `a.b` at `<dir>/a/b.<ext>`.
func (g *Generator) Path(module string) string {
	return path.Join(g.Dir, strings.ReplaceAll(module, ".", "/")+"."+g.Extension)
}

// GenerateFile renders a whole module.
func (g *Generator) GenerateFile(m *model.Module) string {
	return Module(m)
}

// Module renders imports, classes, functions and enums as groups separated
// by one blank line. Empty groups leave no trace.
//
// Enums and group classes may be defined after the signatures that name
// them, so annotations are postponed for every module.
func Module(m *model.Module) string {
	groups := []string{strings.Join(moduleImports(m), "\n")}

	var classes, functions, enums []string
	for _, c := range m.Classes.All() {
		classes = append(classes, Class(c))
	}
	for _, f := range m.Functions.All() {
		functions = append(functions, Function(f))
	}
	for _, e := range m.Enums.All() {
		enums = append(enums, Enum(e))
	}
	for _, group := range [][]string{classes, functions, enums} {
		if len(group) > 0 {
			groups = append(groups, strings.Join(group, "\n\n"))
		}
	}

	return strings.Join(groups, "\n\n") + "\n"
}

// futureImport must stay the first statement of a module.
const futureImport = "from __future__ import annotations"

// moduleImports starts with futureImport and imports the parent module of
// every wrapped class and function, sorted and deduplicated.
func moduleImports(m *model.Module) []string {
	var modules []string
	addParent := func(original *model.OriginalDeclaration) {
		if original == nil {
			return
		}
		if i := strings.LastIndex(original.QualifiedName, "."); i > 0 {
			modules = append(modules, original.QualifiedName[:i])
		}
	}
	for _, c := range m.Classes.All() {
		addParent(c.Original)
	}
	for _, f := range m.Functions.All() {
		addParent(f.Original)
	}
	slices.Sort(modules)
	modules = slices.Compact(modules)

	imports := make([]string, 0, len(modules)+2)
	imports = append(imports, futureImport)
	for _, mod := range modules {
		imports = append(imports, "import "+mod)
	}
	if !m.Enums.IsEmpty() {
		imports = append(imports, "from enum import Enum")
	}
	return imports
}

// Class renders a class with its docstring, constructor and methods.
func Class(c *model.Class) string {
	var sb strings.Builder
	if t := Todo("", c.Todo); t != "" {
		sb.WriteString(t + "\n")
	}
	sb.WriteString("class " + c.Name + ":\n")

	var members []string
	if doc := ClassDocstring(c); doc != "" {
		members = append(members, doc)
	}
	if ctor, ok := c.Constructor.Get(); ok {
		members = append(members, Constructor(ctor))
	}
	for _, f := range c.Methods.All() {
		members = append(members, Function(f))
	}

	if len(members) == 0 {
		sb.WriteString(indent + "pass")
	} else {
		sb.WriteString(indentBlock(strings.Join(members, "\n\n")))
	}
	return sb.String()
}

// Constructor renders `__init__`: boundary guards, attribute assignments
// and the instantiation of the wrapped class, one block each.
func Constructor(ctor *model.Constructor) string {
	params := ctor.Parameters.All()

	var blocks []string
	if guards := guardLines(params); len(guards) > 0 {
		blocks = append(blocks, strings.Join(guards, "\n"))
	}
	if owner, ok := ctor.Parent().(*model.Class); ok && !owner.Attributes.IsEmpty() {
		var assignments []string
		for _, a := range owner.Attributes.All() {
			assignments = append(assignments, Attribute(a))
		}
		blocks = append(blocks, strings.Join(assignments, "\n"))
	}
	if call, ok := ctor.CallToOriginalAPI.Get(); ok {
		blocks = append(blocks, "self.instance = "+Expression(call))
	}

	return header(todos("", params), "def __init__("+ParameterList(params)+"):", "", blocks)
}

// Attribute renders the assignment of an attribute inside `__init__`.
func Attribute(a *model.Attribute) string {
	s := "self." + a.Name
	if typ := TypeName(a.Type); typ != "" {
		s += ": " + typ
	}
	if v, ok := a.Value.Get(); ok {
		s += " = " + Expression(v)
	}
	return s
}

// Function renders a global function or a method.
func Function(f *model.Function) string {
	params := f.Parameters.All()

	var blocks []string
	if guards := guardLines(params); len(guards) > 0 {
		blocks = append(blocks, strings.Join(guards, "\n"))
	}
	if call, ok := f.CallToOriginalAPI.Get(); ok {
		blocks = append(blocks, "return "+Expression(call))
	}

	signature := "def " + f.Name + "(" + ParameterList(params) + "):"
	if f.IsStatic() {
		signature = "@staticmethod\n" + signature
	}
	return header(todos(f.Todo, params), signature, FunctionDocstring(f), blocks)
}

// Enum renders an enum.Enum subclass.
func Enum(e *model.Enum) string {
	var sb strings.Builder
	sb.WriteString("class " + e.Name + "(Enum):\n")
	if e.Instances.IsEmpty() {
		sb.WriteString(indent + "pass")
		return sb.String()
	}
	lines := make([]string, 0, e.Instances.Len())
	for _, inst := range e.Instances.All() {
		lines = append(lines, indent+inst.Name+" = "+model.QuotePython(inst.Value))
	}
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}

func guardLines(params []*model.Parameter) []string {
	var lines []string
	for _, p := range params {
		if p.Boundary != nil {
			lines = append(lines, BoundaryGuards(p.Name, *p.Boundary)...)
		}
	}
	return lines
}

// header assembles comments, the signature line and an indented body made
// of the docstring and the blocks, or `pass` when the body is empty.
func header(comments []string, signature, doc string, blocks []string) string {
	var sb strings.Builder
	for _, c := range comments {
		sb.WriteString(c + "\n")
	}
	sb.WriteString(signature + "\n")

	body := strings.Join(blocks, "\n\n")
	if body == "" {
		body = "pass"
	}
	if doc != "" {
		body = doc + "\n\n" + body
	}
	sb.WriteString(indentBlock(body))
	return sb.String()
}
