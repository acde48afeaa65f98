// Package stub renders the interface description that pairs with each
// adapter module: declarations with types, defaults and descriptions but no
// bodies.
package stub

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/teranos/adaptgen/model"
)

const indent = "    "

// Generator renders stub modules.
type Generator struct {
	// Dir is the output directory of stub files, relative to the output root.
	Dir string
	// Extension is the file extension without the dot.
	Extension string
	// PackagePrefix is prepended to the module name in the package line.
	PackagePrefix string
}

// NewGenerator creates a stub generator with the default layout.
func NewGenerator() *Generator {
	return &Generator{Dir: "stub", Extension: "sdsstub", PackagePrefix: "simpleml"}
}

// Language returns "stub"
func (g *Generator) Language() string {
	return "stub"
}

// FileExtension returns the stub file extension
func (g *Generator) FileExtension() string {
	return g.Extension
}

// OutputDir returns the directory holding all stub files.
func (g *Generator) OutputDir() string {
	return g.Dir
}

// Path places module `a.b` at `<dir>/a/b/b.<ext>`.
func (g *Generator) Path(module string) string {
	parts := strings.Split(module, ".")
	last := parts[len(parts)-1]
	return path.Join(g.Dir, path.Join(parts...), last+"."+g.Extension)
}

// GenerateFile renders a whole module.
func (g *Generator) GenerateFile(m *model.Module) string {
	pkg := m.Name
	if g.PackagePrefix != "" {
		pkg = g.PackagePrefix + "." + pkg
	}

	var decls []string
	for _, c := range m.Classes.All() {
		decls = append(decls, Class(c))
	}
	for _, f := range m.Functions.All() {
		decls = append(decls, Function(f))
	}
	for _, e := range m.Enums.All() {
		decls = append(decls, Enum(e))
	}

	var sb strings.Builder
	sb.WriteString("package " + pkg + "\n")
	if len(decls) > 0 {
		sb.WriteString("\n" + strings.Join(decls, "\n\n") + "\n")
	}
	return sb.String()
}

// Class renders `class Name(params) { ... }`. A class without attributes
// and methods has no body.
func Class(c *model.Class) string {
	var params []*model.Parameter
	if ctor, ok := c.Constructor.Get(); ok {
		params = ctor.Parameters.All()
	}

	var sb strings.Builder
	sb.WriteString(descriptionLine(c.Description))
	sb.WriteString("class " + c.Name + "(" + parameterList(params) + ")")

	var blocks []string
	if !c.Attributes.IsEmpty() {
		attrs := make([]string, 0, c.Attributes.Len())
		for _, a := range c.Attributes.All() {
			attrs = append(attrs, Attribute(a))
		}
		blocks = append(blocks, strings.Join(attrs, "\n"))
	}
	for _, f := range c.Methods.All() {
		blocks = append(blocks, Function(f))
	}
	if len(blocks) == 0 {
		return sb.String()
	}

	sb.WriteString(" {\n")
	sb.WriteString(indentBlock(strings.Join(blocks, "\n\n")))
	sb.WriteString("\n}")
	return sb.String()
}

// Attribute renders `attr name: Type`.
func Attribute(a *model.Attribute) string {
	return descriptionLine(a.Description) + "attr " + a.Name + ": " + Type(a.Type)
}

// Function renders `fun name(params) -> results`. Static methods are marked
// static and purity and call-order constraints become annotations.
func Function(f *model.Function) string {
	var sb strings.Builder
	sb.WriteString(descriptionLine(f.Description))
	if f.IsPure {
		sb.WriteString("@Pure\n")
	}
	for _, name := range f.CalledAfter {
		sb.WriteString("@CalledAfter(" + Quote(name) + ")\n")
	}
	if f.IsMethod() && f.IsStatic() {
		sb.WriteString("static ")
	}
	sb.WriteString("fun " + f.Name + "(" + parameterList(f.Parameters.All()) + ")")
	if results := resultList(f.Results.All()); results != "" {
		sb.WriteString(" -> " + results)
	}
	return sb.String()
}

// Enum renders `enum Name { ... }` with one instance per line.
func Enum(e *model.Enum) string {
	var sb strings.Builder
	sb.WriteString(descriptionLine(e.Description))
	sb.WriteString("enum " + e.Name)
	if e.Instances.IsEmpty() {
		return sb.String()
	}
	names := make([]string, 0, e.Instances.Len())
	for _, inst := range e.Instances.All() {
		names = append(names, indent+inst.Name)
	}
	sb.WriteString(" {\n" + strings.Join(names, "\n") + "\n}")
	return sb.String()
}

// Parameter renders `@Description("...") name: Type or default`.
func Parameter(p *model.Parameter) string {
	var sb strings.Builder
	if strings.TrimSpace(p.Description) != "" {
		sb.WriteString("@Description(" + Quote(p.Description) + ") ")
	}
	if p.IsVariadic() {
		sb.WriteString("vararg ")
	}
	sb.WriteString(p.Name + ": " + Type(p.Type))
	if p.DefaultValue != nil && !p.IsVariadic() {
		sb.WriteString(" or " + Literal(*p.DefaultValue))
	}
	return sb.String()
}

// parameterList renders the explicit parameters; implicit receivers have no
// counterpart in the stub language.
func parameterList(params []*model.Parameter) string {
	var parts []string
	for _, p := range params {
		if p.IsImplicit() {
			continue
		}
		parts = append(parts, Parameter(p))
	}
	return strings.Join(parts, ", ")
}

func result(r *model.Result) string {
	var sb strings.Builder
	if strings.TrimSpace(r.Description) != "" {
		sb.WriteString("@Description(" + Quote(r.Description) + ") ")
	}
	sb.WriteString(r.Name + ": " + Type(r.Type))
	return sb.String()
}

// resultList renders a single result bare and several in parentheses.
func resultList(results []*model.Result) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return result(results[0])
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, result(r))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

var builtinTypes = map[string]string{
	"bool":  "Boolean",
	"float": "Float",
	"int":   "Int",
	"str":   "String",
}

// Type maps a declared type to its stub name. Unknown types are `Any?`.
func Type(t model.Type) string {
	switch t := t.(type) {
	case model.NamedType:
		if name := model.TypeName(t); name != "" {
			return name
		}
	case model.StringifiedType:
		if name, ok := builtinTypes[t.Name]; ok {
			return name
		}
	}
	return "Any?"
}

var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Literal converts Python default-value source text to a stub literal.
// Booleans and None map to their stub keywords, numbers are kept and quoted
// strings are re-quoted. Anything else is emitted as a string.
func Literal(src string) string {
	s := strings.TrimSpace(src)
	switch s {
	case "True":
		return "true"
	case "False":
		return "false"
	case "None":
		return "null"
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	if decimal.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return model.FormatFloat(f)
		}
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return Quote(s[1 : len(s)-1])
	}
	return Quote(s)
}

// Quote renders s as a double-quoted stub string.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func descriptionLine(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	return "@Description(" + Quote(description) + ")\n"
}

func indentBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
