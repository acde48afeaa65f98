package python

import (
	"strings"

	"github.com/teranos/adaptgen/model"
)

const indent = "    "

// indentBlock prefixes every non-blank line of s with one indentation level.
func indentBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// Todo renders todo text as a comment block. The first line follows the
// `# TODO:` marker; later lines keep their own indentation under a fixed
// prefix. label, when set, is placed in parentheses after TODO.
func Todo(label, todo string) string {
	text := strings.TrimSpace(todo)
	if text == "" {
		return ""
	}
	marker := "# TODO: "
	if label != "" {
		marker = "# TODO(" + label + "): "
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	out = append(out, marker+lines[0])
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			out = append(out, "#")
		} else {
			out = append(out, "#       "+line)
		}
	}
	return strings.Join(out, "\n")
}

// todos renders the declaration's own todo followed by the todos of its
// parameters.
func todos(todo string, params []*model.Parameter) []string {
	var out []string
	if t := Todo("", todo); t != "" {
		out = append(out, t)
	}
	for _, p := range params {
		if t := Todo("param:"+p.Name, p.Todo); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type docItem struct {
	name        string
	typ         string
	description string
}

func (d docItem) String() string {
	s := d.name
	if d.typ != "" {
		s += " : " + d.typ
	}
	if strings.TrimSpace(d.description) != "" {
		s += "\n" + indentBlock(d.description)
	}
	return s
}

// docSection renders a numpydoc section, or "" when no item has a
// description.
func docSection(title string, items []docItem) string {
	described := false
	for _, it := range items {
		if strings.TrimSpace(it.description) != "" {
			described = true
			break
		}
	}
	if !described {
		return ""
	}

	lines := []string{title, strings.Repeat("-", len(title))}
	for _, it := range items {
		lines = append(lines, it.String())
	}
	return strings.Join(lines, "\n")
}

func parameterItems(params []*model.Parameter) []docItem {
	var items []docItem
	for _, p := range params {
		if p.IsImplicit() {
			continue
		}
		items = append(items, docItem{name: p.Name, typ: TypeName(p.Type), description: p.Description})
	}
	return items
}

func attributeItems(attrs []*model.Attribute) []docItem {
	items := make([]docItem, 0, len(attrs))
	for _, a := range attrs {
		items = append(items, docItem{name: a.Name, typ: TypeName(a.Type), description: a.Description})
	}
	return items
}

// docstring joins the description and the non-empty sections with blank
// lines and wraps them in triple quotes. It returns "" when there is
// nothing to document.
func docstring(description string, sections ...string) string {
	var parts []string
	if strings.TrimSpace(description) != "" {
		parts = append(parts, description)
	}
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return `"""` + "\n" + strings.Join(parts, "\n\n") + "\n" + `"""`
}

// ClassDocstring documents a class, its constructor parameters and its
// attributes.
func ClassDocstring(c *model.Class) string {
	var params string
	if ctor, ok := c.Constructor.Get(); ok {
		params = docSection("Parameters", parameterItems(ctor.Parameters.All()))
	}
	return docstring(c.Description, params, docSection("Attributes", attributeItems(c.Attributes.All())))
}

// FunctionDocstring documents a function and its parameters.
func FunctionDocstring(f *model.Function) string {
	return docstring(f.Description, docSection("Parameters", parameterItems(f.Parameters.All())))
}
