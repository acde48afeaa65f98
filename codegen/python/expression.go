package python

import (
	"strconv"
	"strings"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/model"
)

// Expression renders e as Python source.
//
// Calls list positional arguments first and keyword arguments after them,
// each group in declaration order. A `**kwargs` spread counts as a keyword
// argument so it always ends the list.
//
// Unknown node types panic with an assertion failure; the module-level
// fault boundary in codegen turns that into a skipped module.
func Expression(e model.Expression) string {
	switch e := e.(type) {
	case *model.BooleanLiteral:
		if e.Value {
			return "True"
		}
		return "False"
	case *model.IntLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *model.FloatLiteral:
		return model.FormatFloat(e.Value)
	case *model.StringLiteral:
		return model.QuotePython(e.Value)
	case *model.NoneLiteral:
		return "None"
	case *model.Reference:
		if e.Declaration == nil {
			panic(errors.AssertionFailedf("reference without declaration"))
		}
		return e.Declaration.GetName()
	case *model.Identifier:
		return e.Name
	case *model.MemberAccess:
		return Expression(e.Receiver.Value()) + "." + Expression(e.Member.Value())
	case *model.PositionalSpread:
		return "*" + Expression(e.Value.Value())
	case *model.NamedSpread:
		return "**" + Expression(e.Value.Value())
	case *model.Call:
		return call(e)
	case nil:
		panic(errors.AssertionFailedf("missing expression"))
	}
	panic(errors.AssertionFailedf("unsupported expression %T", e))
}

func call(c *model.Call) string {
	var positional, named []string
	for _, a := range c.Arguments.All() {
		value := a.Value.Value()
		switch {
		case a.Name != "":
			named = append(named, a.Name+"="+Expression(value))
		case isNamedSpread(value):
			named = append(named, Expression(value))
		default:
			positional = append(positional, Expression(value))
		}
	}
	return c.Receiver + "(" + strings.Join(append(positional, named...), ", ") + ")"
}

func isNamedSpread(e model.Expression) bool {
	_, ok := e.(*model.NamedSpread)
	return ok
}

// knownTypes are the stringified types that are emitted as annotations.
var knownTypes = map[string]bool{
	"bool":  true,
	"float": true,
	"int":   true,
	"str":   true,
}

// TypeName returns the annotation text for t, or "" when t is unknown or
// not worth emitting.
func TypeName(t model.Type) string {
	switch t := t.(type) {
	case model.NamedType:
		return model.TypeName(t)
	case model.StringifiedType:
		if knownTypes[t.Name] {
			return t.Name
		}
	}
	return ""
}
