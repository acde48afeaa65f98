package model

import (
	"strconv"
	"strings"

	"github.com/teranos/adaptgen/errors"
)

// ParameterAssignment is how a parameter may be supplied at a call site.
type ParameterAssignment int

const (
	Implicit ParameterAssignment = iota
	PositionOnly
	PositionOrName
	PositionalVararg
	NameOnly
	NamedVararg

	// ConstantAssignment and AttributeAssignment mark parameters whose value
	// is fixed during rewriting. They are never rendered.
	ConstantAssignment
	AttributeAssignment
)

var assignmentNames = map[ParameterAssignment]string{
	Implicit:            "IMPLICIT",
	PositionOnly:        "POSITION_ONLY",
	PositionOrName:      "POSITION_OR_NAME",
	PositionalVararg:    "POSITIONAL_VARARG",
	NameOnly:            "NAME_ONLY",
	NamedVararg:         "NAMED_VARARG",
	ConstantAssignment:  "CONSTANT",
	AttributeAssignment: "ATTRIBUTE",
}

func (a ParameterAssignment) String() string {
	if s, ok := assignmentNames[a]; ok {
		return s
	}
	return "ParameterAssignment(" + strconv.Itoa(int(a)) + ")"
}

// IsVariadic reports whether a collects a variable number of arguments.
func (a ParameterAssignment) IsVariadic() bool {
	return a == PositionalVararg || a == NamedVararg
}

// ParseParameterAssignment accepts the upper-case names produced by String.
func ParseParameterAssignment(s string) (ParameterAssignment, error) {
	for a, name := range assignmentNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return 0, errors.Newf("unknown parameter assignment %q", s)
}

// BucketOrder is the syntactic order of assignment kinds in a parameter list.
var BucketOrder = []ParameterAssignment{
	Implicit,
	PositionOnly,
	PositionOrName,
	PositionalVararg,
	NameOnly,
	NamedVararg,
}

// ComparisonOperator bounds one end of a Boundary.
type ComparisonOperator int

const (
	Unrestricted ComparisonOperator = iota
	LessThan
	LessThanOrEquals
)

func (c ComparisonOperator) String() string {
	switch c {
	case LessThan:
		return "LESS_THAN"
	case LessThanOrEquals:
		return "LESS_THAN_OR_EQUALS"
	default:
		return "UNRESTRICTED"
	}
}

// Operator returns the comparison symbol, empty for Unrestricted.
func (c ComparisonOperator) Operator() string {
	switch c {
	case LessThan:
		return "<"
	case LessThanOrEquals:
		return "<="
	default:
		return ""
	}
}

// ParseComparisonOperator accepts String values and the bare symbols.
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LESS_THAN", "<":
		return LessThan, nil
	case "LESS_THAN_OR_EQUALS", "<=":
		return LessThanOrEquals, nil
	case "UNRESTRICTED", "":
		return Unrestricted, nil
	}
	return Unrestricted, errors.Newf("unknown comparison operator %q", s)
}

// Boundary is a numeric validity interval for a parameter.
type Boundary struct {
	IsDiscrete         bool
	LowerIntervalLimit float64
	LowerLimitType     ComparisonOperator
	UpperIntervalLimit float64
	UpperLimitType     ComparisonOperator
}

// Interval renders the boundary in interval notation, e.g. "[0.0, 1.0)".
// Unrestricted ends render as infinity.
func (b Boundary) Interval() string {
	var sb strings.Builder
	switch b.LowerLimitType {
	case LessThanOrEquals:
		sb.WriteString("[" + FormatFloat(b.LowerIntervalLimit))
	case LessThan:
		sb.WriteString("(" + FormatFloat(b.LowerIntervalLimit))
	default:
		sb.WriteString("(-∞")
	}
	sb.WriteString(", ")
	switch b.UpperLimitType {
	case LessThanOrEquals:
		sb.WriteString(FormatFloat(b.UpperIntervalLimit) + "]")
	case LessThan:
		sb.WriteString(FormatFloat(b.UpperIntervalLimit) + ")")
	default:
		sb.WriteString("∞)")
	}
	return sb.String()
}

// FormatFloat renders f in its shortest form, always with a decimal point.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// Type is the declared type of a parameter, attribute or result.
type Type interface {
	isType()
}

// StringifiedType is a type known only by its textual name, e.g. "int".
type StringifiedType struct {
	Name string
}

func (StringifiedType) isType() {}

// NamedType refers to a declaration in the tree, such as a generated enum
// or a parameter-object class.
type NamedType struct {
	Declaration Declaration
}

func (NamedType) isType() {}

// TypeName returns the textual name of t, or "" for nil.
func TypeName(t Type) string {
	switch t := t.(type) {
	case StringifiedType:
		return t.Name
	case NamedType:
		if t.Declaration == nil {
			return ""
		}
		return t.Declaration.GetName()
	default:
		return ""
	}
}
