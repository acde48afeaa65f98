package python

import (
	"fmt"
	"strings"

	"github.com/teranos/adaptgen/model"
)

// Parameter renders a single parameter: `name`, `name: int`, `name=1`,
// `name: int = 1`, `*args` or `**kwargs`.
func Parameter(p *model.Parameter) string {
	var sb strings.Builder
	switch p.Assignment {
	case model.PositionalVararg:
		sb.WriteString("*")
	case model.NamedVararg:
		sb.WriteString("**")
	}
	sb.WriteString(p.Name)

	typ := TypeName(p.Type)
	if typ != "" {
		sb.WriteString(": " + typ)
	}
	if p.DefaultValue != nil && !p.IsVariadic() {
		if typ != "" {
			sb.WriteString(" = " + *p.DefaultValue)
		} else {
			sb.WriteString("=" + *p.DefaultValue)
		}
	}
	return sb.String()
}

// ParameterList renders params in bucket order with the `/` and `*`
// separators Python needs between them. Empty buckets add nothing.
func ParameterList(params []*model.Parameter) string {
	buckets := make(map[model.ParameterAssignment][]string)
	for _, p := range params {
		buckets[p.Assignment] = append(buckets[p.Assignment], Parameter(p))
	}

	var parts []string
	parts = append(parts, buckets[model.Implicit]...)
	if positionOnly := buckets[model.PositionOnly]; len(positionOnly) > 0 {
		parts = append(parts, positionOnly...)
		parts = append(parts, "/")
	}
	parts = append(parts, buckets[model.PositionOrName]...)

	varargs := buckets[model.PositionalVararg]
	parts = append(parts, varargs...)
	if nameOnly := buckets[model.NameOnly]; len(nameOnly) > 0 {
		if len(varargs) == 0 {
			parts = append(parts, "*")
		}
		parts = append(parts, nameOnly...)
	}
	parts = append(parts, buckets[model.NamedVararg]...)
	return strings.Join(parts, ", ")
}

// BoundaryGuards renders the checks for a parameter's boundary, one
// `if not ...:` line followed by its indented `raise` line per check.
func BoundaryGuards(name string, b model.Boundary) []string {
	var lines []string
	if b.IsDiscrete {
		lines = append(lines,
			fmt.Sprintf("if not (isinstance(%[1]s, int) or (isinstance(%[1]s, float) and %[1]s.is_integer())):", name),
			indent+fmt.Sprintf("raise ValueError(f'%[1]s needs to be an integer, but {%[1]s} was assigned.')", name),
		)
	}

	lower := model.FormatFloat(b.LowerIntervalLimit)
	upper := model.FormatFloat(b.UpperIntervalLimit)
	lowerOp := b.LowerLimitType.Operator()
	upperOp := b.UpperLimitType.Operator()

	var condition, expectation string
	switch {
	case lowerOp != "" && upperOp != "":
		condition = fmt.Sprintf("%s %s %s %s %s", lower, lowerOp, name, upperOp, upper)
		expectation = "must be in " + b.Interval()
	case lowerOp != "":
		condition = fmt.Sprintf("%s %s %s", lower, lowerOp, name)
		expectation = "must be greater than " + orEqual(b.LowerLimitType) + lower
	case upperOp != "":
		condition = fmt.Sprintf("%s %s %s", name, upperOp, upper)
		expectation = "must be less than " + orEqual(b.UpperLimitType) + upper
	default:
		return lines
	}

	return append(lines,
		"if not "+condition+":",
		indent+fmt.Sprintf("raise ValueError(f'Valid values of %[1]s %[2]s, but {%[1]s} was assigned.')", name, expectation),
	)
}

func orEqual(op model.ComparisonOperator) string {
	if op == model.LessThanOrEquals {
		return "or equal to "
	}
	return ""
}
