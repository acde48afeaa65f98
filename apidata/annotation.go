package apidata

import (
	"encoding/json"
	"strings"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/model"
)

// Annotation wraps a model annotation for the wire. The JSON form is an
// object with a "type" discriminator and the variant's fields:
//
//	{"type": "Rename", "newName": "fit_model"}
//	{"type": "Constant", "defaultValue": {"type": "DefaultNumber", "value": 0.1}}
//
// Fully qualified discriminators ("com.example.RenameAnnotation") and the
// "Annotation" suffix are accepted. "Unused" is read as Remove.
type Annotation struct {
	model.Annotation
}

// annotationWire is the union of all variant fields.
type annotationWire struct {
	Type string `json:"type"`

	NewName         string          `json:"newName,omitempty"`
	Destination     string          `json:"destination,omitempty"`
	GroupName       string          `json:"groupName,omitempty"`
	Parameters      []string        `json:"parameters,omitempty"`
	EnumName        string          `json:"enumName,omitempty"`
	Pairs           []enumPairWire  `json:"pairs,omitempty"`
	CalledAfterName string          `json:"calledAfterName,omitempty"`
	NewDescription  string          `json:"newDescription,omitempty"`
	NewTodo         string          `json:"newTodo,omitempty"`
	DefaultValue    json.RawMessage `json:"defaultValue,omitempty"`

	IsDiscrete         *bool    `json:"isDiscrete,omitempty"`
	LowerIntervalLimit *float64 `json:"lowerIntervalLimit,omitempty"`
	LowerLimitType     string   `json:"lowerLimitType,omitempty"`
	UpperIntervalLimit *float64 `json:"upperIntervalLimit,omitempty"`
	UpperLimitType     string   `json:"upperLimitType,omitempty"`
	Interval           *struct {
		IsDiscrete         bool    `json:"isDiscrete"`
		LowerIntervalLimit float64 `json:"lowerIntervalLimit"`
		LowerLimitType     string  `json:"lowerLimitType"`
		UpperIntervalLimit float64 `json:"upperIntervalLimit"`
		UpperLimitType     string  `json:"upperLimitType"`
	} `json:"interval,omitempty"`
}

type enumPairWire struct {
	StringValue  string `json:"stringValue"`
	InstanceName string `json:"instanceName"`
}

type defaultValueWire struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ParseKind normalizes a wire discriminator to an annotation kind.
func ParseKind(s string) (model.AnnotationKind, error) {
	name := s
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "Annotation")
	if strings.EqualFold(name, "Unused") {
		return model.KindRemove, nil
	}
	for _, k := range model.AnnotationKinds {
		if strings.EqualFold(string(k), name) {
			return k, nil
		}
	}
	return "", errors.Newf("unknown annotation type %q", s)
}

func (a *Annotation) UnmarshalJSON(data []byte) error {
	var w annotationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, "failed to decode annotation")
	}
	kind, err := ParseKind(w.Type)
	if err != nil {
		return err
	}

	switch kind {
	case model.KindAttribute, model.KindConstant, model.KindOptional:
		dv, err := decodeDefaultValue(w.DefaultValue)
		if err != nil {
			return errors.Wrapf(err, "%s annotation", kind)
		}
		switch kind {
		case model.KindAttribute:
			a.Annotation = &model.AttributeAnnotation{DefaultValue: dv}
		case model.KindConstant:
			a.Annotation = &model.ConstantAnnotation{DefaultValue: dv}
		default:
			a.Annotation = &model.OptionalAnnotation{DefaultValue: dv}
		}
	case model.KindBoundary:
		b, err := w.boundary()
		if err != nil {
			return err
		}
		a.Annotation = &model.BoundaryAnnotation{Boundary: b}
	case model.KindCalledAfter:
		a.Annotation = &model.CalledAfterAnnotation{CalledAfterName: w.CalledAfterName}
	case model.KindDescription:
		a.Annotation = &model.DescriptionAnnotation{NewDescription: w.NewDescription}
	case model.KindEnum:
		pairs := make([]model.EnumPair, 0, len(w.Pairs))
		for _, p := range w.Pairs {
			pairs = append(pairs, model.EnumPair{StringValue: p.StringValue, InstanceName: p.InstanceName})
		}
		a.Annotation = &model.EnumAnnotation{EnumName: w.EnumName, Pairs: pairs}
	case model.KindGroup:
		a.Annotation = &model.GroupAnnotation{GroupName: w.GroupName, Parameters: w.Parameters}
	case model.KindMove:
		a.Annotation = &model.MoveAnnotation{Destination: w.Destination}
	case model.KindOmitted:
		a.Annotation = &model.OmittedAnnotation{}
	case model.KindPure:
		a.Annotation = &model.PureAnnotation{}
	case model.KindRemove:
		a.Annotation = &model.RemoveAnnotation{}
	case model.KindRename:
		a.Annotation = &model.RenameAnnotation{NewName: w.NewName}
	case model.KindRequired:
		a.Annotation = &model.RequiredAnnotation{}
	case model.KindTodo:
		a.Annotation = &model.TodoAnnotation{NewTodo: w.NewTodo}
	}
	return nil
}

func (w *annotationWire) boundary() (model.Boundary, error) {
	var (
		b          model.Boundary
		lower      = w.LowerLimitType
		upper      = w.UpperLimitType
		err1, err2 error
	)
	if w.Interval != nil {
		b.IsDiscrete = w.Interval.IsDiscrete
		b.LowerIntervalLimit = w.Interval.LowerIntervalLimit
		b.UpperIntervalLimit = w.Interval.UpperIntervalLimit
		lower, upper = w.Interval.LowerLimitType, w.Interval.UpperLimitType
	} else {
		if w.IsDiscrete != nil {
			b.IsDiscrete = *w.IsDiscrete
		}
		if w.LowerIntervalLimit != nil {
			b.LowerIntervalLimit = *w.LowerIntervalLimit
		}
		if w.UpperIntervalLimit != nil {
			b.UpperIntervalLimit = *w.UpperIntervalLimit
		}
	}
	b.LowerLimitType, err1 = model.ParseComparisonOperator(lower)
	b.UpperLimitType, err2 = model.ParseComparisonOperator(upper)
	if err1 != nil {
		return b, errors.Wrap(err1, "boundary lower limit")
	}
	if err2 != nil {
		return b, errors.Wrap(err2, "boundary upper limit")
	}
	return b, nil
}

func decodeDefaultValue(raw json.RawMessage) (model.DefaultValue, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return model.NoneValue{}, nil
	}
	var w defaultValueWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrap(err, "failed to decode default value")
	}

	name := w.Type
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ToLower(strings.TrimPrefix(name, "Default"))

	switch name {
	case "boolean", "bool":
		var v bool
		if err := json.Unmarshal(w.Value, &v); err != nil {
			return nil, errors.Wrap(err, "boolean default value")
		}
		return model.BooleanValue{Value: v}, nil
	case "number":
		var v float64
		if err := json.Unmarshal(w.Value, &v); err != nil {
			return nil, errors.Wrap(err, "number default value")
		}
		return model.NumberValue{Value: v}, nil
	case "string":
		var v string
		if err := json.Unmarshal(w.Value, &v); err != nil {
			return nil, errors.Wrap(err, "string default value")
		}
		return model.StringValue{Value: v}, nil
	case "none":
		return model.NoneValue{}, nil
	}
	return nil, errors.Newf("unknown default value type %q", w.Type)
}

func (a Annotation) MarshalJSON() ([]byte, error) {
	if a.Annotation == nil {
		return []byte("null"), nil
	}
	w := annotationWire{Type: string(a.Kind())}
	var dv model.DefaultValue

	switch ann := a.Annotation.(type) {
	case *model.AttributeAnnotation:
		dv = ann.DefaultValue
	case *model.BoundaryAnnotation:
		b := ann.Boundary
		w.IsDiscrete = &b.IsDiscrete
		w.LowerIntervalLimit = &b.LowerIntervalLimit
		w.LowerLimitType = b.LowerLimitType.String()
		w.UpperIntervalLimit = &b.UpperIntervalLimit
		w.UpperLimitType = b.UpperLimitType.String()
	case *model.CalledAfterAnnotation:
		w.CalledAfterName = ann.CalledAfterName
	case *model.ConstantAnnotation:
		dv = ann.DefaultValue
	case *model.DescriptionAnnotation:
		w.NewDescription = ann.NewDescription
	case *model.EnumAnnotation:
		w.EnumName = ann.EnumName
		for _, p := range ann.Pairs {
			w.Pairs = append(w.Pairs, enumPairWire{StringValue: p.StringValue, InstanceName: p.InstanceName})
		}
	case *model.GroupAnnotation:
		w.GroupName = ann.GroupName
		w.Parameters = ann.Parameters
	case *model.MoveAnnotation:
		w.Destination = ann.Destination
	case *model.OptionalAnnotation:
		dv = ann.DefaultValue
	case *model.RenameAnnotation:
		w.NewName = ann.NewName
	case *model.TodoAnnotation:
		w.NewTodo = ann.NewTodo
	case *model.OmittedAnnotation, *model.PureAnnotation, *model.RemoveAnnotation, *model.RequiredAnnotation:
		// no payload
	}

	if dv != nil {
		raw, err := encodeDefaultValue(dv)
		if err != nil {
			return nil, err
		}
		w.DefaultValue = raw
	}
	return json.Marshal(w)
}

func encodeDefaultValue(dv model.DefaultValue) (json.RawMessage, error) {
	var w struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}
	switch v := dv.(type) {
	case model.BooleanValue:
		w.Type, w.Value = "DefaultBoolean", v.Value
	case model.NumberValue:
		w.Type, w.Value = "DefaultNumber", v.Value
	case model.StringValue:
		w.Type, w.Value = "DefaultString", v.Value
	default:
		w.Type = "DefaultNone"
	}
	return json.Marshal(w)
}
