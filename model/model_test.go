package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds: package "pkg" / module "lib.sub" / class "C" with
// method "m(self, x)" and function "f(y)" whose call references y.
func sampleTree() (*Package, *Module, *Class, *Function, *Function) {
	pkg := NewPackage("pkg")
	mod := NewModule("lib.sub")
	pkg.Modules.Add(mod)

	cls := NewClass("C")
	mod.Classes.Add(cls)
	m := NewFunction("m")
	m.Parameters.Add(NewParameter("self"))
	m.Parameters.Add(NewParameter("x"))
	cls.Methods.Add(m)

	f := NewFunction("f")
	y := NewParameter("y")
	f.Parameters.Add(y)
	f.CallToOriginalAPI.Set(NewCall("lib.sub.f", NewArgument("", NewReference(y))))
	mod.Functions.Add(f)

	return pkg, mod, cls, m, f
}

func TestQualifiedName(t *testing.T) {
	_, mod, cls, m, f := sampleTree()
	x, _ := m.Parameter("x")

	assert.Equal(t, "lib.sub", QualifiedName(mod))
	assert.Equal(t, "lib.sub.C", QualifiedName(cls))
	assert.Equal(t, "lib.sub.C.m.x", QualifiedName(x))
	assert.Equal(t, "lib.sub.f", QualifiedName(f))

	cls.SetName("Renamed")
	m.SetName("method")
	assert.Equal(t, "lib.sub.Renamed.method.x", QualifiedName(x), "qualified names follow renames of every ancestor")
}

func TestQualifiedName_Constructor(t *testing.T) {
	cls := NewClass("C")
	ctor := NewConstructor()
	p := NewParameter("a")
	ctor.Parameters.Add(p)
	cls.Constructor.Set(ctor)

	assert.Equal(t, "C.__init__.a", QualifiedName(p))
}

func TestList_AddReparents(t *testing.T) {
	pkg, mod, _, _, f := sampleTree()
	other := NewModule("other")
	pkg.Modules.Add(other)

	other.Functions.Add(f)

	assert.Equal(t, 0, mod.Functions.Len(), "adding to a new list detaches from the old one")
	assert.Equal(t, 1, other.Functions.Len())
	assert.Same(t, other, f.Parent())
	assert.Equal(t, "other.f", QualifiedName(f))
}

func TestList_ReaddMovesToEnd(t *testing.T) {
	f := NewFunction("f")
	a, b, c := NewParameter("a"), NewParameter("b"), NewParameter("c")
	f.Parameters.Add(a)
	f.Parameters.Add(b)
	f.Parameters.Add(c)

	f.Parameters.Add(a)

	assert.Equal(t, []*Parameter{b, c, a}, f.Parameters.All())
}

func TestList_Insert(t *testing.T) {
	f := NewFunction("f")
	a, b := NewParameter("a"), NewParameter("b")
	f.Parameters.Add(a)
	f.Parameters.Insert(0, b)

	assert.Equal(t, []*Parameter{b, a}, f.Parameters.All())
	assert.Equal(t, 1, f.Parameters.Index(a))
}

func TestRelease(t *testing.T) {
	pkg, mod, cls, _, f := sampleTree()

	cls.Release()

	assert.Nil(t, cls.Parent())
	assert.Equal(t, 0, mod.Classes.Len())
	for n := range Descendants(pkg, nil) {
		assert.NotEqual(t, Node(cls), n, "released node must not be reachable")
	}
	assert.Equal(t, "C", QualifiedName(cls), "a released node becomes a detached root")

	// releasing twice is harmless
	cls.Release()
	f.Release()
	assert.True(t, mod.IsEmpty())
}

func TestSlot_SetReplacesOccupant(t *testing.T) {
	arg := NewArgument("", &IntLiteral{Value: 1})
	first, _ := arg.Value.Get()

	arg.Value.Set(&NoneLiteral{})

	assert.Nil(t, first.Parent())
	v, ok := arg.Value.Get()
	require.True(t, ok)
	assert.IsType(t, &NoneLiteral{}, v)
	assert.Same(t, arg, v.Parent())

	v.Release()
	assert.False(t, arg.Value.IsSet())
}

func TestDescendants_PreOrder(t *testing.T) {
	pkg, _, _, _, _ := sampleTree()

	var names []string
	for n := range Descendants(pkg, nil) {
		if d, ok := n.(Declaration); ok {
			names = append(names, d.GetName())
		}
	}

	assert.Equal(t, []string{"lib.sub", "C", "m", "self", "x", "f", "y"}, names)
}

func TestDescendants_StopsDescentWhenDescendFalse(t *testing.T) {
	pkg, _, _, _, _ := sampleTree()

	notIntoFunctions := func(n Node) bool {
		_, isFunction := n.(*Function)
		return !isFunction
	}
	var names []string
	for n := range Descendants(pkg, notIntoFunctions) {
		if d, ok := n.(Declaration); ok {
			names = append(names, d.GetName())
		}
	}

	assert.Equal(t, []string{"lib.sub", "C", "m", "f"}, names, "functions are yielded but not entered")
}

func TestDescendants_EarlyBreak(t *testing.T) {
	pkg, _, _, _, _ := sampleTree()

	count := 0
	for range Descendants(pkg, nil) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestDescendantsOf(t *testing.T) {
	pkg, _, _, _, _ := sampleTree()

	params := DescendantsOf[*Parameter](pkg, nil)
	require.Len(t, params, 3)
	assert.Equal(t, "y", params[2].Name)
}

func TestCrossReferencesTo(t *testing.T) {
	_, _, _, m, f := sampleTree()
	y, _ := f.Parameter("y")
	x, _ := m.Parameter("x")

	refs := CrossReferencesTo(y)
	require.Len(t, refs, 1)
	arg, ok := Closest[*Argument](refs[0])
	require.True(t, ok)
	assert.Empty(t, arg.Name)

	assert.Empty(t, CrossReferencesTo(x))
}

func TestClosest(t *testing.T) {
	_, mod, _, m, _ := sampleTree()
	x, _ := m.Parameter("x")

	got, ok := Closest[*Module](x)
	require.True(t, ok)
	assert.Same(t, mod, got)

	_, ok = Closest[*Constructor](x)
	assert.False(t, ok)
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value DefaultValue
		want  Expression
	}{
		{"boolean", BooleanValue{Value: true}, &BooleanLiteral{Value: true}},
		{"integral number", NumberValue{Value: 2}, &IntLiteral{Value: 2}},
		{"fractional number", NumberValue{Value: 0.1}, &FloatLiteral{Value: 0.1}},
		{"string", StringValue{Value: "s"}, &StringLiteral{Value: "s"}},
		{"none", NoneValue{}, &NoneLiteral{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.value))
		})
	}
}

func TestDefaultValue_PythonLiteral(t *testing.T) {
	assert.Equal(t, "True", BooleanValue{Value: true}.PythonLiteral())
	assert.Equal(t, "3", NumberValue{Value: 3}.PythonLiteral())
	assert.Equal(t, "0.5", NumberValue{Value: 0.5}.PythonLiteral())
	assert.Equal(t, `'it\'s'`, StringValue{Value: "it's"}.PythonLiteral())
	assert.Equal(t, "None", NoneValue{}.PythonLiteral())
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.0", FormatFloat(1))
	assert.Equal(t, "0.1", FormatFloat(0.1))
	assert.Equal(t, "-2.5", FormatFloat(-2.5))
	assert.Equal(t, "100.0", FormatFloat(100))
}

func TestBoundary_Interval(t *testing.T) {
	b := Boundary{
		LowerIntervalLimit: 0,
		LowerLimitType:     LessThanOrEquals,
		UpperIntervalLimit: 1,
		UpperLimitType:     LessThan,
	}
	assert.Equal(t, "[0.0, 1.0)", b.Interval())

	b.LowerLimitType = Unrestricted
	b.UpperLimitType = LessThanOrEquals
	assert.Equal(t, "(-∞, 1.0]", b.Interval())
}

func TestParseParameterAssignment(t *testing.T) {
	a, err := ParseParameterAssignment("NAME_ONLY")
	require.NoError(t, err)
	assert.Equal(t, NameOnly, a)

	a, err = ParseParameterAssignment("position_or_name")
	require.NoError(t, err)
	assert.Equal(t, PositionOrName, a)

	_, err = ParseParameterAssignment("SOMETIMES")
	assert.Error(t, err)
}

func TestAnnotations(t *testing.T) {
	p := NewParameter("p")
	rename := &RenameAnnotation{NewName: "q"}
	p.AddAnnotation(&RequiredAnnotation{})
	p.AddAnnotation(rename)

	assert.True(t, p.HasAnnotation(KindRename))
	assert.Equal(t, []*RenameAnnotation{rename}, AnnotationsOf[*RenameAnnotation](p))

	assert.True(t, p.RemoveAnnotation(rename))
	assert.False(t, p.RemoveAnnotation(rename))
	assert.False(t, p.HasAnnotation(KindRename))
	assert.Len(t, p.AnnotationList(), 1)
}
