package stub

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/adaptgen/model"
)

func describedParam(name, description, typ string, def *string) *model.Parameter {
	p := model.NewParameter(name)
	p.Description = description
	if typ != "" {
		p.Type = model.StringifiedType{Name: typ}
	}
	if def != nil {
		p.SetDefault(*def)
		p.Assignment = model.NameOnly
	}
	return p
}

func ptr(s string) *string { return &s }

func testClass() *model.Class {
	c := model.NewClass("testClass")
	c.Description = "Lorem ipsum"

	ctor := model.NewConstructor()
	self := model.NewParameter("self")
	self.Assignment = model.Implicit
	ctor.Parameters.Add(self)
	ctor.Parameters.Add(describedParam("onlyParam", "description", "", ptr("'defaultValue'")))
	c.Constructor.Set(ctor)

	attr := model.NewAttribute("onlyParam")
	attr.Description = "description"
	c.Attributes.Add(attr)

	method := model.NewFunction("testClassFunction")
	method.Description = "description"
	method.Parameters.Add(describedParam("onlyParam", "description", "", ptr("'defaultValue'")))
	c.Methods.Add(method)
	return c
}

func testFunction() *model.Function {
	f := model.NewFunction("testFunction")
	f.Description = "Lorem ipsum"
	f.Parameters.Add(describedParam("testParameter", "Lorem ipsum", "int", ptr("42")))
	r := model.NewResult("testResult")
	r.Type = model.StringifiedType{Name: "str"}
	r.Description = "Lorem ipsum"
	f.Results.Add(r)
	return f
}

func TestGenerateFile(t *testing.T) {
	m := model.NewModule("testModule")
	m.Classes.Add(testClass())
	m.Functions.Add(testFunction())

	want := `package simpleml.testModule

@Description("Lorem ipsum")
class testClass(@Description("description") onlyParam: Any? or "defaultValue") {
    @Description("description")
    attr onlyParam: Any?

    @Description("description")
    fun testClassFunction(@Description("description") onlyParam: Any? or "defaultValue")
}

@Description("Lorem ipsum")
fun testFunction(@Description("Lorem ipsum") testParameter: Int or 42) -> @Description("Lorem ipsum") testResult: String
`
	assert.Equal(t, want, NewGenerator().GenerateFile(m))
}

func TestGenerateFileEmptyModule(t *testing.T) {
	g := &Generator{PackagePrefix: "safeds"}
	assert.Equal(t, "package safeds.testModule\n", g.GenerateFile(model.NewModule("testModule")))

	g.PackagePrefix = ""
	assert.Equal(t, "package testModule\n", g.GenerateFile(model.NewModule("testModule")))
}

func TestClass(t *testing.T) {
	t.Run("no members", func(t *testing.T) {
		c := model.NewClass("TestClass")
		c.Description = "Lorem ipsum"
		assert.Equal(t, "@Description(\"Lorem ipsum\")\nclass TestClass()", Class(c))
	})

	t.Run("method without constructor", func(t *testing.T) {
		c := model.NewClass("TestClass")
		c.Description = "Lorem ipsum"
		f := model.NewFunction("testClassFunction")
		f.Description = "description"
		f.Parameters.Add(describedParam("onlyParam", "description", "str", ptr("'defaultValue'")))
		c.Methods.Add(f)

		want := `@Description("Lorem ipsum")
class TestClass() {
    @Description("description")
    fun testClassFunction(@Description("description") onlyParam: String or "defaultValue")
}`
		assert.Equal(t, want, Class(c))
	})
}

func TestFunction(t *testing.T) {
	t.Run("annotations", func(t *testing.T) {
		f := model.NewFunction("fit")
		f.IsPure = true
		f.CalledAfter = []string{"setUp"}
		assert.Equal(t, "@Pure\n@CalledAfter(\"setUp\")\nfun fit()", Function(f))
	})

	t.Run("static method", func(t *testing.T) {
		f := model.NewFunction("create")
		f.Decorators = []string{"staticmethod"}
		model.NewClass("Factory").Methods.Add(f)
		assert.Equal(t, "static fun create()", Function(f))
	})

	t.Run("several results", func(t *testing.T) {
		f := model.NewFunction("split")
		for _, name := range []string{"train", "test"} {
			f.Results.Add(model.NewResult(name))
		}
		assert.Equal(t, "fun split() -> (train: Any?, test: Any?)", Function(f))
	})

	t.Run("variadic", func(t *testing.T) {
		f := model.NewFunction("f")
		p := model.NewParameter("args")
		p.Assignment = model.PositionalVararg
		f.Parameters.Add(p)
		assert.Equal(t, "fun f(vararg args: Any?)", Function(f))
	})
}

func TestEnum(t *testing.T) {
	e := model.NewEnum("Kernel")
	assert.Equal(t, "enum Kernel", Enum(e))

	e.Instances.Add(model.NewEnumInstance("Linear", "linear"))
	e.Instances.Add(model.NewEnumInstance("Rbf", "rbf"))
	assert.Equal(t, "enum Kernel {\n    Linear\n    Rbf\n}", Enum(e))
}

func TestType(t *testing.T) {
	tests := []struct {
		name string
		typ  model.Type
		want string
	}{
		{"bool", model.StringifiedType{Name: "bool"}, "Boolean"},
		{"float", model.StringifiedType{Name: "float"}, "Float"},
		{"int", model.StringifiedType{Name: "int"}, "Int"},
		{"str", model.StringifiedType{Name: "str"}, "String"},
		{"named", model.NamedType{Declaration: model.NewEnum("Kernel")}, "Kernel"},
		{"unknown", model.StringifiedType{Name: "ndarray"}, "Any?"},
		{"missing", nil, "Any?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Type(tt.typ))
		})
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"True", "true"},
		{"False", "false"},
		{"None", "null"},
		{"42", "42"},
		{"-3", "-3"},
		{"0.5", "0.5"},
		{"1e3", "1000.0"},
		{"'auto'", `"auto"`},
		{`"auto"`, `"auto"`},
		{`'say "hi"'`, `"say \"hi\""`},
		{"np.nan", `"np.nan"`},
		{"inf", `"inf"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.src))
		})
	}
}

func TestGeneratorPath(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "stub/a/b/b.sdsstub", g.Path("a.b"))
	assert.Equal(t, "stub/mod/mod.sdsstub", g.Path("mod"))
	assert.Equal(t, "sdsstub", g.FileExtension())
}
