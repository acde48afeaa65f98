package model

// Declaration is a named node with a qualified identity.
type Declaration interface {
	Node
	GetName() string
	SetName(string)
}

// OriginalDeclaration snapshots the identity of a declaration before any
// rewriting, so calls into the wrapped API stay correct after renames and
// restructuring.
type OriginalDeclaration struct {
	QualifiedName string
	Assignment    ParameterAssignment
}

// Import is `import module [as alias]`.
type Import struct {
	Module string
	Alias  string
}

// FromImport is `from module import declaration [as alias]`.
type FromImport struct {
	Module      string
	Declaration string
	Alias       string
}

// InitializerName is the reserved name of Python initializer methods.
const InitializerName = "__init__"

type Package struct {
	nodeBase
	Annotations

	Name         string
	Distribution string
	Version      string
	Modules      List[*Module]

	// OriginalsAttached is set by the first pipeline pass so that re-running
	// the pipeline does not rebuild calls to the original API.
	OriginalsAttached bool
}

func NewPackage(name string) *Package {
	p := &Package{Name: name}
	p.Modules = newList[*Module](p)
	return p
}

func (p *Package) GetName() string     { return p.Name }
func (p *Package) SetName(name string) { p.Name = name }
func (p *Package) Children() []Node    { return p.Modules.appendNodes(nil) }

// Module returns the module with the given dotted name.
func (p *Package) Module(name string) (*Module, bool) {
	return p.Modules.Find(func(m *Module) bool { return m.Name == name })
}

type Module struct {
	nodeBase
	Annotations

	Name        string
	Imports     []Import
	FromImports []FromImport
	Classes     List[*Class]
	Functions   List[*Function]
	Enums       List[*Enum]
}

func NewModule(name string) *Module {
	m := &Module{Name: name}
	m.Classes = newList[*Class](m)
	m.Functions = newList[*Function](m)
	m.Enums = newList[*Enum](m)
	return m
}

func (m *Module) GetName() string     { return m.Name }
func (m *Module) SetName(name string) { m.Name = name }

func (m *Module) Children() []Node {
	out := m.Classes.appendNodes(nil)
	out = m.Functions.appendNodes(out)
	return m.Enums.appendNodes(out)
}

// IsEmpty reports whether the module declares nothing that would be rendered.
func (m *Module) IsEmpty() bool {
	return m.Classes.IsEmpty() && m.Functions.IsEmpty() && m.Enums.IsEmpty()
}

type Class struct {
	nodeBase
	Annotations

	Name          string
	Decorators    []string
	Superclasses  []string
	Constructor   Slot[*Constructor]
	Attributes    List[*Attribute]
	Methods       List[*Function]
	IsPublic      bool
	Description   string
	FullDocstring string
	Todo          string

	// Original is nil for classes synthesized by the pipeline.
	Original *OriginalDeclaration
}

func NewClass(name string) *Class {
	c := &Class{Name: name, IsPublic: true}
	c.Constructor = newSlot[*Constructor](c)
	c.Attributes = newList[*Attribute](c)
	c.Methods = newList[*Function](c)
	return c
}

func (c *Class) GetName() string     { return c.Name }
func (c *Class) SetName(name string) { c.Name = name }

func (c *Class) Children() []Node {
	out := c.Constructor.appendNodes(nil)
	out = c.Attributes.appendNodes(out)
	return c.Methods.appendNodes(out)
}

// Method returns the method with the given name.
func (c *Class) Method(name string) (*Function, bool) {
	return c.Methods.Find(func(f *Function) bool { return f.Name == name })
}

// Constructor is the initializer of a class after extraction from its
// `__init__` method.
type Constructor struct {
	nodeBase

	Parameters        List[*Parameter]
	CallToOriginalAPI Slot[*Call]
}

func NewConstructor() *Constructor {
	c := &Constructor{}
	c.Parameters = newList[*Parameter](c)
	c.CallToOriginalAPI = newSlot[*Call](c)
	return c
}

func (c *Constructor) GetName() string { return InitializerName }

// SetName is a no-op; constructors are always named after the initializer.
func (c *Constructor) SetName(string) {}

func (c *Constructor) Children() []Node {
	out := c.Parameters.appendNodes(nil)
	return c.CallToOriginalAPI.appendNodes(out)
}

type Function struct {
	nodeBase
	Annotations

	Name              string
	Decorators        []string
	Parameters        List[*Parameter]
	Results           List[*Result]
	IsPublic          bool
	Description       string
	FullDocstring     string
	Todo              string
	IsPure            bool
	CalledAfter       []string
	CallToOriginalAPI Slot[*Call]

	Original *OriginalDeclaration
}

func NewFunction(name string) *Function {
	f := &Function{Name: name, IsPublic: true}
	f.Parameters = newList[*Parameter](f)
	f.Results = newList[*Result](f)
	f.CallToOriginalAPI = newSlot[*Call](f)
	return f
}

func (f *Function) GetName() string     { return f.Name }
func (f *Function) SetName(name string) { f.Name = name }

func (f *Function) Children() []Node {
	out := f.Parameters.appendNodes(nil)
	out = f.Results.appendNodes(out)
	return f.CallToOriginalAPI.appendNodes(out)
}

// IsMethod reports whether f is owned by a class.
func (f *Function) IsMethod() bool {
	_, ok := f.Parent().(*Class)
	return ok
}

// IsStatic reports whether f carries the staticmethod decorator.
func (f *Function) IsStatic() bool {
	for _, d := range f.Decorators {
		if d == "staticmethod" {
			return true
		}
	}
	return false
}

// IsInitializer reports whether f is a class's `__init__` method.
func (f *Function) IsInitializer() bool {
	return f.Name == InitializerName && f.IsMethod()
}

// Parameter returns the parameter with the given name.
func (f *Function) Parameter(name string) (*Parameter, bool) {
	return f.Parameters.Find(func(p *Parameter) bool { return p.Name == name })
}

type Parameter struct {
	nodeBase
	Annotations

	Name         string
	Type         Type
	TypeInDocs   string
	Assignment   ParameterAssignment
	DefaultValue *string
	IsPublic     bool
	Description  string
	Boundary     *Boundary
	Todo         string

	Original *OriginalDeclaration
}

func NewParameter(name string) *Parameter {
	return &Parameter{Name: name, Assignment: PositionOrName, IsPublic: true}
}

func (p *Parameter) GetName() string     { return p.Name }
func (p *Parameter) SetName(name string) { p.Name = name }
func (p *Parameter) Children() []Node    { return nil }

// IsImplicit reports whether p is bound implicitly (self or cls).
func (p *Parameter) IsImplicit() bool { return p.Assignment == Implicit }

// IsVariadic reports whether p is *args or **kwargs.
func (p *Parameter) IsVariadic() bool { return p.Assignment.IsVariadic() }

// SetDefault sets the default value source text.
func (p *Parameter) SetDefault(v string) { p.DefaultValue = &v }

type Attribute struct {
	nodeBase
	Annotations

	Name        string
	Type        Type
	Value       Slot[Expression]
	IsPublic    bool
	Description string
	Boundary    *Boundary
}

func NewAttribute(name string) *Attribute {
	a := &Attribute{Name: name, IsPublic: true}
	a.Value = newSlot[Expression](a)
	return a
}

func (a *Attribute) GetName() string     { return a.Name }
func (a *Attribute) SetName(name string) { a.Name = name }
func (a *Attribute) Children() []Node    { return a.Value.appendNodes(nil) }

type Enum struct {
	nodeBase

	Name        string
	Instances   List[*EnumInstance]
	Description string
}

func NewEnum(name string) *Enum {
	e := &Enum{Name: name}
	e.Instances = newList[*EnumInstance](e)
	return e
}

func (e *Enum) GetName() string     { return e.Name }
func (e *Enum) SetName(name string) { e.Name = name }
func (e *Enum) Children() []Node    { return e.Instances.appendNodes(nil) }

type EnumInstance struct {
	nodeBase

	Name        string
	Value       string
	Description string
}

func NewEnumInstance(name, value string) *EnumInstance {
	return &EnumInstance{Name: name, Value: value}
}

func (e *EnumInstance) GetName() string     { return e.Name }
func (e *EnumInstance) SetName(name string) { e.Name = name }
func (e *EnumInstance) Children() []Node    { return nil }

type Result struct {
	nodeBase
	Annotations

	Name        string
	Type        Type
	TypeInDocs  string
	Description string
}

func NewResult(name string) *Result {
	return &Result{Name: name}
}

func (r *Result) GetName() string     { return r.Name }
func (r *Result) SetName(name string) { r.Name = name }
func (r *Result) Children() []Node    { return nil }
