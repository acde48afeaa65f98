package model

// Expression is a node that renders as a Python expression.
type Expression interface {
	Node
	expression()
}

// Call invokes Receiver, a dotted path such as "pkg.mod.f" or
// "self.instance.method".
type Call struct {
	nodeBase

	Receiver  string
	Arguments List[*Argument]
}

func NewCall(receiver string, args ...*Argument) *Call {
	c := &Call{Receiver: receiver}
	c.Arguments = newList[*Argument](c)
	for _, a := range args {
		c.Arguments.Add(a)
	}
	return c
}

func (c *Call) Children() []Node { return c.Arguments.appendNodes(nil) }

// Argument is positional when Name is empty.
type Argument struct {
	nodeBase

	Name  string
	Value Slot[Expression]
}

func NewArgument(name string, value Expression) *Argument {
	a := &Argument{Name: name}
	a.Value = newSlot[Expression](a)
	if value != nil {
		a.Value.Set(value)
	}
	return a
}

func (a *Argument) Children() []Node { return a.Value.appendNodes(nil) }

// Reference points at a declaration without owning it.
type Reference struct {
	nodeBase

	Declaration Declaration
}

func NewReference(d Declaration) *Reference {
	return &Reference{Declaration: d}
}

func (r *Reference) Children() []Node { return nil }

// Identifier is a bare name that does not resolve to a declaration in the
// tree, such as the `value` member of an enum instance.
type Identifier struct {
	nodeBase

	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

func (i *Identifier) Children() []Node { return nil }

// MemberAccess is `Receiver.Member`.
type MemberAccess struct {
	nodeBase

	Receiver Slot[Expression]
	Member   Slot[Expression]
}

func NewMemberAccess(receiver, member Expression) *MemberAccess {
	m := &MemberAccess{}
	m.Receiver = newSlot[Expression](m)
	m.Member = newSlot[Expression](m)
	m.Receiver.Set(receiver)
	m.Member.Set(member)
	return m
}

func (m *MemberAccess) Children() []Node {
	out := m.Receiver.appendNodes(nil)
	return m.Member.appendNodes(out)
}

// PositionalSpread is `*Value`.
type PositionalSpread struct {
	nodeBase

	Value Slot[Expression]
}

func NewPositionalSpread(value Expression) *PositionalSpread {
	s := &PositionalSpread{}
	s.Value = newSlot[Expression](s)
	if value != nil {
		s.Value.Set(value)
	}
	return s
}

func (s *PositionalSpread) Children() []Node { return s.Value.appendNodes(nil) }

// NamedSpread is `**Value`.
type NamedSpread struct {
	nodeBase

	Value Slot[Expression]
}

func NewNamedSpread(value Expression) *NamedSpread {
	s := &NamedSpread{}
	s.Value = newSlot[Expression](s)
	if value != nil {
		s.Value.Set(value)
	}
	return s
}

func (s *NamedSpread) Children() []Node { return s.Value.appendNodes(nil) }

type BooleanLiteral struct {
	nodeBase
	Value bool
}

type IntLiteral struct {
	nodeBase
	Value int64
}

type FloatLiteral struct {
	nodeBase
	Value float64
}

type StringLiteral struct {
	nodeBase
	Value string
}

type NoneLiteral struct {
	nodeBase
}

func (*BooleanLiteral) Children() []Node { return nil }
func (*IntLiteral) Children() []Node     { return nil }
func (*FloatLiteral) Children() []Node   { return nil }
func (*StringLiteral) Children() []Node  { return nil }
func (*NoneLiteral) Children() []Node    { return nil }

func (*Call) expression()             {}
func (*Reference) expression()        {}
func (*Identifier) expression()       {}
func (*MemberAccess) expression()     {}
func (*PositionalSpread) expression() {}
func (*NamedSpread) expression()      {}
func (*BooleanLiteral) expression()   {}
func (*IntLiteral) expression()       {}
func (*FloatLiteral) expression()     {}
func (*StringLiteral) expression()    {}
func (*NoneLiteral) expression()      {}

// Literal builds the literal expression for a default value. Numbers with no
// fractional part become integers.
func Literal(v DefaultValue) Expression {
	switch v := v.(type) {
	case BooleanValue:
		return &BooleanLiteral{Value: v.Value}
	case NumberValue:
		if i, ok := v.Int(); ok {
			return &IntLiteral{Value: i}
		}
		return &FloatLiteral{Value: v.Value}
	case StringValue:
		return &StringLiteral{Value: v.Value}
	default:
		return &NoneLiteral{}
	}
}
