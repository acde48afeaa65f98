// Package model is the mutable declaration tree that the transformation
// pipeline rewrites and the code generators render.
//
// Every node is owned by exactly one containment (a List or a Slot) on its
// parent and holds a non-owning back-pointer to that parent. Inserting a node
// that already has a parent into another containment first detaches it from
// the old one, so a node is never reachable from two places. Release detaches
// a node and turns it into a parentless root.
//
// Qualified names are never cached; QualifiedName walks the ancestor chain on
// every call so it stays consistent while passes reshape the tree.
package model

import (
	"iter"
	"slices"
	"strings"
)

// Node is implemented by every declaration and expression in the tree.
type Node interface {
	// Parent returns the owning node, or nil for a root or a released node.
	Parent() Node
	// Children returns the directly owned nodes in containment order.
	Children() []Node
	// Release detaches the node from its parent's containment.
	Release()

	base() *nodeBase
}

type nodeBase struct {
	parent Node
	detach func()
}

func (b *nodeBase) base() *nodeBase { return b }

// Parent returns the owning node, or nil when the node is detached.
func (b *nodeBase) Parent() Node { return b.parent }

// Release detaches the node from its parent's containment.
// Releasing a root is a no-op.
func (b *nodeBase) Release() {
	if b.detach != nil {
		b.detach()
	}
}

func adopt(owner Node, n Node, detach func()) {
	b := n.base()
	b.Release()
	b.parent = owner
	b.detach = detach
}

func orphan(n Node) {
	b := n.base()
	b.parent = nil
	b.detach = nil
}

// List is an ordered containment of child nodes.
// The zero value has no owner; use the constructors in this package.
type List[T Node] struct {
	owner Node
	items []T
}

func newList[T Node](owner Node) List[T] {
	return List[T]{owner: owner}
}

// Len returns the number of children.
func (l *List[T]) Len() int { return len(l.items) }

// IsEmpty reports whether the list holds no children.
func (l *List[T]) IsEmpty() bool { return len(l.items) == 0 }

// At returns the child at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// All returns a snapshot of the children. Mutating the list while iterating
// the snapshot is safe.
func (l *List[T]) All() []T { return slices.Clone(l.items) }

// Add appends n, detaching it from any previous parent first.
func (l *List[T]) Add(n T) {
	l.Insert(len(l.items), n)
}

// Insert places n at index i, detaching it from any previous parent first.
// An index past the end appends.
func (l *List[T]) Insert(i int, n T) {
	adopt(l.owner, n, func() { l.Remove(n) })
	if i < 0 {
		i = 0
	}
	if i > len(l.items) {
		i = len(l.items)
	}
	l.items = slices.Insert(l.items, i, n)
}

// Index returns the position of n, or -1.
func (l *List[T]) Index(n T) int {
	return slices.IndexFunc(l.items, func(x T) bool { return Node(x) == Node(n) })
}

// Remove detaches n from the list. It reports whether n was a member.
func (l *List[T]) Remove(n T) bool {
	i := l.Index(n)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	orphan(n)
	return true
}

// Find returns the first child matching pred.
func (l *List[T]) Find(pred func(T) bool) (T, bool) {
	for _, x := range l.items {
		if pred(x) {
			return x, true
		}
	}
	var zero T
	return zero, false
}

// SortStableFunc reorders the children in place. Membership is unchanged.
func (l *List[T]) SortStableFunc(cmp func(a, b T) int) {
	slices.SortStableFunc(l.items, cmp)
}

func (l *List[T]) appendNodes(dst []Node) []Node {
	for _, x := range l.items {
		dst = append(dst, x)
	}
	return dst
}

// Slot is a containment of at most one child node.
type Slot[T Node] struct {
	owner Node
	value T
	set   bool
}

func newSlot[T Node](owner Node) Slot[T] {
	return Slot[T]{owner: owner}
}

// Get returns the child and whether the slot is occupied.
func (s *Slot[T]) Get() (T, bool) { return s.value, s.set }

// Value returns the child or the zero value.
func (s *Slot[T]) Value() T { return s.value }

// IsSet reports whether the slot is occupied.
func (s *Slot[T]) IsSet() bool { return s.set }

// Set stores n, releasing the previous occupant and detaching n from its
// previous parent.
func (s *Slot[T]) Set(n T) {
	s.Clear()
	adopt(s.owner, n, func() {
		if s.set && Node(s.value) == Node(n) {
			s.Clear()
		}
	})
	s.value = n
	s.set = true
}

// Clear releases the occupant, if any.
func (s *Slot[T]) Clear() {
	if !s.set {
		return
	}
	old := s.value
	var zero T
	s.value = zero
	s.set = false
	orphan(old)
}

func (s *Slot[T]) appendNodes(dst []Node) []Node {
	if s.set {
		dst = append(dst, s.value)
	}
	return dst
}

// Root returns the topmost ancestor of n, which may be n itself.
func Root(n Node) Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

// Descendants yields every node below root in pre-order, excluding root.
//
// Every node is yielded. When descend is non-nil and returns false for a
// node, that node's children are not visited. The same rule holds at every
// call site. The sequence snapshots each child list as it goes, so callers
// may release the node they were just handed.
func Descendants(root Node, descend func(Node) bool) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(root, descend, yield)
	}
}

func walk(n Node, descend func(Node) bool, yield func(Node) bool) bool {
	for _, c := range n.Children() {
		if !yield(c) {
			return false
		}
		if descend != nil && !descend(c) {
			continue
		}
		if !walk(c, descend, yield) {
			return false
		}
	}
	return true
}

// DescendantsOf collects the descendants of root with dynamic type T.
func DescendantsOf[T Node](root Node, descend func(Node) bool) []T {
	var out []T
	for n := range Descendants(root, descend) {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Closest returns the nearest ancestor of n (n included) with type T.
func Closest[T Node](n Node) (T, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if t, ok := cur.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// QualifiedName joins the names of d and its declaration ancestors with '.'.
// The package name is not part of qualified names.
func QualifiedName(d Declaration) string {
	var parts []string
	for cur := Node(d); cur != nil; cur = cur.Parent() {
		if _, ok := cur.(*Package); ok {
			break
		}
		if decl, ok := cur.(Declaration); ok {
			parts = append(parts, decl.GetName())
		}
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// CrossReferencesTo returns every Reference in target's tree that resolves
// to target, in pre-order.
//
// This is a linear scan of the whole tree. Trees are a single package and
// passes call it once per annotated parameter, so no index is maintained.
func CrossReferencesTo(target Declaration) []*Reference {
	var refs []*Reference
	for n := range Descendants(Root(target), nil) {
		if r, ok := n.(*Reference); ok && r.Declaration == target {
			refs = append(refs, r)
		}
	}
	return refs
}
