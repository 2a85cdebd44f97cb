package tmpl

import (
	"slices"

	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/types"
	"github.com/signadot/outtree/value"
)

// Element is a Tree node (*Node) or a Data node (*Data). Rendering,
// equality and hashing accept either.
type Element interface {
	Kind() Kind
	Pos() token.Pos

	slotLen(i int) int
	slotAt(i, j int) Element
	attr(i int) any
}

// Node is a connected, mutable IR node. Child slots are changed only
// through the connection methods (SetChild, ReplaceChild, SetChildren,
// Append, Detach), which keep every child with exactly one parent.
//
// A Node must not be mutated while another goroutine reads the tree it is
// in.
type Node struct {
	kind Kind
	pos  token.Pos

	parent *Node
	// slot is the parent slot holding n, or -1.
	slot int

	// slots[i] holds the children of grammar slot i; single slots hold at
	// most one.
	slots [][]*Node
	attrs []any
}

func newNode(k Kind, pos token.Pos) *Node {
	ki := info(k)
	n := &Node{
		kind:  k,
		pos:   pos,
		slot:  -1,
		slots: make([][]*Node, len(ki.def.Slots)),
		attrs: make([]any, len(ki.def.Attrs)),
	}
	for i, a := range ki.def.Attrs {
		n.attrs[i] = zeroAttr(a.Type)
	}
	return n
}

func (n *Node) Kind() Kind     { return n.kind }
func (n *Node) Pos() token.Pos { return n.pos }

// SetPos records the source span of n. Positions take no part in equality.
func (n *Node) SetPos(p token.Pos) *Node {
	n.pos = p
	return n
}

func (n *Node) slotLen(i int) int       { return len(n.slots[i]) }
func (n *Node) slotAt(i, j int) Element { return n.slots[i][j] }
func (n *Node) attr(i int) any          { return n.attrs[i] }

// Parent returns the node holding n, or nil. It panics if the recorded
// parent no longer holds n.
func (n *Node) Parent() *Node {
	if n.slot < 0 {
		return nil
	}
	p := n.parent
	if !slices.Contains(p.slots[n.slot], n) {
		panic(invariantf("Parent", "%s is not held by its parent %s slot %q",
			n.kind, p.kind, info(p.kind).def.Slots[n.slot].Name))
	}
	return p
}

// ParentSlot returns the name of the parent slot holding n, or "".
func (n *Node) ParentSlot() string {
	p := n.Parent()
	if p == nil {
		return ""
	}
	return info(p.kind).def.Slots[n.slot].Name
}

// Index returns the position of n in its parent's slot, or -1.
func (n *Node) Index() int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	return slices.Index(p.slots[n.slot], n)
}

func (n *Node) setParent(p *Node, slot int) {
	n.parent = p
	n.slot = slot
}

func (n *Node) clearParent() {
	n.parent = nil
	n.slot = -1
}

// Child returns the child in the named single slot, or nil.
func (n *Node) Child(slot string) *Node {
	ki := info(n.kind)
	i := ki.slot("Child", slot)
	if ki.def.Slots[i].Arity == Many {
		panic(invariantf("Child", "%s slot %q is a list", n.kind, slot))
	}
	if len(n.slots[i]) == 0 {
		return nil
	}
	return n.slots[i][0]
}

// Children returns a copy of the children in the named list slot.
func (n *Node) Children(slot string) []*Node {
	ki := info(n.kind)
	i := ki.slot("Children", slot)
	if ki.def.Slots[i].Arity != Many {
		panic(invariantf("Children", "%s slot %q is not a list", n.kind, slot))
	}
	return slices.Clone(n.slots[i])
}

// ChildCount returns the number of children over all slots.
func (n *Node) ChildCount() int {
	c := 0
	for _, s := range n.slots {
		c += len(s)
	}
	return c
}

// ChildAt returns child i counting through all slots in grammar order.
func (n *Node) ChildAt(i int) *Node {
	if i >= 0 {
		for _, s := range n.slots {
			if i < len(s) {
				return s[i]
			}
			i -= len(s)
		}
	}
	panic(invariantf("ChildAt", "%s has no child %d", n.kind, i))
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) any {
	return n.attrs[info(n.kind).attr("Attr", name)]
}

// SetAttr sets the named attribute. It panics if v has the wrong type.
func (n *Node) SetAttr(name string, v any) *Node {
	ki := info(n.kind)
	i := ki.attr("SetAttr", name)
	n.attrs[i] = checkAttr(ki, i, v)
	return n
}

// AttrOf returns the named attribute of e as a T, and the zero T if it is
// unset or not a T.
func AttrOf[T any](e Element, name string) T {
	v, _ := e.attr(info(e.Kind()).attr("AttrOf", name)).(T)
	return v
}

func zeroAttr(t AttrType) any {
	switch t {
	case AttrString:
		return ""
	case AttrName:
		return name.Resolved{}
	case AttrTarget:
		return name.Target("")
	}
	return nil
}

func checkAttr(ki *kindInfo, i int, v any) any {
	def := ki.def.Attrs[i]
	ok := false
	switch def.Type {
	case AttrString:
		_, ok = v.(string)
	case AttrName:
		_, ok = v.(name.Resolved)
	case AttrTarget:
		_, ok = v.(name.Target)
	case AttrValue:
		_, ok = v.(value.Value)
	case AttrType2:
		_, ok = v.(types.Type2)
	case AttrSignature:
		_, ok = v.(types.Signature2)
	case AttrShape:
		_, ok = v.(types.TypeShape)
	case AttrData:
		var d *Data
		d, ok = v.(*Data)
		if ok && d == nil {
			return nil
		}
	}
	if v == nil && def.Type >= AttrValue {
		return nil
	}
	if !ok {
		panic(invariantf("SetAttr", "%s attribute %q is a %s, not %T", ki.def.Name, def.Name, def.Type, v))
	}
	return v
}

// Root returns the topmost ancestor of n, or n.
func (n *Node) Root() *Node {
	res := n
	for p := res.Parent(); p != nil; p = res.Parent() {
		res = p
	}
	return res
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Visit calls f on n before (isPost false) and after (isPost true) its
// children, in grammar order. Children are visited only if the first call
// returns true.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, s := range n.slots {
			for _, c := range slices.Clone(s) {
				if err := c.Visit(f); err != nil {
					return err
				}
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// DeepCopy returns a new detached tree equal to n. Positions are kept.
func (n *Node) DeepCopy() *Node {
	return treeOf(n)
}

// Data returns the immutable projection of n.
func (n *Node) Data() *Data {
	return dataOf(n)
}

// Equal reports whether n and o have the same content.
func (n *Node) Equal(o Element) bool {
	return Equal(n, o)
}

// Hash returns a content hash consistent with Equal.
func (n *Node) Hash() uint64 {
	return Hash(n)
}

// String renders n as plain text.
func (n *Node) String() string {
	return RenderString(n)
}
