package tmpl

import (
	"slices"

	"github.com/signadot/outtree/debug"
)

// SetChild sets the named single slot to child, which may be nil for an
// optional slot. It is ReplaceChild without the result.
func (n *Node) SetChild(slot string, child *Node) *Node {
	n.ReplaceChild(slot, child)
	return n
}

// ReplaceChild sets the named single slot to child and returns the child it
// displaced, now detached.
//
// If child has another parent it is first detached from it. ReplaceChild
// panics with an *InvariantError if child is n or one of its ancestors, if
// child's kind lacks the role the slot accepts, or if the slot is required
// and child is nil.
func (n *Node) ReplaceChild(slot string, child *Node) *Node {
	const op = "ReplaceChild"
	ki := info(n.kind)
	i := ki.slot(op, slot)
	sd := ki.def.Slots[i]
	if sd.Arity == Many {
		panic(invariantf(op, "%s slot %q is a list", n.kind, slot))
	}
	var old *Node
	if len(n.slots[i]) != 0 {
		old = n.slots[i][0]
	}
	if old == child && child != nil {
		return nil
	}
	if child == nil {
		if sd.Arity == Required {
			panic(invariantf(op, "%s slot %q is required", n.kind, slot))
		}
	} else {
		n.checkAttach(op, sd, child)
		child.Detach()
	}
	if old != nil {
		old.clearParent()
	}
	if child == nil {
		n.slots[i] = nil
	} else {
		n.slots[i] = []*Node{child}
		child.setParent(n, i)
	}
	if debug.Connect() {
		debug.Logf("connect %s.%s: %v -> %v\n", n.kind, slot, kindOf(old), kindOf(child))
	}
	return old
}

// SetChildren replaces the whole named list slot with children and returns
// the displaced children that are not in the new list, now detached.
//
// Children with another parent are first detached from it. SetChildren
// panics with an *InvariantError if a child is nil, appears twice, is n or
// one of its ancestors, or lacks the role the slot accepts. On panic n is
// unchanged.
func (n *Node) SetChildren(slot string, children []*Node) []*Node {
	const op = "SetChildren"
	ki := info(n.kind)
	i := ki.slot(op, slot)
	sd := ki.def.Slots[i]
	if sd.Arity != Many {
		panic(invariantf(op, "%s slot %q is not a list", n.kind, slot))
	}
	seen := make(map[*Node]bool, len(children))
	for j, c := range children {
		if c == nil {
			panic(invariantf(op, "%s slot %q: nil child at %d", n.kind, slot, j))
		}
		if seen[c] {
			panic(invariantf(op, "%s slot %q: %s appears twice", n.kind, slot, c.kind))
		}
		seen[c] = true
		n.checkAttach(op, sd, c)
	}
	old := n.slots[i]
	n.slots[i] = nil
	var displaced []*Node
	for _, c := range old {
		c.clearParent()
		if !seen[c] {
			displaced = append(displaced, c)
		}
	}
	for _, c := range children {
		c.Detach()
	}
	n.slots[i] = slices.Clone(children)
	for _, c := range n.slots[i] {
		c.setParent(n, i)
	}
	if debug.Connect() {
		debug.Logf("connect %s.%s: %d -> %d children\n", n.kind, slot, len(old), len(children))
	}
	return displaced
}

// Append adds children to the end of the named list slot.
func (n *Node) Append(slot string, children ...*Node) *Node {
	ki := info(n.kind)
	i := ki.slot("Append", slot)
	if ki.def.Slots[i].Arity != Many {
		panic(invariantf("Append", "%s slot %q is not a list", n.kind, slot))
	}
	n.SetChildren(slot, append(slices.Clone(n.slots[i]), children...))
	return n
}

// Insert puts child at position j of the named list slot.
func (n *Node) Insert(slot string, j int, child *Node) *Node {
	ki := info(n.kind)
	i := ki.slot("Insert", slot)
	if ki.def.Slots[i].Arity != Many {
		panic(invariantf("Insert", "%s slot %q is not a list", n.kind, slot))
	}
	cur := slices.Clone(n.slots[i])
	if child != nil && child.Parent() == n && child.slot == i {
		// moving within the list
		cur = slices.DeleteFunc(cur, func(c *Node) bool { return c == child })
	}
	if j < 0 || j > len(cur) {
		panic(invariantf("Insert", "%s slot %q: index %d out of range", n.kind, slot, j))
	}
	n.SetChildren(slot, slices.Insert(cur, j, child))
	return n
}

// Detach removes n from its parent. A required single slot left empty is
// a hole; see Validate.
func (n *Node) Detach() *Node {
	p := n.Parent()
	if p == nil {
		n.clearParent()
		return n
	}
	i := n.slot
	j := slices.Index(p.slots[i], n)
	p.slots[i] = slices.Delete(p.slots[i], j, j+1)
	if len(p.slots[i]) == 0 {
		p.slots[i] = nil
	}
	n.clearParent()
	if debug.Connect() {
		debug.Logf("detach %s from %s.%s\n", n.kind, p.kind, info(p.kind).def.Slots[i].Name)
	}
	return n
}

func (n *Node) checkAttach(op string, sd SlotDef, child *Node) {
	if !sd.Accepts.Accepts(child.kind.Roles()) {
		panic(invariantf(op, "%s slot %q accepts %s, not %s (%s)",
			n.kind, sd.Name, sd.Accepts, child.kind, child.kind.Roles()))
	}
	for a := n; a != nil; a = a.Parent() {
		if a == child {
			panic(invariantf(op, "attaching %s under itself", child.kind))
		}
	}
}

func kindOf(n *Node) any {
	if n == nil {
		return "nil"
	}
	return n.kind
}
