package tmpl

import (
	"errors"
	"fmt"
)

// Validate reports every structural problem under root: empty required
// slots, children whose parent link does not point back, and children
// lacking the role of their slot. Each error wraps ErrInvalidTree.
func Validate(root *Node) error {
	var errs []error
	_ = root.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		ki := info(n.kind)
		for i, sd := range ki.def.Slots {
			if sd.Arity == Required && len(n.slots[i]) == 0 {
				errs = append(errs, fmt.Errorf("%w: %s: %s slot %q is empty", ErrInvalidTree, n.Path(), n.kind, sd.Name))
			}
			for _, c := range n.slots[i] {
				if c.slot != i || c.parent != n {
					errs = append(errs, fmt.Errorf("%w: %s: %s in slot %q has a stale parent", ErrInvalidTree, n.Path(), c.kind, sd.Name))
				}
				if !sd.Accepts.Accepts(c.kind.Roles()) {
					errs = append(errs, fmt.Errorf("%w: %s: slot %q accepts %s, has %s", ErrInvalidTree, n.Path(), sd.Name, sd.Accepts, c.kind))
				}
			}
		}
		return true, nil
	})
	return errors.Join(errs...)
}

// GarbageNodes returns every Garbage node under root in depth first order.
func GarbageNodes(root *Node) []*Node {
	var res []*Node
	_ = root.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost && n.kind == Garbage {
			res = append(res, n)
		}
		return true, nil
	})
	return res
}
