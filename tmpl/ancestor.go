package tmpl

import "iter"

// Ancestors iterates over the ancestors of n, nearest first, not including
// n.
func Ancestors(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// FindNearest returns n or its nearest ancestor satisfying pred, or nil.
func FindNearest(n *Node, pred func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	for p := range Ancestors(n) {
		if pred(p) {
			return p
		}
	}
	return nil
}

// NearestOfKind returns n or its nearest ancestor of kind k, or nil.
func NearestOfKind(n *Node, k Kind) *Node {
	return FindNearest(n, func(a *Node) bool { return a.kind == k })
}

// NearestWithRole returns n or its nearest ancestor whose kind has every
// role in r, or nil.
func NearestWithRole(n *Node, r Role) *Node {
	return FindNearest(n, func(a *Node) bool { return a.kind.Is(r) })
}

// EnclosingModule returns the nearest Module containing n, or nil.
func EnclosingModule(n *Node) *Node {
	return NearestOfKind(n, Module)
}
