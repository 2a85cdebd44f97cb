package tmpl

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path returns the location of n from its root, such as
// "$.body[1].params.formals[0]". Single slots are fields; list slots are
// fields followed by an index.
func (n *Node) Path() string {
	p := n.Parent()
	if p == nil {
		return "$"
	}
	sd := info(p.kind).def.Slots[n.slot]
	res := p.Path() + "." + sd.Name
	if sd.Arity == Many {
		res += "[" + strconv.Itoa(n.Index()) + "]"
	}
	return res
}

// NodePath is a parsed node path.
type NodePath struct {
	Slot     string
	Index    *int
	IndexAll bool
	Next     *NodePath
}

func (p *NodePath) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for x := p; x != nil; x = x.Next {
		if x.Slot == "" {
			continue
		}
		buf.WriteString("." + x.Slot)
		switch {
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// ParsePath parses a node path. The root path is "$".
func ParsePath(p string) (*NodePath, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("path %q should start with '$'", p)
	}
	root := &NodePath{}
	cur := root
	rest := p[1:]
	for len(rest) > 0 {
		if rest[0] != '.' {
			return nil, fmt.Errorf("path %q: expected '.' at %q", p, rest)
		}
		rest = rest[1:]
		i := strings.IndexAny(rest, ".[")
		if i == -1 {
			i = len(rest)
		}
		if i == 0 {
			return nil, fmt.Errorf("path %q: empty slot name", p)
		}
		next := &NodePath{Slot: rest[:i]}
		rest = rest[i:]
		if len(rest) > 0 && rest[0] == '[' {
			j := strings.IndexByte(rest, ']')
			if j == -1 {
				return nil, fmt.Errorf("path %q: expected '[' <index> ']'", p)
			}
			is := rest[1:j]
			if is == "*" {
				next.IndexAll = true
			} else {
				u, err := strconv.ParseUint(is, 10, 31)
				if err != nil {
					return nil, fmt.Errorf("path %q: %w", p, err)
				}
				idx := int(u)
				next.Index = &idx
			}
			rest = rest[j+1:]
		}
		cur.Next = next
		cur = next
	}
	return root, nil
}

// GetPath returns the node at path p below n, or nil if there is none.
func (n *Node) GetPath(p string) (*Node, error) {
	np, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	for x := np; x != nil; x = x.Next {
		if x.IndexAll {
			return nil, fmt.Errorf("any index [*] in get")
		}
	}
	res, err := n.listPath(nil, np.Next)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res[0], nil
}

// ListPath appends to dst the nodes matching p below n.
func (n *Node) ListPath(dst []*Node, p string) ([]*Node, error) {
	np, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return n.listPath(dst, np.Next)
}

func (n *Node) listPath(dst []*Node, p *NodePath) ([]*Node, error) {
	if p == nil {
		return append(dst, n), nil
	}
	ki := info(n.kind)
	i, ok := ki.slotIndex[p.Slot]
	if !ok {
		return nil, fmt.Errorf("%s has no slot %q", n.kind, p.Slot)
	}
	many := ki.def.Slots[i].Arity == Many
	if !many && (p.Index != nil || p.IndexAll) {
		return nil, fmt.Errorf("%s slot %q is not a list", n.kind, p.Slot)
	}
	if many && p.Index == nil && !p.IndexAll {
		return nil, fmt.Errorf("%s slot %q is a list and needs an index", n.kind, p.Slot)
	}
	var err error
	for j, c := range n.slots[i] {
		if p.Index != nil && *p.Index != j {
			continue
		}
		dst, err = c.listPath(dst, p.Next)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}
