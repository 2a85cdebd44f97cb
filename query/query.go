// Package query selects nodes of an IR tree with boolean expressions.
//
// Expressions are written in the expr language and evaluated once per node
// against an Env:
//
//	Kind == "CallExpression" && Within("TypeDeclaration")
//	Has("Statement") && Depth > 3
//	Kind == "Id" && Name startsWith "tmp"
package query

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/outtree/debug"
	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/types"
	"github.com/signadot/outtree/value"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrQuery = errors.New("query error")

// Env is what a query sees of one node.
type Env struct {
	// Kind is the node kind name.
	Kind string
	// Depth is the number of ancestors.
	Depth int
	// Slot is the parent slot holding the node, "" at the root.
	Slot string
	// Index is the position in a list slot, 0 in a single slot and -1 at
	// the root.
	Index int
	// Parent is the parent's kind name, "" at the root.
	Parent string
	// Name is the spelling of an Id, or of the Id in the node's "name" or
	// "id" slot.
	Name string
	// Children is the number of children.
	Children int

	node *tmpl.Node
}

// Has reports whether the node's kind has the named role.
func (e Env) Has(role string) bool {
	r, ok := tmpl.ParseRole(role)
	return ok && e.node.Kind().Is(r)
}

// Within reports whether some ancestor has the named kind.
func (e Env) Within(kind string) bool {
	k, ok := tmpl.ParseKind(kind)
	if !ok {
		return false
	}
	for a := range tmpl.Ancestors(e.node) {
		if a.Kind() == k {
			return true
		}
	}
	return false
}

// Text returns the node rendered as text.
func (e Env) Text() string {
	return e.node.String()
}

// Path returns the node's path from the root.
func (e Env) Path() string {
	return e.node.Path()
}

// Attr returns the text of the named attribute, or "" if the node has no
// such attribute or it is unset.
func (e Env) Attr(attr string) string {
	def := e.node.Kind().Def()
	if !slices.ContainsFunc(def.Attrs, func(a tmpl.AttrDef) bool { return a.Name == attr }) {
		return ""
	}
	switch v := e.node.Attr(attr).(type) {
	case string:
		return v
	case name.Resolved:
		return v.String()
	case name.Target:
		return string(v)
	case value.Value:
		var toks token.Tokens
		v.RenderTo(&toks)
		return toks.String()
	case types.Type2:
		return types.KeyOf(v)
	case *tmpl.Data:
		return v.String()
	}
	return ""
}

// EnvOf returns the Env of n.
func EnvOf(n *tmpl.Node) Env {
	env := Env{
		Kind:     n.Kind().String(),
		Depth:    n.Depth(),
		Slot:     n.ParentSlot(),
		Index:    n.Index(),
		Children: n.ChildCount(),
		Name:     nameOf(n),
		node:     n,
	}
	if p := n.Parent(); p != nil {
		env.Parent = p.Kind().String()
	}
	return env
}

func nameOf(n *tmpl.Node) string {
	if n.Kind() == tmpl.Id {
		return name.Spell(tmpl.AttrOf[name.Resolved](n, "name"), tmpl.AttrOf[name.Target](n, "target"))
	}
	for _, sd := range n.Kind().Def().Slots {
		if sd.Arity == tmpl.Many || (sd.Name != "name" && sd.Name != "id") {
			continue
		}
		if c := n.Child(sd.Name); c != nil && c.Kind() == tmpl.Id {
			return nameOf(c)
		}
	}
	return ""
}

// Query is a compiled query expression.
type Query struct {
	src string
	prg *vm.Program
}

// Compile compiles a boolean query expression.
func Compile(where string) (*Query, error) {
	prg, err := expr.Compile(where, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &Query{src: where, prg: prg}, nil
}

func (q *Query) String() string { return q.src }

// Match evaluates q on n.
func (q *Query) Match(n *tmpl.Node) (bool, error) {
	res, err := expr.Run(q.prg, EnvOf(n))
	if err != nil {
		return false, fmt.Errorf("%w: %s at %s: %w", ErrQuery, q.src, n.Path(), err)
	}
	b, _ := res.(bool)
	if debug.Query() {
		debug.Logf("query %q on %s: %t\n", q.src, n.Path(), b)
	}
	return b, nil
}

// Select returns every node under root, root included, that q matches, in
// depth first order.
func (q *Query) Select(root *tmpl.Node) ([]*tmpl.Node, error) {
	var res []*tmpl.Node
	err := root.Visit(func(n *tmpl.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		ok, err := q.Match(n)
		if err != nil {
			return false, err
		}
		if ok {
			res = append(res, n)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
