package tmpl

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/types"
	"github.com/signadot/outtree/value"
)

func TestPropertyLValueEquality(t *testing.T) {
	build := func() *Node {
		return NewPropertyLValue(Ref("obj"), NewId("field"))
	}
	a, b := build(), build()
	require.NotSame(t, a, b)
	require.True(t, Equal(a, b))
	require.Equal(t, Hash(a), Hash(b))

	c := NewPropertyLValue(Ref("obj"), NewId("other"))
	require.False(t, Equal(a, c))
}

func TestEqualityIgnoresPosAndParent(t *testing.T) {
	a := NewCall(NewFnReference(NewId("f")), NewValue(value.Int(1)))
	b := NewCall(NewFnReference(NewId("f")), NewValue(value.Int(1)))
	b.SetPos(token.Pos{File: "x.src", Left: 3, Right: 9})
	b.ChildAt(0).SetPos(token.Pos{Left: 1, Right: 2})
	NewExpressionStatement(b)

	require.NotNil(t, b.Parent())
	require.True(t, Equal(a, b))
	require.Equal(t, Hash(a), Hash(b))
}

func TestEqualityAttributes(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		eq   bool
	}{
		{"int vs float", NewValue(value.Int(1)), NewValue(value.Float(1)), false},
		{"same string", NewValue(value.String("a")), NewValue(value.String("a")), true},
		{"nil vs null", NewValue(nil), NewValue(value.Null{}), false},
		{"uid", resolvedId("x", 1), resolvedId("x", 2), false},
		{"target", NewResolvedId(name.Resolved{Base: "x"}, "y"), NewId("x"), false},
		{"type key", Ref("x").SetAttr("type", types.Named("Int")), Ref("x").SetAttr("type", types.Named("Int")), true},
		{"type set vs unset", Ref("x").SetAttr("type", types.Named("Int")), Ref("x"), false},
		{"metadata value", NewMetadata("k", NewValue(value.Int(1)).Data()), NewMetadata("k", NewValue(value.Int(1)).Data()), true},
		{"metadata value differs", NewMetadata("k", NewValue(value.Int(1)).Data()), NewMetadata("k", nil), false},
		{"list lengths", NewBlock(), NewBlock(NewBlock()), false},
		{"kinds", NewBreak(nil), NewContinue(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.eq, Equal(tt.a, tt.b))
			if tt.eq {
				require.Equal(t, Hash(tt.a), Hash(tt.b))
			}
		})
	}
}

func TestTreeEqualsData(t *testing.T) {
	_, m1, _ := sampleModules()
	d := m1.Data()
	require.True(t, Equal(m1, d))
	require.True(t, Equal(d, m1))
	require.Equal(t, Hash(m1), Hash(d))
	require.Same(t, d, d.Data())

	back := d.Tree()
	require.True(t, Equal(back, m1))
	require.Nil(t, back.Parent())
	require.NoError(t, Validate(back))
}

func TestDeepCopyNestedBlock(t *testing.T) {
	orig := nestedIf()
	cp := orig.DeepCopy()
	require.True(t, Equal(orig, cp))

	leaf := func(root *Node) *Node {
		n, err := root.GetPath("$.statements[0].consequent.statements[0].statements[0].left.id")
		require.NoError(t, err)
		require.NotNil(t, n)
		return n
	}
	require.NotSame(t, leaf(orig), leaf(cp))

	leaf(cp).SetAttr("name", name.Resolved{Base: "changed"})

	require.Equal(t, "x", leaf(orig).String())
	require.Equal(t, "changed", leaf(cp).String())
	require.False(t, Equal(orig, cp))
}

func TestDeepCopyKeepsPos(t *testing.T) {
	n := NewId("x").SetPos(token.Pos{File: "a", Left: 1, Right: 2})
	require.Equal(t, n.Pos(), n.DeepCopy().Pos())
	require.Equal(t, n.Pos(), n.Data().Pos())
}

// genTree generates statement trees of bounded depth.
func genTree(depth int) gopter.Gen {
	leaf := gen.OneGenOf(
		gen.AlphaString().Map(func(s string) *Node { return NewExpressionStatement(Ref("v" + s)) }),
		gen.Int64().Map(func(i int64) *Node { return NewExpressionStatement(NewValue(value.Int(i))) }),
		gen.Const(0).Map(func(int) *Node { return NewReturn(nil) }),
	)
	if depth == 0 {
		return leaf
	}
	sub := genTree(depth - 1)
	return gen.OneGenOf(
		leaf,
		gen.SliceOfN(3, sub).Map(func(ns []*Node) *Node { return NewBlock(ns...) }),
		gen.SliceOfN(2, sub).Map(func(ns []*Node) *Node {
			return NewIf(Ref("c"), ns[0], ns[1])
		}),
	)
}

func collect(n *Node) []*Node {
	var res []*Node
	_ = n.Visit(func(c *Node, isPost bool) (bool, error) {
		if !isPost {
			res = append(res, c)
		}
		return true, nil
	})
	return res
}

func TestCopyIndependenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("copies are equal and share no nodes", prop.ForAll(
		func(n *Node) bool {
			cp := n.DeepCopy()
			if !Equal(n, cp) || Hash(n) != Hash(cp) {
				return false
			}
			orig := map[*Node]bool{}
			for _, c := range collect(n) {
				orig[c] = true
			}
			for _, c := range collect(cp) {
				if orig[c] {
					return false
				}
			}
			return Validate(cp) == nil
		},
		genTree(3),
	))

	properties.Property("mutating a copy leaves the original", prop.ForAll(
		func(n *Node) bool {
			before := n.String()
			cp := n.DeepCopy()
			for _, c := range collect(cp) {
				if c.Kind() == Id {
					c.SetAttr("name", name.Resolved{Base: "mutated"})
				}
				if c.Kind() == Block {
					c.Append("statements", NewReturn(nil))
				}
			}
			return n.String() == before
		},
		genTree(3),
	))

	properties.Property("rendering is deterministic", prop.ForAll(
		func(n *Node) bool {
			a, b := tokensOf(n), tokensOf(n)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return n.String() == n.Data().String()
		},
		genTree(3),
	))

	properties.TestingRun(t)
}
