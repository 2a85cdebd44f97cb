package tmpl

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/signadot/outtree/token"
)

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
		d, err := k.MarshalText()
		require.NoError(t, err)
		var back Kind
		require.NoError(t, back.UnmarshalText(d))
		require.Equal(t, k, back)
	}
	var k Kind
	if err := k.UnmarshalText([]byte("Nope")); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

// populate builds a node of kind k with every required slot filled and
// the selectors of mask present.
func populate(k Kind, mask uint) *Node {
	n := newNode(k, token.NoPos)
	ki := info(k)
	for i, sd := range ki.def.Slots {
		sel := slices.Index(ki.selectors, i)
		switch {
		case sel >= 0 && mask&(1<<uint(sel)) == 0:
			continue
		case sel < 0 && sd.Arity != Required:
			continue
		}
		if sd.Arity == Many {
			n.SetChildren(sd.Name, []*Node{sample(sd.Accepts), sample(sd.Accepts)})
		} else {
			n.SetChild(sd.Name, sample(sd.Accepts))
		}
	}
	return n
}

func TestSelectionExhaustive(t *testing.T) {
	for _, k := range Kinds() {
		if k.IsLeaf() {
			if k.Template(0) != nil || k.Alternative(0) != -1 {
				t.Errorf("%s: leaf has a template", k)
			}
			continue
		}
		t.Run(k.String(), func(t *testing.T) {
			ki := info(k)
			def := k.Def()
			sels := k.Selectors()
			for mask := range uint(1) << uint(len(sels)) {
				ai := k.Alternative(mask)
				require.GreaterOrEqual(t, ai, 0)
				require.NotNil(t, k.Template(mask))
				for _, req := range def.Alts[ai].Requires {
					bit := slices.Index(sels, req)
					require.NotEqual(t, uint(0), mask&(1<<uint(bit)), "mask %b selects %q requiring %s", mask, def.Alts[ai].Format, req)
				}
				// no earlier alternative also applies
				for _, earlier := range def.Alts[:ai] {
					applies := true
					for _, req := range earlier.Requires {
						if mask&(1<<uint(slices.Index(sels, req))) == 0 {
							applies = false
						}
					}
					require.False(t, applies, "mask %b: %q precedes %q", mask, earlier.Format, def.Alts[ai].Format)
				}
				n := populate(k, mask)
				_, got := ki.choose(n)
				require.Equal(t, mask, got)

				want := MustParseFormat(def.Alts[ai].Format)
				if diff := cmp.Diff(templateTexts(n, want), texts(n)); diff != "" {
					t.Errorf("mask %b (-template +render):\n%s", mask, diff)
				}
			}
		})
	}
}

func templateTexts(e Element, tp Template) []string {
	var toks token.Tokens
	RenderTemplate(e, tp, &toks)
	return toks.Texts()
}

func TestSelectorsAreOptional(t *testing.T) {
	for _, k := range Kinds() {
		def := k.Def()
		for _, s := range k.Selectors() {
			i := slices.IndexFunc(def.Slots, func(sd SlotDef) bool { return sd.Name == s })
			require.GreaterOrEqual(t, i, 0)
			require.NotEqual(t, Required, def.Slots[i].Arity, "%s selector %s", k, s)
		}
	}
}

func TestKindSelectors(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{TypeDeclaration, []string{"supertypes", "members"}},
		{LocalDeclaration, []string{"type", "init"}},
		{ModuleFunctionDeclaration, []string{"typeParams", "result"}},
		{Parameters, []string{"formals", "rest"}},
		{Reference, []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.kind.Selectors()); diff != "" {
			t.Errorf("%s selectors (-want +got):\n%s", tt.kind, diff)
		}
	}
}

func TestRoles(t *testing.T) {
	require.True(t, CallExpression.Is(RoleExpression|RoleHandled|RoleSubject|RoleActual))
	require.False(t, Id.Is(RoleExpression))
	require.True(t, Garbage.Is(RoleStatement|RoleExpression|RoleType|RoleCallable|RoleTopLevel))
	require.Equal(t, "Name", RoleName.String())
	require.Equal(t, "Expression|Statement", (RoleExpression | RoleStatement).String())
	require.Equal(t, "none", Role(0).String())
	require.True(t, (RoleExpression | RoleType).Accepts(RoleType))
	require.False(t, RoleType.Accepts(RoleExpression))
}

func TestEmptyAlternative(t *testing.T) {
	for _, k := range []Kind{Module, ModuleSet} {
		tp := k.Template(0)
		require.NotNil(t, tp, k.String())
		require.Equal(t, "", tp.String())
		var toks token.Tokens
		RenderTemplate(NewBlock(), tp, &toks)
		require.Empty(t, toks)
	}
	require.Equal(t, "", RenderString(NewModuleSet("lib")))
}
