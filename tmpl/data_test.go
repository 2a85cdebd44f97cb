package tmpl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/outtree/value"
)

func TestDataAccessors(t *testing.T) {
	_, m1, _ := sampleModules()
	d := m1.Data()
	require.Equal(t, Module, d.Kind())
	require.Equal(t, "m1", d.Attr("name"))
	require.Len(t, d.Children("imports"), 1)
	imp := d.Children("imports")[0]
	require.Equal(t, "f", imp.Child("name").String())
	require.Equal(t, "m2", imp.Child("path").Attr("module"))
	require.Nil(t, NewImport(NewId("m"), nil).Data().Child("path"))
	require.True(t, d.Equal(m1))
	require.Equal(t, Hash(m1), d.Hash())
}

func TestDataMap(t *testing.T) {
	var m DataMap[int]
	k1 := NewCall(NewFnReference(NewId("f")), NewValue(value.Int(1))).Data()
	k2 := NewCall(NewFnReference(NewId("f")), NewValue(value.Int(1))).Data()
	k3 := NewCall(NewFnReference(NewId("g"))).Data()

	_, ok := m.Get(k1)
	require.False(t, ok)
	require.False(t, m.Delete(k1))

	m.Set(k1, 1)
	m.Set(k3, 3)
	got, ok := m.Get(k2)
	require.True(t, ok)
	require.Equal(t, 1, got)

	m.Set(k2, 2)
	require.Equal(t, 2, m.Len())
	got, _ = m.Get(k1)
	require.Equal(t, 2, got)

	seen := map[string]int{}
	for k, v := range m.All() {
		seen[k.String()] = v
	}
	require.Equal(t, map[string]int{"f(1)": 2, "g()": 3}, seen)

	require.True(t, m.Delete(k1))
	require.Equal(t, 1, m.Len())
	_, ok = m.Get(k2)
	require.False(t, ok)
}

func TestResolveType(t *testing.T) {
	var deps MapDependencies
	foo := NewTypeDeclaration(NewId("Foo"), nil, NewProperty(NewId("x"), NewTypeName(NewId("Int"))))
	require.NoError(t, deps.Define(foo))

	err := deps.Define(NewId("Foo"))
	require.True(t, errors.Is(err, ErrInvalidTree))

	decl, ok := ResolveType(NewTypeName(NewId("Foo")), &deps)
	require.True(t, ok)
	require.True(t, Equal(foo, decl))

	_, ok = ResolveType(NewTypeName(NewId("Bar")), &deps)
	require.False(t, ok)
	_, ok = ResolveType(NewTopType(), &deps)
	require.False(t, ok)

	// resolution is by content, so a differently resolved name misses
	_, ok = ResolveType(NewTypeName(resolvedId("Foo", 1)), &deps)
	require.False(t, ok)
}
