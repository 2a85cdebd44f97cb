package tmpl

import (
	"errors"
	"testing"

	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/value"
)

func texts(e Element) []string {
	var toks token.Tokens
	Render(e, &toks)
	return toks.Texts()
}

func tokensOf(e Element) token.Tokens {
	var toks token.Tokens
	Render(e, &toks)
	return toks
}

// mustPanicInvariant runs f and fails unless it panics with an
// *InvariantError.
func mustPanicInvariant(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("expected an invariant violation, got %v", r)
		}
	}()
	f()
}

// sample returns a fresh node able to fill a slot accepting r.
func sample(r Role) *Node {
	switch {
	case r&roleGarbage != 0:
		return NewGarbage("")
	case r&RoleName != 0:
		return NewId("x")
	case r&RoleFormal != 0:
		return NewFormal(NewId("p"), nil)
	case r&RoleRestFormal != 0:
		return NewRestFormal(NewId("rest"), nil)
	case r&RoleTypeFormal != 0:
		return NewTypeFormal(NewId("T"))
	case r&RoleMetadata != 0:
		return NewMetadata("k", nil)
	case r&RoleImport != 0:
		return NewImport(NewId("i"), nil)
	case r&RoleModule != 0:
		return NewModule("m", "m.js", nil)
	case r&RoleParameters != 0:
		return NewParameters()
	case r&RoleBlock != 0:
		return NewBlock()
	case r&RoleOperator != 0:
		return NewOperator("+")
	case r&RoleDiagnostic != 0:
		return NewDiagnostic("d")
	case r&RoleModulePath != 0:
		return NewModulePath("m")
	}
	panic("no sample for " + r.String())
}

// sampleModules builds a module set with m1 at src/app/m1.js and m2 at
// src/lib/m2.js; m1 imports f from m2 and calls it from main.
func sampleModules() (set, m1, m2 *Node) {
	f := NewFunction(NewId("f"), NewParameters(), nil, NewBlock())
	m2 = NewModule("m2", "src/lib/m2.js", nil, f)

	call := NewExpressionStatement(NewCall(NewFnReference(NewId("f"))))
	main := NewFunction(NewId("main"), NewParameters(), nil, NewBlock(call))
	imp := NewImport(NewId("f"), NewModulePath("m2"))
	m1 = NewModule("m1", "src/app/m1.js", []*Node{imp}, main)

	set = NewModuleSet("app", m1, m2)
	return set, m1, m2
}

// nestedIf builds
//
//	{ if (c) { { x = 1; } } else { y = 2; } }
func nestedIf() *Node {
	assign := func(v string, n int64) *Node {
		return NewAssignment(Ref(v), NewValue(value.Int(n)))
	}
	inner := NewBlock(NewBlock(assign("x", 1)))
	return NewBlock(NewIf(Ref("c"), inner, NewBlock(assign("y", 2))))
}

func resolvedId(base string, uid int) *Node {
	return NewResolvedId(name.Resolved{Base: base, UID: uid}, "")
}
