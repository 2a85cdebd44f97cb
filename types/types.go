// Package types declares the type-system values attached to IR nodes.
// The IR treats them as opaque: only their Key takes part in equality and
// hashing.
package types

// Type2 is the type of an expression.
type Type2 interface {
	Key() string
}

// Signature2 is the signature of a callable.
type Signature2 interface {
	Key() string
}

// TypeShape describes the members of a declared type.
type TypeShape interface {
	Key() string
}

// Named is a Type2, Signature2 and TypeShape identified by its text. It is
// what documents decode to when types are given by key.
type Named string

func (n Named) Key() string    { return string(n) }
func (n Named) String() string { return string(n) }

// KeyOf returns k.Key(), or "" if k is nil.
func KeyOf(k interface{ Key() string }) string {
	if k == nil {
		return ""
	}
	return k.Key()
}
