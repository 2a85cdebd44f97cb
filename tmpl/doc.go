// Package tmpl is the backend intermediate representation: a typed tree of
// generated-program structure, independent of any target language, and a
// template interpreter rendering any subtree to a token stream.
//
// # Grammar
//
// The set of kinds is closed and described by one declarative table. Each
// kind has ordered child slots (single, optional or list, each accepting a
// Role), attributes (names, values, opaque types) and either a list of
// template alternatives or a leaf renderer. The slot list of a kind is at
// once its child schema, its substitution indices and the child part of its
// equality, so the three cannot disagree. The table is checked when the
// package is initialized.
//
// # Tree and Data
//
// A *Node is mutable and connected: it records its parent and the slot
// holding it, checked against the parent on every access. Children are
// changed only by SetChild, ReplaceChild, SetChildren, Append, Insert and
// Detach, which move a child
// that already has a parent and panic with an *InvariantError on cycles,
// duplicates and role mismatches.
//
// A *Data is the immutable projection of a Node, with no parent, a cached
// content hash, and value semantics; it is what DataMap keys and
// DeclarationMetadata values hold. Node.Data and Data.Tree convert between
// the two, and Equal and Hash accept both: a Node equals its projection.
//
// # Templates
//
// Templates are written as format strings, see ParseFormat:
//
//	fn({{0*:, }}) -> {{1}}
//
// Each kind's alternatives name the optional and list slots they require.
// At init every presence combination of those slots is mapped to the
// first alternative it satisfies, and a combination with no alternative
// is a startup panic.
//
// # Rendering
//
//	var toks token.Tokens
//	tmpl.Render(module, &toks)
//
// Rendering is deterministic, does no I/O, and may run concurrently on
// trees that are not being mutated.
package tmpl
