package tmpl

import (
	"fmt"
	"iter"
	"slices"

	"github.com/signadot/outtree/token"
)

// Data is the detached, immutable counterpart of a Node: same kind, same
// slots and attributes, no parent. Data values are compared and hashed by
// content and are safe to share between goroutines.
type Data struct {
	kind   Kind
	pos    token.Pos
	slots  [][]*Data
	attrs  []any
	hash   uint64
	hashed bool
}

func (d *Data) Kind() Kind     { return d.kind }
func (d *Data) Pos() token.Pos { return d.pos }

func (d *Data) slotLen(i int) int       { return len(d.slots[i]) }
func (d *Data) slotAt(i, j int) Element { return d.slots[i][j] }
func (d *Data) attr(i int) any          { return d.attrs[i] }

// Child returns the child in the named single slot, or nil.
func (d *Data) Child(slot string) *Data {
	ki := info(d.kind)
	i := ki.slot("Child", slot)
	if ki.def.Slots[i].Arity == Many {
		panic(invariantf("Child", "%s slot %q is a list", d.kind, slot))
	}
	if len(d.slots[i]) == 0 {
		return nil
	}
	return d.slots[i][0]
}

// Children returns a copy of the children in the named list slot.
func (d *Data) Children(slot string) []*Data {
	ki := info(d.kind)
	i := ki.slot("Children", slot)
	if ki.def.Slots[i].Arity != Many {
		panic(invariantf("Children", "%s slot %q is not a list", d.kind, slot))
	}
	return slices.Clone(d.slots[i])
}

// Attr returns the named attribute.
func (d *Data) Attr(name string) any {
	return d.attrs[info(d.kind).attr("Attr", name)]
}

// Tree returns a new detached Node tree with the content of d.
func (d *Data) Tree() *Node {
	return treeOf(d)
}

// Data returns d.
func (d *Data) Data() *Data {
	return d
}

func (d *Data) Equal(o Element) bool {
	return Equal(d, o)
}

func (d *Data) Hash() uint64 {
	return Hash(d)
}

func (d *Data) String() string {
	return RenderString(d)
}

// treeOf builds a new Node tree from e.
func treeOf(e Element) *Node {
	n := newNode(e.Kind(), e.Pos())
	for i := range n.slots {
		c := e.slotLen(i)
		if c == 0 {
			continue
		}
		n.slots[i] = make([]*Node, c)
		for j := range c {
			child := treeOf(e.slotAt(i, j))
			child.setParent(n, i)
			n.slots[i][j] = child
		}
	}
	for i := range n.attrs {
		n.attrs[i] = e.attr(i)
	}
	return n
}

// dataOf projects e to Data; Data projects to itself.
func dataOf(e Element) *Data {
	if d, ok := e.(*Data); ok {
		return d
	}
	ki := info(e.Kind())
	d := &Data{
		kind:  e.Kind(),
		pos:   e.Pos(),
		slots: make([][]*Data, len(ki.def.Slots)),
		attrs: make([]any, len(ki.def.Attrs)),
	}
	for i := range d.slots {
		c := e.slotLen(i)
		if c == 0 {
			continue
		}
		d.slots[i] = make([]*Data, c)
		for j := range c {
			d.slots[i][j] = dataOf(e.slotAt(i, j))
		}
	}
	for i := range d.attrs {
		d.attrs[i] = e.attr(i)
	}
	d.hash = hashElement(d)
	d.hashed = true
	return d
}

// DataMap maps Data keys to values by content.
// The zero value is an empty map.
type DataMap[V any] struct {
	buckets map[uint64][]dataEntry[V]
	n       int
}

type dataEntry[V any] struct {
	key *Data
	val V
}

func (m *DataMap[V]) find(k *Data) (uint64, int) {
	h := k.Hash()
	for i, e := range m.buckets[h] {
		if Equal(e.key, k) {
			return h, i
		}
	}
	return h, -1
}

// Get returns the value for a key equal to k.
func (m *DataMap[V]) Get(k *Data) (V, bool) {
	h, i := m.find(k)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.buckets[h][i].val, true
}

// Set associates v with k, replacing the value of any equal key.
func (m *DataMap[V]) Set(k *Data, v V) {
	if m.buckets == nil {
		m.buckets = map[uint64][]dataEntry[V]{}
	}
	h, i := m.find(k)
	if i >= 0 {
		m.buckets[h][i].val = v
		return
	}
	m.buckets[h] = append(m.buckets[h], dataEntry[V]{key: k, val: v})
	m.n++
}

// Delete removes the key equal to k and reports whether there was one.
func (m *DataMap[V]) Delete(k *Data) bool {
	h, i := m.find(k)
	if i < 0 {
		return false
	}
	b := slices.Delete(m.buckets[h], i, i+1)
	if len(b) == 0 {
		delete(m.buckets, h)
	} else {
		m.buckets[h] = b
	}
	m.n--
	return true
}

func (m *DataMap[V]) Len() int {
	return m.n
}

// All iterates over the entries in no particular order.
func (m *DataMap[V]) All() iter.Seq2[*Data, V] {
	return func(yield func(*Data, V) bool) {
		for _, b := range m.buckets {
			for _, e := range b {
				if !yield(e.key, e.val) {
					return
				}
			}
		}
	}
}

// Dependencies looks up declarations that live outside the tree being
// translated, keyed by the Data of their name.
type Dependencies interface {
	Resolve(id *Data) (*Data, bool)
}

// MapDependencies is a Dependencies backed by a DataMap. It must not be
// modified once shared.
type MapDependencies struct {
	defs DataMap[*Data]
}

// Define records a type declaration under its name.
func (m *MapDependencies) Define(decl Element) error {
	if decl.Kind() != TypeDeclaration {
		return fmt.Errorf("%w: cannot define a %s", ErrInvalidTree, decl.Kind())
	}
	d := dataOf(decl)
	id := d.Child("name")
	if id == nil {
		return fmt.Errorf("%w: type declaration has no name", ErrInvalidTree)
	}
	m.defs.Set(id, d)
	return nil
}

func (m *MapDependencies) Resolve(id *Data) (*Data, bool) {
	return m.defs.Get(id)
}

// ResolveType resolves the declaration named by a TypeName through deps.
func ResolveType(t Element, deps Dependencies) (*Data, bool) {
	if t.Kind() != TypeName || t.slotLen(0) == 0 {
		return nil, false
	}
	return deps.Resolve(dataOf(t.slotAt(0, 0)))
}
