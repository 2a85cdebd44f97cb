package tmpl

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/signadot/outtree/name"
)

// Equal reports whether a and b have the same kind and pairwise equal
// children and attributes. Positions and parents are ignored, and a Node
// equals its Data projection.
func Equal(a, b Element) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if da, ok := a.(*Data); ok {
		if db, ok := b.(*Data); ok {
			if da == db {
				return true
			}
			if da.hashed && db.hashed && da.hash != db.hash {
				return false
			}
		}
	}
	ki := info(a.Kind())
	for i := range ki.def.Slots {
		n := a.slotLen(i)
		if n != b.slotLen(i) {
			return false
		}
		for j := range n {
			if !Equal(a.slotAt(i, j), b.slotAt(i, j)) {
				return false
			}
		}
	}
	for i, def := range ki.def.Attrs {
		if !attrEqual(def.Type, a.attr(i), b.attr(i)) {
			return false
		}
	}
	return true
}

func isNil(e Element) bool {
	switch x := e.(type) {
	case nil:
		return true
	case *Node:
		return x == nil
	case *Data:
		return x == nil
	}
	return false
}

type keyed interface{ Key() string }

func attrEqual(t AttrType, a, b any) bool {
	switch t {
	case AttrString, AttrName, AttrTarget:
		return a == b
	case AttrData:
		da, _ := a.(*Data)
		db, _ := b.(*Data)
		if da == nil || db == nil {
			return da == nil && db == nil
		}
		return Equal(da, db)
	}
	ka, _ := a.(keyed)
	kb, _ := b.(keyed)
	if ka == nil || kb == nil {
		return ka == nil && kb == nil
	}
	return ka.Key() == kb.Key()
}

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit content hash of e, consistent with Equal. Hashes
// are stable within a process only.
func Hash(e Element) uint64 {
	if isNil(e) {
		panic(invariantf("Hash", "nil element"))
	}
	if d, ok := e.(*Data); ok && d.hashed {
		return d.hash
	}
	return hashElement(e)
}

func hashElement(e Element) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	var b [8]byte
	ki := info(e.Kind())
	h.WriteByte(byte(e.Kind()))
	for i := range ki.def.Slots {
		n := e.slotLen(i)
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		h.Write(b[:])
		for j := range n {
			binary.LittleEndian.PutUint64(b[:], Hash(e.slotAt(i, j)))
			h.Write(b[:])
		}
	}
	for i, def := range ki.def.Attrs {
		hashAttr(&h, def.Type, e.attr(i))
	}
	return h.Sum64()
}

func hashAttr(h *maphash.Hash, t AttrType, v any) {
	var b [8]byte
	switch t {
	case AttrString:
		s, _ := v.(string)
		h.WriteString(s)
	case AttrName:
		r, _ := v.(name.Resolved)
		h.WriteString(r.Base)
		binary.LittleEndian.PutUint64(b[:], uint64(r.UID))
		h.Write(b[:])
	case AttrTarget:
		s, _ := v.(name.Target)
		h.WriteString(string(s))
	case AttrData:
		d, _ := v.(*Data)
		if d == nil {
			h.WriteByte(0)
			return
		}
		h.WriteByte(1)
		binary.LittleEndian.PutUint64(b[:], Hash(d))
		h.Write(b[:])
		return
	default:
		k, _ := v.(keyed)
		if k == nil {
			h.WriteByte(0)
			return
		}
		h.WriteByte(1)
		h.WriteString(k.Key())
	}
	// terminate variable-length content
	h.WriteByte(0xff)
}
