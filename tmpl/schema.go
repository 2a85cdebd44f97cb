package tmpl

import (
	"fmt"
	"slices"
)

// maxSelectors bounds the selection table of one kind to 2^maxSelectors
// entries.
const maxSelectors = 8

// kindInfo is the compiled form of a KindDef.
type kindInfo struct {
	def       *KindDef
	kind      Kind
	slotIndex map[string]int
	attrIndex map[string]int
	// selectors are the slot indices whose presence chooses a template;
	// bit i of a mask is selectors[i].
	selectors []int
	alts      []Template
	// table maps a presence mask to an index in alts.
	table []int
}

var kinds [kindCount]*kindInfo

func init() {
	for i := range grammar {
		kinds[i] = compile(Kind(i))
	}
}

func info(k Kind) *kindInfo {
	if k >= kindCount {
		panic(invariantf("kind", "no kind %d", k))
	}
	return kinds[k]
}

func compile(k Kind) *kindInfo {
	def := &grammar[k]
	ki := &kindInfo{
		def:       def,
		kind:      k,
		slotIndex: make(map[string]int, len(def.Slots)),
		attrIndex: make(map[string]int, len(def.Attrs)),
	}
	fail := func(format string, args ...any) {
		panic(invariantf("grammar", "%s: %s", def.Name, fmt.Sprintf(format, args...)))
	}
	if def.Name == "" {
		panic(invariantf("grammar", "kind %d has no name", k))
	}
	for i, s := range def.Slots {
		if _, dup := ki.slotIndex[s.Name]; dup {
			fail("duplicate slot %q", s.Name)
		}
		if s.Accepts == 0 {
			fail("slot %q accepts no role", s.Name)
		}
		ki.slotIndex[s.Name] = i
	}
	for i, a := range def.Attrs {
		if _, dup := ki.attrIndex[a.Name]; dup {
			fail("duplicate attribute %q", a.Name)
		}
		if _, clash := ki.slotIndex[a.Name]; clash {
			fail("attribute %q shadows a slot", a.Name)
		}
		ki.attrIndex[a.Name] = i
	}
	if def.Leaf {
		if len(def.Slots) != 0 || len(def.Alts) != 0 {
			fail("leaf kinds have neither slots nor templates")
		}
		return ki
	}
	if len(def.Alts) == 0 {
		fail("no templates")
	}
	for _, alt := range def.Alts {
		for _, req := range alt.Requires {
			si, ok := ki.slotIndex[req]
			if !ok {
				fail("template %q requires unknown slot %q", alt.Format, req)
			}
			if def.Slots[si].Arity == Required {
				fail("template %q requires slot %q, which is always present", alt.Format, req)
			}
			if !slices.Contains(ki.selectors, si) {
				ki.selectors = append(ki.selectors, si)
			}
		}
		t, err := ParseFormat(alt.Format)
		if err != nil {
			fail("%v", err)
		}
		ki.checkIndices(t, fail)
		ki.alts = append(ki.alts, t)
	}
	if len(ki.selectors) > maxSelectors {
		fail("%d selectors", len(ki.selectors))
	}
	ki.buildTable(fail)
	return ki
}

func (ki *kindInfo) checkIndices(t Template, fail func(string, ...any)) {
	n := len(ki.def.Slots)
	walkTemplate(t, func(sub Template) {
		switch x := sub.(type) {
		case One:
			i, ok := resolveIndex(x.Index, n)
			if !ok {
				fail("substitution index %d out of range", x.Index)
			}
			if ki.def.Slots[i].Arity == Many {
				fail("single substitution of list slot %q", ki.def.Slots[i].Name)
			}
		case Group:
			i, ok := resolveIndex(x.Index, n)
			if !ok {
				fail("group index %d out of range", x.Index)
			}
			if ki.def.Slots[i].Arity != Many {
				fail("group substitution of single slot %q", ki.def.Slots[i].Name)
			}
		}
	})
}

// buildTable assigns to each presence mask the first alternative whose
// requirements it satisfies.
func (ki *kindInfo) buildTable(fail func(string, ...any)) {
	req := make([]uint, len(ki.alts))
	for ai, alt := range ki.def.Alts {
		for _, name := range alt.Requires {
			si := ki.slotIndex[name]
			req[ai] |= 1 << uint(slices.Index(ki.selectors, si))
		}
	}
	size := 1 << uint(len(ki.selectors))
	ki.table = make([]int, size)
	used := make([]bool, len(ki.alts))
	for mask := range size {
		ki.table[mask] = -1
		for ai, r := range req {
			if uint(mask)&r == r {
				ki.table[mask] = ai
				used[ai] = true
				break
			}
		}
		if ki.table[mask] < 0 {
			fail("no template for presence of %s", ki.maskString(uint(mask)))
		}
	}
	for ai, u := range used {
		if !u {
			fail("template %q is never selected", ki.def.Alts[ai].Format)
		}
	}
}

func (ki *kindInfo) maskString(mask uint) string {
	if mask == 0 {
		return "nothing"
	}
	var names []string
	for i, si := range ki.selectors {
		if mask&(1<<uint(i)) != 0 {
			names = append(names, ki.def.Slots[si].Name)
		}
	}
	return fmt.Sprint(names)
}

func resolveIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// slot returns the index of the named slot.
func (ki *kindInfo) slot(op, name string) int {
	i, ok := ki.slotIndex[name]
	if !ok {
		panic(invariantf(op, "%s has no slot %q", ki.def.Name, name))
	}
	return i
}

// attr returns the index of the named attribute.
func (ki *kindInfo) attr(op, name string) int {
	i, ok := ki.attrIndex[name]
	if !ok {
		panic(invariantf(op, "%s has no attribute %q", ki.def.Name, name))
	}
	return i
}

// Def returns the grammar entry of k.
func (k Kind) Def() KindDef {
	return *info(k).def
}

// Selectors returns the names of the slots whose presence selects the
// template of k, in mask bit order.
func (k Kind) Selectors() []string {
	ki := info(k)
	res := make([]string, len(ki.selectors))
	for i, si := range ki.selectors {
		res[i] = ki.def.Slots[si].Name
	}
	return res
}

// Template returns the template k selects for a presence mask over its
// Selectors. It returns nil for leaf kinds.
func (k Kind) Template(mask uint) Template {
	ki := info(k)
	if ki.def.Leaf {
		return nil
	}
	if mask >= uint(len(ki.table)) {
		panic(invariantf("template", "%s: mask %b out of range", ki.def.Name, mask))
	}
	return ki.alts[ki.table[mask]]
}

// Alternative returns the index in Def().Alts chosen for mask, or -1 for
// leaf kinds.
func (k Kind) Alternative(mask uint) int {
	ki := info(k)
	if ki.def.Leaf {
		return -1
	}
	return ki.table[mask]
}

// IsLeaf reports whether k renders itself rather than through a template.
func (k Kind) IsLeaf() bool {
	return grammar[k].Leaf
}

// choose returns the template chosen by the populated slots of e.
func (ki *kindInfo) choose(e Element) (Template, uint) {
	var mask uint
	for i, si := range ki.selectors {
		if e.slotLen(si) > 0 {
			mask |= 1 << uint(i)
		}
	}
	return ki.alts[ki.table[mask]], mask
}
