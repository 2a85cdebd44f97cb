package tmpl

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/signadot/outtree/debug"
	"github.com/signadot/outtree/format"
	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/types"
	"github.com/signadot/outtree/value"
)

// A Data document is a mapping
//
//	kind: CallExpression
//	pos: {file: a.src, left: 3, right: 9}
//	attrs: {type: Int}
//	slots:
//	  fn: {kind: FnReference, slots: {id: {kind: Id, attrs: {name: f}}}}
//	  args: [...]
//
// Single slots hold a document, list slots a sequence of documents. Absent
// attributes and slots are zero. Names are a string base or a mapping
// {base, uid}; types are their keys; floats are {float: text}.

// MarshalData encodes d in format f.
func MarshalData(d Element, f format.Format) ([]byte, error) {
	doc, err := EncodeData(d)
	if err != nil {
		return nil, err
	}
	if f.IsJSON() {
		res, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		return append(res, '\n'), nil
	}
	res, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return res, nil
}

// UnmarshalData decodes a YAML or JSON document.
func UnmarshalData(b []byte) (*Data, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return DecodeData(doc)
}

// EncodeData returns the document of e as maps, slices and scalars.
func EncodeData(e Element) (map[string]any, error) {
	ki := info(e.Kind())
	res := map[string]any{"kind": ki.def.Name}
	if p := e.Pos(); p.IsKnown() {
		pos := map[string]any{"left": p.Left, "right": p.Right}
		if p.File != "" {
			pos["file"] = p.File
		}
		res["pos"] = pos
	}
	attrs := map[string]any{}
	for i, def := range ki.def.Attrs {
		v, ok, err := encodeAttr(def, e.attr(i))
		if err != nil {
			return nil, fmt.Errorf("%s attribute %q: %w", ki.def.Name, def.Name, err)
		}
		if ok {
			attrs[def.Name] = v
		}
	}
	if len(attrs) != 0 {
		res["attrs"] = attrs
	}
	slots := map[string]any{}
	for i, sd := range ki.def.Slots {
		n := e.slotLen(i)
		if n == 0 {
			continue
		}
		if sd.Arity != Many {
			c, err := EncodeData(e.slotAt(i, 0))
			if err != nil {
				return nil, err
			}
			slots[sd.Name] = c
			continue
		}
		list := make([]any, n)
		for j := range n {
			c, err := EncodeData(e.slotAt(i, j))
			if err != nil {
				return nil, err
			}
			list[j] = c
		}
		slots[sd.Name] = list
	}
	if len(slots) != 0 {
		res["slots"] = slots
	}
	return res, nil
}

func encodeAttr(def AttrDef, v any) (any, bool, error) {
	switch def.Type {
	case AttrString:
		s, _ := v.(string)
		return s, s != "", nil
	case AttrName:
		r, _ := v.(name.Resolved)
		if r.UID == 0 {
			return r.Base, !r.IsZero(), nil
		}
		return map[string]any{"base": r.Base, "uid": r.UID}, true, nil
	case AttrTarget:
		t, _ := v.(name.Target)
		return string(t), t != "", nil
	case AttrValue:
		x, _ := v.(value.Value)
		if x == nil {
			return nil, false, nil
		}
		if f, ok := x.(value.Float); ok {
			return map[string]any{"float": strconv.FormatFloat(float64(f), 'g', -1, 64)}, true, nil
		}
		raw, err := value.Raw(x)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		return raw, true, nil
	case AttrData:
		d, _ := v.(*Data)
		if d == nil {
			return nil, false, nil
		}
		doc, err := EncodeData(d)
		return doc, err == nil, err
	}
	k, _ := v.(keyed)
	if k == nil {
		return nil, false, nil
	}
	return k.Key(), true, nil
}

// DecodeData builds Data from a decoded document.
func DecodeData(doc any) (*Data, error) {
	n, err := decodeNode(doc, "$")
	if err != nil {
		return nil, err
	}
	return n.Data(), nil
}

// DecodeTree builds a new detached Node tree from a decoded document.
func DecodeTree(doc any) (*Node, error) {
	return decodeNode(doc, "$")
}

func decodeNode(doc any, at string) (*Node, error) {
	m, ok := asMap(doc)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected a mapping, got %T", ErrDecode, at, doc)
	}
	ks, _ := m["kind"].(string)
	k, ok := ParseKind(ks)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unrecognized kind %q", ErrDecode, at, ks)
	}
	for key := range m {
		switch key {
		case "kind", "pos", "attrs", "slots":
		default:
			return nil, fmt.Errorf("%w: %s: unknown key %q", ErrDecode, at, key)
		}
	}
	ki := info(k)
	pos, err := decodePos(m["pos"], at)
	if err != nil {
		return nil, err
	}
	n := newNode(k, pos)
	if debug.Decode() {
		debug.Logf("decode %s %s\n", at, k)
	}
	if a, present := m["attrs"]; present {
		attrs, ok := asMap(a)
		if !ok {
			return nil, fmt.Errorf("%w: %s: attrs must be a mapping", ErrDecode, at)
		}
		for key, v := range attrs {
			i, ok := ki.attrIndex[key]
			if !ok {
				return nil, fmt.Errorf("%w: %s: %s has no attribute %q", ErrDecode, at, k, key)
			}
			x, err := decodeAttr(ki.def.Attrs[i], v, at+"."+key)
			if err != nil {
				return nil, err
			}
			n.attrs[i] = x
		}
	}
	if s, present := m["slots"]; present {
		slots, ok := asMap(s)
		if !ok {
			return nil, fmt.Errorf("%w: %s: slots must be a mapping", ErrDecode, at)
		}
		for key, v := range slots {
			if err := decodeSlot(n, key, v, at); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}

func decodeSlot(n *Node, key string, v any, at string) error {
	ki := info(n.kind)
	i, ok := ki.slotIndex[key]
	if !ok {
		return fmt.Errorf("%w: %s: %s has no slot %q", ErrDecode, at, n.kind, key)
	}
	sd := ki.def.Slots[i]
	var children []*Node
	if sd.Arity == Many {
		list, ok := v.([]any)
		if !ok && v != nil {
			return fmt.Errorf("%w: %s.%s: expected a sequence", ErrDecode, at, key)
		}
		for j, item := range list {
			c, err := decodeNode(item, fmt.Sprintf("%s.%s[%d]", at, key, j))
			if err != nil {
				return err
			}
			children = append(children, c)
		}
	} else if v != nil {
		c, err := decodeNode(v, at+"."+key)
		if err != nil {
			return err
		}
		children = append(children, c)
	}
	for _, c := range children {
		if !sd.Accepts.Accepts(c.kind.Roles()) {
			return fmt.Errorf("%w: %s.%s: slot accepts %s, not %s", ErrDecode, at, key, sd.Accepts, c.kind)
		}
	}
	if sd.Arity == Many {
		n.SetChildren(key, children)
	} else if len(children) == 1 {
		n.SetChild(key, children[0])
	}
	return nil
}

func decodePos(v any, at string) (token.Pos, error) {
	if v == nil {
		return token.NoPos, nil
	}
	m, ok := asMap(v)
	if !ok {
		return token.NoPos, fmt.Errorf("%w: %s: pos must be a mapping", ErrDecode, at)
	}
	var p token.Pos
	p.File, _ = m["file"].(string)
	var err error
	if p.Left, err = asInt(m["left"]); err != nil {
		return token.NoPos, fmt.Errorf("%w: %s.pos.left: %w", ErrDecode, at, err)
	}
	if p.Right, err = asInt(m["right"]); err != nil {
		return token.NoPos, fmt.Errorf("%w: %s.pos.right: %w", ErrDecode, at, err)
	}
	return p, nil
}

func decodeAttr(def AttrDef, v any, at string) (any, error) {
	bad := func() (any, error) {
		return nil, fmt.Errorf("%w: %s: bad %s %v", ErrDecode, at, def.Type, v)
	}
	switch def.Type {
	case AttrString:
		s, ok := v.(string)
		if !ok {
			return bad()
		}
		return s, nil
	case AttrName:
		if s, ok := v.(string); ok {
			return name.Resolved{Base: s}, nil
		}
		m, ok := asMap(v)
		if !ok {
			return bad()
		}
		base, _ := m["base"].(string)
		uid, err := asInt(m["uid"])
		if err != nil {
			return bad()
		}
		return name.Resolved{Base: base, UID: uid}, nil
	case AttrTarget:
		s, ok := v.(string)
		if !ok {
			return bad()
		}
		return name.Target(s), nil
	case AttrValue:
		if m, ok := asMap(v); ok {
			s, _ := m["float"].(string)
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return bad()
			}
			return value.Float(f), nil
		}
		x, err := value.Of(normalizeNumber(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, at, err)
		}
		return x, nil
	case AttrData:
		if v == nil {
			return nil, nil
		}
		n, err := decodeNode(v, at)
		if err != nil {
			return nil, err
		}
		return n.Data(), nil
	}
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return bad()
	}
	return types.Named(s), nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		res := make(map[string]any, len(m))
		for k, x := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			res[ks] = x
		}
		return res, true
	}
	return nil, false
}

func normalizeNumber(v any) any {
	switch x := v.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case float32:
		return float64(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	}
	return v
}

func asInt(v any) (int, error) {
	switch x := normalizeNumber(v).(type) {
	case nil:
		return 0, nil
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", x)
		}
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not an integer", x)
		}
		return int(x), nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}
