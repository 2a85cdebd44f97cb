package tmpl

import (
	"strconv"
	"strings"

	"github.com/signadot/outtree/debug"
	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/value"
)

// Render emits the tokens of e to s. Rendering performs no I/O of its own
// and is deterministic. Empty required slots render nothing.
//
// If s is a token.PosSink, it is told the span of every node with a known
// position around that node's tokens.
func Render(e Element, s token.Sink) {
	r := newRenderer(s)
	r.element(e)
}

// RenderTemplate renders t with e supplying the substitutions. It panics
// with an *InvariantError if t refers to a slot e does not have or
// substitutes a slot with the wrong arity.
func RenderTemplate(e Element, t Template, s token.Sink) {
	r := newRenderer(s)
	r.template(e, t)
}

// RenderString renders e as plain text with a token.Writer.
func RenderString(e Element) string {
	var toks token.Tokens
	Render(e, &toks)
	return toks.String()
}

type renderer struct {
	sink  token.Sink
	pos   token.PosSink
	depth int
}

func newRenderer(s token.Sink) *renderer {
	r := &renderer{sink: s}
	r.pos, _ = s.(token.PosSink)
	return r
}

func (r *renderer) element(e Element) {
	if p := e.Pos(); r.pos != nil && p.IsKnown() {
		r.pos.Enter(p)
		defer r.pos.Leave(p)
	}
	ki := info(e.Kind())
	if ki.def.Leaf {
		if debug.Render() {
			debug.Logf("%srender leaf %s\n", strings.Repeat(" ", r.depth), ki.def.Name)
		}
		renderLeaf(e, r.sink)
		return
	}
	t, mask := ki.choose(e)
	if debug.Select() {
		debug.Logf("%sselect %s %s -> %q\n", strings.Repeat(" ", r.depth), ki.def.Name, ki.maskString(mask), t.String())
	}
	r.depth++
	r.template(e, t)
	r.depth--
}

func (r *renderer) template(e Element, t Template) {
	switch x := t.(type) {
	case Literal:
		r.sink.Emit(x.Token)
	case spacing:
		r.sink.Emit(x.tok)
	case Concat:
		for _, sub := range x {
			r.template(e, sub)
		}
	case One:
		i := r.index(e, x.Index)
		if info(e.Kind()).def.Slots[i].Arity == Many {
			panic(invariantf("render", "%s: single substitution {{%d}} of a list", e.Kind(), x.Index))
		}
		if e.slotLen(i) != 0 {
			r.element(e.slotAt(i, 0))
		}
	case Group:
		i := r.index(e, x.Index)
		if info(e.Kind()).def.Slots[i].Arity != Many {
			panic(invariantf("render", "%s: group substitution {{%d*}} of a single slot", e.Kind(), x.Index))
		}
		for j := range e.slotLen(i) {
			if j > 0 && x.Sep != nil {
				r.template(e, x.Sep)
			}
			r.element(e.slotAt(i, j))
		}
	default:
		panic(invariantf("render", "unknown template %T", t))
	}
}

func (r *renderer) index(e Element, idx int) int {
	i, ok := resolveIndex(idx, len(info(e.Kind()).def.Slots))
	if !ok {
		panic(invariantf("render", "%s: substitution index %d out of range", e.Kind(), idx))
	}
	return i
}

func renderLeaf(e Element, s token.Sink) {
	switch e.Kind() {
	case Id:
		s.Emit(token.Token{
			Text:     name.Spell(AttrOf[name.Resolved](e, "name"), AttrOf[name.Target](e, "target")),
			Category: token.Word,
		})
	case ValueLiteral:
		v := AttrOf[value.Value](e, "value")
		if v == nil {
			v = value.Null{}
		}
		v.RenderTo(s)
	case Operator:
		text := AttrOf[string](e, "text")
		if text == "" {
			return
		}
		tok := token.Guess(text)
		if tok.Category != token.Word {
			tok = token.Token{Text: text, Category: token.Punctuation}
		}
		s.Emit(tok)
	case Diagnostic:
		msg := strings.ReplaceAll(AttrOf[string](e, "message"), "*/", "* /")
		s.Emit(token.Token{Text: "/* " + msg + " */", Category: token.Comment})
	case EmbeddedComment:
		for i, line := range strings.Split(AttrOf[string](e, "text"), "\n") {
			if i > 0 {
				s.Emit(token.NewLine)
			}
			text := "//"
			if line != "" {
				text += " " + line
			}
			s.Emit(token.Token{Text: text, Category: token.Comment})
		}
	case ModulePath:
		target := AttrOf[string](e, "module")
		text := target
		if n, ok := e.(*Node); ok && n.Parent() != nil {
			if rel, err := RelativeModulePath(n, target); err == nil {
				text = rel
			}
		}
		s.Emit(token.Token{Text: strconv.Quote(text), Category: token.QuotedValue})
	case DeclarationMetadata:
		s.Emit(token.Token{Text: "@", Category: token.Punctuation})
		s.Emit(token.Token{Text: AttrOf[string](e, "key"), Category: token.Word})
		if v := AttrOf[*Data](e, "value"); v != nil {
			s.Emit(token.Token{Text: "(", Category: token.Punctuation, Association: token.Bracket})
			Render(v, s)
			s.Emit(token.Token{Text: ")", Category: token.Punctuation, Association: token.Bracket})
		}
		s.Emit(token.NewLine)
	default:
		panic(invariantf("render", "no leaf renderer for %s", e.Kind()))
	}
}
