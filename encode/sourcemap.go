package encode

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/token"
)

// SourceMap relates spans of an encoded output to the source positions of
// the nodes that produced them.
type SourceMap struct {
	File     string    `json:"file,omitempty"`
	Mappings []Mapping `json:"mappings"`
}

// Mapping says that the output starting at Offset, up to the next
// mapping, was produced by the innermost positioned node spanning Pos.
// Line and Column are zero based; Column counts bytes. Output with no
// known position maps to token.NoPos.
type Mapping struct {
	Offset int       `json:"offset"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Pos    token.Pos `json:"pos"`
}

// JSON returns the indented json form of sm.
func (sm *SourceMap) JSON() ([]byte, error) {
	return json.MarshalIndent(sm, "", "  ")
}

// EncodeSourceMap is Encode, also returning a source map of what it wrote.
// Offsets count bytes written, so colors, if any, shift them.
func EncodeSourceMap(e tmpl.Element, w io.Writer, opts ...EncodeOption) (*SourceMap, error) {
	var ps posTokens
	tmpl.Render(e, &ps)

	var buf bytes.Buffer
	sm := &SourceMap{}
	last := token.Pos{Left: -1}
	err := encodeTokens(ps.toks, &buf, newEncState(opts), func(i, offset int) {
		p := ps.pos[i]
		if p == last {
			return
		}
		last = p
		sm.Mappings = append(sm.Mappings, Mapping{Offset: offset, Pos: p})
	})
	if err != nil {
		return nil, err
	}
	out := buf.Bytes()
	line, lineStart, at := 0, 0, 0
	for i := range sm.Mappings {
		m := &sm.Mappings[i]
		for ; at < m.Offset; at++ {
			if out[at] == '\n' {
				line++
				lineStart = at + 1
			}
		}
		m.Line = line
		m.Column = m.Offset - lineStart
	}
	if _, err := w.Write(out); err != nil {
		return nil, err
	}
	return sm, nil
}

// posTokens collects tokens with the innermost enclosing position of each.
type posTokens struct {
	toks  token.Tokens
	pos   []token.Pos
	stack []token.Pos
}

func (s *posTokens) Emit(t token.Token) {
	p := token.NoPos
	if n := len(s.stack); n > 0 {
		p = s.stack[n-1]
	}
	s.toks = append(s.toks, t)
	s.pos = append(s.pos, p)
}

func (s *posTokens) Enter(p token.Pos) {
	s.stack = append(s.stack, p)
}

func (s *posTokens) Leave(token.Pos) {
	s.stack = s.stack[:len(s.stack)-1]
}
