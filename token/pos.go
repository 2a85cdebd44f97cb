package token

import "fmt"

// Pos is a source span carried for diagnostics. It is never interpreted by
// the IR and never takes part in equality.
type Pos struct {
	File  string `json:"file,omitempty"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}

var NoPos = Pos{}

func (p Pos) IsKnown() bool { return p != NoPos }

func (p Pos) String() string {
	if !p.IsKnown() {
		return "<unknown>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d-%d", p.Left, p.Right)
	}
	return fmt.Sprintf("%s:%d-%d", p.File, p.Left, p.Right)
}

// Span returns the smallest span covering p and q. Spans in different
// files are not merged; p is returned.
func (p Pos) Span(q Pos) Pos {
	if !p.IsKnown() {
		return q
	}
	if !q.IsKnown() || p.File != q.File {
		return p
	}
	return Pos{File: p.File, Left: min(p.Left, q.Left), Right: max(p.Right, q.Right)}
}
