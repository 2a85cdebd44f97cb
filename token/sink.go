package token

import (
	"bytes"
	"io"
	"strings"
)

// Sink receives the tokens of a rendering. It is the only output boundary
// of the IR.
type Sink interface {
	Emit(Token)
}

// PosSink is a Sink that is also told the source span of each positioned
// node as rendering enters and leaves it. Tokens emitted between Enter and
// the matching Leave come from that node or its descendants.
type PosSink interface {
	Sink
	Enter(Pos)
	Leave(Pos)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Token)

func (f SinkFunc) Emit(t Token) { f(t) }

// Tokens is a Sink collecting tokens in order.
type Tokens []Token

func (ts *Tokens) Emit(t Token) {
	*ts = append(*ts, t)
}

// Texts returns the text of every non-space token.
func (ts Tokens) Texts() []string {
	res := make([]string, 0, len(ts))
	for _, t := range ts {
		if t.IsSpace() {
			continue
		}
		res = append(res, t.Text)
	}
	return res
}

// String lays the tokens out with a default Writer.
func (ts Tokens) String() string {
	buf := bytes.NewBuffer(nil)
	w := NewWriter(buf)
	for _, t := range ts {
		w.Emit(t)
	}
	w.Flush()
	return buf.String()
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// Indent sets the indentation unit written per open curly bracket.
func Indent(s string) WriterOption {
	return func(w *Writer) { w.indent = s }
}

// Colorize sets a function applied to the text of every non-space token.
func Colorize(f func(Token) string) WriterOption {
	return func(w *Writer) { w.color = f }
}

// OnToken sets a callback invoked with the absolute output offset at which
// each non-space token starts.
func OnToken(f func(offset int, tok Token)) WriterOption {
	return func(w *Writer) { w.onToken = f }
}

// Writer is a Sink that lays tokens out as text on an io.Writer.
//
// Layout is minimal: space markers become at most one space, line breaks
// are written as is followed by indentation for each enclosing '{', and two
// adjacent word or value tokens are always separated. The first write error
// is retained and returned by Err and Flush; later tokens are dropped.
type Writer struct {
	w       io.Writer
	indent  string
	color   func(Token) string
	onToken func(int, Token)

	offset       int
	depth        int
	pendingSpace bool
	pendingLines int
	last         Token
	started      bool
	err          error
}

func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	res := &Writer{
		w:      w,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Offset returns the number of bytes written so far.
func (tw *Writer) Offset() int {
	return tw.offset
}

// Err returns the first write error.
func (tw *Writer) Err() error {
	return tw.err
}

func (tw *Writer) Emit(tok Token) {
	if tw.err != nil {
		return
	}
	if tok.IsSpace() {
		if tok.IsNewLine() {
			tw.pendingLines += strings.Count(tok.Text, "\n")
			tw.pendingSpace = false
			return
		}
		if tw.started && tw.pendingLines == 0 {
			tw.pendingSpace = true
		}
		return
	}
	if tok.Closes() && tok.Text == "}" && tw.depth > 0 {
		tw.depth--
	}
	var sb strings.Builder
	switch {
	case tw.pendingLines > 0 && tw.started:
		// blank lines are kept but never more than one in a row
		sb.WriteString(strings.Repeat("\n", min(tw.pendingLines, 2)))
		sb.WriteString(strings.Repeat(tw.indent, tw.depth))
	case tw.pendingSpace && tw.started:
		sb.WriteByte(' ')
	case tw.started && tw.needsSeparation(tok):
		sb.WriteByte(' ')
	}
	tw.pendingLines = 0
	tw.pendingSpace = false
	tw.write(sb.String())
	if tw.onToken != nil {
		tw.onToken(tw.offset, tok)
	}
	text := tok.Text
	if tw.color != nil {
		text = tw.color(tok)
	}
	tw.write(text)
	tw.last = tok
	tw.started = true
	if tok.Opens() && tok.Text == "{" {
		tw.depth++
	}
}

func (tw *Writer) needsSeparation(tok Token) bool {
	if tw.last.Category.IsValue() && tok.Category.IsValue() {
		return true
	}
	return tok.Category == Comment
}

// Flush terminates the last line and returns the first write error.
func (tw *Writer) Flush() error {
	if tw.err == nil && tw.started && tw.pendingLines > 0 {
		tw.write("\n")
	}
	tw.pendingLines = 0
	return tw.err
}

func (tw *Writer) write(s string) {
	if s == "" || tw.err != nil {
		return
	}
	n, err := io.WriteString(tw.w, s)
	tw.offset += n
	if err != nil {
		tw.err = err
	}
}
