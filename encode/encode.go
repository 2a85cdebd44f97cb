package encode

import (
	"io"

	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/token"
)

type EncState struct {
	indent       string
	dropComments bool

	Color func(token.Token) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode renders e and writes it to w.
func Encode(e tmpl.Element, w io.Writer, opts ...EncodeOption) error {
	var toks token.Tokens
	tmpl.Render(e, &toks)
	return EncodeTokens(toks, w, opts...)
}

// EncodeTokens lays toks out on w. Output ends with a newline if the
// last token is followed by a line break.
func EncodeTokens(toks token.Tokens, w io.Writer, opts ...EncodeOption) error {
	return encodeTokens(toks, w, newEncState(opts), nil)
}

// encodeTokens writes toks, calling onToken with the index in toks and the
// output offset of each token written.
func encodeTokens(toks token.Tokens, w io.Writer, es *EncState, onToken func(i, offset int)) error {
	wOpts := []token.WriterOption{token.Indent(es.indent)}
	if es.Color != nil {
		wOpts = append(wOpts, token.Colorize(es.Color))
	}
	cur := 0
	if onToken != nil {
		wOpts = append(wOpts, token.OnToken(func(offset int, _ token.Token) {
			onToken(cur, offset)
		}))
	}
	tw := token.NewWriter(w, wOpts...)
	var prev token.Token
	skipLine := false
	for i, tok := range toks {
		if es.dropComments {
			if tok.Category == token.Comment {
				// a comment on its own line takes its line break with it
				skipLine = prev.IsNewLine()
				continue
			}
			if skipLine && tok.IsNewLine() {
				skipLine = false
				continue
			}
			skipLine = false
		}
		prev = tok
		cur = i
		tw.Emit(tok)
		if tw.Err() != nil {
			break
		}
	}
	return tw.Flush()
}
