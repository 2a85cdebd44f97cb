package token

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGuess(t *testing.T) {
	tests := []struct {
		text string
		want Token
	}{
		{"if", Token{Text: "if", Category: Word}},
		{"_x", Token{Text: "_x", Category: Word}},
		{"$y", Token{Text: "$y", Category: Word}},
		{"12", Token{Text: "12", Category: NumericValue}},
		{"-1.5", Token{Text: "-1.5", Category: NumericValue}},
		{".5", Token{Text: ".5", Category: NumericValue}},
		{"(", Token{Text: "(", Category: Punctuation, Association: Bracket}},
		{"}", Token{Text: "}", Category: Punctuation, Association: Bracket}},
		{"<", Token{Text: "<", Category: Punctuation}},
		{"->", Token{Text: "->", Category: Punctuation}},
		{"...", Token{Text: "...", Category: Punctuation}},
		{`"s"`, Token{Text: `"s"`, Category: QuotedValue}},
		{"'c'", Token{Text: "'c'", Category: QuotedValue}},
		{"/* c */", Token{Text: "/* c */", Category: Comment}},
		{"// c", Token{Text: "// c", Category: Comment}},
		{"# c", Token{Text: "# c", Category: Comment}},
		{"#", Token{Text: "#", Category: Punctuation}},
		{"", Token{Category: OtherValue}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Guess(tt.text)); diff != "" {
			t.Errorf("Guess(%q) (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestPairAngles(t *testing.T) {
	texts := []string{"f", "<", "List", "<", "Int", ">", ">", "(", "a", ">", "b", ")", "<"}
	toks := make([]*Token, len(texts))
	for i, s := range texts {
		tok := Guess(s)
		toks[i] = &tok
	}
	PairAngles(toks)
	var paired []int
	for i, tok := range toks {
		if (tok.Text == "<" || tok.Text == ">") && tok.Association == Bracket {
			paired = append(paired, i)
		}
	}
	if diff := cmp.Diff([]int{1, 3, 5, 6}, paired); diff != "" {
		t.Errorf("paired (-want +got):\n%s", diff)
	}
	if toks[9].Association != Unknown || toks[12].Association != Unknown {
		t.Error("unmatched angle paired")
	}
}

func TestPartner(t *testing.T) {
	open := Guess("(")
	if !open.Opens() || open.Closes() || open.Partner() != ")" {
		t.Errorf("bad '(' %v", open)
	}
	lt := Guess("<")
	if lt.Opens() || lt.Partner() != "" {
		t.Errorf("unpaired '<' is a bracket")
	}
	lt.Association = Bracket
	if !lt.Opens() || lt.Partner() != ">" {
		t.Errorf("paired '<' is not a bracket")
	}
}

func word(s string) Token  { return Token{Text: s, Category: Word} }
func punct(s string) Token { return Guess(s) }

func TestWriter(t *testing.T) {
	tests := []struct {
		name string
		toks Tokens
		want string
	}{
		{
			name: "words are separated",
			toks: Tokens{word("return"), word("x"), punct(";")},
			want: "return x;",
		},
		{
			name: "values are separated",
			toks: Tokens{word("x"), {Text: "1", Category: NumericValue}, {Text: `"s"`, Category: QuotedValue}},
			want: `x 1 "s"`,
		},
		{
			name: "punctuation is not",
			toks: Tokens{word("f"), punct("("), word("a"), punct(")")},
			want: "f(a)",
		},
		{
			name: "spaces collapse",
			toks: Tokens{word("a"), OneSpace, OneSpace, punct("="), OneSpace, word("b")},
			want: "a = b",
		},
		{
			name: "leading space dropped",
			toks: Tokens{OneSpace, word("a")},
			want: "a",
		},
		{
			name: "indentation",
			toks: Tokens{
				word("if"), OneSpace, punct("{"), NewLine,
				word("a"), punct(";"), NewLine,
				punct("{"), NewLine, word("b"), punct(";"), NewLine, punct("}"), NewLine,
				punct("}"), NewLine,
			},
			want: "if {\n  a;\n  {\n    b;\n  }\n}\n",
		},
		{
			name: "blank lines capped",
			toks: Tokens{word("a"), NewLine, NewLine, NewLine, {Text: "\n\n", Category: Space}, word("b")},
			want: "a\n\nb",
		},
		{
			name: "space after a line break dropped",
			toks: Tokens{word("a"), NewLine, OneSpace, word("b")},
			want: "a\nb",
		},
		{
			name: "comments are separated",
			toks: Tokens{punct(";"), {Text: "// c", Category: Comment}},
			want: "; // c",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.toks.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriterOptions(t *testing.T) {
	var buf bytes.Buffer
	var offsets []int
	w := NewWriter(&buf,
		Indent("\t"),
		Colorize(func(tok Token) string { return "<" + tok.Text + ">" }),
		OnToken(func(off int, _ Token) { offsets = append(offsets, off) }),
	)
	for _, tok := range (Tokens{punct("{"), NewLine, word("a"), NewLine, punct("}")}) {
		w.Emit(tok)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("<{>\n\t<a>\n<}>", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 5, 9}, offsets); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
	if w.Offset() != buf.Len() {
		t.Errorf("offset %d, wrote %d", w.Offset(), buf.Len())
	}
}

type failWriter struct{ n int }

var errFull = errors.New("full")

func (f *failWriter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, errFull
	}
	f.n--
	return len(p), nil
}

func TestWriterError(t *testing.T) {
	w := NewWriter(&failWriter{n: 1})
	w.Emit(word("a"))
	w.Emit(word("b"))
	w.Emit(word("c"))
	if !errors.Is(w.Flush(), errFull) || !errors.Is(w.Err(), errFull) {
		t.Errorf("expected the write error, got %v", w.Err())
	}
}

func TestTokensTexts(t *testing.T) {
	toks := Tokens{word("a"), OneSpace, punct("+"), NewLine, word("b")}
	if diff := cmp.Diff([]string{"a", "+", "b"}, toks.Texts()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPos(t *testing.T) {
	p := Pos{File: "a", Left: 3, Right: 5}
	q := Pos{File: "a", Left: 1, Right: 4}
	if got := p.Span(q); got != (Pos{File: "a", Left: 1, Right: 5}) {
		t.Errorf("span %v", got)
	}
	if got := NoPos.Span(q); got != q {
		t.Errorf("span %v", got)
	}
	if got := p.Span(Pos{File: "b", Left: 0, Right: 1}); got != p {
		t.Errorf("span %v", got)
	}
	if NoPos.String() != "<unknown>" || p.String() != "a:3-5" || (Pos{Left: 1, Right: 2}).String() != "1-2" {
		t.Error("bad pos strings")
	}
}

func TestCategoryText(t *testing.T) {
	for c := Word; c <= Space; c++ {
		d, err := c.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Category
		if err := back.UnmarshalText(d); err != nil || back != c {
			t.Errorf("%s: got %v, %v", c, back, err)
		}
	}
}
