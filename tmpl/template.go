package tmpl

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/signadot/outtree/token"
)

// Template describes how a node renders to tokens. Templates are immutable
// values; those parsed from format strings are interned.
type Template interface {
	// String returns the template in format string syntax.
	String() string
	isTemplate()
}

// Literal emits one token.
type Literal struct {
	Token token.Token
}

// One renders the child in slot Index. Negative indices count from the end.
type One struct {
	Index int
}

// Group renders the children of list slot Index with Sep between
// consecutive children.
type Group struct {
	Index int
	Sep   Template
}

// Concat renders each template in order.
type Concat []Template

type spacing struct {
	tok token.Token
}

var (
	// NewLine is a line break marker.
	NewLine Template = spacing{tok: token.NewLine}
	// Space is a space marker.
	Space Template = spacing{tok: token.OneSpace}
	// Empty renders nothing.
	Empty Template = Concat{}
)

func (Literal) isTemplate() {}
func (One) isTemplate()     {}
func (Group) isTemplate()   {}
func (Concat) isTemplate()  {}
func (spacing) isTemplate() {}

func (t Literal) String() string {
	if t.Token.Text == "{" || t.Token.Text == "}" || t.Token.Text == `\` {
		return `\` + t.Token.Text
	}
	return t.Token.Text
}

func (t One) String() string { return "{{" + strconv.Itoa(t.Index) + "}}" }

func (t Group) String() string {
	sep := ""
	if t.Sep != nil {
		sep = t.Sep.String()
	}
	return "{{" + strconv.Itoa(t.Index) + "*:" + sep + "}}"
}

func (t Concat) String() string {
	var sb strings.Builder
	for _, sub := range t {
		sb.WriteString(sub.String())
	}
	return sb.String()
}

func (t spacing) String() string {
	if t.tok.IsNewLine() {
		return "\n"
	}
	return " "
}

var (
	formatMu    sync.Mutex
	formatCache = map[string]Template{}
)

// ParseFormat parses a format string into a Template.
//
// The syntax is:
//
//	{{i}}        render the child in slot i
//	{{i*:SEP}}   render list slot i, SEP (itself a format) between items
//	\n, newline  a line break marker
//	space, "\ "  a space marker; runs of spaces collapse
//	\{, \}, \\   literal curly brackets and backslash
//
// Any other text is split into tokens at whitespace, at the atoms
// "(){}[]" and wherever word characters meet punctuation; a quoted string
// is one token. Each token is categorized with token.Guess and matching
// angle brackets are paired as brackets.
//
// Results are interned: parsing the same format twice returns the same
// Template.
func ParseFormat(format string) (Template, error) {
	formatMu.Lock()
	defer formatMu.Unlock()
	if t, ok := formatCache[format]; ok {
		return t, nil
	}
	p := &formatParser{src: format}
	items, err := p.parse(false)
	if err != nil {
		return nil, err
	}
	t := finish(items)
	formatCache[format] = t
	return t, nil
}

// MustParseFormat is like ParseFormat but panics on error.
func MustParseFormat(format string) Template {
	t, err := ParseFormat(format)
	if err != nil {
		panic(err)
	}
	return t
}

type FormatError struct {
	Format string
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %q at %d: %s", e.Format, e.Offset, e.Msg)
}

type formatParser struct {
	src string
	i   int
}

func (p *formatParser) errorf(format string, args ...any) error {
	return &FormatError{Format: p.src, Offset: p.i, Msg: fmt.Sprintf(format, args...)}
}

const (
	atoms  = "(){}[]"
	quotes = "\"'`"
)

// wordClass reports whether c continues a word or number run begun by
// run. A '.' continues a number.
func wordClass(run string, c byte) bool {
	switch {
	case c == '_' || c == '$' || c >= 0x80:
		return true
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '.':
		return run != "" && '0' <= run[0] && run[0] <= '9'
	}
	return false
}

func atomLen(s string) int {
	if s != "" && strings.IndexByte(atoms, s[0]) >= 0 {
		return 1
	}
	return 0
}

// parse reads items until the end of input or, in a separator, until "}}".
func (p *formatParser) parse(inSep bool) ([]Template, error) {
	var items []Template
	var lit strings.Builder
	flush := func() {
		if lit.Len() == 0 {
			return
		}
		items = append(items, Literal{Token: token.Guess(lit.String())})
		lit.Reset()
	}
	addSpace := func(t Template) {
		flush()
		if t == Space && len(items) > 0 && items[len(items)-1] == Space {
			return
		}
		items = append(items, t)
	}
	for p.i < len(p.src) {
		rest := p.src[p.i:]
		switch {
		case strings.HasPrefix(rest, "}}") && inSep:
			flush()
			return items, nil
		case strings.HasPrefix(rest, "{{"):
			if inSep {
				return nil, p.errorf("substitution in separator")
			}
			flush()
			p.i += 2
			sub, err := p.substitution()
			if err != nil {
				return nil, err
			}
			items = append(items, sub)
			continue
		case rest[0] == '\\':
			if len(rest) < 2 {
				return nil, p.errorf("trailing backslash")
			}
			switch rest[1] {
			case 'n':
				addSpace(NewLine)
			case ' ':
				addSpace(Space)
			case '{', '}', '\\':
				flush()
				items = append(items, Literal{Token: token.Guess(rest[1:2])})
			default:
				return nil, p.errorf("unknown escape %q", rest[:2])
			}
			p.i += 2
			continue
		case rest[0] == '\n':
			addSpace(NewLine)
		case rest[0] == ' ' || rest[0] == '\t':
			addSpace(Space)
		case atomLen(rest) == 1:
			flush()
			items = append(items, Literal{Token: token.Guess(rest[:1])})
		case strings.IndexByte(quotes, rest[0]) >= 0:
			flush()
			j := strings.IndexByte(rest[1:], rest[0])
			if j < 0 {
				return nil, p.errorf("unterminated quote")
			}
			items = append(items, Literal{Token: token.Guess(rest[:j+2])})
			p.i += j + 2
			continue
		default:
			if lit.Len() > 0 && wordClass(lit.String(), rest[0]) != wordClass(lit.String()[:1], lit.String()[0]) {
				flush()
			}
			lit.WriteByte(rest[0])
		}
		p.i++
	}
	if inSep {
		return nil, p.errorf("unterminated substitution")
	}
	flush()
	return items, nil
}

// substitution reads what follows "{{".
func (p *formatParser) substitution() (Template, error) {
	j := p.i
	if j < len(p.src) && p.src[j] == '-' {
		j++
	}
	for j < len(p.src) && p.src[j] >= '0' && p.src[j] <= '9' {
		j++
	}
	idx, err := strconv.Atoi(p.src[p.i:j])
	if err != nil {
		return nil, p.errorf("bad substitution index %q", p.src[p.i:j])
	}
	p.i = j
	rest := p.src[p.i:]
	switch {
	case strings.HasPrefix(rest, "}}"):
		p.i += 2
		return One{Index: idx}, nil
	case strings.HasPrefix(rest, "*}}"):
		p.i += 3
		return Group{Index: idx, Sep: Empty}, nil
	case strings.HasPrefix(rest, "*:"):
		p.i += 2
		items, err := p.parse(true)
		if err != nil {
			return nil, err
		}
		p.i += 2
		return Group{Index: idx, Sep: finish(items)}, nil
	}
	return nil, p.errorf("expected }} after substitution index")
}

// finish pairs angle brackets among the literals of items and returns the
// resulting Template.
func finish(items []Template) Template {
	var toks []*token.Token
	lits := make([]Literal, len(items))
	for i, it := range items {
		if l, ok := it.(Literal); ok {
			lits[i] = l
			toks = append(toks, &lits[i].Token)
		} else {
			toks = append(toks, nil)
		}
	}
	token.PairAngles(toks)
	for i, it := range items {
		if _, ok := it.(Literal); ok {
			items[i] = lits[i]
		}
	}
	switch len(items) {
	case 0:
		return Empty
	case 1:
		return items[0]
	}
	return Concat(items)
}

// walkTemplate calls f on t and each template nested in it.
func walkTemplate(t Template, f func(Template)) {
	f(t)
	switch x := t.(type) {
	case Concat:
		for _, sub := range x {
			walkTemplate(sub, f)
		}
	case Group:
		if x.Sep != nil {
			walkTemplate(x.Sep, f)
		}
	}
}
