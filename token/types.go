package token

import (
	"fmt"
	"strings"
)

// Category is the lexical category of an output token.
type Category int

const (
	Word Category = iota
	Punctuation
	Comment
	QuotedValue
	NumericValue
	OtherValue
	// Space tokens are structural markers (a space or a line break), not text.
	Space
)

func (c Category) String() string {
	s, ok := map[Category]string{
		Word:         "Word",
		Punctuation:  "Punctuation",
		Comment:      "Comment",
		QuotedValue:  "QuotedValue",
		NumericValue: "NumericValue",
		OtherValue:   "OtherValue",
		Space:        "Space",
	}[c]
	if ok {
		return s
	}
	return "<unknown category>"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(d []byte) error {
	cc, ok := map[string]Category{
		"Word":         Word,
		"Punctuation":  Punctuation,
		"Comment":      Comment,
		"QuotedValue":  QuotedValue,
		"NumericValue": NumericValue,
		"OtherValue":   OtherValue,
		"Space":        Space,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized category %q", d)
	}
	*c = cc
	return nil
}

// IsValue reports whether tokens of the category read as a word or value,
// so that two of them in a row need separating.
func (c Category) IsValue() bool {
	switch c {
	case Word, QuotedValue, NumericValue, OtherValue:
		return true
	}
	return false
}

// Association relates a token to its neighbours for downstream formatters.
type Association int

const (
	Unknown Association = iota
	// Bracket marks an opening or closing bracket that pairs with another.
	Bracket
)

func (a Association) String() string {
	switch a {
	case Unknown:
		return "Unknown"
	case Bracket:
		return "Bracket"
	}
	return "<unknown association>"
}

// Token is one output token.
type Token struct {
	Text        string
	Category    Category
	Association Association
}

var (
	OneSpace = Token{Text: " ", Category: Space}
	NewLine  = Token{Text: "\n", Category: Space}
)

func (t Token) String() string {
	if t.Association == Bracket {
		return fmt.Sprintf("%s(%s) %q", t.Category, t.Association, t.Text)
	}
	return fmt.Sprintf("%s %q", t.Category, t.Text)
}

func (t Token) IsSpace() bool   { return t.Category == Space }
func (t Token) IsNewLine() bool { return t.Category == Space && strings.ContainsRune(t.Text, '\n') }

const (
	openers = "([{<"
	closers = ")]}>"
)

// Opens reports whether t is an opening bracket.
func (t Token) Opens() bool {
	return t.Association == Bracket && len(t.Text) == 1 && strings.Contains(openers, t.Text)
}

// Closes reports whether t is a closing bracket.
func (t Token) Closes() bool {
	return t.Association == Bracket && len(t.Text) == 1 && strings.Contains(closers, t.Text)
}

// Partner returns the bracket text that pairs with t, or "".
func (t Token) Partner() string {
	if t.Association != Bracket || len(t.Text) != 1 {
		return ""
	}
	if i := strings.Index(openers, t.Text); i >= 0 {
		return closers[i : i+1]
	}
	if i := strings.Index(closers, t.Text); i >= 0 {
		return openers[i : i+1]
	}
	return ""
}
