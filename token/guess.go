package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Guess categorizes literal template text.
//
// Numbers are checked before words since a leading sign or digit also
// looks like part of an identifier. Single bracket characters get the
// Bracket association; '<' and '>' do not, since they are usually
// operators (see PairAngles).
func Guess(text string) Token {
	tok := Token{Text: text, Category: Punctuation}
	switch {
	case text == "":
		tok.Category = OtherValue
	case looksLikeNumber(text):
		tok.Category = NumericValue
	case looksLikeWord(text):
		tok.Category = Word
	case len(text) == 1 && strings.Contains("()[]{}", text):
		tok.Association = Bracket
	case looksLikeString(text):
		tok.Category = QuotedValue
	case looksLikeComment(text):
		tok.Category = Comment
	}
	return tok
}

// PairAngles gives the Bracket association to each '<' that has a later
// matching '>' in toks. Unpaired angles are left as punctuation.
func PairAngles(toks []*Token) {
	for i, t := range toks {
		if t == nil || t.Text != "<" || t.Association != Unknown {
			continue
		}
		depth := 0
		for j := i + 1; j < len(toks); j++ {
			u := toks[j]
			if u == nil {
				continue
			}
			if u.Text == "<" && u.Association == Unknown {
				depth++
				continue
			}
			if u.Text != ">" || u.Association != Unknown {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			t.Association = Bracket
			u.Association = Bracket
			break
		}
	}
}

func looksLikeNumber(s string) bool {
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func looksLikeWord(s string) bool {
	i := 0
	for i < len(s) && (s[i] == '_' || s[i] == '-' || s[i] == '$') {
		i++
	}
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func looksLikeString(s string) bool {
	if len(s) < 2 {
		return false
	}
	switch s[0] {
	case '"', '\'', '`':
		return s[len(s)-1] == s[0]
	}
	return false
}

func looksLikeComment(s string) bool {
	switch {
	case strings.HasPrefix(s, "/*"), strings.HasPrefix(s, "//"):
		return true
	case strings.HasPrefix(s, "#"):
		return strings.Contains(s, " ")
	}
	return false
}
