package encode

import (
	"strings"

	"github.com/signadot/outtree/token"

	"github.com/fatih/color"
)

type Colorable struct {
	Category token.Category
	Bracket  bool
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string

	// Inserted and Deleted color diff lines.
	Inserted, Deleted func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	colors.Map[Colorable{Category: token.Word}] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[Colorable{Category: token.Punctuation}] = color.RGB(196, 128, 128).SprintfFunc()
	colors.Map[Colorable{Category: token.Punctuation, Bracket: true}] = color.RGB(255, 0, 196).SprintfFunc()
	colors.Map[Colorable{Category: token.Comment}] = color.BlueString
	colors.Map[Colorable{Category: token.QuotedValue}] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[Colorable{Category: token.NumericValue}] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[Colorable{Category: token.OtherValue}] = color.RGB(168, 0, 196).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = escaped(f)
	}
	colors.Inserted = escaped(color.GreenString)
	colors.Deleted = escaped(color.RedString)
	return colors
}

func escaped(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.Replace(v, "%", "%%", -1))
	}
}

func colorDefault(v string, _ ...any) string { return v }

// Color returns the text of tok colored for its category.
func (c *Colors) Color(tok token.Token) string {
	return c.Get(tok.Category, tok.Association == token.Bracket)(tok.Text)
}

func (c *Colors) Get(cat token.Category, bracket bool) func(string, ...any) string {
	f := c.Map[Colorable{Category: cat, Bracket: bracket}]
	if f == nil {
		return c.Default
	}
	return f
}
