// Package token defines the categorized output tokens produced when IR
// trees are rendered, and the sinks that receive them.
//
// # Tokens
//
// A Token has text, a lexical Category and an Association. Space tokens
// (OneSpace, NewLine) are structural markers for whatever lays the tokens
// out; they are not literal characters.
//
// # Sinks
//
// Rendering writes to a Sink. Tokens collects a slice, and Writer lays tokens
// out as text with minimal spacing and curly-bracket indentation:
//
//	var toks token.Tokens
//	tmpl.Render(module, &toks)
//	fmt.Print(toks.String())
//
// Target-specific escaping and code style are the concern of downstream
// printers, which classify tokens by Category.
package token
