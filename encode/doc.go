// Package encode writes rendered IR trees as text.
//
// # Usage
//
//	// plain text
//	err := encode.Encode(module, os.Stdout)
//
//	// colorized by token category, tab indented, without comments
//	err := encode.Encode(module, os.Stdout,
//	    encode.EncodeColors(encode.NewColors()),
//	    encode.EncodeIndent("\t"),
//	    encode.EncodeComments(false))
//
//	// line diff of two renderings
//	fmt.Print(encode.Diff(encode.MustString(a), encode.MustString(b), nil))
//
// # Related Packages
//
//   - github.com/signadot/outtree/tmpl - IR and rendering
//   - github.com/signadot/outtree/token - tokens, sinks and text layout
package encode
