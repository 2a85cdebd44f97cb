package main

import (
	"fmt"

	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/token"

	"github.com/scott-cotton/cli"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		cfg.Tokens.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputs(args) {
		tree, err := loadFile(cc, arg)
		if err != nil {
			return err
		}
		var toks token.Tokens
		tmpl.Render(tree, &toks)
		for _, tok := range toks {
			if tok.Category == token.Space && !cfg.Spaces {
				continue
			}
			fmt.Fprintf(cc.Out, "%-12s %q\n", tok.Category, tok.Text)
		}
	}
	return nil
}
