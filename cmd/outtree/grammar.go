package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/outtree/tmpl"

	"github.com/scott-cotton/cli"
)

func grammar(cfg *GrammarConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Grammar.Parse(cc, args)
	if err != nil {
		cfg.Grammar.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		for _, k := range tmpl.Kinds() {
			fmt.Fprintf(cc.Out, "%-26s %s\n", k, k.Roles())
		}
		return nil
	}
	for i, arg := range args {
		k, ok := tmpl.ParseKind(arg)
		if !ok {
			return fmt.Errorf("%w: no kind %q", cli.ErrUsage, arg)
		}
		if i > 0 {
			fmt.Fprintln(cc.Out)
		}
		describeKind(cc.Out, k)
	}
	return nil
}

func describeKind(w io.Writer, k tmpl.Kind) {
	def := k.Def()
	fmt.Fprintf(w, "%s\n  roles: %s\n", def.Name, def.Roles)
	for _, s := range def.Slots {
		fmt.Fprintf(w, "  slot %s %s %s\n", s.Name, s.Arity, s.Accepts)
	}
	for _, a := range def.Attrs {
		fmt.Fprintf(w, "  attr %s %s\n", a.Name, a.Type)
	}
	if k.IsLeaf() {
		fmt.Fprintln(w, "  leaf")
		return
	}
	sels := k.Selectors()
	if len(sels) != 0 {
		fmt.Fprintf(w, "  selectors: %s\n", strings.Join(sels, " "))
	}
	for mask := range uint(1) << len(sels) {
		fmt.Fprintf(w, "  %0*b %d %q\n", max(len(sels), 1), mask, k.Alternative(mask), k.Template(mask))
	}
}
