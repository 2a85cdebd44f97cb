package main

import (
	"fmt"

	"github.com/signadot/outtree/encode"
	"github.com/signadot/outtree/query"

	"github.com/scott-cotton/cli"
)

func queryNodes(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Where == "" {
		return fmt.Errorf("%w: query requires -where", cli.ErrUsage)
	}
	q, err := query.Compile(cfg.Where)
	if err != nil {
		return err
	}
	args = inputs(args)
	for _, arg := range args {
		tree, err := loadFile(cc, arg)
		if err != nil {
			return err
		}
		nodes, err := q.Select(tree)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		for _, n := range nodes {
			prefix := ""
			if len(args) > 1 {
				prefix = arg + ":"
			}
			if cfg.Text {
				fmt.Fprintf(cc.Out, "%s%s\t%s\n", prefix, n.Path(), encode.MustString(n))
				continue
			}
			fmt.Fprintf(cc.Out, "%s%s\n", prefix, n.Path())
		}
	}
	return nil
}
