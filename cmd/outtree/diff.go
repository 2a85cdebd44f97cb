package main

import (
	"fmt"
	"io"

	"github.com/signadot/outtree/encode"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff needs 2 files", cli.ErrUsage)
	}
	a, err := loadFile(cc, args[0])
	if err != nil {
		return err
	}
	b, err := loadFile(cc, args[1])
	if err != nil {
		return err
	}
	var colors *encode.Colors
	if cfg.colors(cc.Out) {
		colors = encode.NewColors()
	}
	d := encode.Diff(encode.MustString(a), encode.MustString(b), colors)
	if d == "" {
		return nil
	}
	if _, err := io.WriteString(cc.Out, d); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
