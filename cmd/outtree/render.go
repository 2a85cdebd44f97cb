package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/outtree/encode"
	"github.com/signadot/outtree/tmpl"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"
)

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		cfg.Render.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	args = inputs(args)
	if cfg.SourceMap && args[0] == "-" {
		return fmt.Errorf("%w: -sourcemap needs file arguments", cli.ErrUsage)
	}
	opts := cfg.encOpts(cc.Out)
	bufs := make([]bytes.Buffer, len(args))

	var g errgroup.Group
	if cfg.Jobs > 0 {
		g.SetLimit(cfg.Jobs)
	}
	for i, arg := range args {
		g.Go(func() error {
			tree, err := loadFile(cc, arg)
			if err != nil {
				return err
			}
			if !cfg.SourceMap {
				return encode.Encode(tree, &bufs[i], opts...)
			}
			return renderMapped(tree, arg, &bufs[i], opts)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range bufs {
		if _, err := bufs[i].WriteTo(cc.Out); err != nil {
			return err
		}
	}
	return nil
}

// renderMapped renders tree to w and writes its source map next to path.
func renderMapped(tree *tmpl.Node, path string, w io.Writer, opts []encode.EncodeOption) error {
	sm, err := encode.EncodeSourceMap(tree, w, opts...)
	if err != nil {
		return err
	}
	sm.File = path
	d, err := sm.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path+".map.json", d, 0644)
}
