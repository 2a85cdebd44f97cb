package main

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/outtree/encode"
	"github.com/signadot/outtree/format"
	"github.com/signadot/outtree/tmpl"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch needs a patch and a file", cli.ErrUsage)
	}
	pd, err := readFile(cc, args[0])
	if err != nil {
		return err
	}
	tree, err := loadFile(cc, args[1])
	if err != nil {
		return err
	}
	res, err := applyPatch(tree, pd)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if !cfg.Data {
		return encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...)
	}
	f := format.YAMLFormat
	if cfg.JSON {
		f = format.JSONFormat
	}
	out, err := tmpl.MarshalData(res, f)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(out)
	return err
}

// applyPatch applies the JSON patch document pd, in yaml or json, to the
// encoded form of tree and decodes the result.
func applyPatch(tree *tmpl.Node, pd []byte) (*tmpl.Node, error) {
	pj, err := yaml.YAMLToJSON(pd)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(pj)
	if err != nil {
		return nil, err
	}
	doc, err := tmpl.EncodeData(tree)
	if err != nil {
		return nil, err
	}
	dj, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dj, err = ops.Apply(dj)
	if err != nil {
		return nil, err
	}
	return loadBytes("patched", dj)
}
