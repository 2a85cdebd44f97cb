package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/outtree/tmpl"

	"github.com/scott-cotton/cli"
)

// readFile reads path, or standard input if path is "-".
func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path == "-" {
		r = cc.In
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return io.ReadAll(r)
}

// loadFile reads and validates the tree document at path.
func loadFile(cc *cli.Context, path string) (*tmpl.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	return loadBytes(path, d)
}

func loadBytes(path string, d []byte) (*tmpl.Node, error) {
	data, err := tmpl.UnmarshalData(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tree := data.Tree()
	if err := tmpl.Validate(tree); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// inputs returns args, or standard input if there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
