package main

import (
	"io"
	"os"

	"github.com/signadot/outtree/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='render with color'"`
	Indent     string `cli:"name=indent desc='indentation unit'"`
	NoComments bool   `cli:"name=nc desc='omit comments'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeComments(!cfg.NoComments),
	}
	if cfg.Indent != "" {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colors reports whether output to w is colored: if -color is given, as
// it says, otherwise if w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type RenderConfig struct {
	*MainConfig
	Jobs      int  `cli:"name=j desc='number of files rendered in parallel'"`
	SourceMap bool `cli:"name=sourcemap desc='write a source map of each rendering to <file>.map.json'"`

	Render *cli.Command
}

type TokensConfig struct {
	*MainConfig
	Spaces bool `cli:"name=s desc='include space tokens'"`

	Tokens *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Data bool `cli:"name=d desc='print the patched document instead of rendering it'"`
	JSON bool `cli:"name=json desc='print the patched document as json'"`

	Patch *cli.Command
}

type GrammarConfig struct {
	*MainConfig

	Grammar *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='query expression'"`
	Text  bool   `cli:"name=t desc='print the matching nodes rendered'"`

	Query *cli.Command
}
