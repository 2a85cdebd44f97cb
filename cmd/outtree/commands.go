package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "outtree").
		WithSynopsis("outtree [opts] command [opts]").
		WithDescription("outtree renders, inspects and queries translated program trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return outtreeMain(cfg, cc, args)
		}).
		WithSubs(
			RenderCommand(cfg),
			TokensCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			GrammarCommand(cfg),
			QueryCommand(cfg))
}

func RenderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenderConfig{MainConfig: mainCfg, Jobs: 4}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Render, "render").
		WithAliases("r").
		WithSynopsis("render [-j n] [files]").
		WithDescription("render tree documents as text").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return render(cfg, cc, args)
		})
}

func TokensCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TokensConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tokens, "tokens").
		WithAliases("t").
		WithSynopsis("tokens [-s] [files]").
		WithDescription("print the categorized tokens of tree documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tokens(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("diff the renderings of two tree documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [opts] <patch> <file>").
		WithDescription("apply a JSON patch (RFC 6902) to a tree document and render the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func GrammarCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GrammarConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Grammar, "grammar").
		WithAliases("g").
		WithSynopsis("grammar [kinds]").
		WithDescription("list node kinds, or describe the slots, roles and templates of some").
		WithRun(func(cc *cli.Context, args []string) error {
			return grammar(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query -where <expr> [files]").
		WithDescription(queryDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return queryNodes(cfg, cc, args)
		})
}

const queryDescription = `query prints the paths of the nodes matching an expression.

The expression is evaluated on every node with the fields

  Kind      kind name
  Depth     number of ancestors
  Slot      parent slot name
  Index     position in the parent slot
  Parent    parent kind name
  Name      spelled name of a named node
  Children  number of children

and the functions Has(role), Within(kind), Attr(name), Text() and Path().

  outtree query -where 'Kind == "CallExpression" && Within("Test")' m.yaml
`
