package main

import (
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Y     bool `cli:"name=y aliases=yaml desc='read and write documents as yaml'"`
	Color bool `cli:"name=color desc='force color output'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "docmod").
		WithSynopsis("docmod [opts] command [opts]").
		WithDescription("docmod applies update expressions to documents.").
		WithOpts(opts...).
		WithSubs(
			ApplyCommand(cfg),
			LogCommand(cfg),
			OpsCommand(cfg))
}

type ApplyConfig struct {
	*MainConfig
	Log     bool `cli:"name=log desc='also print the replication delta'"`
	Diff    bool `cli:"name=diff desc='print a diff of the change instead of the result'"`
	Matched string

	Apply *cli.Command
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "m",
		Aliases:     []string{"matched"},
		Description: "value to bind to a positional ($) path segment",
		Type: cli.NamedFuncOpt(func(_ *cli.Context, v string) (any, error) {
			cfg.Matched = v
			return v, nil
		}, "(field)"),
	})
	cmd := cli.NewCommand("apply").
		WithAliases("a").
		WithSynopsis("apply [opts] <update-expr> <file>").
		WithDescription("apply an update expression to a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}

type LogConfig struct {
	*MainConfig
	Matched string

	Log *cli.Command
}

func LogCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LogConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "m",
		Aliases:     []string{"matched"},
		Description: "value to bind to a positional ($) path segment",
		Type: cli.NamedFuncOpt(func(_ *cli.Context, v string) (any, error) {
			cfg.Matched = v
			return v, nil
		}, "(field)"),
	})
	cmd := cli.NewCommand("log").
		WithAliases("l").
		WithSynopsis("log [opts] <update-expr> <file>").
		WithDescription("print the replication delta of an update without the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return logCmd(cfg, cc, args)
		})
	cfg.Log = cmd
	return cmd
}

func OpsCommand(mainCfg *MainConfig) *cli.Command {
	return cli.NewCommand("ops").
		WithSynopsis("ops").
		WithDescription("list available update operators").
		WithRun(func(cc *cli.Context, args []string) error {
			return ops(cc)
		})
}
