package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"go.funlang.dev/pkg"
)

func main() {
	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print the token stream of a source file",
		Action:      tokensAct,
		Args:        cli.Args{},
	}

	astCmd := &cli.Command{
		Name:        "ast",
		Description: "print the syntax tree of a source file",
		Action:      astAct,
		Args:        cli.Args{},
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "compile statements interactively",
		Action:      replAct,
	}

	app := &cli.Command{
		Name:        "funlang",
		Description: "funlang compiles a source file to LLVM IR",
		Before:      before,
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("v", "", "tlog verbosity topics (parser,codegen)"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			tokensCmd,
			astCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("v"))

	return nil
}

func rootContext() context.Context {
	return tlog.ContextWithSpan(context.Background(), tlog.Root())
}

func compileAct(c *cli.Command) error {
	if len(c.Args) != 1 {
		return errors.New("usage: funlang <file>")
	}

	mod, err := funlang.NewCompiler().Compile(rootContext(), c.Args[0])
	if err != nil {
		return errors.Wrap(err, "compile %v", c.Args[0])
	}

	fmt.Print(mod)

	return nil
}

func tokensAct(c *cli.Command) error {
	for _, a := range c.Args {
		src, err := funlang.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "%v", a)
		}

		for _, tok := range funlang.Tokenize(src) {
			fmt.Println(tok)
		}
	}

	return nil
}

func astAct(c *cli.Command) error {
	for _, a := range c.Args {
		src, err := funlang.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "%v", a)
		}

		nodes, err := funlang.NewCompiler().Parse(src)
		if err != nil {
			return errors.Wrap(err, "%v", a)
		}

		if err := funlang.Dump(os.Stdout, nodes); err != nil {
			return errors.Wrap(err, "dump")
		}
	}

	return nil
}
