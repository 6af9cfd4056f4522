package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/peterh/liner"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"

	"go.funlang.dev/pkg"
)

const (
	historyFile = ".funlang_history"
	promptMain  = "fun> "
	promptCont  = "...> "
)

func replAct(c *cli.Command) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	g := funlang.NewGenerator()

	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		case ":ir":
			fmt.Print(g.Module())
			continue
		}

		ln.AppendHistory(src)

		if err := eval(g, src); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}

// readStatement reads lines until they parse or fail for a reason other
// than running out of input.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() != 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if err != nil {
			// io.EOF or liner.ErrPromptAborted
			return "", false
		}

		b.WriteString(line)

		if strings.HasPrefix(strings.TrimSpace(b.String()), ":") {
			return b.String(), true
		}

		if _, err := funlang.Parse(funlang.Tokenize(b.String())); !funlang.IsIncomplete(err) {
			return b.String(), true
		}
	}
}

func eval(g *funlang.Generator, src string) error {
	nodes, err := funlang.NewCompiler().Parse(src)
	if err != nil {
		return err
	}

	for _, n := range nodes {
		v, err := g.Node(n)
		if err != nil {
			return errors.Wrap(err, "codegen")
		}

		switch v := v.(type) {
		case *ir.Func:
			fmt.Println(v.LLString())
		case *constant.Int:
			fmt.Println("=>", v.X)
		default:
			g.Module()
			fmt.Println(g.Toplevel().LLString())
		}
	}

	return nil
}
