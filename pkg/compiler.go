package funlang

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/llir/llvm/ir"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

const maxLineSize = 16 << 20

type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(ctx context.Context, filename string) (*ir.Module, error) {
	src, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(src), "name", filename)

	return c.CompileSource(ctx, filename, src)
}

// CompileSource runs the whole pipeline on src. name only labels the logs.
func (c *Compiler) CompileSource(ctx context.Context, name, src string) (mod *ir.Module, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)
	defer tr.Finish("err", &err)

	nodes, err := c.Parse(src)
	if err != nil {
		return nil, err
	}

	tr.Printw("parsed", "nodes", len(nodes))

	mod, err = NewGenerator().Generate(nodes)
	if err != nil {
		return nil, errors.Wrap(err, "codegen")
	}

	tr.Printw("generated", "funcs", len(mod.Funcs))

	return mod, nil
}

// Parse lexes and parses src.
func (c *Compiler) Parse(src string) ([]Node, error) {
	nodes, err := Parse(Tokenize(src))
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	return nodes, nil
}

func ReadFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", errors.Wrap(err, "open file")
	}

	defer f.Close()

	src, err := ReadSource(f)
	if err != nil {
		return "", errors.Wrap(err, "read file")
	}

	return src, nil
}

// ReadSource concatenates the lines of r without separators. Statements
// must therefore end with explicit terminators.
func ReadSource(r io.Reader) (string, error) {
	var src strings.Builder

	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineSize)

	for s.Scan() {
		src.WriteString(s.Text())
	}

	if err := s.Err(); err != nil {
		return "", err
	}

	return src.String(), nil
}
