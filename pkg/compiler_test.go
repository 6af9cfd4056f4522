package funlang

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.funlang.dev/internal/test"
)

func TestReadSource(t *testing.T) {
	src, err := ReadSource(strings.NewReader("fun f(a){\na;\n}\nf(1);\n"))
	require.NoError(t, err)
	assert.Equal(t, "fun f(a){a;}f(1);", src)

	// Lines are joined without a separator
	src, err = ReadSource(strings.NewReader("ab\ncd"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", src)
}

func TestCompile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.fun")
	require.NoError(t, os.WriteFile(path, []byte("fun add(a b){\n  a+b;\n}\nadd(1 2);\n"), 0o644))

	mod, err := NewCompiler().Compile(context.Background(), path)
	require.NoError(t, err)

	assert.NotNil(t, findFunc(mod, "add"))
	assert.NotNil(t, findFunc(mod, toplevelName))
}

func TestCompileMissingFile(t *testing.T) {
	_, err := NewCompiler().Compile(context.Background(), filepath.Join(t.TempDir(), "missing.fun"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileSourceErrors(t *testing.T) {
	c := NewCompiler()

	_, err := c.CompileSource(context.Background(), "parse", "fun f(a{a;}")
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	_, err = c.CompileSource(context.Background(), "codegen", "f(1);")
	var ue *UndefinedError
	assert.ErrorAs(t, err, &ue)
}

func TestCompileRandomPrograms(t *testing.T) {
	c := NewCompiler()

	for i := 0; i < 20; i++ {
		src := test.GetRandomProgram(50)

		_, err := c.CompileSource(context.Background(), "random", src)
		assert.NoError(t, err, src)
	}
}

// Use a package-level variable to avoid compiler optimisation
var benchNodes []Node

func benchmarkParser(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		toks := Tokenize(test.GetRandomProgram(size))
		b.StartTimer()

		var err error
		benchNodes, err = Parse(toks)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser100(b *testing.B) {
	benchmarkParser(100, b)
}

func BenchmarkParser10000(b *testing.B) {
	benchmarkParser(10000, b)
}

func BenchmarkCompile1000(b *testing.B) {
	c := NewCompiler()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		src := test.GetRandomProgram(1000)
		b.StartTimer()

		if _, err := c.CompileSource(context.Background(), "bench", src); err != nil {
			b.Fatal(err)
		}
	}
}
