package funlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		expect []Node
	}{
		{
			[]Token{
				{TokenKeyword, "fun"},
				{TokenIdentifier, "main"},
				{TokenOpenParentheses, "("},
				{TokenCloseParentheses, ")"},
				{TokenOpenCurly, "{"},
				{TokenCloseCurly, "}"},
			},
			[]Node{
				&FuncDecl{
					Name: "main",
				},
			},
		},
		{
			[]Token{
				{TokenTerminator, ";"},
				{TokenTerminator, ";"},
			},
			nil,
		},
		{
			[]Token{
				{TokenKeyword, "fun"},
				{TokenIdentifier, "add"},
				{TokenOpenParentheses, "("},
				{TokenIdentifier, "a"},
				{TokenIdentifier, "b"},
				{TokenCloseParentheses, ")"},
				{TokenOpenCurly, "{"},
				{TokenTerminator, ";"},
				{TokenIdentifier, "a"},
				{TokenPlus, "+"},
				{TokenIdentifier, "b"},
				{TokenTerminator, ";"},
				{TokenCloseCurly, "}"},
			},
			[]Node{
				&FuncDecl{
					Name:   "add",
					Params: []string{"a", "b"},
					Body: []Node{
						&BinaryExpr{
							Operation: BinaryAddition,
							Op1:       &VariableExpr{"a"},
							Op2:       &VariableExpr{"b"},
						},
					},
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "foo"},
				{TokenOpenParentheses, "("},
				{TokenCloseParentheses, ")"},
			},
			[]Node{
				&CallExpr{
					Name: "foo",
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "foo"},
				{TokenOpenParentheses, "("},
				{TokenNumber, "1"},
				{TokenPlus, "+"},
				{TokenNumber, "2"},
				{TokenIdentifier, "x"},
				{TokenCloseParentheses, ")"},
			},
			[]Node{
				&CallExpr{
					Name: "foo",
					Args: []Node{
						&BinaryExpr{
							BinaryAddition,
							&NumberExpr{1},
							&NumberExpr{2},
						},
						&VariableExpr{"x"},
					},
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "x"},
				{TokenAssign, "="},
				{TokenNumber, "5"},
				{TokenTerminator, ";"},
				{TokenIdentifier, "x"},
				{TokenPlus, "+"},
				{TokenNumber, "1"},
				{TokenTerminator, ";"},
			},
			[]Node{
				&BinaryExpr{BinaryAssignment, &VariableExpr{"x"}, &NumberExpr{5}},
				&BinaryExpr{BinaryAddition, &VariableExpr{"x"}, &NumberExpr{1}},
			},
		},
		{
			[]Token{
				{TokenOpenParentheses, "("},
				{TokenNumber, "1"},
				{TokenPlus, "+"},
				{TokenNumber, "3"},
				{TokenCloseParentheses, ")"},
				{TokenMulti, "*"},
				{TokenNumber, "2"},
			},
			[]Node{
				&BinaryExpr{
					Operation: BinaryMultiplication,
					Op1: &BinaryExpr{
						Operation: BinaryAddition,
						Op1:       &NumberExpr{1},
						Op2:       &NumberExpr{3},
					},
					Op2: &NumberExpr{2},
				},
			},
		},
	}

	for _, c := range cases {
		got, err := Parse(c.data)
		require.NoError(t, err)

		assert.Equal(t, c.expect, got)
	}
}

func TestParserPrecedence(t *testing.T) {
	num := func(v int64) Node { return &NumberExpr{v} }
	bin := func(op BinaryOp, l, r Node) Node { return &BinaryExpr{op, l, r} }

	cases := []struct {
		src    string
		expect Node
	}{
		{"1+2*3;", bin("+", num(1), bin("*", num(2), num(3)))},
		{"1-2-3;", bin("-", bin("-", num(1), num(2)), num(3))},
		{"1*2+3;", bin("+", bin("*", num(1), num(2)), num(3))},
		{"8/4/2;", bin("/", bin("/", num(8), num(4)), num(2))},
		{"1+2*3*4;", bin("+", num(1), bin("*", bin("*", num(2), num(3)), num(4)))},
		{"1+2*3-4;", bin("-", bin("+", num(1), bin("*", num(2), num(3))), num(4))},
		{"1*(2+3);", bin("*", num(1), bin("+", num(2), num(3)))},
		{"x=1+2;", bin("+", bin("=", &VariableExpr{"x"}, num(1)), num(2))},
		{"1+x=2;", bin("+", num(1), bin("=", &VariableExpr{"x"}, num(2)))},
		{"y=x*x;", bin("*", bin("=", &VariableExpr{"y"}, &VariableExpr{"x"}), &VariableExpr{"x"})},
		{"((7));", num(7)},
	}

	for _, c := range cases {
		got, err := Parse(Tokenize(c.src))
		require.NoError(t, err, c.src)

		assert.Equal(t, []Node{c.expect}, got, c.src)
	}
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		src      string
		tok      Token
		expected string
	}{
		{"fun (a){}", Token{TokenOpenParentheses, "("}, "function name"},
		{"fun f a){}", Token{TokenIdentifier, "a"}, "'(' after function name"},
		{"fun f(a 1){}", Token{TokenNumber, "1"}, "parameter name or ')'"},
		{"fun f()a;", Token{TokenIdentifier, "a"}, "'{' to open function body"},
		{"fun f(){a;", Token{TokenEOF, ""}, "'}' to close function body"},
		{"fun f(){fun g(){}}", Token{TokenKeyword, "fun"}, "expression"},
		{"(1+2;", Token{TokenTerminator, ";"}, "closing parenthesis"},
		{"f(1 2", Token{TokenEOF, ""}, "')' to close call to f"},
		{"1+;", Token{TokenTerminator, ";"}, "expression"},
		{"^;", Token{TokenCaret, "^"}, "expression"},
		{"1^2;", Token{TokenCaret, "^"}, "expression"},
		{")", Token{TokenCloseParentheses, ")"}, "expression"},
	}

	for _, c := range cases {
		_, err := Parse(Tokenize(c.src))

		var pe *ParseError
		if assert.ErrorAs(t, err, &pe, c.src) {
			assert.Equal(t, c.tok, pe.Tok, c.src)
			assert.Equal(t, c.expected, pe.Expected, c.src)
		}
	}
}

func TestParserKeepsEarlierStatements(t *testing.T) {
	nodes, err := Parse(Tokenize("1;2;)"))
	assert.Error(t, err)
	assert.Equal(t, []Node{&NumberExpr{1}, &NumberExpr{2}}, nodes)
}

func TestParserWithoutSentinel(t *testing.T) {
	nodes, err := Parse([]Token{{TokenNumber, "3"}})
	require.NoError(t, err)
	assert.Equal(t, []Node{&NumberExpr{3}}, nodes)

	nodes, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestIsIncomplete(t *testing.T) {
	_, err := Parse(Tokenize("fun f(a){a+"))
	assert.True(t, IsIncomplete(err))

	_, err = Parse(Tokenize("1+;"))
	assert.False(t, IsIncomplete(err))

	assert.False(t, IsIncomplete(nil))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(0), parseNumber("0"))
	assert.Equal(t, int64(1234), parseNumber("001234"))
	assert.Equal(t, int64(-8446744073709551616), parseNumber("10000000000000000000"))
}
