package funlang

import (
	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Typ != TokenEOF {
		tokens = append(tokens, Token{Typ: TokenEOF})
	}

	return &Parser{
		tokens: tokens,
	}
}

// Parse builds the top-level nodes of a token stream. It stops at the first
// grammar violation.
func Parse(tokens []Token) ([]Node, error) {
	return NewParser(tokens).Run()
}

func (p *Parser) Run() ([]Node, error) {
	var nodes []Node

	for !p.check(TokenEOF) {
		if p.check(TokenTerminator) {
			p.next() // Empty statement
			continue
		}

		node, err := p.statement()
		if err != nil {
			return nodes, err
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

// peekAt looks n tokens ahead. The sentinel is returned past the end.
func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+n]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Typ != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.next()
	if tok.Typ != typ {
		return tok, p.unexpected(tok, what)
	}

	return tok, nil
}

func (p *Parser) unexpected(tok Token, expected string) error {
	tlog.V("parser").Printw("parse error", "tok", tok, "expected", expected, "pos", p.pos, "from", loc.Caller(1))

	return &ParseError{Tok: tok, Expected: expected}
}

func (p *Parser) statement() (Node, error) {
	if p.check(TokenKeyword) {
		return p.funcDecl()
	}

	return p.expr()
}

func (p *Parser) funcDecl() (Node, error) {
	p.next() // fun keyword

	name, err := p.expect(TokenIdentifier, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenOpenParentheses, "'(' after function name"); err != nil {
		return nil, err
	}

	var params []string
	for p.check(TokenIdentifier) {
		params = append(params, p.next().Value)
	}

	if _, err := p.expect(TokenCloseParentheses, "parameter name or ')'"); err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, errors.Wrap(err, "function %s", name.Value)
	}

	return &FuncDecl{
		Name:   name.Value,
		Params: params,
		Body:   body,
	}, nil
}

func (p *Parser) blockStmt() ([]Node, error) {
	if _, err := p.expect(TokenOpenCurly, "'{' to open function body"); err != nil {
		return nil, err
	}

	var body []Node
	for !p.check(TokenCloseCurly) {
		switch p.peek().Typ {
		case TokenEOF:
			return nil, p.unexpected(p.peek(), "'}' to close function body")
		case TokenTerminator:
			p.next()
			continue
		case TokenKeyword:
			return nil, p.unexpected(p.peek(), "expression")
		}

		stmt, err := p.expr()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	p.next() // Skip }

	return body, nil
}

func (p *Parser) expr() (Node, error) {
	lhs, err := p.primary()
	if err != nil {
		return nil, err
	}

	return p.binaryExpr(0, lhs)
}

// binaryExpr climbs operator precedence. Operators binding at least as
// tight as prec are folded into lhs from left to right; a tighter operator
// after the right operand pulls that operand into a nested climb.
func (p *Parser) binaryExpr(prec int, lhs Node) (Node, error) {
	for {
		op, opPrec := p.operator()
		if opPrec < prec {
			return lhs, nil
		}

		p.next() // Skip the operator

		rhs, err := p.primary()
		if err != nil {
			return nil, err
		}

		if _, nextPrec := p.operator(); opPrec < nextPrec {
			rhs, err = p.binaryExpr(opPrec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

// operator reports the binary operator at the cursor, with precedence -1
// for tokens that are not one.
func (p *Parser) operator() (BinaryOp, int) {
	op, ok := binaryOpTable[p.peek().Typ]
	if !ok {
		return "", -1
	}

	return op, precedenceTable[op]
}

func (p *Parser) primary() (Node, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenIdentifier:
		if p.peekAt(1).Typ == TokenOpenParentheses {
			return p.funcCall()
		}

		p.next()

		return &VariableExpr{Name: tok.Value}, nil
	case TokenNumber:
		p.next()

		return &NumberExpr{Value: parseNumber(tok.Value)}, nil
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	default:
		return nil, p.unexpected(tok, "expression")
	}
}

func (p *Parser) funcCall() (Node, error) {
	name := p.next()
	p.next() // Skip (

	var args []Node
	for !p.check(TokenCloseParentheses) {
		if p.check(TokenEOF) {
			return nil, p.unexpected(p.peek(), "')' to close call to "+name.Value)
		}

		arg, err := p.expr()
		if err != nil {
			return nil, errors.Wrap(err, "call to %s", name.Value)
		}

		args = append(args, arg)
	}

	p.next() // Skip )

	return &CallExpr{
		Name: name.Value,
		Args: args,
	}, nil
}

func (p *Parser) parenthesisedExpression() (Node, error) {
	p.next() // Skip (

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "closing parenthesis"); err != nil {
		return nil, err
	}

	return exp, nil
}

// parseNumber accumulates a digit run without range checking; values past
// int64 wrap around.
func parseNumber(digits string) int64 {
	var v int64
	for _, r := range digits {
		v = v*10 + int64(r-'0')
	}

	return v
}
