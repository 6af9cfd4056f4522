package funlang

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenTerminator
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenAssign
	TokenCaret

	TokenIdentifier
	TokenNumber
	TokenKeyword
)

var tokenNames = map[TokenType]string{
	TokenEOF:              "EOF",
	TokenTerminator:       "Terminator",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenOpenCurly:        "OpenCurly",
	TokenCloseCurly:       "CloseCurly",
	TokenPlus:             "Plus",
	TokenMinus:            "Minus",
	TokenMulti:            "Multi",
	TokenDiv:              "Div",
	TokenAssign:           "Assign",
	TokenCaret:            "Caret",
	TokenIdentifier:       "Identifier",
	TokenNumber:           "Number",
	TokenKeyword:          "Keyword",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

const keywordFun = "fun"

var keywordTable = map[string]TokenType{
	keywordFun: TokenKeyword,
}

var operatorTable = map[rune]TokenType{
	';': TokenTerminator,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
	'{': TokenOpenCurly,
	'}': TokenCloseCurly,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMulti,
	'/': TokenDiv,
	'=': TokenAssign,
	'^': TokenCaret,
}

type Token struct {
	Typ   TokenType
	Value string
}

func (t Token) String() string {
	if t.Typ == TokenEOF {
		return "EOF"
	}

	return fmt.Sprintf("%s %q", t.Typ, t.Value)
}

// Lexer splits source text into tokens. It never fails: runes that start no
// token are dropped.
type Lexer struct {
	reader *bufio.Reader
	tokens []Token
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
	}
}

// Tokenize lexes source in one pass. The result always ends with a TokenEOF.
func Tokenize(source string) []Token {
	return NewLexer(strings.NewReader(source)).Run()
}

func (l *Lexer) Run() []Token {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	return l.tokens
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return l.emmitValue(TokenEOF, "")
		case isDigit(r):
			return numberState
		case isLetter(r):
			return identifierState
		default:
			if _, ok := operatorTable[r]; ok {
				return operatorState
			}

			l.next() // Whitespace and unknown symbols produce nothing
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emmitValue(TokenNumber, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isLetter(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()

	return l.emmitValue(operatorTable[r], string(r))
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
	})

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != EOF {
		_ = l.reader.UnreadRune()
	}

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		// Read errors end the stream like io.EOF does
		return EOF
	}

	return r
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
