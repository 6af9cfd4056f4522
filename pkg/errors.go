package funlang

import (
	"fmt"

	"tlog.app/go/errors"
)

// ParseError reports the token the parser stopped at and the construct it
// was looking for.
type ParseError struct {
	Tok      Token
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %s, expected %s", e.Tok, e.Expected)
}

// IsIncomplete reports whether err is a parse error caused by running out
// of input, so more source could complete it.
func IsIncomplete(err error) bool {
	var pe *ParseError

	return errors.As(err, &pe) && pe.Tok.Typ == TokenEOF
}

// UndefinedError is an unresolved variable or callee.
type UndefinedError struct {
	Kind string
	Name string
}

const (
	UndefinedVariable = "variable"
	UndefinedFunction = "function"
)

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined %s: %s", e.Kind, e.Name)
}

type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s takes %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// AssignError is an assignment whose left operand is not a variable.
type AssignError struct {
	Target Node
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("cannot assign to %T", e.Target)
}

// RedefinitionError is a second function with an existing name, or a
// parameter listed twice.
type RedefinitionError struct {
	Kind string
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("%s redefined: %s", e.Kind, e.Name)
}
