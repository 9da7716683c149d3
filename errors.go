package expressivo

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrInvalidVariable   = errors.New("invalid variable")
)

// InvalidExpressionError is returned by the parser for input that does not
// conform to the grammar. Pos is the byte offset of the offending token.
type InvalidExpressionError struct {
	Pos   int
	Token string
	Msg   string
}

func (e *InvalidExpressionError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: %s at position %d", ErrInvalidExpression, e.Msg, e.Pos)
	}
	return fmt.Sprintf("%v: %s at position %d (%q)", ErrInvalidExpression, e.Msg, e.Pos, e.Token)
}

func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}
