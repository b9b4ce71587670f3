package parse

import (
	"fmt"
	"strings"

	"github.com/fpl-lang/fpl/diag"
)

// UnexpectedTokenError reports that the parser needed one of a set of
// token kinds and found something else.
type UnexpectedTokenError struct {
	Got      Token
	Expected []TokenType
	Loc      diag.GlobalSpan
}

func (e UnexpectedTokenError) Error() string {
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = t.String()
	}
	return fmt.Sprintf("unexpected token %s, expected one of: %s", e.Got, strings.Join(names, ", "))
}

func (e UnexpectedTokenError) Location() diag.GlobalSpan { return e.Loc }

// PointerNotFoundError reports that a proof step's visual pointer line
// contained no caret run.
type PointerNotFoundError struct {
	Loc diag.GlobalSpan
}

func (e PointerNotFoundError) Error() string {
	return "expected a visual pointer line (optional '.', spaces, then one or more '^')"
}

func (e PointerNotFoundError) Location() diag.GlobalSpan { return e.Loc }
