package circuit

import (
	"errors"
	"fmt"
)

// ErrMalformedEquation is returned for equations with a missing or unknown
// operator, the wrong number of operands, or a bad output name. Ordering
// violations found by CheckOrder wrap it too.
var ErrMalformedEquation = errors.New("malformed equation")

// ParseError records where in the netlist an equation was rejected
type ParseError struct {
	Line int    // 1-based source line
	Text string // Offending line, comments stripped
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
