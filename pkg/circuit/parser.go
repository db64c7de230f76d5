package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseExpression parses the right-hand side of an equation such as
// "& a b" or "~ x". Operand names are not checked against the circuit.
func ParseExpression(expr string) (Gate, error) {
	var (
		op       Operator
		found    bool
		operands []string
	)

	for _, tok := range strings.Fields(expr) {
		if sym, ok := ParseOperator(tok); ok {
			if found {
				return Gate{}, fmt.Errorf("%w: more than one operator in %q", ErrMalformedEquation, expr)
			}
			op, found = sym, true
			continue
		}
		operands = append(operands, tok)
	}

	if !found {
		return Gate{}, fmt.Errorf("%w: no operator in %q", ErrMalformedEquation, expr)
	}
	return NewGate(op, operands...)
}

// Builder accumulates equations into a circuit in declaration order
type Builder struct {
	circuit *Circuit
	line    int
}

// NewBuilder creates a builder for a circuit with the given name
func NewBuilder(name string) *Builder {
	return &Builder{circuit: NewCircuit(name)}
}

// AddLine consumes one line of netlist text. Lines without '=' and
// everything after '#' are ignored.
func (b *Builder) AddLine(text string) error {
	b.line++

	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	lhs, rhs, ok := strings.Cut(text, "=")
	if !ok {
		return nil
	}

	output := strings.TrimSpace(lhs)
	if output == "" || strings.ContainsAny(output, " \t") {
		return &ParseError{Line: b.line, Text: text,
			Err: fmt.Errorf("%w: bad output name %q", ErrMalformedEquation, output)}
	}

	gate, err := ParseExpression(rhs)
	if err != nil {
		return &ParseError{Line: b.line, Text: text, Err: err}
	}

	b.circuit.Add(output, gate, b.line)
	return nil
}

// Circuit returns the circuit built so far
func (b *Builder) Circuit() *Circuit {
	return b.circuit
}

// ParseNetlist reads netlist text from r and builds a circuit. The first
// malformed equation aborts the parse.
func ParseNetlist(name string, r io.Reader) (*Circuit, error) {
	b := NewBuilder(name)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := b.AddLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading netlist: %w", err)
	}

	return b.Circuit(), nil
}

// ParseNetlistString is ParseNetlist over an in-memory netlist
func ParseNetlistString(name, text string) (*Circuit, error) {
	return ParseNetlist(name, strings.NewReader(text))
}
