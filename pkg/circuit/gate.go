package circuit

import "fmt"

// Operator represents the logic function of a gate
type Operator int

const (
	AND Operator = iota
	OR
	XOR
	NOT
)

// String returns a string representation of the operator
func (op Operator) String() string {
	switch op {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case XOR:
		return "XOR"
	case NOT:
		return "NOT"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the netlist symbol of the operator
func (op Operator) Symbol() string {
	switch op {
	case AND:
		return "&"
	case OR:
		return "|"
	case XOR:
		return "^"
	case NOT:
		return "~"
	default:
		return "?"
	}
}

// Arity returns the number of operands the operator takes
func (op Operator) Arity() int {
	if op == NOT {
		return 1
	}
	return 2
}

// ParseOperator maps a netlist symbol to its operator
func ParseOperator(symbol string) (Operator, bool) {
	switch symbol {
	case "&":
		return AND, true
	case "|":
		return OR, true
	case "^":
		return XOR, true
	case "~":
		return NOT, true
	default:
		return 0, false
	}
}

// Gate represents the right-hand side of one netlist equation.
// Operand2 is empty for NOT.
type Gate struct {
	Op       Operator
	Operand1 string
	Operand2 string
}

// NewGate creates a gate and checks that the operand count matches the operator
func NewGate(op Operator, operands ...string) (Gate, error) {
	if op < AND || op > NOT {
		return Gate{}, fmt.Errorf("%w: unknown operator %d", ErrMalformedEquation, int(op))
	}
	if len(operands) != op.Arity() {
		return Gate{}, fmt.Errorf("%w: %s expects %d operand(s), got %d",
			ErrMalformedEquation, op, op.Arity(), len(operands))
	}
	g := Gate{Op: op, Operand1: operands[0]}
	if op.Arity() == 2 {
		g.Operand2 = operands[1]
	}
	return g, nil
}

// Operands returns the signals read by the gate
func (g Gate) Operands() []string {
	if g.Op.Arity() == 1 {
		return []string{g.Operand1}
	}
	return []string{g.Operand1, g.Operand2}
}

// Apply combines operand values according to the operator.
// b is ignored for NOT.
func (g Gate) Apply(a, b bool) bool {
	switch g.Op {
	case AND:
		return a && b
	case OR:
		return a || b
	case XOR:
		return a != b
	case NOT:
		return !a
	default:
		panic(fmt.Sprintf("circuit: unhandled operator %d", int(g.Op)))
	}
}

// String renders the gate in netlist syntax
func (g Gate) String() string {
	if g.Op.Arity() == 1 {
		return fmt.Sprintf("%s %s", g.Op.Symbol(), g.Operand1)
	}
	return fmt.Sprintf("%s %s %s", g.Op.Symbol(), g.Operand1, g.Operand2)
}
