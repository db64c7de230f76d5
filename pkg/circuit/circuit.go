package circuit

import (
	"fmt"
	"strings"
)

// Assignment binds one gate to the signal it drives
type Assignment struct {
	Output string
	Gate   Gate
	Line   int // Source line, 0 if built programmatically
}

// String renders the assignment as a netlist equation
func (a Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Output, a.Gate)
}

// Circuit is an ordered list of gate assignments. It is read-only once
// built and may be shared between concurrent evaluations.
type Circuit struct {
	Name        string
	Assignments []Assignment
}

// NewCircuit creates a new circuit with the given name
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:        name,
		Assignments: make([]Assignment, 0),
	}
}

// Add appends a gate assignment in declaration order
func (c *Circuit) Add(output string, gate Gate, line int) {
	c.Assignments = append(c.Assignments, Assignment{Output: output, Gate: gate, Line: line})
}

// Len returns the number of gates
func (c *Circuit) Len() int {
	return len(c.Assignments)
}

// Outputs returns the gate output names in declaration order, without repeats
func (c *Circuit) Outputs() []string {
	seen := make(map[string]bool, len(c.Assignments))
	outputs := make([]string, 0, len(c.Assignments))
	for _, a := range c.Assignments {
		if !seen[a.Output] {
			seen[a.Output] = true
			outputs = append(outputs, a.Output)
		}
	}
	return outputs
}

// Drives reports whether some gate produces the named signal
func (c *Circuit) Drives(name string) bool {
	for _, a := range c.Assignments {
		if a.Output == name {
			return true
		}
	}
	return false
}

// Redeclared returns output names driven by more than one gate. During
// evaluation the later gate overwrites the earlier value.
func (c *Circuit) Redeclared() []string {
	count := make(map[string]int, len(c.Assignments))
	var dups []string
	for _, a := range c.Assignments {
		count[a.Output]++
		if count[a.Output] == 2 {
			dups = append(dups, a.Output)
		}
	}
	return dups
}

// Signals returns the primary inputs followed by every gate output not
// already listed. This is the fault universe of the circuit.
func (c *Circuit) Signals(inputs []string) []string {
	seen := make(map[string]bool, len(inputs)+len(c.Assignments))
	signals := make([]string, 0, len(inputs)+len(c.Assignments))
	for _, name := range append(append([]string{}, inputs...), c.Outputs()...) {
		if !seen[name] {
			seen[name] = true
			signals = append(signals, name)
		}
	}
	return signals
}

// String returns the circuit as netlist text
func (c *Circuit) String() string {
	var builder strings.Builder
	for _, a := range c.Assignments {
		builder.WriteString(a.String())
		builder.WriteString("\n")
	}
	return builder.String()
}
