package circuit

import "fmt"

// Levels assigns a level to every signal reachable in declaration order.
// Primary inputs are level 0 and a gate output is one more than its
// deepest operand. Operands with no level yet are returned in missing,
// keyed by the assignment index that read them.
func (c *Circuit) Levels(inputs []string) (levels map[string]int, missing map[int][]string) {
	levels = make(map[string]int, len(inputs)+len(c.Assignments))
	for _, in := range inputs {
		levels[in] = 0
	}

	for i, a := range c.Assignments {
		maxInputLevel := -1
		for _, operand := range a.Gate.Operands() {
			level, ok := levels[operand]
			if !ok {
				if missing == nil {
					missing = make(map[int][]string)
				}
				missing[i] = append(missing[i], operand)
				continue
			}
			if level > maxInputLevel {
				maxInputLevel = level
			}
		}
		levels[a.Output] = maxInputLevel + 1
	}

	return levels, missing
}

// MaxLevel returns the depth of the circuit
func (c *Circuit) MaxLevel(inputs []string) int {
	levels, _ := c.Levels(inputs)
	maxLevel := 0
	for _, level := range levels {
		if level > maxLevel {
			maxLevel = level
		}
	}
	return maxLevel
}

// CheckOrder verifies that the circuit can be evaluated in one pass:
// every operand is a primary input or an earlier gate output, and
// primaryOutput is produced. Violations wrap ErrMalformedEquation.
func (c *Circuit) CheckOrder(inputs []string, primaryOutput string) error {
	_, missing := c.Levels(inputs)

	for i, a := range c.Assignments {
		operands, ok := missing[i]
		if !ok {
			continue
		}
		operand := operands[0]
		reason := "undeclared signal"
		if c.drivenAfter(operand, i) {
			reason = "forward reference to"
		}
		return &ParseError{Line: a.Line, Text: a.String(),
			Err: fmt.Errorf("%w: %s %q", ErrMalformedEquation, reason, operand)}
	}

	isInput := false
	for _, in := range inputs {
		if in == primaryOutput {
			isInput = true
			break
		}
	}
	if !isInput && !c.Drives(primaryOutput) {
		return fmt.Errorf("%w: no gate drives primary output %q", ErrMalformedEquation, primaryOutput)
	}
	return nil
}

// drivenAfter reports whether name is produced by a gate after index i
func (c *Circuit) drivenAfter(name string, i int) bool {
	for _, a := range c.Assignments[i:] {
		if a.Output == name {
			return true
		}
	}
	return false
}
