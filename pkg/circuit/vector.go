package circuit

// TestRecord is one enumerated input vector and the outputs it produced
type TestRecord struct {
	Index  int    // Vector index; input j is bit j of Index
	Inputs []bool // Primary input values in configured order
	Output bool   // Primary output with the fault injected
	Good   bool   // Primary output of the fault-free circuit, if GoodKnown

	// GoodKnown is false when the fault-free circuit reads a signal that
	// only the forced fault node defines
	GoodKnown bool
}

// Detects reports whether the vector distinguishes the faulty circuit.
// A vector with an unknown fault-free output never detects.
func (r TestRecord) Detects() bool {
	return r.GoodKnown && r.Output != r.Good
}

// VectorFor expands index into k input values, least significant bit first
func VectorFor(index, k int) []bool {
	values := make([]bool, k)
	for j := 0; j < k; j++ {
		values[j] = index&(1<<j) != 0
	}
	return values
}

// Assign maps ordered input names to the values of a vector
func Assign(names []string, values []bool) map[string]bool {
	inputs := make(map[string]bool, len(names))
	for j, name := range names {
		inputs[name] = values[j]
	}
	return inputs
}
