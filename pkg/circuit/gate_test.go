package circuit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/stuckat-atpg/pkg/circuit"
)

// TestOperatorSymbols tests the mapping between symbols and operators
func TestOperatorSymbols(t *testing.T) {
	for _, op := range []circuit.Operator{circuit.AND, circuit.OR, circuit.XOR, circuit.NOT} {
		parsed, ok := circuit.ParseOperator(op.Symbol())
		require.True(t, ok, "symbol %q", op.Symbol())
		assert.Equal(t, op, parsed)
	}

	_, ok := circuit.ParseOperator("!")
	assert.False(t, ok)
	_, ok = circuit.ParseOperator("AND")
	assert.False(t, ok)

	assert.Equal(t, "XOR", circuit.XOR.String())
	assert.Equal(t, "UNKNOWN", circuit.Operator(42).String())
	assert.Equal(t, 1, circuit.NOT.Arity())
	assert.Equal(t, 2, circuit.AND.Arity())
}

// TestGateApply tests the truth table of every operator
func TestGateApply(t *testing.T) {
	type row struct{ a, b, and, or, xor bool }
	rows := []row{
		{false, false, false, false, false},
		{false, true, false, true, true},
		{true, false, false, true, true},
		{true, true, true, true, false},
	}

	and := circuit.Gate{Op: circuit.AND}
	or := circuit.Gate{Op: circuit.OR}
	xor := circuit.Gate{Op: circuit.XOR}
	not := circuit.Gate{Op: circuit.NOT}

	for _, r := range rows {
		assert.Equal(t, r.and, and.Apply(r.a, r.b), "AND(%v, %v)", r.a, r.b)
		assert.Equal(t, r.or, or.Apply(r.a, r.b), "OR(%v, %v)", r.a, r.b)
		assert.Equal(t, r.xor, xor.Apply(r.a, r.b), "XOR(%v, %v)", r.a, r.b)
		assert.Equal(t, !r.a, not.Apply(r.a, r.b), "NOT(%v)", r.a)
	}
}

// TestNewGate tests operand count validation
func TestNewGate(t *testing.T) {
	g, err := circuit.NewGate(circuit.NOT, "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, g.Operands())
	assert.Equal(t, "~ X", g.String())

	g, err = circuit.NewGate(circuit.OR, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, g.Operands())
	assert.Equal(t, "| A B", g.String())

	_, err = circuit.NewGate(circuit.AND, "A")
	assert.True(t, errors.Is(err, circuit.ErrMalformedEquation))

	_, err = circuit.NewGate(circuit.Operator(9), "A", "B")
	assert.True(t, errors.Is(err, circuit.ErrMalformedEquation))
}

// TestVectorFor tests little-endian expansion of vector indices
func TestVectorFor(t *testing.T) {
	assert.Equal(t, []bool{false, false, false, false}, circuit.VectorFor(0, 4))
	assert.Equal(t, []bool{true, false, false, false}, circuit.VectorFor(1, 4))
	assert.Equal(t, []bool{false, true, true, false}, circuit.VectorFor(6, 4))
	assert.Equal(t, []bool{true, true, true, true}, circuit.VectorFor(15, 4))

	inputs := circuit.Assign([]string{"A", "B", "C"}, circuit.VectorFor(5, 3))
	assert.Equal(t, map[string]bool{"A": true, "B": false, "C": true}, inputs)
}

// TestTestRecordDetects tests the detecting-vector predicate
func TestTestRecordDetects(t *testing.T) {
	assert.True(t, circuit.TestRecord{Output: true, Good: false, GoodKnown: true}.Detects())
	assert.False(t, circuit.TestRecord{Output: true, Good: true, GoodKnown: true}.Detects())
	assert.False(t, circuit.TestRecord{Output: true, Good: false}.Detects())
}
