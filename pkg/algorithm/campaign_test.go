package algorithm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/stuckat-atpg/pkg/algorithm"
)

// TestParseFaultType tests fault type names
func TestParseFaultType(t *testing.T) {
	ft, err := algorithm.ParseFaultType("SA0")
	require.NoError(t, err)
	assert.Equal(t, algorithm.SA0, ft)

	ft, err = algorithm.ParseFaultType("SA1")
	require.NoError(t, err)
	assert.Equal(t, algorithm.SA1, ft)

	for _, bad := range []string{"", "SA2", "sa0", "sa1", " SA1 ", "1"} {
		_, err := algorithm.ParseFaultType(bad)
		assert.True(t, errors.Is(err, algorithm.ErrUnknownFaultType), "%q", bad)
	}
}

// TestNewFault tests mapping fault types to forced values
func TestNewFault(t *testing.T) {
	f, err := algorithm.NewFault("net_f", algorithm.SA0)
	require.NoError(t, err)
	assert.Equal(t, algorithm.Fault{Node: "net_f", StuckAt: false}, f)
	assert.Equal(t, "net_f stuck-at-0", f.String())
	assert.Equal(t, algorithm.SA0, f.Type())

	f, err = algorithm.NewFault("net_f", algorithm.SA1)
	require.NoError(t, err)
	assert.True(t, f.StuckAt)
	assert.Equal(t, algorithm.SA1, f.Type())

	_, err = algorithm.NewFault("net_f", "SAX")
	assert.True(t, errors.Is(err, algorithm.ErrUnknownFaultType))
}

// TestFaultList tests the fault universe order
func TestFaultList(t *testing.T) {
	c := mustParse(t, "X = | A B\nZ = ~ X")
	gen := algorithm.NewGenerator(c, []string{"A", "B"}, nil)

	want := []algorithm.Fault{
		{Node: "A"}, {Node: "A", StuckAt: true},
		{Node: "B"}, {Node: "B", StuckAt: true},
		{Node: "X"}, {Node: "X", StuckAt: true},
		{Node: "Z"}, {Node: "Z", StuckAt: true},
	}
	if diff := cmp.Diff(want, gen.FaultList()); diff != "" {
		t.Errorf("fault list differs (-want +got):\n%s", diff)
	}
}

// TestGenerateAll tests a campaign over every fault of an OR-NOT circuit
func TestGenerateAll(t *testing.T) {
	c := mustParse(t, "X = | A B\nZ = ~ X")
	gen := algorithm.NewGenerator(c, []string{"A", "B"}, nil)

	results, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 8)

	detecting := make(map[string][]int)
	for _, r := range results {
		detecting[r.Fault.String()] = r.Detecting
		require.Len(t, r.Records, 4)
	}

	// Vector index: bit 0 is A, bit 1 is B. Good Z is 1 only for index 0.
	assert.Equal(t, []int{1}, detecting["A stuck-at-0"])
	assert.Equal(t, []int{0}, detecting["A stuck-at-1"])
	assert.Equal(t, []int{2}, detecting["B stuck-at-0"])
	assert.Equal(t, []int{0}, detecting["B stuck-at-1"])
	assert.Equal(t, []int{1, 2, 3}, detecting["X stuck-at-0"])
	assert.Equal(t, []int{0}, detecting["X stuck-at-1"])
	assert.Equal(t, []int{0}, detecting["Z stuck-at-0"])
	assert.Equal(t, []int{1, 2, 3}, detecting["Z stuck-at-1"])

	assert.Equal(t, 8, gen.Stats.Faults)
	assert.Equal(t, 8, gen.Stats.DetectedFaults)
	assert.Equal(t, 32, gen.Stats.Vectors)
	assert.InDelta(t, 1.0, gen.Stats.Coverage(), 1e-9)
}

// TestGenerateAllMatchesGenerate tests that shared good outputs match per-fault runs
func TestGenerateAllMatchesGenerate(t *testing.T) {
	c := mustParse(t, fourInput)
	gen := algorithm.NewGenerator(c, nil, nil)
	gen.Workers = 3

	results, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)

	for _, r := range results {
		single := algorithm.NewGenerator(c, nil, nil)
		records, err := single.GenerateFault(context.Background(), r.Fault)
		require.NoError(t, err)
		if diff := cmp.Diff(records, r.Records); diff != "" {
			t.Errorf("%s differs (-single +campaign):\n%s", r.Fault, diff)
		}
	}
}

// TestGenerateAllUndetectable tests a redundant fault
func TestGenerateAllUndetectable(t *testing.T) {
	// X is masked: Z = A | (A & B) == A
	c := mustParse(t, "X = & A B\nZ = | A X")
	gen := algorithm.NewGenerator(c, []string{"A", "B"}, nil)

	results, err := gen.GenerateAll(context.Background())
	require.NoError(t, err)

	for _, r := range results {
		if r.Fault == (algorithm.Fault{Node: "X", StuckAt: false}) {
			assert.False(t, r.Detected())
		}
	}
	assert.Less(t, gen.Stats.DetectedFaults, gen.Stats.Faults)
}

// TestGenerateAllAborts tests that a broken circuit stops the campaign
func TestGenerateAllAborts(t *testing.T) {
	c := mustParse(t, "Z = & A Q")
	gen := algorithm.NewGenerator(c, []string{"A"}, nil)

	results, err := gen.GenerateAll(context.Background())
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, algorithm.ErrUnresolvedSignal))
}
