package algorithm

import (
	"context"
	"time"

	"github.com/fyerfyer/stuckat-atpg/pkg/circuit"
)

// FaultResult holds the vectors generated for one fault of a campaign
type FaultResult struct {
	Fault     Fault
	Records   []circuit.TestRecord
	Detecting []int // Indices of detecting vectors, ascending
}

// Detected reports whether any vector exposes the fault
func (r FaultResult) Detected() bool {
	return len(r.Detecting) > 0
}

// FaultList returns every single stuck-at fault of the circuit: each
// primary input and gate output, stuck at 0 then 1
func (g *Generator) FaultList() []Fault {
	signals := g.Circuit.Signals(g.Inputs)
	faults := make([]Fault, 0, 2*len(signals))
	for _, name := range signals {
		faults = append(faults, Fault{Node: name, StuckAt: false}, Fault{Node: name, StuckAt: true})
	}
	return faults
}

// GenerateAll enumerates the input space once per fault in FaultList.
// The fault-free outputs are computed once and shared by every fault.
func (g *Generator) GenerateAll(ctx context.Context) ([]FaultResult, error) {
	startTime := time.Now()
	g.resetStats()

	if err := g.prepare(); err != nil {
		return nil, err
	}

	goodRecords, err := g.enumerate(ctx, nil, nil)
	if err != nil {
		g.Logger.Error("Fault-free simulation failed: %v", err)
		return nil, err
	}
	good := make([]bool, len(goodRecords))
	for i, r := range goodRecords {
		good[i] = r.Good
	}

	faults := g.FaultList()
	g.Logger.Info("Generating tests for %d faults", len(faults))
	g.Logger.Indent()
	defer g.Logger.Outdent()

	results := make([]FaultResult, 0, len(faults))
	for _, fault := range faults {
		fault := fault
		records, err := g.enumerate(ctx, &fault, good)
		if err != nil {
			g.Logger.Error("Generation aborted at %s: %v", fault, err)
			return nil, err
		}

		result := FaultResult{Fault: fault, Records: records}
		for _, r := range records {
			if r.Detects() {
				result.Detecting = append(result.Detecting, r.Index)
			}
		}
		results = append(results, result)

		g.Stats.Faults++
		g.Stats.Vectors += len(records)
		g.Stats.Detecting += len(result.Detecting)
		if result.Detected() {
			g.Stats.DetectedFaults++
		} else {
			g.Logger.Debug("%s is undetectable", fault)
		}
	}

	g.Stats.TotalTime = time.Since(startTime)
	g.Logger.Info("%d of %d faults detected", g.Stats.DetectedFaults, g.Stats.Faults)
	return results, nil
}

// Coverage returns the fraction of targeted faults that were detected
func (s Stats) Coverage() float64 {
	if s.Faults == 0 {
		return 0
	}
	return float64(s.DetectedFaults) / float64(s.Faults)
}
