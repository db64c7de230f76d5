package algorithm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fyerfyer/stuckat-atpg/pkg/circuit"
	"github.com/fyerfyer/stuckat-atpg/pkg/utils"
)

// MaxInputs bounds the number of primary inputs, and so the 2^k enumeration
const MaxInputs = 24

// ErrInputs is returned for an oversized or repeating input list
var ErrInputs = errors.New("invalid primary inputs")

// DefaultInputs are the primary inputs used when none are configured
var DefaultInputs = []string{"A", "B", "C", "D"}

// Stats contains statistics about a generation run
type Stats struct {
	Vectors        int           // Input vectors evaluated
	Detecting      int           // Vectors whose faulty output differs from the good one
	Faults         int           // Faults targeted
	DetectedFaults int           // Faults with at least one detecting vector
	TotalTime      time.Duration // Total execution time
}

// Generator enumerates every input vector of a circuit under a stuck-at fault
type Generator struct {
	Circuit       *circuit.Circuit
	Inputs        []string // Ordered primary inputs; input j is bit j of the vector index
	PrimaryOutput string
	Workers       int  // Evaluate vectors concurrently when greater than 1
	Strict        bool // Run CheckOrder before enumerating
	Logger        *utils.Logger
	Stats         Stats
}

// NewGenerator creates a generator over the given primary inputs.
// A nil inputs slice selects DefaultInputs; an empty one enumerates the
// single empty vector.
func NewGenerator(c *circuit.Circuit, inputs []string, logger *utils.Logger) *Generator {
	if inputs == nil {
		inputs = DefaultInputs
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Generator{
		Circuit:       c,
		Inputs:        inputs,
		PrimaryOutput: DefaultPrimaryOutput,
		Workers:       1,
		Logger:        logger,
	}
}

// Generate produces one test record per input vector, in ascending index
// order, with faultNode stuck at the value named by faultType. Any error
// aborts the run and no records are returned.
func (g *Generator) Generate(ctx context.Context, faultNode string, faultType FaultType) ([]circuit.TestRecord, error) {
	fault, err := NewFault(faultNode, faultType)
	if err != nil {
		g.Logger.Error("Cannot generate vectors: %v", err)
		return nil, err
	}
	return g.GenerateFault(ctx, fault)
}

// GenerateFault is Generate for an already resolved fault
func (g *Generator) GenerateFault(ctx context.Context, fault Fault) ([]circuit.TestRecord, error) {
	startTime := time.Now()
	g.resetStats()

	if err := g.prepare(); err != nil {
		return nil, err
	}

	g.Logger.Info("Generating %d vectors for %s", 1<<len(g.Inputs), fault)
	g.Logger.Indent()
	defer g.Logger.Outdent()

	records, err := g.enumerate(ctx, &fault, nil)
	if err != nil {
		g.Logger.Error("Generation aborted: %v", err)
		return nil, err
	}

	g.Stats.Faults = 1
	g.Stats.Vectors = len(records)
	g.Stats.Detecting = countDetecting(records)
	if g.Stats.Detecting > 0 {
		g.Stats.DetectedFaults = 1
	}
	g.Stats.TotalTime = time.Since(startTime)

	g.Logger.Info("%d of %d vectors detect %s", g.Stats.Detecting, g.Stats.Vectors, fault)
	return records, nil
}

// prepare validates the configuration shared by every run
func (g *Generator) prepare() error {
	k := len(g.Inputs)
	if k > MaxInputs {
		return fmt.Errorf("%w: at most %d inputs, got %d", ErrInputs, MaxInputs, k)
	}
	seen := make(map[string]bool, k)
	for _, name := range g.Inputs {
		if seen[name] {
			return fmt.Errorf("%w: %q listed twice", ErrInputs, name)
		}
		seen[name] = true
	}

	if g.Strict {
		if err := g.Circuit.CheckOrder(g.Inputs, g.PrimaryOutput); err != nil {
			g.Logger.Error("Circuit order check failed: %v", err)
			return err
		}
		g.Logger.Circuit("%s: %d gates, depth %d", g.Circuit.Name, g.Circuit.Len(), g.Circuit.MaxLevel(g.Inputs))
	}
	return nil
}

// enumerate evaluates every vector index. When good is non-nil it holds
// the fault-free output per index and the good circuit is not re-evaluated.
// A nil fault enumerates the fault-free circuit.
func (g *Generator) enumerate(ctx context.Context, fault *Fault, good []bool) ([]circuit.TestRecord, error) {
	k := len(g.Inputs)
	n := 1 << k
	records := make([]circuit.TestRecord, n)

	evaluator := NewEvaluator(g.Circuit, g.Logger)
	evaluator.PrimaryOutput = g.PrimaryOutput

	evalIndex := func(i int) error {
		values := circuit.VectorFor(i, k)
		inputs := circuit.Assign(g.Inputs, values)

		out, err := evaluator.Evaluate(inputs, fault)
		if err != nil {
			return fmt.Errorf("vector %d: %w", i, err)
		}

		record := circuit.TestRecord{Index: i, Inputs: values, Output: out, GoodKnown: true}
		switch {
		case good != nil:
			record.Good = good[i]
		case fault == nil:
			record.Good = out
		default:
			// The forced node may be the only driver of a signal; the
			// faulty result still stands when the good circuit cannot
			// be evaluated.
			if record.Good, err = evaluator.Evaluate(inputs, nil); err != nil {
				record.Good, record.GoodKnown = false, false
				g.Logger.Debug("vector %d: fault-free output unknown: %v", i, err)
			}
		}

		records[i] = record
		g.Logger.Trace("vector %d: %v -> %s", i, values, bit(out))
		return nil
	}

	workers := g.Workers
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := evalIndex(i); err != nil {
				return nil, err
			}
		}
		return records, nil
	}

	if workers > n {
		workers = n
	}
	g.Logger.Algorithm("Evaluating %d vectors on %d workers", n, workers)

	// Worker w owns indices w, w+workers, ...; each slot is written once.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for i := w; i < n; i += workers {
				if err := egCtx.Err(); err != nil {
					return err
				}
				if err := evalIndex(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// resetStats resets statistics for a new run
func (g *Generator) resetStats() {
	g.Stats = Stats{}
}

func countDetecting(records []circuit.TestRecord) int {
	n := 0
	for _, r := range records {
		if r.Detects() {
			n++
		}
	}
	return n
}

// Generate enumerates the default inputs A, B, C, D of c with faultNode
// stuck at the value named by faultType
func Generate(c *circuit.Circuit, faultNode, faultType string) ([]circuit.TestRecord, error) {
	ft, err := ParseFaultType(faultType)
	if err != nil {
		return nil, err
	}
	return NewGenerator(c, nil, nil).Generate(context.Background(), faultNode, ft)
}
