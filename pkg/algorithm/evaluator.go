package algorithm

import (
	"errors"
	"fmt"

	"github.com/fyerfyer/stuckat-atpg/pkg/circuit"
	"github.com/fyerfyer/stuckat-atpg/pkg/utils"
)

// ErrUnresolvedSignal is returned when a gate operand or the primary output
// has no value at the point it is read
var ErrUnresolvedSignal = errors.New("unresolved signal")

// DefaultPrimaryOutput is the signal read as the circuit output
const DefaultPrimaryOutput = "Z"

// Signals holds the signal values of one evaluation. Primary inputs are
// never modified, gate outputs go to a separate table, and a fault, when
// present, shadows both for its node on every read.
type Signals struct {
	inputs   map[string]bool
	computed map[string]bool
	fault    *Fault
}

// NewSignals seeds a signal table from primary input values
func NewSignals(inputs map[string]bool, fault *Fault) *Signals {
	seeded := make(map[string]bool, len(inputs))
	for name, v := range inputs {
		seeded[name] = v
	}
	return &Signals{
		inputs:   seeded,
		computed: make(map[string]bool),
		fault:    fault,
	}
}

// Get returns the current value of a signal
func (s *Signals) Get(name string) (bool, bool) {
	if s.fault != nil && name == s.fault.Node {
		return s.fault.StuckAt, true
	}
	if v, ok := s.computed[name]; ok {
		return v, true
	}
	v, ok := s.inputs[name]
	return v, ok
}

// Set stores a gate output, replacing any earlier value for the name
func (s *Signals) Set(name string, v bool) {
	s.computed[name] = v
}

// Evaluator computes the primary output of a circuit for one input vector
type Evaluator struct {
	Circuit       *circuit.Circuit
	PrimaryOutput string
	Logger        *utils.Logger
}

// NewEvaluator creates an evaluator that reads DefaultPrimaryOutput
func NewEvaluator(c *circuit.Circuit, logger *utils.Logger) *Evaluator {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Evaluator{
		Circuit:       c,
		PrimaryOutput: DefaultPrimaryOutput,
		Logger:        logger,
	}
}

// Evaluate walks the gates once in declaration order. The gate driving the
// fault node is skipped and every read of the node yields the stuck value.
// A nil fault evaluates the fault-free circuit.
func (e *Evaluator) Evaluate(inputs map[string]bool, fault *Fault) (bool, error) {
	signals := NewSignals(inputs, fault)

	for _, a := range e.Circuit.Assignments {
		if fault != nil && a.Output == fault.Node {
			e.Logger.Evaluation("%s skipped, held at %s", a.Output, bit(fault.StuckAt))
			continue
		}

		v1, ok := signals.Get(a.Gate.Operand1)
		if !ok {
			return false, e.unresolved(a, a.Gate.Operand1)
		}
		var v2 bool
		if a.Gate.Op.Arity() == 2 {
			if v2, ok = signals.Get(a.Gate.Operand2); !ok {
				return false, e.unresolved(a, a.Gate.Operand2)
			}
		}

		out := a.Gate.Apply(v1, v2)
		signals.Set(a.Output, out)
		e.Logger.Evaluation("%s = %s", a, bit(out))
	}

	out, ok := signals.Get(e.PrimaryOutput)
	if !ok {
		return false, fmt.Errorf("%w: primary output %q is never driven", ErrUnresolvedSignal, e.PrimaryOutput)
	}
	return out, nil
}

func (e *Evaluator) unresolved(a circuit.Assignment, operand string) error {
	if a.Line > 0 {
		return fmt.Errorf("%w: %q read by %q on line %d", ErrUnresolvedSignal, operand, a.Output, a.Line)
	}
	return fmt.Errorf("%w: %q read by %q", ErrUnresolvedSignal, operand, a.Output)
}

// Evaluate computes the output Z of c for the given inputs with faultNode
// stuck at forcedValue
func Evaluate(c *circuit.Circuit, inputs map[string]bool, faultNode string, forcedValue bool) (bool, error) {
	return NewEvaluator(c, nil).Evaluate(inputs, &Fault{Node: faultNode, StuckAt: forcedValue})
}

// bit renders a boolean as 0 or 1
func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
