package algorithm

import (
	"errors"
	"fmt"
)

// ErrUnknownFaultType is returned for fault types other than SA0 and SA1
var ErrUnknownFaultType = errors.New("unknown fault type")

// FaultType names a stuck-at fault model
type FaultType string

const (
	SA0 FaultType = "SA0" // Stuck-at-0
	SA1 FaultType = "SA1" // Stuck-at-1
)

// ParseFaultType validates a fault type name. Only the exact names SA0
// and SA1 are accepted.
func ParseFaultType(name string) (FaultType, error) {
	switch ft := FaultType(name); ft {
	case SA0, SA1:
		return ft, nil
	default:
		return "", fmt.Errorf("%w: %q (expected SA0 or SA1)", ErrUnknownFaultType, name)
	}
}

// Value returns the value the faulty signal is forced to
func (ft FaultType) Value() (bool, error) {
	switch ft {
	case SA0:
		return false, nil
	case SA1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q (expected SA0 or SA1)", ErrUnknownFaultType, string(ft))
	}
}

// Fault is a single stuck-at defect on a named signal
type Fault struct {
	Node    string
	StuckAt bool
}

// NewFault creates the fault for node under the given fault type
func NewFault(node string, ft FaultType) (Fault, error) {
	value, err := ft.Value()
	if err != nil {
		return Fault{}, err
	}
	return Fault{Node: node, StuckAt: value}, nil
}

// Type returns the fault model matching the forced value
func (f Fault) Type() FaultType {
	if f.StuckAt {
		return SA1
	}
	return SA0
}

// String returns the fault in "node stuck-at-v" form
func (f Fault) String() string {
	if f.StuckAt {
		return fmt.Sprintf("%s stuck-at-1", f.Node)
	}
	return fmt.Sprintf("%s stuck-at-0", f.Node)
}
