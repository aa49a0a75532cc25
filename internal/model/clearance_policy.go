package model

import "fmt"

// ClearancePolicy selects the neighbourhood used to inflate a footprint
// when checking inter-block clearance (spec.md §4.3, §9 Open Question).
// Implementations must expose this as configuration rather than silently
// picking one; Manhattan is the default.
type ClearancePolicy int

const (
	ClearanceManhattan ClearancePolicy = iota
	ClearanceChebyshev
)

func (p ClearancePolicy) String() string {
	if p == ClearanceChebyshev {
		return "chebyshev"
	}
	return "manhattan"
}

func (p ClearancePolicy) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *ClearancePolicy) UnmarshalJSON(b []byte) error {
	s := string(b)
	switch s {
	case `"chebyshev"`, `"8"`, `"8-neighbour"`:
		*p = ClearanceChebyshev
	case `""`, `"manhattan"`, `"4"`, `"4-neighbour"`, "null":
		*p = ClearanceManhattan
	default:
		return fmt.Errorf("unknown clearance policy %s", s)
	}
	return nil
}
