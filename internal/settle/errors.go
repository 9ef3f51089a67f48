package settle

import "fmt"

// MissingEventError is a successful simulation that did not emit an event the
// settlement math needs. It always produces an explicit error instead of a
// silent non-response.
type MissingEventError struct {
	Event string
	Cause error
}

func (e *MissingEventError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("simulation produced no usable %s: %v", e.Event, e.Cause)
	}
	return fmt.Sprintf("simulation produced no %s", e.Event)
}

func (e *MissingEventError) Unwrap() error { return e.Cause }

// DegenerateSettlementError is a settlement whose figures cannot be derived,
// e.g. a zero withdraw amount that would make the token price undefined.
type DegenerateSettlementError struct {
	Message string
}

func (e *DegenerateSettlementError) Error() string { return e.Message }
