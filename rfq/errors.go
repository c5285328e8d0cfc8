package rfq

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("rfq: illegal state transition")
	ErrNotPermitted      = errors.New("rfq: action not permitted for user")
)

// TransitionError reports a mutation refused by the transition table.
// The RFQ is left exactly as it was.
type TransitionError struct {
	RfqID  int32
	From   State
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("rfq %d: cannot %s from %s", e.RfqID, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
