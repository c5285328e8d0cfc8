package rfq

import "fmt"

// State is the negotiation state of an RFQ. Its numeric value is what gets persisted.
type State int32

const (
	StateCreated State = iota
	StateQuoted
	StateCountered
	StateAccepted
	StateRejected
	StateExpired
	StateCanceled

	numStates
)

var stateNames = [numStates]string{
	StateCreated:   "CREATED",
	StateQuoted:    "QUOTED",
	StateCountered: "COUNTERED",
	StateAccepted:  "ACCEPTED",
	StateRejected:  "REJECTED",
	StateExpired:   "EXPIRED",
	StateCanceled:  "CANCELED",
}

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("State(%d)", int32(s))
	}
	return stateNames[s]
}

func (s State) Valid() bool {
	return s >= 0 && s < numStates
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	switch s {
	case StateAccepted, StateRejected, StateExpired, StateCanceled:
		return true
	}
	return false
}

// States lists every state in id order.
func States() []State {
	states := make([]State, 0, numStates)
	for s := StateCreated; s < numStates; s++ {
		states = append(states, s)
	}
	return states
}

// transitions[from][to] is true when the move is legal.
var transitions = [numStates][numStates]bool{
	StateCreated: {
		StateQuoted:   true,
		StateCanceled: true,
		StateExpired:  true,
	},
	StateQuoted: {
		StateCountered: true,
		StateAccepted:  true,
		StateRejected:  true,
		StateCanceled:  true,
		StateExpired:   true,
	},
	StateCountered: {
		StateCountered: true,
		StateQuoted:    true,
		StateAccepted:  true,
		StateRejected:  true,
		StateCanceled:  true,
		StateExpired:   true,
	},
}

// CanTransition reports whether the table allows moving from one state to another.
func CanTransition(from, to State) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return transitions[from][to]
}
