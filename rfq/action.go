package rfq

import "fmt"

// Action is one negotiation event.
type Action uint8

const (
	ActionQuote Action = iota
	ActionCounter
	ActionAccept
	ActionReject
	ActionCancel
	ActionExpire

	numActions
)

var actionNames = [numActions]string{
	ActionQuote:   "quote",
	ActionCounter: "counter",
	ActionAccept:  "accept",
	ActionReject:  "reject",
	ActionCancel:  "cancel",
	ActionExpire:  "expire",
}

var actionTargets = [numActions]State{
	ActionQuote:   StateQuoted,
	ActionCounter: StateCountered,
	ActionAccept:  StateAccepted,
	ActionReject:  StateRejected,
	ActionCancel:  StateCanceled,
	ActionExpire:  StateExpired,
}

func (a Action) String() string {
	if a >= numActions {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// Target is the state an action moves to when it is legal.
func (a Action) Target() State {
	return actionTargets[a]
}

// Actions lists every action.
func Actions() []Action {
	actions := make([]Action, 0, numActions)
	for a := ActionQuote; a < numActions; a++ {
		actions = append(actions, a)
	}
	return actions
}

// Next looks the action up in the transition table.
func Next(from State, a Action) (State, bool) {
	if a >= numActions {
		return from, false
	}
	to := a.Target()
	if !CanTransition(from, to) {
		return from, false
	}
	return to, true
}
