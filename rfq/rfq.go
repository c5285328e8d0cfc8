// Package rfq holds the negotiation state machine of a request for quote.
//
// Every mutator re-checks its guard at the point of mutation. A refused
// mutation returns a *TransitionError and changes nothing.
package rfq

import (
	"fmt"

	"github.com/cqkv/rfqkv/model"
)

// Sentinels for identities and prices not set yet.
const (
	NoUser  = model.NoUser
	NoPrice = model.NoPrice
)

type Side uint8

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideSell {
		return model.SideSell
	}
	return model.SideBuy
}

func ParseSide(s string) (Side, error) {
	switch s {
	case model.SideBuy:
		return SideBuy, nil
	case model.SideSell:
		return SideSell, nil
	}
	return SideBuy, fmt.Errorf("rfq: unknown side %q", s)
}

// Creation is the immutable part of an RFQ.
type Creation struct {
	ID           int32
	Correlation  string
	ExpireTimeMs int64
	Quantity     int64
	Side         Side
	SecurityID   int32
	Requester    int32
}

// Negotiation is the mutable part of an RFQ, used to restore one from storage.
type Negotiation struct {
	State           State
	Responder       int32
	LastCounterUser int32
	AcceptUser      int32
	RejectUser      int32
	Price           int64
}

type Rfq struct {
	Creation
	state           State
	responder       int32
	lastCounterUser int32
	acceptUser      int32
	rejectUser      int32
	price           int64
}

// New returns an RFQ in state CREATED.
func New(c Creation) *Rfq {
	return &Rfq{
		Creation:        c,
		state:           StateCreated,
		responder:       NoUser,
		lastCounterUser: NoUser,
		acceptUser:      NoUser,
		rejectUser:      NoUser,
		price:           NoPrice,
	}
}

// Restore rebuilds an RFQ previously persisted in the given negotiation state.
func Restore(c Creation, n Negotiation) *Rfq {
	return &Rfq{
		Creation:        c,
		state:           n.State,
		responder:       n.Responder,
		lastCounterUser: n.LastCounterUser,
		acceptUser:      n.AcceptUser,
		rejectUser:      n.RejectUser,
		price:           n.Price,
	}
}

func (q *Rfq) State() State           { return q.state }
func (q *Rfq) Responder() int32       { return q.responder }
func (q *Rfq) HasResponder() bool     { return q.responder != NoUser }
func (q *Rfq) LastCounterUser() int32 { return q.lastCounterUser }
func (q *Rfq) AcceptUser() int32      { return q.acceptUser }
func (q *Rfq) RejectUser() int32      { return q.rejectUser }
func (q *Rfq) Price() int64           { return q.price }

// Negotiation returns the mutable fields.
func (q *Rfq) Negotiation() Negotiation {
	return Negotiation{
		State:           q.state,
		Responder:       q.responder,
		LastCounterUser: q.lastCounterUser,
		AcceptUser:      q.acceptUser,
		RejectUser:      q.rejectUser,
		Price:           q.price,
	}
}

func (q *Rfq) String() string {
	return fmt.Sprintf("Rfq{id=%d, correlation=%q, state=%s, side=%s, quantity=%d, securityId=%d, price=%d, requester=%d}",
		q.ID, q.Correlation, q.state, q.Side, q.Quantity, q.SecurityID, q.price, q.Requester)
}

func (q *Rfq) can(a Action) bool {
	_, ok := Next(q.state, a)
	return ok
}

// apply moves to the action target, or returns the refusal.
func (q *Rfq) apply(a Action) error {
	to, ok := Next(q.state, a)
	if !ok {
		return &TransitionError{RfqID: q.ID, From: q.state, Action: a}
	}
	q.state = to
	return nil
}

func (q *Rfq) CanQuote() bool   { return q.can(ActionQuote) }
func (q *Rfq) CanCounter() bool { return q.can(ActionCounter) }
func (q *Rfq) CanAccept() bool  { return q.can(ActionAccept) }
func (q *Rfq) CanReject() bool  { return q.can(ActionReject) }
func (q *Rfq) CanExpire() bool  { return q.can(ActionExpire) }
func (q *Rfq) CanCancel() bool  { return q.can(ActionCancel) }

// Quote records the responder and its price.
func (q *Rfq) Quote(responder int32, price int64) error {
	if err := q.apply(ActionQuote); err != nil {
		return err
	}
	q.responder = responder
	q.price = price
	return nil
}

// Counter records the countering user and the new price.
func (q *Rfq) Counter(counterUser int32, price int64) error {
	if err := q.apply(ActionCounter); err != nil {
		return err
	}
	q.lastCounterUser = counterUser
	q.price = price
	return nil
}

func (q *Rfq) Accept(user int32) error {
	if err := q.apply(ActionAccept); err != nil {
		return err
	}
	q.acceptUser = user
	return nil
}

func (q *Rfq) Reject(user int32) error {
	if err := q.apply(ActionReject); err != nil {
		return err
	}
	q.rejectUser = user
	return nil
}

// Expire is driven by an external clock command.
func (q *Rfq) Expire() error {
	return q.apply(ActionExpire)
}

func (q *Rfq) Cancel() error {
	return q.apply(ActionCancel)
}

// RoleOf returns the part user plays. Before the first quote any user other
// than the requester may respond.
func (q *Rfq) RoleOf(user int32) Role {
	switch {
	case user == q.Requester:
		return RoleRequester
	case q.responder == NoUser || user == q.responder:
		return RoleResponder
	}
	return RoleNone
}

// lastPricer is the user whose price is currently on the table.
func (q *Rfq) lastPricer() int32 {
	if q.state == StateCountered {
		return q.lastCounterUser
	}
	return q.responder
}

// Permit checks that user may issue action on this RFQ. A user can never
// answer their own price.
func (q *Rfq) Permit(user int32, a Action) error {
	role := q.RoleOf(user)
	if !role.Can(a) {
		return fmt.Errorf("%w: user %d (%s) cannot %s rfq %d", ErrNotPermitted, user, role, a, q.ID)
	}
	switch a {
	case ActionCounter, ActionAccept, ActionReject:
		if q.state == StateQuoted || q.state == StateCountered {
			if user == q.lastPricer() {
				return fmt.Errorf("%w: user %d cannot %s their own price on rfq %d", ErrNotPermitted, user, a, q.ID)
			}
		}
	}
	return nil
}
