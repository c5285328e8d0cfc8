// Package engine applies decoded RFQ commands to a record store through the
// negotiation state machine.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cqkv/rfqkv"
	"github.com/cqkv/rfqkv/codec"
	"github.com/cqkv/rfqkv/model"
	"github.com/cqkv/rfqkv/rfq"
)

// Engine is single threaded, like the store it drives.
type Engine struct {
	store   *rfqkv.Store
	nextID  int64 // may pass MaxInt32 once ids are used up
	log     *zap.Logger
	metrics *metrics
}

// New wraps store. RFQ ids continue after the highest id already stored, so an
// engine can resume on a restored snapshot.
func New(store *rfqkv.Store, opts ...Option) *Engine {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	e := &Engine{
		store:   store,
		nextID:  1,
		log:     o.logger,
		metrics: newMetrics(o.registry, o.namespace),
	}
	for h := range store.All() {
		if id := int64(h.ID()); id >= e.nextID {
			e.nextID = id + 1
		}
	}
	e.metrics.capacity.Set(float64(store.Capacity()))
	e.metrics.records.Set(float64(store.Count()))
	return e
}

func (e *Engine) Store() *rfqkv.Store {
	return e.store
}

// Apply dispatches one decoded command. A Create returns the new RFQ id through
// CreateRfq instead; Apply discards it.
func (e *Engine) Apply(cmd any) error {
	switch c := cmd.(type) {
	case Create:
		_, err := e.CreateRfq(c)
		return err
	case Quote:
		return e.Quote(c)
	case Counter:
		return e.Counter(c)
	case Accept:
		return e.Accept(c)
	case Reject:
		return e.Reject(c)
	case Cancel:
		return e.Cancel(c)
	case Tick:
		e.ExpireDue(c.TimestampMs)
		return nil
	}
	return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

// CreateRfq appends a new RFQ in state CREATED and returns its id.
func (e *Engine) CreateRfq(c Create) (int32, error) {
	id := int32(e.nextID)
	err := validateCreate(c)
	if err == nil && e.nextID > math.MaxInt32 {
		err = ErrIDsExhausted
	}
	if err == nil {
		_, err = e.store.AppendRecord(&model.Record{
			ID:               id,
			State:            int32(rfq.StateCreated),
			CreationTime:     c.TimestampMs,
			ExpiryTime:       c.ExpireTimeMs,
			LastUpdate:       c.TimestampMs,
			LastUpdateUser:   c.Requester,
			Requester:        c.Requester,
			Responder:        rfq.NoUser,
			SecurityID:       c.SecurityID,
			RequesterClOrdID: c.Correlation,
			Side:             c.Side.String(),
			Quantity:         c.Quantity,
			LimitPrice:       rfq.NoPrice,
			ClusterSession:   c.ClusterSession,
			LastCounterUser:  rfq.NoUser,
		})
	}
	if err != nil {
		e.rejected("create", id, c.Requester, err)
		return 0, err
	}

	e.nextID++
	e.metrics.records.Set(float64(e.store.Count()))
	e.metrics.transitions.WithLabelValues(rfq.StateCreated.String()).Inc()
	e.accepted("create", id, c.Requester, rfq.StateCreated)
	return id, nil
}

func validateCreate(c Create) error {
	switch {
	case c.Correlation == "":
		return fmt.Errorf("%w: empty correlation", ErrInvalidCommand)
	case len(c.Correlation) > codec.FieldRequesterClOrdID.MaxLength:
		return fmt.Errorf("%w: correlation %q: %w", ErrInvalidCommand, c.Correlation, rfqkv.ErrValueTooLong)
	case c.Side != rfq.SideBuy && c.Side != rfq.SideSell:
		return fmt.Errorf("%w: side %d", ErrInvalidCommand, c.Side)
	case c.Quantity <= 0:
		return fmt.Errorf("%w: quantity %d", ErrInvalidCommand, c.Quantity)
	case c.ExpireTimeMs <= c.TimestampMs:
		return fmt.Errorf("%w: expiry %d not after %d", ErrInvalidCommand, c.ExpireTimeMs, c.TimestampMs)
	}
	return nil
}

func (e *Engine) Quote(c Quote) error {
	return e.transition(rfq.ActionQuote, c.RfqID, c.Responder, c.TimestampMs, func(q *rfq.Rfq) error {
		return q.Quote(c.Responder, c.Price)
	})
}

func (e *Engine) Counter(c Counter) error {
	return e.transition(rfq.ActionCounter, c.RfqID, c.User, c.TimestampMs, func(q *rfq.Rfq) error {
		return q.Counter(c.User, c.Price)
	})
}

func (e *Engine) Accept(c Accept) error {
	return e.transition(rfq.ActionAccept, c.RfqID, c.User, c.TimestampMs, func(q *rfq.Rfq) error {
		return q.Accept(c.User)
	})
}

func (e *Engine) Reject(c Reject) error {
	return e.transition(rfq.ActionReject, c.RfqID, c.User, c.TimestampMs, func(q *rfq.Rfq) error {
		return q.Reject(c.User)
	})
}

func (e *Engine) Cancel(c Cancel) error {
	return e.transition(rfq.ActionCancel, c.RfqID, c.User, c.TimestampMs, (*rfq.Rfq).Cancel)
}

// transition runs one user action: permission check, guarded mutation, write back.
func (e *Engine) transition(a rfq.Action, id, user int32, ts int64, mutate func(*rfq.Rfq) error) error {
	h, q, err := e.load(id)
	if err == nil {
		err = q.Permit(user, a)
	}
	if err == nil {
		err = mutate(q)
	}
	if err != nil {
		e.rejected(a.String(), id, user, err)
		return err
	}

	e.save(h, q, user, ts)
	e.metrics.transitions.WithLabelValues(q.State().String()).Inc()
	e.accepted(a.String(), id, user, q.State())
	return nil
}

// ExpireDue expires every live RFQ whose expiry time is at or before nowMs and
// returns their ids in store order.
func (e *Engine) ExpireDue(nowMs int64) []int32 {
	var expired []int32
	for h := range e.store.All() {
		if h.ExpiryTime() > nowMs || rfq.State(h.State()).Terminal() {
			continue
		}
		q, err := toRfq(h)
		if err == nil {
			err = q.Expire()
		}
		if err != nil {
			e.rejected(rfq.ActionExpire.String(), h.ID(), rfq.NoUser, err)
			continue
		}
		e.save(h, q, rfq.NoUser, nowMs)
		e.metrics.transitions.WithLabelValues(q.State().String()).Inc()
		e.accepted(rfq.ActionExpire.String(), q.ID, rfq.NoUser, q.State())
		expired = append(expired, q.ID)
	}
	return expired
}

func (e *Engine) load(id int32) (rfqkv.Handle, *rfq.Rfq, error) {
	h, err := e.store.GetByKey(id)
	if err != nil {
		return h, nil, fmt.Errorf("rfq %d: %w", id, err)
	}
	q, err := toRfq(h)
	return h, q, err
}

// save writes the negotiation fields of q back to its record.
func (e *Engine) save(h rfqkv.Handle, q *rfq.Rfq, user int32, ts int64) {
	n := q.Negotiation()
	h.SetState(int32(n.State))
	h.SetResponder(n.Responder)
	h.SetLastCounterUser(n.LastCounterUser)
	h.SetLimitPrice(n.Price)
	h.SetLastUpdate(ts)
	h.SetLastUpdateUser(user)
}

// toRfq decodes the record behind h. The accepting or rejecting user is the
// last updater of a record in that state.
func toRfq(h rfqkv.Handle) (*rfq.Rfq, error) {
	state := rfq.State(h.State())
	if !state.Valid() {
		return nil, fmt.Errorf("%w: rfq %d has state %d", ErrCorruptRecord, h.ID(), h.State())
	}
	side, err := rfq.ParseSide(h.Side())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	n := rfq.Negotiation{
		State:           state,
		Responder:       h.Responder(),
		LastCounterUser: h.LastCounterUser(),
		AcceptUser:      rfq.NoUser,
		RejectUser:      rfq.NoUser,
		Price:           h.LimitPrice(),
	}
	switch state {
	case rfq.StateAccepted:
		n.AcceptUser = h.LastUpdateUser()
	case rfq.StateRejected:
		n.RejectUser = h.LastUpdateUser()
	}

	return rfq.Restore(rfq.Creation{
		ID:           h.ID(),
		Correlation:  h.RequesterClOrdID(),
		ExpireTimeMs: h.ExpiryTime(),
		Quantity:     h.Quantity(),
		Side:         side,
		SecurityID:   h.SecurityID(),
		Requester:    h.Requester(),
	}, n), nil
}

func (e *Engine) accepted(command string, id, user int32, state rfq.State) {
	e.metrics.commands.WithLabelValues(command, resultAccepted).Inc()
	e.log.Info("command applied",
		zap.String("command", command),
		zap.Int32("rfq_id", id),
		zap.Int32("user_id", user),
		zap.Stringer("state", state),
	)
}

func (e *Engine) rejected(command string, id, user int32, err error) {
	e.metrics.commands.WithLabelValues(command, resultRejected).Inc()
	level := e.log.Warn
	if errors.Is(err, rfqkv.ErrCapacityExhausted) {
		level = e.log.Error
	}
	level("command rejected",
		zap.String("command", command),
		zap.Int32("rfq_id", id),
		zap.Int32("user_id", user),
		zap.Error(err),
	)
}
