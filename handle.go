package rfqkv

import (
	"github.com/cqkv/rfqkv/codec"
	"github.com/cqkv/rfqkv/model"
)

// Handle addresses one record of a store. It is a plain value: any number of
// handles may exist at once and none is invalidated by later store calls.
// Writes to indexed fields update the matching index before returning.
type Handle struct {
	s   *Store
	off int
}

func (h Handle) view() codec.View {
	return codec.Wrap(h.s.buf, h.off)
}

// Valid reports whether h was returned by a successful store call.
func (h Handle) Valid() bool {
	return h.s != nil
}

func (h Handle) Offset() int {
	return h.off
}

// ID returns the primary key, fixed at append time.
func (h Handle) ID() int32 {
	return h.view().Int32(codec.FieldID)
}

func (h Handle) State() int32             { return h.view().Int32(codec.FieldState) }
func (h Handle) CreationTime() int64      { return h.view().Int64(codec.FieldCreationTime) }
func (h Handle) ExpiryTime() int64        { return h.view().Int64(codec.FieldExpiryTime) }
func (h Handle) LastUpdate() int64        { return h.view().Int64(codec.FieldLastUpdate) }
func (h Handle) LastUpdateUser() int32    { return h.view().Int32(codec.FieldLastUpdateUser) }
func (h Handle) Requester() int32         { return h.view().Int32(codec.FieldRequester) }
func (h Handle) Responder() int32         { return h.view().Int32(codec.FieldResponder) }
func (h Handle) SecurityID() int32        { return h.view().Int32(codec.FieldSecurityID) }
func (h Handle) RequesterClOrdID() string { return h.view().String(codec.FieldRequesterClOrdID) }
func (h Handle) Side() string             { return h.view().String(codec.FieldSide) }
func (h Handle) Quantity() int64          { return h.view().Int64(codec.FieldQuantity) }
func (h Handle) LimitPrice() int64        { return h.view().Int64(codec.FieldLimitPrice) }
func (h Handle) ClusterSession() int64    { return h.view().Int64(codec.FieldClusterSession) }
func (h Handle) LastCounterUser() int32   { return h.view().Int32(codec.FieldLastCounterUser) }

func (h Handle) SetState(v int32)           { h.view().PutInt32(codec.FieldState, v) }
func (h Handle) SetCreationTime(v int64)    { h.view().PutInt64(codec.FieldCreationTime, v) }
func (h Handle) SetExpiryTime(v int64)      { h.view().PutInt64(codec.FieldExpiryTime, v) }
func (h Handle) SetLastUpdate(v int64)      { h.view().PutInt64(codec.FieldLastUpdate, v) }
func (h Handle) SetLastUpdateUser(v int32)  { h.view().PutInt32(codec.FieldLastUpdateUser, v) }
func (h Handle) SetSecurityID(v int32)      { h.view().PutInt32(codec.FieldSecurityID, v) }
func (h Handle) SetQuantity(v int64)        { h.view().PutInt64(codec.FieldQuantity, v) }
func (h Handle) SetLimitPrice(v int64)      { h.view().PutInt64(codec.FieldLimitPrice, v) }
func (h Handle) SetLastCounterUser(v int32) { h.view().PutInt32(codec.FieldLastCounterUser, v) }

func (h Handle) SetSide(v string) error {
	return h.view().PutString(codec.FieldSide, v)
}

func (h Handle) SetRequester(v int32) {
	h.view().PutInt32(codec.FieldRequester, v)
	h.s.requester.OnFieldWritten(h.off, v)
}

func (h Handle) SetResponder(v int32) {
	h.view().PutInt32(codec.FieldResponder, v)
	h.s.responder.OnFieldWritten(h.off, v)
}

func (h Handle) SetRequesterClOrdID(v string) error {
	if err := h.view().PutString(codec.FieldRequesterClOrdID, v); err != nil {
		return err
	}
	h.s.clOrdID.OnFieldWritten(h.off, v)
	return nil
}

func (h Handle) SetClusterSession(v int64) {
	h.view().PutInt64(codec.FieldClusterSession, v)
	h.s.session.OnFieldWritten(h.off, v)
}

// Record decodes the whole record.
func (h Handle) Record() model.Record {
	var r model.Record
	codec.ReadRecord(h.view(), &r)
	return r
}

// Update writes every field of r except the key. Text fields are checked first,
// a failing update leaves the record untouched.
func (h Handle) Update(r *model.Record) error {
	if len(r.RequesterClOrdID) > codec.FieldRequesterClOrdID.MaxLength ||
		len(r.Side) > codec.FieldSide.MaxLength {
		return ErrValueTooLong
	}
	if err := h.SetRequesterClOrdID(r.RequesterClOrdID); err != nil {
		return err
	}
	if err := h.SetSide(r.Side); err != nil {
		return err
	}
	h.SetState(r.State)
	h.SetCreationTime(r.CreationTime)
	h.SetExpiryTime(r.ExpiryTime)
	h.SetLastUpdate(r.LastUpdate)
	h.SetLastUpdateUser(r.LastUpdateUser)
	h.SetRequester(r.Requester)
	h.SetResponder(r.Responder)
	h.SetSecurityID(r.SecurityID)
	h.SetQuantity(r.Quantity)
	h.SetLimitPrice(r.LimitPrice)
	h.SetClusterSession(r.ClusterSession)
	h.SetLastCounterUser(r.LastCounterUser)
	return nil
}
