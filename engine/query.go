package engine

import (
	"go.uber.org/zap"

	"github.com/cqkv/rfqkv/rfq"
)

// Get returns a copy of the RFQ with the given id.
func (e *Engine) Get(id int32) (*rfq.Rfq, error) {
	_, q, err := e.load(id)
	return q, err
}

func (e *Engine) ByRequester(user int32) []*rfq.Rfq {
	return e.collect(e.store.LookupRequester(user))
}

func (e *Engine) ByResponder(user int32) []*rfq.Rfq {
	return e.collect(e.store.LookupResponder(user))
}

func (e *Engine) ByClOrdID(clOrdID string) []*rfq.Rfq {
	return e.collect(e.store.LookupRequesterClOrdID(clOrdID))
}

func (e *Engine) BySession(session int64) []*rfq.Rfq {
	return e.collect(e.store.LookupClusterSession(session))
}

// Checksum of the underlying store, for replica comparison.
func (e *Engine) Checksum() uint32 {
	return e.store.Checksum()
}

// collect decodes the records at offsets, in ascending offset order.
func (e *Engine) collect(offsets []int) []*rfq.Rfq {
	rfqs := make([]*rfq.Rfq, 0, len(offsets))
	for _, off := range offsets {
		h, err := e.store.GetByBufferOffset(off)
		if err != nil {
			e.log.Error("index points outside the store", zap.Int("offset", off), zap.Error(err))
			continue
		}
		q, err := toRfq(h)
		if err != nil {
			e.log.Warn("skipping undecodable record", zap.Int("offset", off), zap.Error(err))
			continue
		}
		rfqs = append(rfqs, q)
	}
	return rfqs
}
