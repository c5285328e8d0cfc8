// Package rfqkv is a fixed capacity record store for RFQ records.
//
// All records live in one buffer allocated up front. Records are appended, never
// removed, so the buffer content is a pure function of the operations applied to
// it and Checksum can be compared between replicas to detect divergence.
//
// A Store has no internal locking: it must be driven by a single goroutine, the
// one applying the ordered command stream.
package rfqkv

import (
	"math"

	"go.uber.org/zap"

	"github.com/cqkv/rfqkv/codec"
	"github.com/cqkv/rfqkv/index"
	"github.com/cqkv/rfqkv/keydir"
	"github.com/cqkv/rfqkv/model"
	"github.com/cqkv/rfqkv/utils"
)

type Store struct {
	buf        []byte
	capacity   int
	count      int
	nextOffset int // offset of the next free slot

	keydir keydir.Keydir

	requester *index.Index[int32]
	responder *index.Index[int32]
	clOrdID   *index.Index[string]
	session   *index.Index[int64]

	codec   codec.Codec
	scratch []byte // one record, staging area of AppendRecord

	log     *zap.Logger
	options options
}

// New creates a store holding at most capacity records.
func New(capacity int, opts ...Option) (*Store, error) {
	if capacity <= 0 || capacity > (math.MaxInt32-1)/codec.Stride {
		return nil, ErrInvalidCapacity
	}

	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	s := &Store{
		buf:       make([]byte, capacity*codec.Stride+1),
		capacity:  capacity,
		keydir:    keydir.New(o.keydirType, capacity, o.indexDegree),
		requester: index.New[int32](codec.FieldRequester.Name, o.indexDegree),
		responder: index.New[int32](codec.FieldResponder.Name, o.indexDegree),
		clOrdID:   index.New[string](codec.FieldRequesterClOrdID.Name, o.indexDegree),
		session:   index.New[int64](codec.FieldClusterSession.Name, o.indexDegree),
		codec:     codec.NewCodecImpl(),
		scratch:   make([]byte, codec.RecordLength),
		log:       o.logger,
		options:   o,
	}
	return s, nil
}

// AppendWithKey appends a zeroed record carrying key. The key can never be changed.
func (s *Store) AppendWithKey(key int32) (Handle, error) {
	if s.count >= s.capacity {
		s.log.Debug("append rejected", zap.Int32("key", key), zap.Error(ErrCapacityExhausted))
		return Handle{}, ErrCapacityExhausted
	}
	if s.keydir.Contains(key) {
		s.log.Debug("append rejected", zap.Int32("key", key), zap.Error(ErrDuplicateKey))
		return Handle{}, ErrDuplicateKey
	}

	offset := s.nextOffset
	v := codec.Wrap(s.buf, offset)
	v.WriteHeader()
	v.PutInt32(codec.FieldID, key)
	s.admit(key, offset)
	return Handle{s: s, off: offset}, nil
}

// AppendByCopy re-admits a fully formed record read from src at srcOffset, as done
// when restoring a snapshot. Keys and indexes are derived from the copied bytes.
func (s *Store) AppendByCopy(src []byte, srcOffset int) (Handle, error) {
	if s.count >= s.capacity {
		s.log.Debug("append by copy rejected", zap.Error(ErrCapacityExhausted))
		return Handle{}, ErrCapacityExhausted
	}
	if srcOffset < 0 || srcOffset > len(src)-codec.RecordLength {
		return Handle{}, ErrShortBuffer
	}
	key := codec.Wrap(src, srcOffset).Int32(codec.FieldID)
	if s.keydir.Contains(key) {
		s.log.Debug("append by copy rejected", zap.Int32("key", key), zap.Error(ErrDuplicateKey))
		return Handle{}, ErrDuplicateKey
	}

	offset := s.nextOffset
	copy(s.buf[offset:offset+codec.RecordLength], src[srcOffset:srcOffset+codec.RecordLength])
	s.admit(key, offset)
	return Handle{s: s, off: offset}, nil
}

// AppendRecord appends a whole record keyed by r.ID. Text fields are checked
// before anything is appended.
func (s *Store) AppendRecord(r *model.Record) (Handle, error) {
	if err := s.codec.MarshalRecord(r, s.scratch); err != nil {
		s.log.Debug("append record rejected", zap.Int32("key", r.ID), zap.Error(err))
		return Handle{}, err
	}
	return s.AppendByCopy(s.scratch, 0)
}

// admit registers the slot at offset and feeds its indexed fields to the indexes.
func (s *Store) admit(key int32, offset int) {
	s.keydir.Put(key, offset)
	s.count++
	s.nextOffset += codec.Stride

	v := codec.Wrap(s.buf, offset)
	s.requester.OnFieldWritten(offset, v.Int32(codec.FieldRequester))
	s.responder.OnFieldWritten(offset, v.Int32(codec.FieldResponder))
	s.clOrdID.OnFieldWritten(offset, v.String(codec.FieldRequesterClOrdID))
	s.session.OnFieldWritten(offset, v.Int64(codec.FieldClusterSession))
}

func (s *Store) ContainsKey(key int32) bool {
	return s.keydir.Contains(key)
}

// Count returns the number of records currently in the store.
func (s *Store) Count() int {
	return s.count
}

// Capacity returns the maximum number of records the store can hold.
func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) GetByKey(key int32) (Handle, error) {
	offset, ok := s.keydir.Get(key)
	if !ok {
		return Handle{}, ErrNotFound
	}
	return Handle{s: s, off: offset}, nil
}

// GetByBufferOffset returns the record starting at offset. Offsets that do not
// start a live record are rejected rather than read as one.
func (s *Store) GetByBufferOffset(offset int) (Handle, error) {
	if !s.validOffset(offset) {
		return Handle{}, ErrInvalidOffset
	}
	return Handle{s: s, off: offset}, nil
}

// GetByBufferIndex returns the n-th record in insertion order, 0 based.
func (s *Store) GetByBufferIndex(n int) (Handle, error) {
	offset, err := s.OffsetByBufferIndex(n)
	if err != nil {
		return Handle{}, err
	}
	return Handle{s: s, off: offset}, nil
}

func (s *Store) OffsetByBufferIndex(n int) (int, error) {
	if n < 0 || n >= s.count {
		return -1, ErrIndexOutOfRange
	}
	return n * codec.Stride, nil
}

// live slots are contiguous from zero, so membership is pure arithmetic
func (s *Store) validOffset(offset int) bool {
	return offset >= 0 && offset < s.nextOffset && offset%codec.Stride == 0
}

// Checksum returns the CRC-32 of the whole buffer, unused zeroed tail included.
func (s *Store) Checksum() uint32 {
	return utils.GenerateCrc(s.buf)
}

// Bytes exposes the underlying buffer for serialization. Callers must not modify it.
func (s *Store) Bytes() []byte {
	return s.buf
}

func (s *Store) LookupRequester(requester int32) []int {
	return s.requester.Lookup(requester)
}

func (s *Store) LookupResponder(responder int32) []int {
	return s.responder.Lookup(responder)
}

func (s *Store) LookupRequesterClOrdID(clOrdID string) []int {
	return s.clOrdID.Lookup(clOrdID)
}

func (s *Store) LookupClusterSession(session int64) []int {
	return s.session.Lookup(session)
}
