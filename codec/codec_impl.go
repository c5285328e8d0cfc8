package codec

import (
	"fmt"
	"io"

	"github.com/cqkv/rfqkv/model"
)

var _ Codec = (*CodecImpl)(nil)

type CodecImpl struct{}

func NewCodecImpl() *CodecImpl {
	return &CodecImpl{}
}

func (cl *CodecImpl) MarshalRecord(record *model.Record, dst []byte) error {
	if len(dst) < RecordLength {
		return io.ErrShortBuffer
	}
	v := Wrap(dst, 0)

	// validate text fields first so a failure leaves dst untouched
	if len(record.RequesterClOrdID) > FieldRequesterClOrdID.MaxLength {
		return fmt.Errorf("%w: %s", ErrValueTooLong, FieldRequesterClOrdID.Name)
	}
	if len(record.Side) > FieldSide.MaxLength {
		return fmt.Errorf("%w: %s", ErrValueTooLong, FieldSide.Name)
	}

	v.WriteHeader()
	v.PutInt32(FieldID, record.ID)
	v.PutInt32(FieldState, record.State)
	v.PutInt64(FieldCreationTime, record.CreationTime)
	v.PutInt64(FieldExpiryTime, record.ExpiryTime)
	v.PutInt64(FieldLastUpdate, record.LastUpdate)
	v.PutInt32(FieldLastUpdateUser, record.LastUpdateUser)
	v.PutInt32(FieldRequester, record.Requester)
	v.PutInt32(FieldResponder, record.Responder)
	v.PutInt32(FieldSecurityID, record.SecurityID)
	if err := v.PutString(FieldRequesterClOrdID, record.RequesterClOrdID); err != nil {
		return err
	}
	if err := v.PutString(FieldSide, record.Side); err != nil {
		return err
	}
	v.PutInt64(FieldQuantity, record.Quantity)
	v.PutInt64(FieldLimitPrice, record.LimitPrice)
	v.PutInt64(FieldClusterSession, record.ClusterSession)
	v.PutInt32(FieldLastCounterUser, record.LastCounterUser)
	return nil
}

func (cl *CodecImpl) UnmarshalRecord(data []byte, record *model.Record) error {
	if len(data) < RecordLength {
		return io.ErrUnexpectedEOF
	}
	ReadRecord(Wrap(data, 0), record)
	return nil
}

// ReadRecord decodes every field visible through v.
func ReadRecord(v View, record *model.Record) {
	record.ID = v.Int32(FieldID)
	record.State = v.Int32(FieldState)
	record.CreationTime = v.Int64(FieldCreationTime)
	record.ExpiryTime = v.Int64(FieldExpiryTime)
	record.LastUpdate = v.Int64(FieldLastUpdate)
	record.LastUpdateUser = v.Int32(FieldLastUpdateUser)
	record.Requester = v.Int32(FieldRequester)
	record.Responder = v.Int32(FieldResponder)
	record.SecurityID = v.Int32(FieldSecurityID)
	record.RequesterClOrdID = v.String(FieldRequesterClOrdID)
	record.Side = v.String(FieldSide)
	record.Quantity = v.Int64(FieldQuantity)
	record.LimitPrice = v.Int64(FieldLimitPrice)
	record.ClusterSession = v.Int64(FieldClusterSession)
	record.LastCounterUser = v.Int32(FieldLastCounterUser)
}
