package codec

import "github.com/cqkv/rfqkv/model"

type Codec interface {
	// MarshalRecord writes the record, header included, into dst which must hold RecordLength bytes
	MarshalRecord(*model.Record, []byte) error

	UnmarshalRecord([]byte, *model.Record) error
}
