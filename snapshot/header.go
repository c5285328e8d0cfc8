package snapshot

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// File format, little endian:
//
//	[magic:4][version:2][schema:2][id:16][capacity:4][count:4][checksum:4][bodyLen:4][crc:4][body:bodyLen]
//
// body is the snappy compressed prefix of the store buffer holding count
// records. checksum is the store checksum at write time. crc covers the header
// bytes before it followed by the body.
const (
	magic         = "RFQS"
	formatVersion = 1
	headerLength  = 44
	crcOffset     = headerLength - 4
)

// Meta describes one snapshot.
type Meta struct {
	ID       uuid.UUID
	Schema   uint16
	Capacity int
	Count    int
	Checksum uint32
}

type header struct {
	Meta
	bodyLen int
	crc     uint32
}

var enc = binary.LittleEndian

func (h *header) encode() []byte {
	buf := make([]byte, headerLength)
	copy(buf[0:4], magic)
	enc.PutUint16(buf[4:], formatVersion)
	enc.PutUint16(buf[6:], h.Schema)
	copy(buf[8:24], h.ID[:])
	enc.PutUint32(buf[24:], uint32(h.Capacity))
	enc.PutUint32(buf[28:], uint32(h.Count))
	enc.PutUint32(buf[32:], h.Checksum)
	enc.PutUint32(buf[36:], uint32(h.bodyLen))
	enc.PutUint32(buf[crcOffset:], h.crc)
	return buf
}

func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerLength {
		return nil, ErrTruncated
	}
	if string(buf[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if enc.Uint16(buf[4:]) != formatVersion {
		return nil, ErrBadVersion
	}
	h := &header{
		Meta: Meta{
			Schema:   enc.Uint16(buf[6:]),
			Capacity: int(enc.Uint32(buf[24:])),
			Count:    int(enc.Uint32(buf[28:])),
			Checksum: enc.Uint32(buf[32:]),
		},
		bodyLen: int(enc.Uint32(buf[36:])),
		crc:     enc.Uint32(buf[crcOffset:]),
	}
	copy(h.ID[:], buf[8:24])
	return h, nil
}
