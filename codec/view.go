package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrValueTooLong = errors.New("codec: value exceeds field max length")

var enc = binary.LittleEndian

// View is a window over one record inside a larger buffer.
// It holds no state besides the buffer and the record offset.
type View struct {
	buf []byte
	off int
}

func Wrap(buf []byte, offset int) View {
	return View{buf: buf, off: offset}
}

// Reposition moves the window onto another record of the same buffer.
func (v *View) Reposition(offset int) {
	v.off = offset
}

func (v View) Offset() int {
	return v.off
}

// Fits reports whether a whole record starting at the view offset lies within the buffer.
func (v View) Fits() bool {
	return v.off >= 0 && v.off+RecordLength <= len(v.buf)
}

func (v View) WriteHeader() {
	enc.PutUint16(v.buf[v.off+FieldTypeID.Offset:], RecordTypeID)
	enc.PutUint16(v.buf[v.off+FieldVersion.Offset:], SchemaVersion)
}

func (v View) TypeID() uint16 {
	return enc.Uint16(v.buf[v.off+FieldTypeID.Offset:])
}

func (v View) Version() uint16 {
	return enc.Uint16(v.buf[v.off+FieldVersion.Offset:])
}

func (v View) Int32(f Field) int32 {
	return int32(enc.Uint32(v.buf[v.off+f.Offset:]))
}

func (v View) PutInt32(f Field, value int32) {
	enc.PutUint32(v.buf[v.off+f.Offset:], uint32(value))
}

func (v View) Int64(f Field) int64 {
	return int64(enc.Uint64(v.buf[v.off+f.Offset:]))
}

func (v View) PutInt64(f Field, value int64) {
	enc.PutUint64(v.buf[v.off+f.Offset:], uint64(value))
}

// String reads a length prefixed text field. A corrupt length is clamped to the field bounds.
func (v View) String(f Field) string {
	start := v.off + f.Offset
	n := int(int32(enc.Uint32(v.buf[start:])))
	if n < 0 {
		n = 0
	}
	if n > f.MaxLength {
		n = f.MaxLength
	}
	return string(v.buf[start+lengthPrefix : start+lengthPrefix+n])
}

// PutString writes a text field, zero filling the unused tail so equal values
// always produce equal bytes.
func (v View) PutString(f Field, value string) error {
	if len(value) > f.MaxLength {
		return fmt.Errorf("%w: %s holds at most %d bytes, got %d", ErrValueTooLong, f.Name, f.MaxLength, len(value))
	}
	start := v.off + f.Offset
	enc.PutUint32(v.buf[start:], uint32(len(value)))
	data := v.buf[start+lengthPrefix : start+lengthPrefix+f.MaxLength]
	n := copy(data, value)
	clear(data[n:])
	return nil
}
