// Package wire implements the Avro binary encoding primitives: zig-zag
// varints, little-endian floats, and length-prefixed bytes/strings.
package wire

import (
	"encoding/binary"
	"math"
)

// Sink is a grow-only byte accumulator written to by codec encoders.
type Sink struct {
	buf []byte
}

// NewSink returns an empty Sink with the given initial capacity hint.
func NewSink(capHint int) *Sink {
	return &Sink{buf: make([]byte, 0, capHint)}
}

// Bytes returns the bytes written so far. The slice is owned by the Sink and
// is invalidated by further writes.
func (s *Sink) Bytes() []byte {
	return s.buf
}

// Len returns the number of bytes written so far.
func (s *Sink) Len() int {
	return len(s.buf)
}

// Reset empties the Sink for reuse, keeping the underlying array.
func (s *Sink) Reset() {
	s.buf = s.buf[:0]
}

// WriteNull writes the zero-byte null encoding.
func (s *Sink) WriteNull() {}

// WriteBool writes a single 0x00/0x01 byte.
func (s *Sink) WriteBool(b bool) {
	if b {
		s.buf = append(s.buf, 0x01)
		return
	}
	s.buf = append(s.buf, 0x00)
}

// WriteInt zig-zag varint encodes a 32-bit int, routed through the 64-bit path.
func (s *Sink) WriteInt(i int32) {
	s.WriteLong(int64(i))
}

// WriteLong zig-zag varint encodes a 64-bit int.
func (s *Sink) WriteLong(i int64) {
	zz := uint64(i<<1) ^ uint64(i>>63)
	s.writeVarint(zz)
}

func (s *Sink) writeVarint(v uint64) {
	for v >= 0x80 {
		s.buf = append(s.buf, byte(v)|0x80)
		v >>= 7
	}
	s.buf = append(s.buf, byte(v))
}

// WriteFloat writes an IEEE-754 little-endian 4-byte float.
func (s *Sink) WriteFloat(f float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	s.buf = append(s.buf, b[:]...)
}

// WriteDouble writes an IEEE-754 little-endian 8-byte double.
func (s *Sink) WriteDouble(f float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	s.buf = append(s.buf, b[:]...)
}

// WriteBytes writes a long length prefix followed by the raw payload.
func (s *Sink) WriteBytes(b []byte) {
	s.WriteLong(int64(len(b)))
	s.buf = append(s.buf, b...)
}

// WriteString writes a long length prefix followed by the raw UTF-8 payload.
func (s *Sink) WriteString(v string) {
	s.WriteLong(int64(len(v)))
	s.buf = append(s.buf, v...)
}

// WriteFixed writes exactly len(b) raw bytes with no length prefix. The
// caller is responsible for matching the fixed schema's declared size.
func (s *Sink) WriteFixed(b []byte) {
	s.buf = append(s.buf, b...)
}

// WriteRaw appends already-encoded bytes verbatim (used by the OCF encoder
// to append a compressed block payload).
func (s *Sink) WriteRaw(b []byte) {
	s.buf = append(s.buf, b...)
}
