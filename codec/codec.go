// Package codec implements the combinator API: callers compose a Codec[T] –
// a bundled schema plus a matched encode/decode pair – out of the
// primitives in this package, then use Marshal/Unmarshal to move values to
// and from the Avro wire format. The codec layer never materializes a
// generic/dynamic value; that is reserved for the schema-evolution path in
// packages resolve and generic.
package codec

import (
	"fmt"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

// Codec bundles a schema with a matched encode/decode pair for Go type T.
// Codecs are immutable once constructed and safe for concurrent read-only
// use (concurrent Marshal/Unmarshal calls against the same Codec are fine;
// they do not share mutable state).
type Codec[T any] struct {
	Schema avro.Schema
	Encode func(T, *wire.Sink)
	Decode func(*wire.Source) T
}

// Marshal encodes v with c and returns the wire bytes.
func Marshal[T any](c Codec[T], v T) []byte {
	s := wire.NewSink(64)
	c.Encode(v, s)
	return s.Bytes()
}

// Unmarshal decodes wire bytes b with c. It returns an error wrapping
// wire.ErrEndOfInput (or another Source error) if b does not hold a
// complete, well-formed value for c's schema.
func Unmarshal[T any](c Codec[T], b []byte) (T, error) {
	src := wire.NewSource(b)
	v := c.Decode(src)
	if src.Err != nil {
		var zero T
		return zero, fmt.Errorf("codec: unmarshal: %w", src.Err)
	}
	return v, nil
}

// Null is the unit type encoded/decoded by the NullCodec.
type Null struct{}

// NullCodec is the codec for the Avro null type: it writes and reads zero
// bytes.
func NullCodec() Codec[Null] {
	return Codec[Null]{
		Schema: avro.NewPrimitiveSchema(avro.Null, ""),
		Encode: func(Null, *wire.Sink) {},
		Decode: func(*wire.Source) Null { return Null{} },
	}
}

// BoolCodec is the codec for the Avro boolean type.
func BoolCodec() Codec[bool] {
	return Codec[bool]{
		Schema: avro.NewPrimitiveSchema(avro.Boolean, ""),
		Encode: func(v bool, s *wire.Sink) { s.WriteBool(v) },
		Decode: func(src *wire.Source) bool { return src.ReadBool() },
	}
}

// IntCodec is the codec for the Avro int type.
func IntCodec() Codec[int32] {
	return Codec[int32]{
		Schema: avro.NewPrimitiveSchema(avro.Int, ""),
		Encode: func(v int32, s *wire.Sink) { s.WriteInt(v) },
		Decode: func(src *wire.Source) int32 { return src.ReadInt() },
	}
}

// LongCodec is the codec for the Avro long type.
func LongCodec() Codec[int64] {
	return Codec[int64]{
		Schema: avro.NewPrimitiveSchema(avro.Long, ""),
		Encode: func(v int64, s *wire.Sink) { s.WriteLong(v) },
		Decode: func(src *wire.Source) int64 { return src.ReadLong() },
	}
}

// FloatCodec is the codec for the Avro float type.
func FloatCodec() Codec[float32] {
	return Codec[float32]{
		Schema: avro.NewPrimitiveSchema(avro.Float, ""),
		Encode: func(v float32, s *wire.Sink) { s.WriteFloat(v) },
		Decode: func(src *wire.Source) float32 { return src.ReadFloat() },
	}
}

// DoubleCodec is the codec for the Avro double type.
func DoubleCodec() Codec[float64] {
	return Codec[float64]{
		Schema: avro.NewPrimitiveSchema(avro.Double, ""),
		Encode: func(v float64, s *wire.Sink) { s.WriteDouble(v) },
		Decode: func(src *wire.Source) float64 { return src.ReadDouble() },
	}
}

// BytesCodec is the codec for the Avro bytes type.
func BytesCodec() Codec[[]byte] {
	return Codec[[]byte]{
		Schema: avro.NewPrimitiveSchema(avro.Bytes, ""),
		Encode: func(v []byte, s *wire.Sink) { s.WriteBytes(v) },
		Decode: func(src *wire.Source) []byte { return src.ReadBytes() },
	}
}

// StringCodec is the codec for the Avro string type.
func StringCodec() Codec[string] {
	return Codec[string]{
		Schema: avro.NewPrimitiveSchema(avro.String, ""),
		Encode: func(v string, s *wire.Sink) { s.WriteString(v) },
		Decode: func(src *wire.Source) string { return src.ReadString() },
	}
}

// WithLogical re-tags c's schema with a logical type, leaving the wire
// encoding unchanged (logical types are a schema-level annotation only).
func WithLogical[T any](c Codec[T], logical avro.LogicalType) Codec[T] {
	c.Schema = avro.WithLogical(c.Schema, logical)
	return c
}
