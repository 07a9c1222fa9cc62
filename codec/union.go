package codec

import (
	"fmt"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

// Value is the erased representation a union codec decodes to: the
// 0-based index of the branch that matched, and the branch's decoded value
// boxed as any.
type Value struct {
	Branch int
	Value  any
}

// branch is a single erased branch of a Union codec.
type branch struct {
	schema    avro.Schema
	encodeAny func(any, *wire.Sink)
	decodeAny func(*wire.Source) any
}

// Branch erases c to a union branch. The branch's static type T is boxed
// into Value.Value as any on decode, and type-asserted back out on encode;
// passing a Value whose Value field does not hold a T for the branch it
// names panics, since that is a programmer error, not a data error.
func Branch[T any](c Codec[T]) branch {
	return branch{
		schema: c.Schema,
		encodeAny: func(v any, s *wire.Sink) {
			c.Encode(v.(T), s)
		},
		decodeAny: func(src *wire.Source) any {
			return c.Decode(src)
		},
	}
}

// Union returns a codec over an ordered, erased set of branch codecs.
// Encode writes the branch index (a non-negative varint long) followed by
// the branch's own encoding; Decode mirrors.
func Union(branches ...branch) (Codec[Value], error) {
	schemas := make([]avro.Schema, len(branches))
	for i, b := range branches {
		schemas[i] = b.schema
	}
	schema, err := avro.NewUnionSchema(schemas)
	if err != nil {
		return Codec[Value]{}, err
	}
	return Codec[Value]{
		Schema: schema,
		Encode: func(v Value, s *wire.Sink) {
			if v.Branch < 0 || v.Branch >= len(branches) {
				panic(fmt.Sprintf("codec: union: branch index %d out of range [0,%d)", v.Branch, len(branches)))
			}
			s.WriteLong(int64(v.Branch))
			branches[v.Branch].encodeAny(v.Value, s)
		},
		Decode: func(src *wire.Source) Value {
			idx := src.ReadLong()
			if src.Err != nil {
				return Value{}
			}
			if idx < 0 || int(idx) >= len(branches) {
				src.Err = fmt.Errorf("wire: union branch index %d out of range", idx)
				return Value{}
			}
			return Value{Branch: int(idx), Value: branches[idx].decodeAny(src)}
		},
	}, nil
}

// MustUnion is Union, panicking on a schema construction error (e.g.
// duplicate branch types).
func MustUnion(branches ...branch) Codec[Value] {
	c, err := Union(branches...)
	if err != nil {
		panic(err)
	}
	return c
}

// Option adapts inner into union(null, T) by the option-combinator
// convention: a nil pointer is the null branch (index 0), a non-nil pointer
// is the value branch (index 1).
func Option[T any](inner Codec[T]) Codec[*T] {
	schema, err := avro.NewUnionSchema([]avro.Schema{avro.NewPrimitiveSchema(avro.Null, ""), inner.Schema})
	if err != nil {
		panic(err)
	}
	return Codec[*T]{
		Schema: schema,
		Encode: func(v *T, s *wire.Sink) {
			if v == nil {
				s.WriteLong(0)
				return
			}
			s.WriteLong(1)
			inner.Encode(*v, s)
		},
		Decode: func(src *wire.Source) *T {
			idx := src.ReadLong()
			if src.Err != nil {
				return nil
			}
			switch idx {
			case 0:
				return nil
			case 1:
				v := inner.Decode(src)
				return &v
			default:
				src.Err = fmt.Errorf("wire: option branch index %d out of range", idx)
				return nil
			}
		},
	}
}
