package codec

import (
	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

// Recursive builds a codec whose own definition refers to itself (e.g. a
// tree node record with a field of the same record type). It allocates a
// mutable backpatch cell: a placeholder codec closing over the cell is
// handed to build, which may embed it anywhere (including inside the very
// record it is constructing); once build returns, the cell is backfilled
// with the real encode/decode/schema, and every copy of the placeholder
// that was captured along the way starts dereferencing the real
// implementation. name/namespace must match the name build ultimately gives
// the returned schema, since they seed the forward reference used by
// nested self-occurrences before the body exists.
func Recursive[T any](name, namespace string, build func(self Codec[T]) Codec[T]) (Codec[T], error) {
	placeholder, err := avro.NewNamedPlaceholder(name, namespace)
	if err != nil {
		return Codec[T]{}, err
	}

	var (
		encodeCell func(T, *wire.Sink)
		decodeCell func(*wire.Source) T
	)
	self := Codec[T]{
		Schema: placeholder,
		Encode: func(v T, s *wire.Sink) { encodeCell(v, s) },
		Decode: func(src *wire.Source) T { return decodeCell(src) },
	}

	actual := build(self)

	actualNamed, ok := actual.Schema.(avro.NamedSchema)
	if !ok {
		actualNamed = namedSchemaOrRef(actual.Schema)
	}
	placeholder.Resolve(actualNamed)
	encodeCell = actual.Encode
	decodeCell = actual.Decode

	return self, nil
}

// MustRecursive is Recursive, panicking on a schema construction error.
func MustRecursive[T any](name, namespace string, build func(self Codec[T]) Codec[T]) Codec[T] {
	c, err := Recursive[T](name, namespace, build)
	if err != nil {
		panic(err)
	}
	return c
}

func namedSchemaOrRef(s avro.Schema) avro.NamedSchema {
	if ref, ok := s.(*avro.RefSchema); ok {
		return ref.Schema()
	}
	panic("codec: Recursive body must resolve to a named (record/enum/fixed) schema")
}
