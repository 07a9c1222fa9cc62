package codec

import (
	"fmt"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

// Fixed returns a codec for an exact-size byte sequence with no length
// prefix. Encode panics if the value's length does not match size, since a
// length mismatch means the caller built an invalid value for this schema,
// not a recoverable runtime condition.
func Fixed(name, namespace string, size int) (Codec[[]byte], error) {
	schema, err := avro.NewFixedSchema(name, namespace, size, nil, "")
	if err != nil {
		return Codec[[]byte]{}, err
	}
	return Codec[[]byte]{
		Schema: schema,
		Encode: func(v []byte, s *wire.Sink) {
			if len(v) != size {
				panic(fmt.Sprintf("codec: fixed %q: value has length %d, want %d", name, len(v), size))
			}
			s.WriteFixed(v)
		},
		Decode: func(src *wire.Source) []byte {
			b := make([]byte, size)
			src.ReadFixed(b)
			return b
		},
	}, nil
}

// MustFixed is Fixed, panicking on a schema construction error.
func MustFixed(name, namespace string, size int) Codec[[]byte] {
	c, err := Fixed(name, namespace, size)
	if err != nil {
		panic(err)
	}
	return c
}
