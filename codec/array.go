package codec

import (
	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

// Array returns a codec for a homogeneous sequence. Encode emits the whole
// sequence as a single block followed by the zero-count terminator (an
// empty sequence is just the terminator), matching the teacher's
// non-chunked array codec. Decode accepts any number of blocks.
func Array[T any](elem Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Schema: avro.NewArraySchema(elem.Schema),
		Encode: func(v []T, s *wire.Sink) {
			if len(v) > 0 {
				s.WriteLong(int64(len(v)))
				for _, item := range v {
					elem.Encode(item, s)
				}
			}
			s.WriteLong(0)
		},
		Decode: func(src *wire.Source) []T {
			var out []T
			for {
				count := src.ReadLong()
				if src.Err != nil || count == 0 {
					return out
				}
				if count < 0 {
					// Negative-count block: a byte-size hint follows,
					// used by other Avro implementations to let a reader
					// skip the block without decoding it. This codec
					// always decodes, so the hint is read and discarded.
					src.ReadLong()
					count = -count
				}
				for i := int64(0); i < count; i++ {
					out = append(out, elem.Decode(src))
				}
			}
		},
	}
}
