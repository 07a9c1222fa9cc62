package codec

import (
	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

// Map returns a codec for a string-keyed homogeneous map, using the same
// block framing as Array with each item prefixed by its key.
func Map[T any](elem Codec[T]) Codec[map[string]T] {
	return Codec[map[string]T]{
		Schema: avro.NewMapSchema(elem.Schema),
		Encode: func(v map[string]T, s *wire.Sink) {
			if len(v) > 0 {
				s.WriteLong(int64(len(v)))
				for k, item := range v {
					s.WriteString(k)
					elem.Encode(item, s)
				}
			}
			s.WriteLong(0)
		},
		Decode: func(src *wire.Source) map[string]T {
			out := map[string]T{}
			for {
				count := src.ReadLong()
				if src.Err != nil || count == 0 {
					return out
				}
				if count < 0 {
					src.ReadLong()
					count = -count
				}
				for i := int64(0); i < count; i++ {
					k := src.ReadString()
					out[k] = elem.Decode(src)
				}
			}
		},
	}
}
