package codec

import (
	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/wire"
)

type fieldSpec[T any] struct {
	name       string
	doc        string
	aliases    []string
	def        *avro.Default
	schema     avro.Schema
	encode     func(T, *wire.Sink)
	decodeInto func(*T, *wire.Source)
}

// RecordBuilder accumulates fields for a record codec. Fields encode and
// decode in exactly the order they are added; schema-evolution reordering
// is entirely the resolver's job (package resolve), never the codec's.
type RecordBuilder[T any] struct {
	name      string
	namespace string
	doc       string
	aliases   []string
	fields    []fieldSpec[T]
}

// Record starts a builder for a record codec named name.
func Record[T any](name string) *RecordBuilder[T] {
	return &RecordBuilder[T]{name: name}
}

// Namespace sets the record's namespace.
func (b *RecordBuilder[T]) Namespace(ns string) *RecordBuilder[T] {
	b.namespace = ns
	return b
}

// Doc sets the record's documentation string.
func (b *RecordBuilder[T]) Doc(doc string) *RecordBuilder[T] {
	b.doc = doc
	return b
}

// Aliases sets the record's alternate names.
func (b *RecordBuilder[T]) Aliases(aliases ...string) *RecordBuilder[T] {
	b.aliases = aliases
	return b
}

// Field adds a required field to the record, using get to read the field's
// value off a T when encoding and set to write it back when decoding.
func Field[T, V any](b *RecordBuilder[T], name string, fc Codec[V], get func(T) V, set func(*T, V)) *RecordBuilder[T] {
	b.fields = append(b.fields, fieldSpec[T]{
		name:   name,
		schema: fc.Schema,
		encode: func(t T, s *wire.Sink) { fc.Encode(get(t), s) },
		decodeInto: func(t *T, src *wire.Source) {
			set(t, fc.Decode(src))
		},
	})
	return b
}

// FieldOpt adds an optional field: its wire schema is option(fc) (i.e.
// union(null, T)) and it carries a null default, so a reader schema with
// this field can resolve against a writer that omits it.
func FieldOpt[T, V any](b *RecordBuilder[T], name string, fc Codec[V], get func(T) *V, set func(*T, *V)) *RecordBuilder[T] {
	opt := Option(fc)
	b.fields = append(b.fields, fieldSpec[T]{
		name:   name,
		schema: opt.Schema,
		def:    avro.NullDefault(),
		encode: func(t T, s *wire.Sink) { opt.Encode(get(t), s) },
		decodeInto: func(t *T, src *wire.Source) {
			set(t, opt.Decode(src))
		},
	})
	return b
}

// FieldDoc attaches documentation to the most recently added field.
func (b *RecordBuilder[T]) FieldDoc(doc string) *RecordBuilder[T] {
	if n := len(b.fields); n > 0 {
		b.fields[n-1].doc = doc
	}
	return b
}

// FieldAliases attaches alternate names to the most recently added field.
func (b *RecordBuilder[T]) FieldAliases(aliases ...string) *RecordBuilder[T] {
	if n := len(b.fields); n > 0 {
		b.fields[n-1].aliases = aliases
	}
	return b
}

// Finish fixes the builder's arity and returns the assembled record codec.
func (b *RecordBuilder[T]) Finish() (Codec[T], error) {
	avroFields := make([]*avro.Field, 0, len(b.fields))
	for _, f := range b.fields {
		af, err := avro.NewField(f.name, f.schema, f.doc, f.def, f.aliases)
		if err != nil {
			return Codec[T]{}, err
		}
		avroFields = append(avroFields, af)
	}
	schema, err := avro.NewRecordSchema(b.name, b.namespace, b.doc, b.aliases, avroFields)
	if err != nil {
		return Codec[T]{}, err
	}

	fields := b.fields
	return Codec[T]{
		Schema: schema,
		Encode: func(v T, s *wire.Sink) {
			for _, f := range fields {
				f.encode(v, s)
			}
		},
		Decode: func(src *wire.Source) T {
			var v T
			for _, f := range fields {
				f.decodeInto(&v, src)
			}
			return v
		},
	}, nil
}

// MustFinish is Finish, panicking on a schema construction error.
func (b *RecordBuilder[T]) MustFinish() Codec[T] {
	c, err := b.Finish()
	if err != nil {
		panic(err)
	}
	return c
}
