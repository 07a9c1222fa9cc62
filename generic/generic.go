// Package generic decodes writer-encoded Avro bytes into reader-shaped
// value.Values, driven by a resolve.Plan. It is the schema-evolution
// counterpart to package codec's typed, reflection-free combinators: where a
// Codec[T] only ever has to speak one schema, a generic.Decode walks a
// resolved Plan and so can read bytes written against an older or newer
// writer schema than the one the caller wants back.
package generic

import (
	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/resolve"
	"github.com/colvinstream/avrocombinator/value"
	"github.com/colvinstream/avrocombinator/wire"
)

// Decode reads one writer-encoded value off src per plan, returning it
// reshaped to plan's reader schema. src.Err should be checked by the caller
// after decoding; Decode itself never returns an error, mirroring the sticky
// error field convention used throughout package wire and package codec.
func Decode(src *wire.Source, plan *resolve.Plan) value.Value {
	switch plan.Kind {
	case resolve.KNull:
		return value.Null()
	case resolve.KBool:
		return value.Bool(src.ReadBool())
	case resolve.KInt:
		return value.Int(src.ReadInt())
	case resolve.KLong:
		return decodeLong(src, plan.Writer)
	case resolve.KFloat:
		return decodeFloat(src, plan.Writer)
	case resolve.KDouble:
		return decodeDouble(src, plan.Writer)
	case resolve.KBytes:
		return decodeBytes(src, plan.Writer)
	case resolve.KString:
		return decodeString(src, plan.Writer)
	case resolve.KArray:
		return decodeArray(src, plan)
	case resolve.KMap:
		return decodeMap(src, plan)
	case resolve.KRecord:
		return decodeRecord(src, plan)
	case resolve.KEnum:
		return decodeEnum(src, plan)
	case resolve.KFixed:
		return decodeFixed(src, plan)
	case resolve.KUnion:
		return decodeUnion(src, plan)
	case resolve.KUnionUnwrap:
		return decodeUnionUnwrap(src, plan)
	case resolve.KWrapUnion:
		return decodeWrapUnion(src, plan)
	default:
		panic("generic: unknown plan kind")
	}
}

// decodeLong reads whichever writer representation (int or long) the plan
// says produced this value, promoting to the reader's long.
func decodeLong(src *wire.Source, writer avro.Schema) value.Value {
	if writer.Type() == avro.Int {
		return value.Long(int64(src.ReadInt()))
	}
	return value.Long(src.ReadLong())
}

// decodeFloat reads whichever writer representation (int, long or float)
// produced this value, promoting to the reader's float.
func decodeFloat(src *wire.Source, writer avro.Schema) value.Value {
	switch writer.Type() {
	case avro.Int:
		return value.Float(float32(src.ReadInt()))
	case avro.Long:
		return value.Float(float32(src.ReadLong()))
	default:
		return value.Float(src.ReadFloat())
	}
}

// decodeDouble reads whichever writer representation (int, long, float or
// double) produced this value, promoting to the reader's double.
func decodeDouble(src *wire.Source, writer avro.Schema) value.Value {
	switch writer.Type() {
	case avro.Int:
		return value.Double(float64(src.ReadInt()))
	case avro.Long:
		return value.Double(float64(src.ReadLong()))
	case avro.Float:
		return value.Double(float64(src.ReadFloat()))
	default:
		return value.Double(src.ReadDouble())
	}
}

func decodeBytes(src *wire.Source, writer avro.Schema) value.Value {
	if writer.Type() == avro.String {
		return value.Bytes([]byte(src.ReadString()))
	}
	return value.Bytes(src.ReadBytes())
}

func decodeString(src *wire.Source, writer avro.Schema) value.Value {
	if writer.Type() == avro.Bytes {
		return value.String(string(src.ReadBytes()))
	}
	return value.String(src.ReadString())
}

func decodeFixed(src *wire.Source, plan *resolve.Plan) value.Value {
	b := make([]byte, plan.Size)
	src.ReadFixed(b)
	return value.Fixed(b)
}

func decodeArray(src *wire.Source, plan *resolve.Plan) value.Value {
	var items []value.Value
	for {
		count := src.ReadLong()
		if src.Err != nil || count == 0 {
			return value.Array(items)
		}
		if count < 0 {
			src.ReadLong()
			count = -count
		}
		for i := int64(0); i < count; i++ {
			items = append(items, Decode(src, plan.Elem))
		}
	}
}

func decodeMap(src *wire.Source, plan *resolve.Plan) value.Value {
	var pairs []value.MapEntry
	for {
		count := src.ReadLong()
		if src.Err != nil || count == 0 {
			return value.Map(pairs)
		}
		if count < 0 {
			src.ReadLong()
			count = -count
		}
		for i := int64(0); i < count; i++ {
			key := src.ReadString()
			pairs = append(pairs, value.MapEntry{Key: key, Value: Decode(src, plan.Elem)})
		}
	}
}

func decodeRecord(src *wire.Source, plan *resolve.Plan) value.Value {
	fields := make([]value.Value, len(plan.ReaderFieldNames))

	for _, step := range plan.Steps {
		v := Decode(src, step.Plan)
		if step.Kind == resolve.StepMatch {
			fields[step.ReaderIndex] = v
		}
	}

	for _, d := range plan.Defaults {
		lifted, err := value.Lift(d.Default)
		if err != nil {
			if src.Err == nil {
				src.Err = err
			}
			continue
		}
		fields[d.ReaderIndex] = lifted
	}

	out := make([]value.Field, len(fields))
	for i, name := range plan.ReaderFieldNames {
		out[i] = value.Field{Name: name, Value: fields[i]}
	}
	return value.Record(out)
}

func decodeEnum(src *wire.Source, plan *resolve.Plan) value.Value {
	wIdx := int(src.ReadInt())
	if wIdx < 0 || wIdx >= len(plan.SymbolMap) {
		return value.Enum(-1, "")
	}
	rIdx := plan.SymbolMap[wIdx]
	if rIdx < 0 || rIdx >= len(plan.ReaderSymbols) {
		return value.Enum(-1, "")
	}
	return value.Enum(rIdx, plan.ReaderSymbols[rIdx])
}

func decodeUnion(src *wire.Source, plan *resolve.Plan) value.Value {
	wIdx := int(src.ReadInt())
	if wIdx < 0 || wIdx >= len(plan.WriterBranches) {
		return value.Union(-1, value.Null())
	}
	branch := plan.WriterBranches[wIdx]
	v := Decode(src, branch.Plan)
	return value.Union(branch.ReaderBranch, v)
}

func decodeUnionUnwrap(src *wire.Source, plan *resolve.Plan) value.Value {
	wIdx := int(src.ReadInt())
	if wIdx < 0 || wIdx >= len(plan.WriterBranches) {
		return value.Null()
	}
	return Decode(src, plan.WriterBranches[wIdx].Plan)
}

func decodeWrapUnion(src *wire.Source, plan *resolve.Plan) value.Value {
	v := Decode(src, plan.Elem)
	return value.Union(plan.ReaderBranch, v)
}

// DecodeWithSchemas resolves reader against writer and decodes one value
// from b in a single call, for callers that don't need to reuse the Plan
// across many records.
func DecodeWithSchemas(reader, writer avro.Schema, b []byte) (value.Value, error) {
	plan, err := resolve.Resolve(reader, writer)
	if err != nil {
		return value.Value{}, err
	}
	src := wire.NewSource(b)
	v := Decode(src, plan)
	if src.Err != nil {
		return value.Value{}, src.Err
	}
	return v, nil
}
