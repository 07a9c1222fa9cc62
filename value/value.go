// Package value implements the generic Value sum used only by the
// schema-evolution decode path (package generic): the typed codec path in
// package codec never materializes one.
package value

import "fmt"

// Kind tags the active variant of a Value.
type Kind int

// Value variant tags.
const (
	KNull Kind = iota
	KBool
	KInt
	KLong
	KFloat
	KDouble
	KBytes
	KString
	KArray
	KMap
	KRecord
	KEnum
	KUnion
	KFixed
)

// Field is one (name, value) pair of a KRecord Value, in reader field order.
type Field struct {
	Name  string
	Value Value
}

// MapEntry is one (key, value) pair of a KMap Value.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is the dynamic sum over every Avro value shape, produced by
// package generic when decoding against a resolved read plan.
type Value struct {
	Kind Kind

	Bool   bool
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Bytes  []byte
	String string

	Array []Value
	Map   []MapEntry

	Record []Field

	// EnumIndex/EnumSymbol are the reader's symbol index and text.
	EnumIndex  int
	EnumSymbol string

	// UnionBranch/UnionValue are the reader's branch index and the
	// decoded value of that branch.
	UnionBranch int
	UnionValue  *Value
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KNull} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{Kind: KBool, Bool: b} }

// Int returns an int Value.
func Int(i int32) Value { return Value{Kind: KInt, Int: i} }

// Long returns a long Value.
func Long(i int64) Value { return Value{Kind: KLong, Long: i} }

// Float returns a float Value.
func Float(f float32) Value { return Value{Kind: KFloat, Float: f} }

// Double returns a double Value.
func Double(f float64) Value { return Value{Kind: KDouble, Double: f} }

// Bytes returns a bytes Value.
func Bytes(b []byte) Value { return Value{Kind: KBytes, Bytes: b} }

// String returns a string Value.
func String(s string) Value { return Value{Kind: KString, String: s} }

// Fixed returns a fixed Value.
func Fixed(b []byte) Value { return Value{Kind: KFixed, Bytes: b} }

// Array returns an array Value.
func Array(items []Value) Value { return Value{Kind: KArray, Array: items} }

// Map returns a map Value.
func Map(pairs []MapEntry) Value { return Value{Kind: KMap, Map: pairs} }

// Record returns a record Value: pairs in reader field order.
func Record(fields []Field) Value { return Value{Kind: KRecord, Record: fields} }

// Enum returns an enum Value.
func Enum(idx int, symbol string) Value { return Value{Kind: KEnum, EnumIndex: idx, EnumSymbol: symbol} }

// Union returns a union Value.
func Union(branch int, v Value) Value { return Value{Kind: KUnion, UnionBranch: branch, UnionValue: &v} }

// FieldByName returns the named field of a KRecord Value, if present.
func (v Value) FieldByName(name string) (Value, bool) {
	for _, f := range v.Record {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Describe renders v for diagnostics. Named Describe rather than String
// since Value already has a String field holding the KString payload.
func (v Value) Describe() string {
	switch v.Kind {
	case KNull:
		return "null"
	case KBool:
		return fmt.Sprintf("%v", v.Bool)
	case KInt:
		return fmt.Sprintf("%d", v.Int)
	case KLong:
		return fmt.Sprintf("%d", v.Long)
	case KFloat:
		return fmt.Sprintf("%v", v.Float)
	case KDouble:
		return fmt.Sprintf("%v", v.Double)
	case KBytes, KFixed:
		return fmt.Sprintf("%x", v.Bytes)
	case KString:
		return v.String
	case KArray:
		return fmt.Sprintf("%v", v.Array)
	case KMap:
		return fmt.Sprintf("%v", v.Map)
	case KRecord:
		return fmt.Sprintf("%v", v.Record)
	case KEnum:
		return v.EnumSymbol
	case KUnion:
		return fmt.Sprintf("union(%d)=%v", v.UnionBranch, v.UnionValue)
	default:
		return "<invalid value>"
	}
}
