package avro

import "fmt"

// DefaultKind tags the active variant of a Default literal.
type DefaultKind int

// Default variant tags.
const (
	DefaultNull DefaultKind = iota
	DefaultBool
	DefaultInt
	DefaultLong
	DefaultFloat
	DefaultDouble
	DefaultBytes
	DefaultString
	DefaultEnum
	DefaultArray
	DefaultMap
	DefaultUnion
)

// MapEntry is one key/value pair of a Default of kind DefaultMap.
type MapEntry struct {
	Key   string
	Value Default
}

// Default is a closed sum over the schema-level literals a record field or
// enum may declare as its default value (spec §3). Only one set of fields is
// meaningful at a time, selected by Kind.
type Default struct {
	Kind DefaultKind

	Bool   bool
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Bytes  []byte
	String string
	Enum   string

	Array []Default
	Map   []MapEntry

	// UnionBranch and Union are populated for DefaultUnion: the default is
	// always matched against the union's first branch schema, so
	// UnionBranch is always 0, but the field is kept explicit for clarity
	// at the call sites in the resolver.
	UnionBranch int
	Union       *Default
}

// NullDefault is the default literal for null.
func NullDefault() *Default { return &Default{Kind: DefaultNull} }

// BoolDefault returns a bool default literal.
func BoolDefault(b bool) *Default { return &Default{Kind: DefaultBool, Bool: b} }

// IntDefault returns an int default literal.
func IntDefault(i int32) *Default { return &Default{Kind: DefaultInt, Int: i} }

// LongDefault returns a long default literal.
func LongDefault(i int64) *Default { return &Default{Kind: DefaultLong, Long: i} }

// FloatDefault returns a float default literal.
func FloatDefault(f float32) *Default { return &Default{Kind: DefaultFloat, Float: f} }

// DoubleDefault returns a double default literal.
func DoubleDefault(f float64) *Default { return &Default{Kind: DefaultDouble, Double: f} }

// BytesDefault returns a bytes default literal.
func BytesDefault(b []byte) *Default { return &Default{Kind: DefaultBytes, Bytes: b} }

// StringDefault returns a string default literal.
func StringDefault(s string) *Default { return &Default{Kind: DefaultString, String: s} }

// EnumDefault returns an enum-symbol default literal.
func EnumDefault(sym string) *Default { return &Default{Kind: DefaultEnum, Enum: sym} }

// ArrayDefault returns an array default literal.
func ArrayDefault(items []Default) *Default { return &Default{Kind: DefaultArray, Array: items} }

// MapDefault returns a map default literal.
func MapDefault(pairs []MapEntry) *Default { return &Default{Kind: DefaultMap, Map: pairs} }

// UnionDefault returns a union default literal. Per the Avro spec a union
// field's default is always matched against the union's first branch.
func UnionDefault(v *Default) *Default { return &Default{Kind: DefaultUnion, UnionBranch: 0, Union: v} }

func (d *Default) String() string {
	if d == nil {
		return "<no default>"
	}
	switch d.Kind {
	case DefaultNull:
		return "null"
	case DefaultBool:
		return fmt.Sprintf("%v", d.Bool)
	case DefaultInt:
		return fmt.Sprintf("%d", d.Int)
	case DefaultLong:
		return fmt.Sprintf("%d", d.Long)
	case DefaultFloat:
		return fmt.Sprintf("%v", d.Float)
	case DefaultDouble:
		return fmt.Sprintf("%v", d.Double)
	case DefaultBytes:
		return fmt.Sprintf("%q", d.Bytes)
	case DefaultString:
		return fmt.Sprintf("%q", d.String)
	case DefaultEnum:
		return d.Enum
	case DefaultArray:
		return fmt.Sprintf("%v", d.Array)
	case DefaultMap:
		return fmt.Sprintf("%v", d.Map)
	case DefaultUnion:
		return d.Union.String()
	default:
		return "<invalid default>"
	}
}
