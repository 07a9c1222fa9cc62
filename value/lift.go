package value

import (
	"fmt"

	avro "github.com/colvinstream/avrocombinator"
)

// Lift converts a schema-level Default literal into a generic Value, for
// record fields the resolver finds only in the reader schema (spec §4.4,
// §4.5: "Defaults become a separate list... appended after the in-order
// decode").
func Lift(def *avro.Default) (Value, error) {
	if def == nil {
		return Value{}, fmt.Errorf("value: cannot lift a nil default")
	}
	switch def.Kind {
	case avro.DefaultNull:
		return Null(), nil
	case avro.DefaultBool:
		return Bool(def.Bool), nil
	case avro.DefaultInt:
		return Int(def.Int), nil
	case avro.DefaultLong:
		return Long(def.Long), nil
	case avro.DefaultFloat:
		return Float(def.Float), nil
	case avro.DefaultDouble:
		return Double(def.Double), nil
	case avro.DefaultBytes:
		return Bytes(def.Bytes), nil
	case avro.DefaultString:
		return String(def.String), nil
	case avro.DefaultEnum:
		return Enum(0, def.Enum), nil
	case avro.DefaultArray:
		items := make([]Value, 0, len(def.Array))
		for i := range def.Array {
			v, err := Lift(&def.Array[i])
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items), nil
	case avro.DefaultMap:
		pairs := make([]MapEntry, 0, len(def.Map))
		for _, e := range def.Map {
			v, err := Lift(&e.Value)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, MapEntry{Key: e.Key, Value: v})
		}
		return Map(pairs), nil
	case avro.DefaultUnion:
		v, err := Lift(def.Union)
		if err != nil {
			return Value{}, err
		}
		return Union(def.UnionBranch, v), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported default kind %d", def.Kind)
	}
}
