package avro

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ParseError reports a JSON schema parse failure at a given document
// position (path), e.g. ".fields[2].type".
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("avro: parse error at %s: %s", e.Path, e.Reason)
}

// Parse parses a JSON Avro schema document.
func Parse(doc string) (Schema, error) {
	var tree any
	if err := jsoniter.UnmarshalFromString(doc, &tree); err != nil {
		return nil, &ParseError{Path: "$", Reason: err.Error()}
	}
	return (&schemaParser{}).parse(tree, "", "$")
}

// MustParse parses doc and panics on failure. Intended for package-level
// schema constants built from literal JSON, mirroring the teacher's
// MustParse used for its own OCF header schema.
func MustParse(doc string) Schema {
	s, err := Parse(doc)
	if err != nil {
		panic(err)
	}
	return s
}

type schemaParser struct{}

func (p *schemaParser) parse(node any, namespace, path string) (Schema, error) {
	switch v := node.(type) {
	case string:
		return p.parsePrimitiveName(v, path)
	case []any:
		return p.parseUnion(v, namespace, path)
	case map[string]any:
		return p.parseObject(v, namespace, path)
	default:
		return nil, &ParseError{Path: path, Reason: "expected string, array or object"}
	}
}

func (p *schemaParser) parsePrimitiveName(v, path string) (Schema, error) {
	switch Type(v) {
	case Null, Boolean, Int, Long, Float, Double, Bytes, String:
		return NewPrimitiveSchema(Type(v), ""), nil
	default:
		return nil, &ParseError{Path: path, Reason: fmt.Sprintf("unknown type name %q", v)}
	}
}

func (p *schemaParser) parseUnion(items []any, namespace, path string) (Schema, error) {
	branches := make([]Schema, 0, len(items))
	for i, item := range items {
		s, err := p.parse(item, namespace, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		branches = append(branches, s)
	}
	u, err := NewUnionSchema(branches)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	return u, nil
}

func str(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func strSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (p *schemaParser) parseObject(m map[string]any, namespace, path string) (Schema, error) {
	typ, _ := m["type"].(string)

	switch Type(typ) {
	case "":
		return nil, &ParseError{Path: path, Reason: `missing "type"`}

	case Null, Boolean, Int, Long, Float, Double, Bytes, String:
		logical := LogicalType(str(m, "logicalType"))
		return NewPrimitiveSchema(Type(typ), logical), nil

	case Array:
		itemsNode, ok := m["items"]
		if !ok {
			return nil, &ParseError{Path: path, Reason: `array missing "items"`}
		}
		items, err := p.parse(itemsNode, namespace, path+".items")
		if err != nil {
			return nil, err
		}
		return NewArraySchema(items), nil

	case Map:
		valuesNode, ok := m["values"]
		if !ok {
			return nil, &ParseError{Path: path, Reason: `map missing "values"`}
		}
		values, err := p.parse(valuesNode, namespace, path+".values")
		if err != nil {
			return nil, err
		}
		return NewMapSchema(values), nil

	case Record:
		return p.parseRecord(m, namespace, path)

	case Enum:
		return p.parseEnum(m, namespace, path)

	case Fixed:
		return p.parseFixed(m, namespace, path)

	default:
		// Not a recognized inline definition. Named-type references are
		// not resolved by this parser, so any other type name is rejected.
		return nil, &ParseError{Path: path, Reason: fmt.Sprintf("unknown type %q", typ)}
	}
}

func recordNamespace(m map[string]any, namespace string) string {
	if ns, ok := m["namespace"].(string); ok {
		return ns
	}
	return namespace
}

func (p *schemaParser) parseRecord(m map[string]any, namespace, path string) (Schema, error) {
	ns := recordNamespace(m, namespace)

	fieldsRaw, _ := m["fields"].([]any)
	fields := make([]*Field, 0, len(fieldsRaw))
	for i, fr := range fieldsRaw {
		fm, ok := fr.(map[string]any)
		if !ok {
			return nil, &ParseError{Path: fmt.Sprintf("%s.fields[%d]", path, i), Reason: "field must be an object"}
		}
		fieldName := str(fm, "name")
		typeNode, ok := fm["type"]
		if !ok {
			return nil, &ParseError{Path: fmt.Sprintf("%s.fields[%d]", path, i), Reason: `missing "type"`}
		}
		fieldPath := fmt.Sprintf("%s.fields[%d].type", path, i)
		fieldSchema, err := p.parse(typeNode, ns, fieldPath)
		if err != nil {
			return nil, err
		}

		var def *Default
		if raw, ok := fm["default"]; ok {
			d, err := parseDefault(raw, fieldSchema)
			if err != nil {
				return nil, &ParseError{Path: fieldPath, Reason: err.Error()}
			}
			def = d
		}

		field, err := NewField(fieldName, fieldSchema, str(fm, "doc"), def, strSlice(fm, "aliases"))
		if err != nil {
			return nil, &ParseError{Path: fieldPath, Reason: err.Error()}
		}
		fields = append(fields, field)
	}

	rec, err := NewRecordSchema(str(m, "name"), ns, str(m, "doc"), strSlice(m, "aliases"), fields)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	return rec, nil
}

func (p *schemaParser) parseEnum(m map[string]any, namespace, path string) (Schema, error) {
	ns := recordNamespace(m, namespace)
	def, hasDef := m["default"].(string)
	e, err := NewEnumSchema(str(m, "name"), ns, str(m, "doc"), strSlice(m, "aliases"), strSlice(m, "symbols"), def, hasDef)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	return e, nil
}

func (p *schemaParser) parseFixed(m map[string]any, namespace, path string) (Schema, error) {
	ns := recordNamespace(m, namespace)
	size, _ := m["size"].(float64)
	logical := LogicalType(str(m, "logicalType"))
	f, err := NewFixedSchema(str(m, "name"), ns, int(size), strSlice(m, "aliases"), logical)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	return f, nil
}

// parseDefault parses a JSON default literal against its field's schema.
// For a union schema the default is matched against the first branch, per
// the Avro spec.
func parseDefault(raw any, schema Schema) (*Default, error) {
	if u, ok := schema.(*UnionSchema); ok {
		if len(u.types) == 0 {
			return nil, fmt.Errorf("union has no branches")
		}
		inner, err := parseDefault(raw, u.types[0])
		if err != nil {
			return nil, err
		}
		return UnionDefault(inner), nil
	}

	switch schema.Type() {
	case Null:
		return NullDefault(), nil
	case Boolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool default")
		}
		return BoolDefault(b), nil
	case Int:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("expected numeric default")
		}
		return IntDefault(int32(f)), nil
	case Long:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("expected numeric default")
		}
		return LongDefault(int64(f)), nil
	case Float:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("expected numeric default")
		}
		return FloatDefault(float32(f)), nil
	case Double:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("expected numeric default")
		}
		return DoubleDefault(f), nil
	case Bytes:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string default for bytes")
		}
		return BytesDefault([]byte(s)), nil
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string default")
		}
		return StringDefault(s), nil
	case Enum:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string default for enum")
		}
		return EnumDefault(s), nil
	case Array:
		arr, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("expected array default")
		}
		as := schema.(*ArraySchema)
		out := make([]Default, 0, len(arr))
		for _, item := range arr {
			d, err := parseDefault(item, as.items)
			if err != nil {
				return nil, err
			}
			out = append(out, *d)
		}
		return ArrayDefault(out), nil
	case Map:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected map default")
		}
		ms := schema.(*MapSchema)
		out := make([]MapEntry, 0, len(obj))
		for k, v := range obj {
			d, err := parseDefault(v, ms.values)
			if err != nil {
				return nil, err
			}
			out = append(out, MapEntry{Key: k, Value: *d})
		}
		return MapDefault(out), nil
	case Fixed:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string default for fixed")
		}
		return BytesDefault([]byte(s)), nil
	default:
		return nil, fmt.Errorf("unsupported default for type %s", schema.Type())
	}
}
