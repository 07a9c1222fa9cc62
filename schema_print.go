package avro

import (
	"bytes"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// printForm selects between the canonical printer (used by Fingerprint) and
// the full printer (used by OCF headers and String()).
type printForm int

const (
	canonicalForm printForm = iota
	fullForm
)

func jsonString(s string) string {
	b, _ := jsoniter.Marshal(s)
	return string(b)
}

// encodeSchemaJSON renders s as JSON in the requested form. The canonical
// form strips docs, defaults, aliases, and logical-type tags, and emits keys
// in the fixed order name, type, fields, symbols, items, values, size, per
// the Avro Parsing Canonical Form. It tracks named types it has already
// fully inlined once in this traversal and emits a bare name reference for
// any later occurrence, so a recursive schema's canonical form terminates
// (see codec.Recursive and the open question in spec §9).
func encodeSchemaJSON(s Schema, form printForm) ([]byte, error) {
	buf := &bytes.Buffer{}
	e := &schemaEncoder{form: form, inlined: make(map[string]struct{})}
	if err := e.encode(buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type schemaEncoder struct {
	form    printForm
	inlined map[string]struct{}
}

func (e *schemaEncoder) encode(buf *bytes.Buffer, s Schema) error {
	switch t := s.(type) {
	case *PrimitiveSchema:
		return e.primitive(buf, t.typ, t.logical)
	case *RefSchema:
		buf.WriteString(jsonString(t.actual.FullName()))
		return nil
	case *NamedPlaceholder:
		if t.actual == nil {
			return fmt.Errorf("avro: unresolved recursive schema %q", t.full)
		}
		return e.encode(buf, t.actual)
	case *ArraySchema:
		buf.WriteString(`{"type":"array","items":`)
		if err := e.encode(buf, t.items); err != nil {
			return err
		}
		buf.WriteString("}")
		return nil
	case *MapSchema:
		buf.WriteString(`{"type":"map","values":`)
		if err := e.encode(buf, t.values); err != nil {
			return err
		}
		buf.WriteString("}")
		return nil
	case *UnionSchema:
		buf.WriteString("[")
		for i, branch := range t.types {
			if i > 0 {
				buf.WriteString(",")
			}
			if err := e.encode(buf, branch); err != nil {
				return err
			}
		}
		buf.WriteString("]")
		return nil
	case *RecordSchema:
		return e.record(buf, t)
	case *EnumSchema:
		return e.enum(buf, t)
	case *FixedSchema:
		return e.fixed(buf, t)
	default:
		return nil
	}
}

func (e *schemaEncoder) primitive(buf *bytes.Buffer, typ Type, logical LogicalType) error {
	if logical == "" || e.form == canonicalForm {
		buf.WriteString(jsonString(string(typ)))
		return nil
	}
	buf.WriteString(`{"type":` + jsonString(string(typ)) + `,"logicalType":` + jsonString(string(logical)) + "}")
	return nil
}

func (e *schemaEncoder) refOrInline(full string) bool {
	if _, done := e.inlined[full]; done {
		return true
	}
	e.inlined[full] = struct{}{}
	return false
}

func (e *schemaEncoder) record(buf *bytes.Buffer, t *RecordSchema) error {
	if e.refOrInline(t.full) {
		buf.WriteString(jsonString(t.full))
		return nil
	}

	buf.WriteString(`{"name":` + jsonString(t.full) + `,"type":"record"`)
	if e.form == fullForm {
		if t.doc != "" {
			buf.WriteString(`,"doc":` + jsonString(t.doc))
		}
		if len(t.aliases) > 0 {
			ab, _ := jsoniter.Marshal(t.aliases)
			buf.WriteString(`,"aliases":` + string(ab))
		}
	}
	buf.WriteString(`,"fields":[`)
	for i, f := range t.fields {
		if i > 0 {
			buf.WriteString(",")
		}
		if err := e.field(buf, f); err != nil {
			return err
		}
	}
	buf.WriteString("]}")
	return nil
}

func (e *schemaEncoder) field(buf *bytes.Buffer, f *Field) error {
	buf.WriteString(`{"name":` + jsonString(f.name) + `,"type":`)
	if err := e.encode(buf, f.typ); err != nil {
		return err
	}
	if e.form == fullForm {
		if f.doc != "" {
			buf.WriteString(`,"doc":` + jsonString(f.doc))
		}
		if len(f.aliases) > 0 {
			ab, _ := jsoniter.Marshal(f.aliases)
			buf.WriteString(`,"aliases":` + string(ab))
		}
		// field_default is threaded through parsing but, per the open
		// question in spec §9, not round-tripped back to JSON here.
	}
	buf.WriteString("}")
	return nil
}

func (e *schemaEncoder) enum(buf *bytes.Buffer, t *EnumSchema) error {
	if e.refOrInline(t.full) {
		buf.WriteString(jsonString(t.full))
		return nil
	}
	buf.WriteString(`{"name":` + jsonString(t.full) + `,"type":"enum"`)
	if e.form == fullForm {
		if t.doc != "" {
			buf.WriteString(`,"doc":` + jsonString(t.doc))
		}
		if len(t.aliases) > 0 {
			ab, _ := jsoniter.Marshal(t.aliases)
			buf.WriteString(`,"aliases":` + string(ab))
		}
	}
	symb, _ := jsoniter.Marshal(t.symbols)
	buf.WriteString(`,"symbols":` + string(symb))
	if e.form == fullForm && t.hasDef {
		buf.WriteString(`,"default":` + jsonString(t.def))
	}
	buf.WriteString("}")
	return nil
}

func (e *schemaEncoder) fixed(buf *bytes.Buffer, t *FixedSchema) error {
	if e.refOrInline(t.full) {
		buf.WriteString(jsonString(t.full))
		return nil
	}
	buf.WriteString(`{"name":` + jsonString(t.full) + `,"type":"fixed"`)
	if e.form == fullForm && len(t.aliases) > 0 {
		ab, _ := jsoniter.Marshal(t.aliases)
		buf.WriteString(`,"aliases":` + string(ab))
	}
	buf.WriteString(`,"size":` + strconv.Itoa(t.size))
	if e.form == fullForm && t.logical != "" {
		buf.WriteString(`,"logicalType":` + jsonString(string(t.logical)))
	}
	buf.WriteString("}")
	return nil
}

// CanonicalJSON returns s's Avro Parsing Canonical Form.
func CanonicalJSON(s Schema) string {
	b, _ := encodeSchemaJSON(s, canonicalForm)
	return string(b)
}
