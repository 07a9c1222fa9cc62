// Package avro implements the Avro schema model: parsing, validation,
// canonical-form printing, and CRC-64-AVRO fingerprinting. The wire codec and
// OCF container layers live in the sibling packages codec, resolve, generic,
// compress and ocf.
package avro

import (
	"errors"
	"fmt"
	"strings"
)

// Type is an Avro schema type tag.
type Type string

// Schema type constants.
const (
	Null    Type = "null"
	Boolean Type = "boolean"
	Int     Type = "int"
	Long    Type = "long"
	Float   Type = "float"
	Double  Type = "double"
	Bytes   Type = "bytes"
	String  Type = "string"
	Array   Type = "array"
	Map     Type = "map"
	Union   Type = "union"
	Record  Type = "record"
	Enum    Type = "enum"
	Fixed   Type = "fixed"
	Ref     Type = "<ref>"
)

// LogicalType is a schema logical-type tag layered on an annotatable
// primitive or a fixed type.
type LogicalType string

// Logical type constants.
const (
	Decimal              LogicalType = "decimal"
	UUID                 LogicalType = "uuid"
	Date                 LogicalType = "date"
	TimeMillis           LogicalType = "time-millis"
	TimeMicros           LogicalType = "time-micros"
	TimestampMillis      LogicalType = "timestamp-millis"
	TimestampMicros      LogicalType = "timestamp-micros"
	LocalTimestampMillis LogicalType = "local-timestamp-millis"
	LocalTimestampMicros LogicalType = "local-timestamp-micros"
	Duration             LogicalType = "duration"
)

// Schema is the common interface implemented by every node in a schema tree.
type Schema interface {
	// Type returns the schema's type tag.
	Type() Type
	// String returns the schema's full-form JSON representation.
	String() string
}

// NamedSchema is implemented by Record, Enum and Fixed, the three schema
// kinds that carry a qualified name and may be referenced by name.
type NamedSchema interface {
	Schema
	Name() string
	Namespace() string
	FullName() string
	Aliases() []string
}

// LogicalSchema is implemented by PrimitiveSchema and FixedSchema.
// LogicalType returns "" when no logical-type tag is attached.
type LogicalSchema interface {
	Schema
	LogicalType() LogicalType
}

// name holds a parsed, validated Avro qualified name: base name, namespace,
// the dotted full name, and any aliases (expanded to full names).
type name struct {
	base      string
	namespace string
	full      string
	aliases   []string
}

func newName(n, ns string, aliases []string) (name, error) {
	if idx := strings.LastIndexByte(n, '.'); idx > -1 {
		ns = n[:idx]
		n = n[idx+1:]
	}

	full := n
	if ns != "" {
		full = ns + "." + n
	}

	for _, part := range strings.Split(full, ".") {
		if err := validateIdent(part); err != nil {
			return name{}, fmt.Errorf("avro: invalid name part %q in name %q: %w", part, full, err)
		}
	}

	a := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if !strings.Contains(alias, ".") {
			if err := validateIdent(alias); err != nil {
				return name{}, fmt.Errorf("avro: invalid alias %q: %w", alias, err)
			}
			if ns == "" {
				a = append(a, alias)
				continue
			}
			a = append(a, ns+"."+alias)
			continue
		}
		for _, part := range strings.Split(alias, ".") {
			if err := validateIdent(part); err != nil {
				return name{}, fmt.Errorf("avro: invalid alias part %q in alias %q: %w", part, alias, err)
			}
		}
		a = append(a, alias)
	}

	return name{base: n, namespace: ns, full: full, aliases: a}, nil
}

func (n name) Name() string      { return n.base }
func (n name) Namespace() string { return n.namespace }
func (n name) FullName() string  { return n.full }
func (n name) Aliases() []string { return n.aliases }

func invalidIdentFirst(r rune) bool {
	return (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && r != '_'
}

func invalidIdentRest(r rune) bool {
	return invalidIdentFirst(r) && (r < '0' || r > '9')
}

// validateIdent checks a single (unqualified) identifier against
// [A-Za-z_][A-Za-z0-9_]*.
func validateIdent(s string) error {
	if s == "" {
		return errors.New("name must be non-empty")
	}
	if strings.IndexFunc(s[:1], invalidIdentFirst) > -1 {
		return fmt.Errorf("invalid name %q", s)
	}
	if strings.IndexFunc(s[1:], invalidIdentRest) > -1 {
		return fmt.Errorf("invalid name %q", s)
	}
	return nil
}

// PrimitiveSchema is one of the eight Avro primitive types. The four
// annotatable primitives (int, long, bytes, string) may carry a logical type.
type PrimitiveSchema struct {
	typ     Type
	logical LogicalType
}

// NewPrimitiveSchema returns a primitive schema, optionally tagged with a
// logical type. WithLogical is a no-op on types that cannot carry one.
func NewPrimitiveSchema(t Type, logical LogicalType) *PrimitiveSchema {
	switch t {
	case Int, Long, Bytes, String:
	default:
		logical = ""
	}
	return &PrimitiveSchema{typ: t, logical: logical}
}

// Type returns the primitive's type tag.
func (s *PrimitiveSchema) Type() Type { return s.typ }

// LogicalType returns the attached logical-type tag, or "" if none.
func (s *PrimitiveSchema) LogicalType() LogicalType { return s.logical }

// String returns the full-form JSON representation.
func (s *PrimitiveSchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// RecordSchema describes a named, ordered sequence of fields.
type RecordSchema struct {
	name
	doc    string
	fields []*Field
}

// NewRecordSchema constructs and validates a record schema. Fields must be
// non-empty with unique, valid names.
func NewRecordSchema(qualifiedName, namespace, doc string, aliases []string, fields []*Field) (*RecordSchema, error) {
	n, err := newName(qualifiedName, namespace, aliases)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("avro: record %q must have at least one field", n.full)
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.name]; dup {
			return nil, fmt.Errorf("avro: record %q has duplicate field %q", n.full, f.name)
		}
		seen[f.name] = struct{}{}
	}
	return &RecordSchema{name: n, doc: doc, fields: fields}, nil
}

// Type returns Record.
func (s *RecordSchema) Type() Type { return Record }

// Doc returns the record's documentation string, if any.
func (s *RecordSchema) Doc() string { return s.doc }

// Fields returns the record's fields in declaration order.
func (s *RecordSchema) Fields() []*Field { return s.fields }

// FieldByName returns the field with the given name, if present.
func (s *RecordSchema) FieldByName(n string) (*Field, bool) {
	for _, f := range s.fields {
		if f.name == n {
			return f, true
		}
	}
	return nil, false
}

// String returns the full-form JSON representation.
func (s *RecordSchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// Field is a single record field: a name, a schema, and optional doc,
// default value and aliases.
type Field struct {
	name    string
	aliases []string
	typ     Schema
	doc     string
	def     *Default
}

// NewField constructs and validates a record field.
func NewField(fieldName string, typ Schema, doc string, def *Default, aliases []string) (*Field, error) {
	if err := validateIdent(fieldName); err != nil {
		return nil, fmt.Errorf("avro: invalid field name %q: %w", fieldName, err)
	}
	for _, a := range aliases {
		if err := validateIdent(a); err != nil {
			return nil, fmt.Errorf("avro: invalid field alias %q: %w", a, err)
		}
	}
	return &Field{name: fieldName, aliases: aliases, typ: typ, doc: doc, def: def}, nil
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Aliases returns the field's alternate names.
func (f *Field) Aliases() []string { return f.aliases }

// Type returns the field's schema.
func (f *Field) Type() Schema { return f.typ }

// Doc returns the field's documentation string, if any.
func (f *Field) Doc() string { return f.doc }

// Default returns the field's default literal, or nil if it has none.
func (f *Field) Default() *Default { return f.def }

// HasDefault reports whether the field carries a default value.
func (f *Field) HasDefault() bool { return f.def != nil }

// EnumSchema describes a named, closed set of symbols.
type EnumSchema struct {
	name
	doc     string
	symbols []string
	def     string
	hasDef  bool
}

// NewEnumSchema constructs and validates an enum schema.
func NewEnumSchema(
	qualifiedName, namespace, doc string, aliases, symbols []string, defaultSymbol string, hasDefault bool,
) (*EnumSchema, error) {
	n, err := newName(qualifiedName, namespace, aliases)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("avro: enum %q must have at least one symbol", n.full)
	}
	seen := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		if err := validateIdent(sym); err != nil {
			return nil, fmt.Errorf("avro: invalid symbol %q in enum %q: %w", sym, n.full, err)
		}
		if _, dup := seen[sym]; dup {
			return nil, fmt.Errorf("avro: enum %q has duplicate symbol %q", n.full, sym)
		}
		seen[sym] = struct{}{}
	}
	if hasDefault {
		found := false
		for _, sym := range symbols {
			if sym == defaultSymbol {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("avro: enum %q default symbol %q is not a member", n.full, defaultSymbol)
		}
	}
	return &EnumSchema{name: n, doc: doc, symbols: symbols, def: defaultSymbol, hasDef: hasDefault}, nil
}

// Type returns Enum.
func (s *EnumSchema) Type() Type { return Enum }

// Doc returns the enum's documentation string, if any.
func (s *EnumSchema) Doc() string { return s.doc }

// Symbols returns the enum's symbols in declaration order.
func (s *EnumSchema) Symbols() []string { return s.symbols }

// IndexOf returns the position of sym in Symbols, or -1.
func (s *EnumSchema) IndexOf(sym string) int {
	for i, v := range s.symbols {
		if v == sym {
			return i
		}
	}
	return -1
}

// DefaultSymbol returns the enum's default symbol and whether one is set.
func (s *EnumSchema) DefaultSymbol() (string, bool) { return s.def, s.hasDef }

// String returns the full-form JSON representation.
func (s *EnumSchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// ArraySchema describes a homogeneous sequence.
type ArraySchema struct {
	items Schema
}

// NewArraySchema returns an array schema over the given element schema.
func NewArraySchema(items Schema) *ArraySchema { return &ArraySchema{items: items} }

// Type returns Array.
func (s *ArraySchema) Type() Type { return Array }

// Items returns the element schema.
func (s *ArraySchema) Items() Schema { return s.items }

// String returns the full-form JSON representation.
func (s *ArraySchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// MapSchema describes a string-keyed homogeneous map.
type MapSchema struct {
	values Schema
}

// NewMapSchema returns a map schema over the given value schema.
func NewMapSchema(values Schema) *MapSchema { return &MapSchema{values: values} }

// Type returns Map.
func (s *MapSchema) Type() Type { return Map }

// Values returns the value schema.
func (s *MapSchema) Values() Schema { return s.values }

// String returns the full-form JSON representation.
func (s *MapSchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// UnionSchema describes an ordered set of alternative branch schemas.
type UnionSchema struct {
	types []Schema
}

// NewUnionSchema constructs and validates a union schema: branches must be
// distinct by type key and a union may not directly contain another union.
func NewUnionSchema(types []Schema) (*UnionSchema, error) {
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t.Type() == Union {
			return nil, errors.New("avro: union may not immediately contain another union")
		}
		key := typeKey(t)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("avro: union has duplicate branch %q", key)
		}
		seen[key] = struct{}{}
	}
	return &UnionSchema{types: types}, nil
}

func typeKey(s Schema) string {
	if ns, ok := s.(NamedSchema); ok {
		return ns.FullName()
	}
	return string(s.Type())
}

// Types returns the union's branch schemas in declaration order.
func (s *UnionSchema) Types() []Schema { return s.types }

// Nullable reports whether index 0 is Null, the option-combinator convention.
func (s *UnionSchema) Nullable() bool {
	return len(s.types) > 0 && s.types[0].Type() == Null
}

// String returns the full-form JSON representation.
func (s *UnionSchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// Type returns Union.
func (*UnionSchema) Type() Type { return Union }

// FixedSchema describes a named, fixed-size byte sequence.
type FixedSchema struct {
	name
	size    int
	logical LogicalType
}

// NewFixedSchema constructs and validates a fixed schema. Size must be > 0.
func NewFixedSchema(qualifiedName, namespace string, size int, aliases []string, logical LogicalType) (*FixedSchema, error) {
	n, err := newName(qualifiedName, namespace, aliases)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("avro: fixed %q size must be > 0", n.full)
	}
	return &FixedSchema{name: n, size: size, logical: logical}, nil
}

// Type returns Fixed.
func (s *FixedSchema) Type() Type { return Fixed }

// Size returns the fixed byte length.
func (s *FixedSchema) Size() int { return s.size }

// LogicalType returns the attached logical-type tag, or "" if none.
func (s *FixedSchema) LogicalType() LogicalType { return s.logical }

// String returns the full-form JSON representation.
func (s *FixedSchema) String() string {
	b, _ := encodeSchemaJSON(s, fullForm)
	return string(b)
}

// RefSchema is a by-name reference to a named schema, built only through
// NewRefSchema; the JSON parser never produces one. The printer emits it as
// the bare full name, and resolution and validation look through it. The
// printer's own dedup of repeated named types (including recursive
// codec.Recursive schemas) does not create RefSchemas.
type RefSchema struct {
	actual NamedSchema
}

// NewRefSchema wraps a named schema as a by-name reference.
func NewRefSchema(actual NamedSchema) *RefSchema { return &RefSchema{actual: actual} }

// Type returns Ref.
func (s *RefSchema) Type() Type { return Ref }

// Schema returns the referenced named schema.
func (s *RefSchema) Schema() NamedSchema { return s.actual }

// String returns the referenced schema's full name.
func (s *RefSchema) String() string { return s.actual.FullName() }

// NamedPlaceholder is a forward reference to a named schema that has not
// been fully constructed yet. It exists to support codec.Recursive: a
// recursive codec must hand a schema to its own field-building step before
// the record/enum/fixed body it is building is known, so Recursive hands out
// a NamedPlaceholder carrying just the qualified name, then calls Resolve
// once the body is built. Every reference anywhere in the tree shares the
// same pointer, so resolving it once makes every occurrence resolved.
type NamedPlaceholder struct {
	name
	actual NamedSchema
}

// NewNamedPlaceholder parses qualifiedName/namespace and returns an
// unresolved placeholder.
func NewNamedPlaceholder(qualifiedName, namespace string) (*NamedPlaceholder, error) {
	n, err := newName(qualifiedName, namespace, nil)
	if err != nil {
		return nil, err
	}
	return &NamedPlaceholder{name: n}, nil
}

// Resolve fixes the placeholder's underlying schema. It must be called
// exactly once, after the named schema's body has been fully constructed.
func (p *NamedPlaceholder) Resolve(actual NamedSchema) {
	p.actual = actual
}

// Actual returns the placeholder's resolved schema, or nil before Resolve
// has been called.
func (p *NamedPlaceholder) Actual() NamedSchema { return p.actual }

// Type returns the resolved schema's type, or Ref before Resolve is called.
func (p *NamedPlaceholder) Type() Type {
	if p.actual == nil {
		return Ref
	}
	return p.actual.Type()
}

// String returns the resolved schema's full-form JSON, or the bare name
// before Resolve is called.
func (p *NamedPlaceholder) String() string {
	if p.actual == nil {
		return p.full
	}
	return p.actual.String()
}

// WithLogical returns a copy of s tagged with the given logical type. It is
// a no-op (returns s unchanged) on schemas that cannot carry one.
func WithLogical(s Schema, logical LogicalType) Schema {
	switch t := s.(type) {
	case *PrimitiveSchema:
		return NewPrimitiveSchema(t.typ, logical)
	case *FixedSchema:
		cp := *t
		cp.logical = logical
		return &cp
	default:
		return s
	}
}
