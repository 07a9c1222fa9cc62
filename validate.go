package avro

import "fmt"

// SchemaError reports a schema tree that failed Validate.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return "avro: invalid schema: " + e.Reason }

// Validate walks a schema tree and checks it against the invariants in
// spec §3: union branch distinctness (enforced by NewUnionSchema at
// construction, re-checked here for trees assembled without it), and that a
// named type is never redefined under the same full name except by
// reference to the very same node. The first violation found is returned;
// multi-error collection is not required by the spec.
func Validate(s Schema) error {
	if err := (&validator{seen: make(map[string]Schema)}).walk(s); err != nil {
		return &SchemaError{Reason: err.Error()}
	}
	return nil
}

type validator struct {
	seen map[string]Schema
}

func (v *validator) walk(s Schema) error {
	switch t := s.(type) {
	case *RecordSchema:
		return v.walkNamed(t, func() error {
			if len(t.fields) == 0 {
				return fmt.Errorf("avro: record %q must have at least one field", t.FullName())
			}
			seenFields := make(map[string]struct{}, len(t.fields))
			for _, f := range t.fields {
				if _, dup := seenFields[f.name]; dup {
					return fmt.Errorf("avro: record %q has duplicate field %q", t.FullName(), f.name)
				}
				seenFields[f.name] = struct{}{}
				if err := v.walk(f.typ); err != nil {
					return err
				}
			}
			return nil
		})

	case *EnumSchema:
		return v.walkNamed(t, func() error {
			if len(t.symbols) == 0 {
				return fmt.Errorf("avro: enum %q must have at least one symbol", t.FullName())
			}
			return nil
		})

	case *FixedSchema:
		return v.walkNamed(t, func() error {
			if t.size <= 0 {
				return fmt.Errorf("avro: fixed %q size must be > 0", t.FullName())
			}
			return nil
		})

	case *ArraySchema:
		return v.walk(t.items)

	case *MapSchema:
		return v.walk(t.values)

	case *UnionSchema:
		seen := make(map[string]struct{}, len(t.types))
		for _, branch := range t.types {
			if branch.Type() == Union {
				return fmt.Errorf("avro: union may not immediately contain another union")
			}
			key := typeKey(branch)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("avro: union has duplicate branch %q", key)
			}
			seen[key] = struct{}{}
			if err := v.walk(branch); err != nil {
				return err
			}
		}
		return nil

	case *RefSchema:
		return nil

	case *NamedPlaceholder:
		if t.actual == nil {
			return fmt.Errorf("avro: unresolved recursive schema %q", t.full)
		}
		return v.walk(t.actual)

	default:
		return nil
	}
}

func (v *validator) walkNamed(n NamedSchema, checkBody func() error) error {
	full := n.FullName()
	if prior, ok := v.seen[full]; ok {
		if prior != Schema(n) {
			return fmt.Errorf("avro: named type %q redefined", full)
		}
		return nil
	}
	v.seen[full] = n
	return checkBody()
}
