package avro_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrimitiveSchema(t *testing.T) {
	s := avro.NewPrimitiveSchema(avro.Int, "")
	assert.Equal(t, avro.Int, s.Type())

	s = avro.NewPrimitiveSchema(avro.Int, avro.Date)
	assert.Equal(t, avro.Date, s.LogicalType())

	// Logical types are ignored on types that can't carry one.
	s = avro.NewPrimitiveSchema(avro.Boolean, avro.Date)
	assert.Equal(t, avro.LogicalType(""), s.LogicalType())
}

func TestNewRecordSchema(t *testing.T) {
	f, err := avro.NewField("name", avro.NewPrimitiveSchema(avro.String, ""), "", nil, nil)
	require.NoError(t, err)

	s, err := avro.NewRecordSchema("test.Person", "", "", nil, []*avro.Field{f})
	require.NoError(t, err)
	assert.Equal(t, avro.Record, s.Type())
	assert.Equal(t, "Person", s.Name())
	assert.Equal(t, "test", s.Namespace())
	assert.Equal(t, "test.Person", s.FullName())

	_, err = avro.NewRecordSchema("test.Empty", "", "", nil, nil)
	assert.Error(t, err, "a record must have at least one field")

	_, err = avro.NewRecordSchema("test.Dup", "", "", nil, []*avro.Field{f, f})
	assert.Error(t, err, "duplicate field names must be rejected")
}

func TestRecordSchema_FieldByName(t *testing.T) {
	f, _ := avro.NewField("id", avro.NewPrimitiveSchema(avro.Long, ""), "", nil, nil)
	s, err := avro.NewRecordSchema("test.Thing", "", "", nil, []*avro.Field{f})
	require.NoError(t, err)

	got, ok := s.FieldByName("id")
	assert.True(t, ok)
	assert.Same(t, f, got)

	_, ok = s.FieldByName("missing")
	assert.False(t, ok)
}

func TestNewEnumSchema(t *testing.T) {
	s, err := avro.NewEnumSchema("test.Suit", "", "", nil, []string{"SPADES", "HEARTS"}, "SPADES", true)
	require.NoError(t, err)
	assert.Equal(t, 0, s.IndexOf("SPADES"))
	assert.Equal(t, -1, s.IndexOf("CLUBS"))

	sym, ok := s.DefaultSymbol()
	assert.True(t, ok)
	assert.Equal(t, "SPADES", sym)

	_, err = avro.NewEnumSchema("test.Bad", "", "", nil, []string{"A"}, "NOPE", true)
	assert.Error(t, err, "default symbol must be a member")

	_, err = avro.NewEnumSchema("test.Dup", "", "", nil, []string{"A", "A"}, "", false)
	assert.Error(t, err, "duplicate symbols must be rejected")
}

func TestNewUnionSchema(t *testing.T) {
	null := avro.NewPrimitiveSchema(avro.Null, "")
	str := avro.NewPrimitiveSchema(avro.String, "")

	u, err := avro.NewUnionSchema([]avro.Schema{null, str})
	require.NoError(t, err)
	assert.True(t, u.Nullable())
	assert.Len(t, u.Types(), 2)

	inner, _ := avro.NewUnionSchema([]avro.Schema{null, str})
	_, err = avro.NewUnionSchema([]avro.Schema{null, inner})
	assert.Error(t, err, "a union may not directly contain another union")

	_, err = avro.NewUnionSchema([]avro.Schema{str, str})
	assert.Error(t, err, "duplicate branches must be rejected")
}

func TestNewFixedSchema(t *testing.T) {
	s, err := avro.NewFixedSchema("test.MD5", "", 16, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 16, s.Size())

	_, err = avro.NewFixedSchema("test.Zero", "", 0, nil, "")
	assert.Error(t, err, "size must be > 0")
}

func TestNamedPlaceholder(t *testing.T) {
	p, err := avro.NewNamedPlaceholder("test.Node", "")
	require.NoError(t, err)
	assert.Equal(t, avro.Ref, p.Type())
	assert.Nil(t, p.Actual())

	f, _ := avro.NewField("id", avro.NewPrimitiveSchema(avro.Long, ""), "", nil, nil)
	rec, _ := avro.NewRecordSchema("test.Node", "", "", nil, []*avro.Field{f})
	p.Resolve(rec)

	assert.Equal(t, avro.Record, p.Type())
	assert.Same(t, avro.NamedSchema(rec), p.Actual())
}

func TestWithLogical(t *testing.T) {
	s := avro.WithLogical(avro.NewPrimitiveSchema(avro.Long, ""), avro.TimestampMillis)
	ls, ok := s.(avro.LogicalSchema)
	require.True(t, ok)
	assert.Equal(t, avro.TimestampMillis, ls.LogicalType())

	// No-op on schema kinds that can't carry a logical type.
	arr := avro.NewArraySchema(avro.NewPrimitiveSchema(avro.Int, ""))
	assert.Same(t, avro.Schema(arr), avro.WithLogical(arr, avro.Date))
}
