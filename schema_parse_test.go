package avro_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Primitive(t *testing.T) {
	s, err := avro.Parse(`"string"`)
	require.NoError(t, err)
	assert.Equal(t, avro.String, s.Type())
}

func TestParse_Record(t *testing.T) {
	s, err := avro.Parse(`{
		"type": "record",
		"name": "Person",
		"namespace": "test",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "age", "type": "long", "default": 0}
		]
	}`)
	require.NoError(t, err)

	rec, ok := s.(*avro.RecordSchema)
	require.True(t, ok)
	assert.Equal(t, "test.Person", rec.FullName())
	require.Len(t, rec.Fields(), 2)

	age, ok := rec.FieldByName("age")
	require.True(t, ok)
	require.True(t, age.HasDefault())
	assert.Equal(t, int64(0), age.Default().Long)
}

func TestParse_Union(t *testing.T) {
	s, err := avro.Parse(`["null", "string"]`)
	require.NoError(t, err)
	u, ok := s.(*avro.UnionSchema)
	require.True(t, ok)
	assert.True(t, u.Nullable())
}

func TestParse_Enum(t *testing.T) {
	s, err := avro.Parse(`{"type": "enum", "name": "Suit", "symbols": ["SPADES", "HEARTS"]}`)
	require.NoError(t, err)
	e, ok := s.(*avro.EnumSchema)
	require.True(t, ok)
	assert.Equal(t, []string{"SPADES", "HEARTS"}, e.Symbols())
}

func TestParse_Fixed(t *testing.T) {
	s, err := avro.Parse(`{"type": "fixed", "name": "MD5", "size": 16}`)
	require.NoError(t, err)
	f, ok := s.(*avro.FixedSchema)
	require.True(t, ok)
	assert.Equal(t, 16, f.Size())
}

func TestParse_UnknownType(t *testing.T) {
	_, err := avro.Parse(`{"type": "bogus"}`)
	assert.Error(t, err)

	var perr *avro.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		avro.MustParse(`{"type": "bogus"}`)
	})
}
