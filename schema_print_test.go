package avro_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSON_Primitive(t *testing.T) {
	s := avro.NewPrimitiveSchema(avro.Int, "")
	assert.Equal(t, `"int"`, avro.CanonicalJSON(s))
}

func TestCanonicalJSON_Record(t *testing.T) {
	f, err := avro.NewField("name", avro.NewPrimitiveSchema(avro.String, ""), "a doc nobody reads", avro.StringDefault("x"), nil)
	require.NoError(t, err)
	s, err := avro.NewRecordSchema("test.Person", "", "has a doc too", nil, []*avro.Field{f})
	require.NoError(t, err)

	got := avro.CanonicalJSON(s)
	// Canonical form strips doc/default/aliases/order.
	assert.NotContains(t, got, "doc")
	assert.NotContains(t, got, "default")
	assert.Contains(t, got, `"name":"test.Person"`)
	assert.Contains(t, got, `"fields"`)
}

func TestCanonicalJSON_RecursiveSchemaDedups(t *testing.T) {
	placeholder, err := avro.NewNamedPlaceholder("test.Node", "")
	require.NoError(t, err)

	selfField, err := avro.NewField("next", placeholder, "", nil, nil)
	require.NoError(t, err)
	rec, err := avro.NewRecordSchema("test.Node", "", "", nil, []*avro.Field{selfField})
	require.NoError(t, err)
	placeholder.Resolve(rec)

	got := avro.CanonicalJSON(rec)
	// The self-reference must print as a bare name, not re-inline the body.
	assert.Contains(t, got, `"test.Node"`)
	assert.Equal(t, 1, countOccurrences(got, `"fields"`))
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
			i += len(sub) - 1
		}
	}
	return n
}
