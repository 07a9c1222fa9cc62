package avro_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	s, err := avro.Parse(`{
		"type": "record", "name": "test.T",
		"fields": [{"name": "a", "type": "int"}]
	}`)
	require.NoError(t, err)
	assert.NoError(t, avro.Validate(s))
}

func TestValidate_UnresolvedRecursion(t *testing.T) {
	placeholder, err := avro.NewNamedPlaceholder("test.Node", "")
	require.NoError(t, err)
	f, err := avro.NewField("next", placeholder, "", nil, nil)
	require.NoError(t, err)
	rec, err := avro.NewRecordSchema("test.Node", "", "", nil, []*avro.Field{f})
	require.NoError(t, err)

	// placeholder.Resolve was never called.
	err = avro.Validate(rec)
	require.Error(t, err)
	var serr *avro.SchemaError
	assert.ErrorAs(t, err, &serr)
}
