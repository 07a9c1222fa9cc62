package avro_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint_StableAndDistinct(t *testing.T) {
	a := avro.NewPrimitiveSchema(avro.String, "")
	b := avro.NewPrimitiveSchema(avro.String, "")
	c := avro.NewPrimitiveSchema(avro.Long, "")

	assert.Equal(t, avro.Fingerprint(a), avro.Fingerprint(b))
	assert.NotEqual(t, avro.Fingerprint(a), avro.Fingerprint(c))
}

func TestFingerprint_IgnoresDocAndAliases(t *testing.T) {
	f1, _ := avro.NewField("id", avro.NewPrimitiveSchema(avro.Long, ""), "a doc", nil, nil)
	r1, _ := avro.NewRecordSchema("test.T", "", "doc one", nil, []*avro.Field{f1})

	f2, _ := avro.NewField("id", avro.NewPrimitiveSchema(avro.Long, ""), "a different doc", nil, []string{"oldId"})
	r2, _ := avro.NewRecordSchema("test.T", "", "doc two", []string{"Old"}, []*avro.Field{f2})

	assert.Equal(t, avro.Fingerprint(r1), avro.Fingerprint(r2))
}
