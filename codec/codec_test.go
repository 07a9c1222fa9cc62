package codec_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveCodecs_RoundTrip(t *testing.T) {
	assert.Equal(t, true, roundTrip(t, codec.BoolCodec(), true))
	assert.Equal(t, int32(42), roundTrip(t, codec.IntCodec(), int32(42)))
	assert.Equal(t, int64(-7), roundTrip(t, codec.LongCodec(), int64(-7)))
	assert.Equal(t, float32(1.5), roundTrip(t, codec.FloatCodec(), float32(1.5)))
	assert.Equal(t, 2.25, roundTrip(t, codec.DoubleCodec(), 2.25))
	assert.Equal(t, []byte("hi"), roundTrip(t, codec.BytesCodec(), []byte("hi")))
	assert.Equal(t, "hi", roundTrip(t, codec.StringCodec(), "hi"))
}

func TestNullCodec(t *testing.T) {
	c := codec.NullCodec()
	assert.Equal(t, avro.Null, c.Schema.Type())
	_ = roundTrip(t, c, codec.Null{})
}

func TestWithLogical(t *testing.T) {
	c := codec.WithLogical(codec.LongCodec(), avro.TimestampMillis)
	ls, ok := c.Schema.(avro.LogicalSchema)
	require.True(t, ok)
	assert.Equal(t, avro.TimestampMillis, ls.LogicalType())
}

func roundTrip[T any](t *testing.T, c codec.Codec[T], v T) T {
	t.Helper()
	b := codec.Marshal(c, v)
	got, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	return got
}
