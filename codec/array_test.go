package codec_test

import (
	"testing"

	"github.com/colvinstream/avrocombinator/codec"
	"github.com/colvinstream/avrocombinator/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_RoundTrip(t *testing.T) {
	c := codec.Array(codec.IntCodec())
	in := []int32{1, 2, 3}

	b := codec.Marshal(c, in)
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestArray_Empty(t *testing.T) {
	c := codec.Array(codec.IntCodec())
	b := codec.Marshal(c, []int32(nil))
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestArray_NegativeCountBlock(t *testing.T) {
	c := codec.Array(codec.IntCodec())

	sink := wire.NewSink(16)
	sink.WriteLong(-2)
	sink.WriteLong(99) // byte-size hint, discarded
	codec.IntCodec().Encode(1, sink)
	codec.IntCodec().Encode(2, sink)
	sink.WriteLong(0)

	src := wire.NewSource(sink.Bytes())
	out := c.Decode(src)
	require.NoError(t, src.Err)
	assert.Equal(t, []int32{1, 2}, out)
}
