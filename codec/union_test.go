package codec_test

import (
	"testing"

	"github.com/colvinstream/avrocombinator/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnion_RoundTrip(t *testing.T) {
	u := codec.MustUnion(codec.Branch(codec.IntCodec()), codec.Branch(codec.StringCodec()))

	b := codec.Marshal(u, codec.Value{Branch: 1, Value: "hi"})
	out, err := codec.Unmarshal(u, b)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Branch)
	assert.Equal(t, "hi", out.Value)

	b = codec.Marshal(u, codec.Value{Branch: 0, Value: int32(42)})
	out, err = codec.Unmarshal(u, b)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Branch)
	assert.Equal(t, int32(42), out.Value)
}

func TestUnion_EncodePanicsOnBadBranch(t *testing.T) {
	u := codec.MustUnion(codec.Branch(codec.IntCodec()))
	assert.Panics(t, func() {
		codec.Marshal(u, codec.Value{Branch: 5, Value: int32(1)})
	})
}

func TestOption_RoundTrip(t *testing.T) {
	c := codec.Option(codec.StringCodec())

	b := codec.Marshal(c, (*string)(nil))
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Nil(t, out)

	s := "hi"
	b = codec.Marshal(c, &s)
	out, err = codec.Unmarshal(c, b)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "hi", *out)
}
