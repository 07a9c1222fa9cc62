package codec_test

import (
	"testing"

	"github.com/colvinstream/avrocombinator/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_RoundTrip(t *testing.T) {
	c, err := codec.Fixed("test.MD5", "", 4)
	require.NoError(t, err)

	b := codec.Marshal(c, []byte{1, 2, 3, 4})
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, out)
}

func TestFixed_EncodePanicsOnLengthMismatch(t *testing.T) {
	c := codec.MustFixed("test.MD5", "", 4)
	assert.Panics(t, func() {
		codec.Marshal(c, []byte{1, 2})
	})
}
