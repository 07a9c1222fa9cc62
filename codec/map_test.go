package codec_test

import (
	"testing"

	"github.com/colvinstream/avrocombinator/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_RoundTrip(t *testing.T) {
	c := codec.Map(codec.StringCodec())
	in := map[string]string{"a": "1", "b": "2"}

	b := codec.Marshal(c, in)
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
