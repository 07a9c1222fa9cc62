package codec_test

import (
	"testing"

	"github.com/colvinstream/avrocombinator/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	Value    int32
	Children []node
}

func nodeCodec() codec.Codec[node] {
	return codec.MustRecursive[node]("test.Node", "", func(self codec.Codec[node]) codec.Codec[node] {
		b := codec.Record[node]("test.Node")
		codec.Field(b, "value", codec.IntCodec(), func(n node) int32 { return n.Value }, func(n *node, v int32) { n.Value = v })
		codec.Field(b, "children", codec.Array(self), func(n node) []node { return n.Children }, func(n *node, v []node) { n.Children = v })
		return b.MustFinish()
	})
}

func TestRecursive_RoundTrip(t *testing.T) {
	c := nodeCodec()
	in := node{
		Value: 1,
		Children: []node{
			{Value: 2},
			{Value: 3, Children: []node{{Value: 4}}},
		},
	}

	b := codec.Marshal(c, in)
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRecursive_SchemaResolvesToRecord(t *testing.T) {
	c := nodeCodec()
	assert.Contains(t, c.Schema.String(), `"test.Node"`)
}
