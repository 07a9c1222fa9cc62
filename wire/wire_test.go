package wire_test

import (
	"bytes"
	"testing"

	"github.com/colvinstream/avrocombinator/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_WriteLong_ZigZag(t *testing.T) {
	cases := []struct {
		v    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{1, []byte{0x02}},
		{-2, []byte{0x03}},
		{27, []byte{0x36}},
	}
	for _, c := range cases {
		s := wire.NewSink(8)
		s.WriteLong(c.v)
		assert.Equal(t, c.want, s.Bytes())
	}
}

func TestSource_ReadLong_RoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 27, -27, 1 << 40, -(1 << 40)} {
		s := wire.NewSink(16)
		s.WriteLong(v)
		src := wire.NewSource(s.Bytes())
		assert.Equal(t, v, src.ReadLong())
		assert.NoError(t, src.Err)
	}
}

func TestSink_Source_BytesAndString(t *testing.T) {
	s := wire.NewSink(16)
	s.WriteBytes([]byte("hello"))
	s.WriteString("world")

	src := wire.NewSource(s.Bytes())
	assert.Equal(t, []byte("hello"), src.ReadBytes())
	assert.Equal(t, "world", src.ReadString())
	assert.NoError(t, src.Err)
}

func TestSink_Source_FloatDouble(t *testing.T) {
	s := wire.NewSink(16)
	s.WriteFloat(3.5)
	s.WriteDouble(-2.25)

	src := wire.NewSource(s.Bytes())
	assert.Equal(t, float32(3.5), src.ReadFloat())
	assert.Equal(t, -2.25, src.ReadDouble())
}

func TestSource_ReadFixed(t *testing.T) {
	src := wire.NewSource([]byte{1, 2, 3, 4})
	b := make([]byte, 4)
	src.ReadFixed(b)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)
	assert.NoError(t, src.Err)
}

func TestSource_ReadFixed_ShortInput(t *testing.T) {
	src := wire.NewSource([]byte{1, 2})
	b := make([]byte, 4)
	src.ReadFixed(b)
	assert.ErrorIs(t, src.Err, wire.ErrEndOfInput)
}

func TestSource_NegativeBytesLength(t *testing.T) {
	s := wire.NewSink(8)
	s.WriteLong(-1)
	src := wire.NewSource(s.Bytes())
	_ = src.ReadBytes()
	assert.Error(t, src.Err)
}

func TestStreamSource_ReadsAcrossRefills(t *testing.T) {
	s := wire.NewSink(32)
	for i := 0; i < 10; i++ {
		s.WriteLong(int64(i))
	}
	src := wire.NewStreamSource(bytes.NewReader(s.Bytes()), 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, int64(i), src.ReadLong())
	}
	require.NoError(t, src.Err)
	assert.True(t, src.AtEOF())
}

func TestSource_Reset(t *testing.T) {
	src := wire.NewSource([]byte{0x02})
	assert.Equal(t, int64(1), src.ReadLong())

	src.Reset([]byte{0x04})
	assert.Equal(t, int64(2), src.ReadLong())
	assert.NoError(t, src.Err)
}
