package generic_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/generic"
	"github.com/colvinstream/avrocombinator/resolve"
	"github.com/colvinstream/avrocombinator/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prim(t avro.Type) avro.Schema { return avro.NewPrimitiveSchema(t, "") }

func TestDecode_PromotedLong(t *testing.T) {
	plan, err := resolve.Resolve(prim(avro.Long), prim(avro.Int))
	require.NoError(t, err)

	sink := wire.NewSink(8)
	sink.WriteInt(123)
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)
	assert.Equal(t, int64(123), v.Long)
}

func TestDecode_BytesStringInterop(t *testing.T) {
	plan, err := resolve.Resolve(prim(avro.String), prim(avro.Bytes))
	require.NoError(t, err)

	sink := wire.NewSink(8)
	sink.WriteBytes([]byte("hello"))
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)
	assert.Equal(t, "hello", v.String)
}

func TestDecode_ArrayOfPromotedInts(t *testing.T) {
	plan, err := resolve.Resolve(avro.NewArraySchema(prim(avro.Double)), avro.NewArraySchema(prim(avro.Int)))
	require.NoError(t, err)

	sink := wire.NewSink(16)
	sink.WriteLong(2)
	sink.WriteInt(1)
	sink.WriteInt(2)
	sink.WriteLong(0)
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)
	require.Len(t, v.Array, 2)
	assert.Equal(t, 1.0, v.Array[0].Double)
	assert.Equal(t, 2.0, v.Array[1].Double)
}

func TestDecode_Record_SkipAndDefault(t *testing.T) {
	writer, err := avro.NewRecordSchema("test.T", "", "", nil, []*avro.Field{
		mustField(t, "a", prim(avro.Int), nil),
		mustField(t, "dropped", prim(avro.String), nil),
	})
	require.NoError(t, err)
	reader, err := avro.NewRecordSchema("test.T", "", "", nil, []*avro.Field{
		mustField(t, "a", prim(avro.Int), nil),
		mustField(t, "extra", prim(avro.String), avro.StringDefault("fallback")),
	})
	require.NoError(t, err)

	plan, err := resolve.Resolve(reader, writer)
	require.NoError(t, err)

	sink := wire.NewSink(16)
	sink.WriteInt(7)
	sink.WriteString("ignored on the wire")
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)

	a, ok := v.FieldByName("a")
	require.True(t, ok)
	assert.Equal(t, int32(7), a.Int)

	extra, ok := v.FieldByName("extra")
	require.True(t, ok)
	assert.Equal(t, "fallback", extra.String)
}

func TestDecode_EnumRemapping(t *testing.T) {
	writer, err := avro.NewEnumSchema("test.Suit", "", "", nil, []string{"SPADES", "HEARTS", "CLUBS"}, "", false)
	require.NoError(t, err)
	reader, err := avro.NewEnumSchema("test.Suit", "", "", nil, []string{"HEARTS", "SPADES", "CLUBS"}, "", false)
	require.NoError(t, err)

	plan, err := resolve.Resolve(reader, writer)
	require.NoError(t, err)

	sink := wire.NewSink(4)
	sink.WriteInt(1) // writer's HEARTS
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)
	assert.Equal(t, 0, v.EnumIndex)
	assert.Equal(t, "HEARTS", v.EnumSymbol)
}

func TestDecode_UnionUnwrap(t *testing.T) {
	writer, err := avro.NewUnionSchema([]avro.Schema{prim(avro.Null), prim(avro.Long)})
	require.NoError(t, err)

	plan, err := resolve.Resolve(prim(avro.Long), writer)
	require.NoError(t, err)

	sink := wire.NewSink(8)
	sink.WriteInt(1) // branch 1: long
	sink.WriteLong(99)
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)
	assert.Equal(t, int64(99), v.Long)
}

func TestDecode_WrapUnion(t *testing.T) {
	reader, err := avro.NewUnionSchema([]avro.Schema{prim(avro.Null), prim(avro.String)})
	require.NoError(t, err)

	plan, err := resolve.Resolve(reader, prim(avro.String))
	require.NoError(t, err)

	sink := wire.NewSink(8)
	sink.WriteString("wrapped")
	src := wire.NewSource(sink.Bytes())

	v := generic.Decode(src, plan)
	require.NoError(t, src.Err)
	assert.Equal(t, 1, v.UnionBranch)
	assert.Equal(t, "wrapped", v.UnionValue.String)
}

func TestDecodeWithSchemas(t *testing.T) {
	sink := wire.NewSink(8)
	sink.WriteInt(3)

	v, err := generic.DecodeWithSchemas(prim(avro.Long), prim(avro.Int), sink.Bytes())
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Long)
}

func mustField(t *testing.T, name string, schema avro.Schema, def *avro.Default) *avro.Field {
	t.Helper()
	f, err := avro.NewField(name, schema, "", def, nil)
	require.NoError(t, err)
	return f
}
