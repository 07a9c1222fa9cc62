package codec_test

import (
	"testing"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string
	Age  int32
	Nick *string
}

func personCodec() codec.Codec[person] {
	b := codec.Record[person]("test.Person")
	codec.Field(b, "name", codec.StringCodec(), func(p person) string { return p.Name }, func(p *person, v string) { p.Name = v })
	codec.Field(b, "age", codec.IntCodec(), func(p person) int32 { return p.Age }, func(p *person, v int32) { p.Age = v })
	codec.FieldOpt(b, "nick", codec.StringCodec(), func(p person) *string { return p.Nick }, func(p *person, v *string) { p.Nick = v })
	return b.MustFinish()
}

func TestRecord_RoundTrip(t *testing.T) {
	c := personCodec()
	nick := "ace"
	in := person{Name: "Grace", Age: 30, Nick: &nick}

	b := codec.Marshal(c, in)
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRecord_OptionalFieldNil(t *testing.T) {
	c := personCodec()
	in := person{Name: "Bo", Age: 1}

	b := codec.Marshal(c, in)
	out, err := codec.Unmarshal(c, b)
	require.NoError(t, err)
	assert.Nil(t, out.Nick)
	assert.Equal(t, in.Name, out.Name)
}

func TestRecord_FieldDocAndAliases(t *testing.T) {
	b := codec.Record[person]("test.Person2")
	codec.Field(b, "name", codec.StringCodec(), func(p person) string { return p.Name }, func(p *person, v string) { p.Name = v }).
		FieldDoc("the person's name").
		FieldAliases("fullName")
	c := b.MustFinish()

	rec, ok := c.Schema.(*avro.RecordSchema)
	require.True(t, ok)
	f, ok := rec.FieldByName("name")
	require.True(t, ok)
	assert.Equal(t, "the person's name", f.Doc())
	assert.Equal(t, []string{"fullName"}, f.Aliases())
}
