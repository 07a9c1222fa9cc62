// Package compress implements the pluggable block compression codecs an
// Object Container File may declare via its avro.codec metadata entry: null
// and deflate from the standard library, snappy and zstandard from the
// wider ecosystem.
package compress

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Name identifies a compression codec by its avro.codec metadata value.
type Name string

// Supported compression codecs.
const (
	Null      Name = "null"
	Deflate   Name = "deflate"
	Snappy    Name = "snappy"
	ZStandard Name = "zstandard"
)

// Options configures the codecs that need it. DeflateLevel is passed to
// compress/flate as is, so its zero value means no compression and -1
// selects flate's default level; empty zstandard option slices give
// zstandard's default encoder/decoder options.
type Options struct {
	DeflateLevel     int
	ZStandardEncoder []zstd.EOption
	ZStandardDecoder []zstd.DOption
}

// Codec compresses and decompresses one OCF block's worth of bytes.
type Codec interface {
	// Encode compresses b.
	Encode(b []byte) []byte
	// Decode decompresses b.
	Decode(b []byte) ([]byte, error)
}

// CodecMismatchError reports that an Object Container File named a
// compression codec this package does not register.
type CodecMismatchError struct {
	Name Name
}

func (e *CodecMismatchError) Error() string {
	return fmt.Sprintf("compress: unregistered codec %q", e.Name)
}

// CompressionError wraps a failure from an underlying (de)compressor.
type CompressionError struct {
	Reason string
	Err    error
}

func (e *CompressionError) Error() string { return "compress: " + e.Reason }
func (e *CompressionError) Unwrap() error { return e.Err }

// Factory builds a Codec instance for a registered name, given the Options
// passed to Resolve. Built-in factories ignore fields of Options that don't
// apply to them (e.g. snappy ignores DeflateLevel).
type Factory func(Options) Codec

var registry = map[Name]Factory{
	Null:      func(Options) Codec { return nullCodec{} },
	Deflate:   func(opts Options) Codec { return deflateCodec{level: opts.DeflateLevel} },
	Snappy:    func(Options) Codec { return snappyCodec{} },
	ZStandard: func(opts Options) Codec { return newZStandardCodec(opts) },
}

// Register installs impl as the factory for name, replacing any existing
// entry (including a built-in). Callers may use this to add codecs this
// package does not ship (e.g. bzip2, xz) or to swap out a built-in's
// implementation.
func Register(name Name, impl Factory) {
	registry[name] = impl
}

// Resolve returns the Codec for name.
func Resolve(name Name, opts Options) (Codec, error) {
	if name == "" {
		name = Null
	}
	factory, ok := registry[name]
	if !ok {
		return nil, &CodecMismatchError{Name: name}
	}
	return factory(opts), nil
}

type nullCodec struct{}

func (nullCodec) Encode(b []byte) []byte          { return b }
func (nullCodec) Decode(b []byte) ([]byte, error) { return b, nil }

type deflateCodec struct{ level int }

func (c deflateCodec) Encode(b []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(b)))
	w, _ := flate.NewWriter(buf, c.level)
	_, _ = w.Write(b)
	_ = w.Close()
	return buf.Bytes()
}

func (deflateCodec) Decode(b []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &CompressionError{Reason: "deflate: " + err.Error(), Err: err}
	}
	return out, nil
}

type snappyCodec struct{}

func (snappyCodec) Encode(b []byte) []byte {
	dst := snappy.Encode(nil, b)
	dst = append(dst, 0, 0, 0, 0)
	binary.BigEndian.PutUint32(dst[len(dst)-4:], crc32.ChecksumIEEE(b))
	return dst
}

func (snappyCodec) Decode(b []byte) ([]byte, error) {
	if len(b) < 5 {
		return nil, &CompressionError{Reason: "snappy: block missing trailing checksum"}
	}
	dst, err := snappy.Decode(nil, b[:len(b)-4])
	if err != nil {
		return nil, &CompressionError{Reason: "snappy: " + err.Error(), Err: err}
	}
	if want := binary.BigEndian.Uint32(b[len(b)-4:]); crc32.ChecksumIEEE(dst) != want {
		return nil, &CompressionError{Reason: "snappy: checksum mismatch"}
	}
	return dst, nil
}

type zstandardCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newZStandardCodec(opts Options) *zstandardCodec {
	enc, _ := zstd.NewWriter(nil, opts.ZStandardEncoder...)
	dec, _ := zstd.NewReader(nil, opts.ZStandardDecoder...)
	return &zstandardCodec{encoder: enc, decoder: dec}
}

func (c *zstandardCodec) Encode(b []byte) []byte {
	defer c.encoder.Reset(nil)
	return c.encoder.EncodeAll(b, nil)
}

func (c *zstandardCodec) Decode(b []byte) ([]byte, error) {
	defer func() { _ = c.decoder.Reset(nil) }()
	out, err := c.decoder.DecodeAll(b, nil)
	if err != nil {
		return nil, &CompressionError{Reason: "zstandard: " + err.Error(), Err: err}
	}
	return out, nil
}
