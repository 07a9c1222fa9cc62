package ocf

import (
	"io"

	"github.com/colvinstream/avrocombinator/codec"
	"github.com/colvinstream/avrocombinator/compress"
	"github.com/colvinstream/avrocombinator/wire"
)

// Encoder writes values to an Avro Object Container File. Values are
// buffered in an in-memory block and only actually written (compressed,
// length-prefixed, sync-terminated) once the block fills or Flush/Close is
// called.
type Encoder[T any] struct {
	w io.Writer

	codec      codec.Codec[T]
	compressor compress.Codec
	sync       [16]byte

	block       *wire.Sink
	blockLength int
	count       int

	err error
}

// NewEncoder returns an Encoder writing Object Container File data to w,
// using c to encode each value and a freshly generated random sync marker.
func NewEncoder[T any](c codec.Codec[T], w io.Writer, opts ...EncoderOption) (*Encoder[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	compressor, err := compress.Resolve(cfg.codecName, cfg.codecOpts)
	if err != nil {
		return nil, err
	}

	sync, err := newSync()
	if err != nil {
		return nil, err
	}

	cfg.metadata[schemaKey] = []byte(c.Schema.String())
	cfg.metadata[codecKey] = []byte(cfg.codecName)

	headerSink := wire.NewSink(256)
	writeHeader(headerSink, cfg.metadata, sync)
	if _, err := w.Write(headerSink.Bytes()); err != nil {
		return nil, err
	}

	return &Encoder[T]{
		w:           w,
		codec:       c,
		compressor:  compressor,
		sync:        sync,
		block:       wire.NewSink(256),
		blockLength: cfg.blockLength,
	}, nil
}

// Encode appends v to the current block, flushing it once it reaches the
// configured block length.
func (e *Encoder[T]) Encode(v T) error {
	if e.err != nil {
		return e.err
	}
	e.codec.Encode(v, e.block)
	e.count++
	if e.count >= e.blockLength {
		return e.flushBlock()
	}
	return nil
}

// Flush writes any buffered values as a final block.
func (e *Encoder[T]) Flush() error {
	if e.err != nil {
		return e.err
	}
	if e.count == 0 {
		return nil
	}
	return e.flushBlock()
}

// Close flushes any buffered values. It does not close the underlying
// writer.
func (e *Encoder[T]) Close() error {
	return e.Flush()
}

func (e *Encoder[T]) flushBlock() error {
	compressed := e.compressor.Encode(e.block.Bytes())

	frame := wire.NewSink(256)
	frame.WriteLong(int64(e.count))
	frame.WriteLong(int64(len(compressed)))
	frame.WriteRaw(compressed)
	frame.WriteFixed(e.sync[:])

	if _, err := e.w.Write(frame.Bytes()); err != nil {
		e.err = err
		return err
	}

	e.count = 0
	e.block.Reset()
	return nil
}
