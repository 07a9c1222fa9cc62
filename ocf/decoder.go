package ocf

import (
	"errors"
	"fmt"
	"io"
	"iter"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/codec"
	"github.com/colvinstream/avrocombinator/compress"
	"github.com/colvinstream/avrocombinator/wire"
)

// Decoder reads values from an Avro Object Container File using a codec
// whose schema is assumed to match the file's writer schema exactly. This is
// the fast path: the common case of reading back a file written by the same
// program that is reading it. When the file may have been written against a
// different (but compatible) schema, use GenericDecoder instead.
type Decoder[T any] struct {
	src        *wire.Source
	codec      codec.Codec[T]
	compressor compress.Codec
	meta       map[string][]byte
	sync       [16]byte

	block     *wire.Source
	remaining int64
}

// NewDecoder returns a Decoder reading from r with c.
func NewDecoder[T any](c codec.Codec[T], r io.Reader) (*Decoder[T], error) {
	src := wire.NewStreamSource(r, 1024)
	h, err := readHeader(src)
	if err != nil {
		return nil, err
	}

	compressor, err := compress.Resolve(compress.Name(h.Meta[codecKey]), compress.Options{DeflateLevel: -1})
	if err != nil {
		return nil, err
	}

	return &Decoder[T]{
		src:        src,
		codec:      c,
		compressor: compressor,
		meta:       h.Meta,
		sync:       h.Sync,
		block:      wire.NewSource(nil),
	}, nil
}

// Metadata returns the file's header metadata, including avro.schema and
// avro.codec.
func (d *Decoder[T]) Metadata() map[string][]byte { return d.meta }

// Schema parses and returns the file's writer schema.
func (d *Decoder[T]) Schema() (avro.Schema, error) {
	return avro.Parse(string(d.meta[schemaKey]))
}

// HasNext reports whether another value is available, reading the next
// block if the current one is exhausted.
func (d *Decoder[T]) HasNext() bool {
	if d.remaining <= 0 {
		d.remaining = d.readBlock()
	}
	if d.src.Err != nil {
		return false
	}
	return d.remaining > 0
}

// Decode reads the next value. HasNext must be called first.
func (d *Decoder[T]) Decode() (T, error) {
	var zero T
	if d.remaining <= 0 {
		return zero, errors.New("ocf: no data available, call HasNext first")
	}
	d.remaining--
	v := d.codec.Decode(d.block)
	if d.block.Err != nil {
		return zero, fmt.Errorf("ocf: decoding value: %w", d.block.Err)
	}
	return v, nil
}

// Error returns the last error encountered while reading block framing, or
// nil if the decoder simply reached a clean end of file.
func (d *Decoder[T]) Error() error {
	if d.src.Err == nil || errors.Is(d.src.Err, io.EOF) {
		return nil
	}
	return d.src.Err
}

// Sequence returns a range-over-func iterator over the file's remaining
// values. Iteration stops at the first decode error (the error is yielded
// once, alongside the zero value, and the sequence ends) or at end of file.
// Breaking out of a range early leaves the decoder positioned after the
// last value consumed, so it may be read further by hand.
func (d *Decoder[T]) Sequence() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for d.HasNext() {
			v, err := d.Decode()
			if !yield(v, err) || err != nil {
				return
			}
		}
		if err := d.Error(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Iter calls fn for each remaining value, stopping at the first error fn
// returns or the first decode error.
func (d *Decoder[T]) Iter(fn func(T) error) error {
	for v, err := range d.Sequence() {
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// Fold reduces the file's remaining values into a single accumulator.
func Fold[T, A any](d *Decoder[T], init A, fn func(A, T) A) (A, error) {
	acc := init
	for v, err := range d.Sequence() {
		if err != nil {
			return acc, err
		}
		acc = fn(acc, v)
	}
	return acc, nil
}

// IterBlocks calls fn once per block with the number of values it holds,
// without decoding any of them, then skips to the next block. It is meant
// for byte-accounting or progress reporting over a file the caller does not
// need to decode.
func (d *Decoder[T]) IterBlocks(fn func(count int64) error) error {
	for d.HasNext() {
		count := d.remaining
		d.remaining = 0
		if err := fn(count); err != nil {
			return err
		}
	}
	return d.Error()
}

func (d *Decoder[T]) readBlock() int64 {
	if d.src.AtEOF() {
		d.src.Err = io.EOF
		return 0
	}

	count := d.src.ReadLong()
	size := d.src.ReadLong()
	if d.src.Err != nil {
		d.src.Err = &ContainerError{Sub: MalformedBlock, Detail: "reading block header", Err: d.src.Err}
		return 0
	}

	raw := make([]byte, size)
	d.src.ReadFixed(raw)
	if d.src.Err != nil {
		d.src.Err = &ContainerError{Sub: MalformedBlock, Detail: "reading block body", Err: d.src.Err}
		return 0
	}

	data, err := d.compressor.Decode(raw)
	if err != nil {
		d.src.Err = err
		return 0
	}
	d.block.Reset(data)

	var sync [16]byte
	d.src.ReadFixed(sync[:])
	if d.src.Err != nil {
		d.src.Err = &ContainerError{Sub: MalformedBlock, Detail: "reading block sync marker", Err: d.src.Err}
		return 0
	}
	if sync != d.sync {
		d.src.Err = &ContainerError{Sub: SyncMismatch}
		return 0
	}

	return count
}
