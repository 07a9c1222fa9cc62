package ocf

import (
	"errors"
	"fmt"
	"io"

	avro "github.com/colvinstream/avrocombinator"
	"github.com/colvinstream/avrocombinator/compress"
	"github.com/colvinstream/avrocombinator/generic"
	"github.com/colvinstream/avrocombinator/resolve"
	"github.com/colvinstream/avrocombinator/value"
	"github.com/colvinstream/avrocombinator/wire"
)

// GenericDecoder reads values from an Object Container File whose writer
// schema (embedded in the header) may differ from the schema the caller
// wants to read against. It resolves the two once, up front, and decodes
// every value through the resulting plan into a generic value.Value.
type GenericDecoder struct {
	src        *wire.Source
	plan       *resolve.Plan
	compressor compress.Codec
	meta       map[string][]byte
	sync       [16]byte

	block     *wire.Source
	remaining int64
}

// NewGenericDecoder returns a GenericDecoder reading from r and resolving
// the file's writer schema against reader.
func NewGenericDecoder(reader avro.Schema, r io.Reader) (*GenericDecoder, error) {
	src := wire.NewStreamSource(r, 1024)
	h, err := readHeader(src)
	if err != nil {
		return nil, err
	}

	writer, err := avro.Parse(string(h.Meta[schemaKey]))
	if err != nil {
		return nil, fmt.Errorf("ocf: parsing writer schema: %w", err)
	}

	plan, err := resolve.Resolve(reader, writer)
	if err != nil {
		return nil, err
	}

	compressor, err := compress.Resolve(compress.Name(h.Meta[codecKey]), compress.Options{DeflateLevel: -1})
	if err != nil {
		return nil, err
	}

	return &GenericDecoder{
		src:        src,
		plan:       plan,
		compressor: compressor,
		meta:       h.Meta,
		sync:       h.Sync,
		block:      wire.NewSource(nil),
	}, nil
}

// Metadata returns the file's header metadata.
func (d *GenericDecoder) Metadata() map[string][]byte { return d.meta }

// HasNext reports whether another value is available.
func (d *GenericDecoder) HasNext() bool {
	if d.remaining <= 0 {
		d.remaining = d.readBlock()
	}
	if d.src.Err != nil {
		return false
	}
	return d.remaining > 0
}

// Decode reads the next value, reshaped to the reader schema Resolve was
// called with.
func (d *GenericDecoder) Decode() (value.Value, error) {
	if d.remaining <= 0 {
		return value.Value{}, errors.New("ocf: no data available, call HasNext first")
	}
	d.remaining--
	v := generic.Decode(d.block, d.plan)
	if d.block.Err != nil {
		return value.Value{}, fmt.Errorf("ocf: decoding value: %w", d.block.Err)
	}
	return v, nil
}

// Error returns the last error encountered while reading block framing.
func (d *GenericDecoder) Error() error {
	if d.src.Err == nil || errors.Is(d.src.Err, io.EOF) {
		return nil
	}
	return d.src.Err
}

func (d *GenericDecoder) readBlock() int64 {
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
