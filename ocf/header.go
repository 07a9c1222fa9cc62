// Package ocf implements the Avro Object Container File format: a header
// carrying the writer schema and compression codec, followed by a sequence
// of independently compressed blocks, each closed with a 16-byte sync
// marker shared by the whole file.
package ocf

import (
	"crypto/rand"
	"fmt"

	"github.com/colvinstream/avrocombinator/wire"
)

const (
	schemaKey = "avro.schema"
	codecKey  = "avro.codec"
)

var magicBytes = [4]byte{'O', 'b', 'j', 1}

// ContainerSubKind tags the specific way an Object Container File failed to
// parse.
type ContainerSubKind int

// Container error sub-kinds.
const (
	BadMagic ContainerSubKind = iota
	MissingSchema
	SyncMismatch
	MalformedBlock
)

func (k ContainerSubKind) String() string {
	switch k {
	case BadMagic:
		return "bad magic"
	case MissingSchema:
		return "missing schema"
	case SyncMismatch:
		return "sync mismatch"
	case MalformedBlock:
		return "malformed block"
	default:
		return "unknown"
	}
}

// ContainerError reports a structural failure reading an Object Container
// File: a bad magic header, a missing avro.schema entry, a block whose sync
// marker doesn't match the file's, or a header or block frame cut short. A
// value that cannot be decoded from a block's data is reported by Decode as
// a wrapped wire error, not as a ContainerError.
type ContainerError struct {
	Sub    ContainerSubKind
	Detail string
	Err    error
}

func (e *ContainerError) Error() string {
	if e.Detail == "" {
		return "ocf: " + e.Sub.String()
	}
	return fmt.Sprintf("ocf: %s: %s", e.Sub, e.Detail)
}

func (e *ContainerError) Unwrap() error { return e.Err }

// Header is the file header: the magic bytes, the avro.schema/avro.codec
// metadata (plus anything else a caller stashed there with WithMetadata),
// and the sync marker every block in the file is closed with.
type Header struct {
	Meta map[string][]byte
	Sync [16]byte
}

func writeHeader(sink *wire.Sink, meta map[string][]byte, sync [16]byte) {
	sink.WriteFixed(magicBytes[:])
	if len(meta) > 0 {
		sink.WriteLong(int64(len(meta)))
		for k, v := range meta {
			sink.WriteString(k)
			sink.WriteBytes(v)
		}
	}
	sink.WriteLong(0)
	sink.WriteFixed(sync[:])
}

func readHeader(src *wire.Source) (Header, error) {
	var magic [4]byte
	src.ReadFixed(magic[:])
	if src.Err != nil {
		return Header{}, &ContainerError{Sub: BadMagic, Detail: src.Err.Error(), Err: src.Err}
	}
	if magic != magicBytes {
		return Header{}, &ContainerError{Sub: BadMagic, Detail: "not an avro object container file"}
	}

	meta := make(map[string][]byte)
	for {
		count := src.ReadLong()
		if src.Err != nil {
			return Header{}, &ContainerError{Sub: MalformedBlock, Detail: "reading header metadata", Err: src.Err}
		}
		if count == 0 {
			break
		}
		if count < 0 {
			src.ReadLong()
			count = -count
		}
		for i := int64(0); i < count; i++ {
			k := src.ReadString()
			v := src.ReadBytes()
			meta[k] = v
		}
	}

	var sync [16]byte
	src.ReadFixed(sync[:])
	if src.Err != nil {
		return Header{}, &ContainerError{Sub: MalformedBlock, Detail: "reading sync marker", Err: src.Err}
	}

	if _, ok := meta[schemaKey]; !ok {
		return Header{}, &ContainerError{Sub: MissingSchema, Detail: "avro.schema metadata entry absent"}
	}

	return Header{Meta: meta, Sync: sync}, nil
}

func newSync() ([16]byte, error) {
	var sync [16]byte
	if _, err := rand.Read(sync[:]); err != nil {
		return sync, fmt.Errorf("ocf: generating sync marker: %w", err)
	}
	return sync, nil
}
