package ocf

import "github.com/colvinstream/avrocombinator/compress"

type config struct {
	blockLength int
	codecName   compress.Name
	codecOpts   compress.Options
	metadata    map[string][]byte
}

func defaultConfig() config {
	return config{
		blockLength: 4000,
		codecName:   compress.Null,
		codecOpts:   compress.Options{DeflateLevel: -1},
		metadata:    map[string][]byte{},
	}
}

// EncoderOption configures an Encoder.
type EncoderOption func(*config)

// WithBlockLength sets the number of values buffered per block before it is
// compressed and flushed.
func WithBlockLength(n int) EncoderOption {
	return func(c *config) { c.blockLength = n }
}

// WithCodec sets the block compression codec.
func WithCodec(name compress.Name) EncoderOption {
	return func(c *config) { c.codecName = name }
}

// WithCompressionLevel selects the deflate codec at the given compression
// level.
func WithCompressionLevel(level int) EncoderOption {
	return func(c *config) {
		c.codecName = compress.Deflate
		c.codecOpts.DeflateLevel = level
	}
}

// WithMetadata sets additional header metadata entries. avro.schema and
// avro.codec are reserved and always overwritten by the encoder.
func WithMetadata(meta map[string][]byte) EncoderOption {
	return func(c *config) { c.metadata = meta }
}
