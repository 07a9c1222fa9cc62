package avro

import "github.com/colvinstream/avrocombinator/pkg/crc64"

// Fingerprint returns the CRC-64-AVRO fingerprint of s's Parsing Canonical
// Form. Two schemas with identical canonical JSON always produce the same
// fingerprint, regardless of surface differences the canonical form strips
// (docs, aliases, defaults, logical-type tags).
func Fingerprint(s Schema) uint64 {
	h := crc64.New()
	_, _ = h.Write([]byte(CanonicalJSON(s)))
	return h.Sum64()
}
