package graph

import (
	"github.com/minio/highwayhash"
)

// fingerprintKey must be exactly 32 bytes.
var fingerprintKey = []byte("muze/reference-graph/fingerprint")

// Fingerprint returns the 64-bit highwayhash of src. Byte-identical sources
// share a fingerprint.
func Fingerprint(src []byte) uint64 {
	return highwayhash.Sum64(src, fingerprintKey)
}
