// Package hash computes content digests of encoded containers.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Digest returns the xxHash64 of data as a 16-digit lowercase hex string.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
