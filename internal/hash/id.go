// Package hash computes the fingerprints used to track record identifiers.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a record identifier.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}
