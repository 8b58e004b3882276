// Package hash provides the integrity checksum for persisted traces.
//
// All checksums use CRC32-Castagnoli (CRC32C), which Go computes with
// hardware instructions on x86-64 (SSE4.2) and ARM64.
//
//	sum := hash.CRC32C(payload)
//	if !hash.Verify(payload, sum) {
//	    return ErrChecksum
//	}
package hash
