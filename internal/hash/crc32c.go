package hash

import (
	"hash/crc32"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Verify reports whether data matches the checksum sum.
func Verify(data []byte, sum uint32) bool {
	return CRC32C(data) == sum
}
