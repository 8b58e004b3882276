package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Known answer for the Castagnoli polynomial.
	assert.Equal(t, uint32(0xe3069283), CRC32C([]byte("123456789")))
	assert.Equal(t, uint32(0), CRC32C(nil))
}

func TestVerify(t *testing.T) {
	data := []byte("trace payload")
	sum := CRC32C(data)

	assert.True(t, Verify(data, sum))
	assert.False(t, Verify([]byte("trace payloaD"), sum))
}
