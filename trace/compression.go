package trace

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the compression algorithm of a trace payload.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// ErrUnknownCompression is returned for an unsupported compression id or name.
var ErrUnknownCompression = errors.New("trace: unknown compression")

// String returns the flag name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// ZSTD encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxRawLen))
}

// lz4MaxRatio is the largest expansion an LZ4 block can encode.
const lz4MaxRatio = 255

// checkRawLen rejects a declared raw length the payload cannot decode to.
func checkRawLen(payloadLen int, c Compression, rawLen int) error {
	switch c {
	case CompressionNone:
		if rawLen != payloadLen {
			return ErrCorrupt
		}
	case CompressionLZ4:
		if rawLen > payloadLen*lz4MaxRatio {
			return ErrCorrupt
		}
	case CompressionZSTD:
		// Bounded by the decoder memory limit.
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
	return nil
}

// compress returns the compressed payload and the compression actually used.
// Payloads LZ4 cannot shrink are stored uncompressed.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return data, CompressionNone, nil

	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			return data, CompressionNone, nil // Incompressible
		}
		return buf[:n], CompressionLZ4, nil

	case CompressionZSTD:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, 0, err
		}
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), CompressionZSTD, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

func decompress(data []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return out[:n], nil

	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(out) != rawLen {
			return nil, ErrCorrupt
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}
