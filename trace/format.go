package trace

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/kmeansviz/codec"
	"github.com/hupe1980/kmeansviz/internal/hash"
)

const (
	// Magic identifies a trace blob.
	Magic = "KMTR"
	// Version is the current envelope version.
	Version uint8 = 1

	// maxRawLen bounds the payload size accepted on decode.
	maxRawLen = 1 << 30
)

var (
	// ErrBadMagic is returned when a blob does not start with Magic.
	ErrBadMagic = errors.New("trace: bad magic")
	// ErrCorrupt is returned for truncated or undecodable blobs.
	ErrCorrupt = errors.New("trace: corrupt data")
	// ErrChecksum is returned when the payload checksum does not match.
	ErrChecksum = errors.New("trace: checksum mismatch")
)

// ErrUnsupportedVersion is returned for envelopes newer than Version.
type ErrUnsupportedVersion struct {
	Version uint8
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("trace: unsupported version %d (max %d)", e.Version, Version)
}

// Header describes an encoded trace.
type Header struct {
	Version     uint8
	Compression Compression
	Codec       string
	RawLen      uint32
	Checksum    uint32
}

// Options configures encoding.
type Options struct {
	// Codec encodes the payload. Defaults to codec.Default.
	Codec codec.Codec
	// Compression is applied to the encoded payload.
	Compression Compression
}

// WithCodec selects the payload codec.
func WithCodec(c codec.Codec) func(o *Options) {
	return func(o *Options) { o.Codec = c }
}

// WithCompression selects the payload compression.
func WithCompression(c Compression) func(o *Options) {
	return func(o *Options) { o.Compression = c }
}

// Marshal encodes t into a self-describing blob.
func Marshal(t *Trace, optFns ...func(o *Options)) ([]byte, error) {
	opts := Options{Codec: codec.Default, Compression: CompressionNone}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	name := opts.Codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("trace: codec name too long: %q", name)
	}

	raw, err := opts.Codec.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("trace: encode: %w", err)
	}
	if len(raw) > maxRawLen {
		return nil, fmt.Errorf("trace: payload too large: %d bytes", len(raw))
	}

	payload, used, err := compress(raw, opts.Compression)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(Magic)+3+len(name)+8+len(payload))
	buf = append(buf, Magic...)
	buf = append(buf, Version, byte(used), byte(len(name)))
	buf = append(buf, name...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(raw)))
	buf = binary.LittleEndian.AppendUint32(buf, hash.CRC32C(raw))
	buf = append(buf, payload...)

	return buf, nil
}

// ReadHeader decodes the envelope header and returns it with the offset of
// the payload.
func ReadHeader(data []byte) (Header, int, error) {
	var h Header

	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return h, 0, ErrBadMagic
	}
	off := len(Magic)

	if len(data) < off+3 {
		return h, 0, ErrCorrupt
	}
	h.Version = data[off]
	h.Compression = Compression(data[off+1])
	nameLen := int(data[off+2])
	off += 3

	if h.Version == 0 || h.Version > Version {
		return h, 0, &ErrUnsupportedVersion{Version: h.Version}
	}

	if len(data) < off+nameLen+8 {
		return h, 0, ErrCorrupt
	}
	h.Codec = string(data[off : off+nameLen])
	off += nameLen

	h.RawLen = binary.LittleEndian.Uint32(data[off:])
	h.Checksum = binary.LittleEndian.Uint32(data[off+4:])
	off += 8

	if h.RawLen > maxRawLen {
		return h, 0, ErrCorrupt
	}

	return h, off, nil
}

// Unmarshal decodes a blob produced by Marshal.
func Unmarshal(data []byte) (*Trace, Header, error) {
	h, off, err := ReadHeader(data)
	if err != nil {
		return nil, h, err
	}

	c, err := codec.Lookup(h.Codec)
	if err != nil {
		return nil, h, err
	}

	if err := checkRawLen(len(data)-off, h.Compression, int(h.RawLen)); err != nil {
		return nil, h, err
	}

	raw, err := decompress(data[off:], h.Compression, int(h.RawLen))
	if err != nil {
		return nil, h, err
	}
	if len(raw) != int(h.RawLen) {
		return nil, h, ErrCorrupt
	}
	if !hash.Verify(raw, h.Checksum) {
		return nil, h, ErrChecksum
	}

	var t Trace
	if err := c.Unmarshal(raw, &t); err != nil {
		return nil, h, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return &t, h, nil
}
