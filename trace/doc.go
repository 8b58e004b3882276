// Package trace records clustering runs and replays them.
//
// A Trace holds the dataset, the seed indices and every StepResult of a run.
// Traces are persisted in a small binary envelope:
//
//	magic    [4]byte  "KMTR"
//	version  uint8
//	compress uint8    0 none, 1 lz4, 2 zstd
//	codecLen uint8
//	codec    []byte   codec name, e.g. "go-json"
//	rawLen   uint32   payload length before compression
//	checksum uint32   CRC32C of the uncompressed payload
//	payload  []byte
//
// Integers are little-endian. Replay re-runs the engine from the recorded
// points and seeds and checks each step against the recording.
package trace
