// Package codec selects the encoding of recorded runs.
//
// Trace files store the codec name in their header, so a trace written with
// one codec is always decoded with the same one. Adding a codec is safe;
// renaming one breaks existing traces.
package codec

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknown is returned by Lookup for a name no built-in codec carries.
var ErrUnknown = errors.New("codec: unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for new traces.
var Default Codec = GoJSON{}

var builtin = map[string]Codec{
	JSON{}.Name():   JSON{},
	GoJSON{}.Name(): GoJSON{},
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Lookup is ByName with an error for unknown names.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return c, nil
}

// Names lists the built-in codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
