package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the default trace codec, backed by github.com/goccy/go-json.
// Its output is plain JSON: a GoJSON trace also decodes with JSON, only the
// header name differs.
type GoJSON struct{}

// Marshal encodes the value to JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns the unique name of the codec ("go-json").
func (GoJSON) Name() string { return "go-json" }
