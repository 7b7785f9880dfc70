package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes with github.com/goccy/go-json. Its output is plain JSON;
// only the name recorded in snapshot headers differs from JSON.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }
