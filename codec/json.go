package codec

import "encoding/json"

// JSON is the standard-library codec. Other tools can read blobs written
// with it without extra dependencies.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }
