package session

import "encoding/json"

type Encoder interface {
	Encode(v any) ([]byte, error)
	ContentType() string
}

type Decoder interface {
	Decode(data []byte, v any) error
}

// JSON encodes and decodes with encoding/json.
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (JSON) ContentType() string             { return "application/json" }
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
