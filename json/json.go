// Package json provides a JSON codec for dolly.
//
// Use Strategy to duplicate instances by round-tripping them through JSON:
//
//	dolly.OnType[Settings](cloner, json.Strategy(), dolly.MatchExact)
//
// Only what JSON carries survives. Unexported fields and fields tagged
// `json:"-"` come back zero, and channel or func fields fail the encoding.
// Map keys must be strings or integers.
// References shared inside one instance are decoded as separate values.
// dolly.Dropped(New(), t) lists the affected fields of a type.
package json

import (
	"encoding/json"

	"github.com/zoobzio/dolly"
)

// Tag is the struct tag JSON field names and exclusions are read from.
const Tag = "json"

// jsonCodec implements dolly.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() dolly.Codec {
	return &jsonCodec{}
}

// Strategy returns a dolly strategy that clones instances through JSON.
func Strategy() dolly.Strategy {
	return dolly.ViaCodec(New())
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// FieldTag returns Tag, so dolly.Dropped honors `json:"-"` exclusions.
func (c *jsonCodec) FieldTag() string {
	return Tag
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
