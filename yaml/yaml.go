// Package yaml provides a YAML codec for dolly.
//
// Use Strategy to duplicate instances by round-tripping them through YAML:
//
//	dolly.OnType[Settings](cloner, yaml.Strategy(), dolly.MatchExact)
//
// Only what YAML carries survives. Unexported fields and fields tagged
// `yaml:"-"` come back zero, and channel or func fields fail the encoding.
// Anchors are not emitted, so repeated values decode as separate copies.
// References shared inside one instance are decoded as separate values.
// dolly.Dropped(New(), t) lists the affected fields of a type.
package yaml

import (
	"github.com/zoobzio/dolly"
	"gopkg.in/yaml.v3"
)

// Tag is the struct tag YAML field names and exclusions are read from.
const Tag = "yaml"

// yamlCodec implements dolly.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() dolly.Codec {
	return &yamlCodec{}
}

// Strategy returns a dolly strategy that clones instances through YAML.
func Strategy() dolly.Strategy {
	return dolly.ViaCodec(New())
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// FieldTag returns Tag, so dolly.Dropped honors `yaml:"-"` exclusions.
func (c *yamlCodec) FieldTag() string {
	return Tag
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
