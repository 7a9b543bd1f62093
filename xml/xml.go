// Package xml provides an XML codec for dolly.
//
// Use Strategy to duplicate instances by round-tripping them through XML:
//
//	dolly.OnType[Settings](cloner, xml.Strategy(), dolly.MatchExact)
//
// Only what XML carries survives. Unexported fields and fields tagged
// `xml:"-"` come back zero, and channel or func fields fail the encoding.
// Map fields fail the encoding unless they are tagged `xml:"-"`.
// References shared inside one instance are decoded as separate values.
// dolly.Dropped(New(), t) lists the affected fields of a type.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/dolly"
)

// Tag is the struct tag XML field names and exclusions are read from.
const Tag = "xml"

// xmlCodec implements dolly.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec.
func New() dolly.Codec {
	return &xmlCodec{}
}

// Strategy returns a dolly strategy that clones instances through XML.
func Strategy() dolly.Strategy {
	return dolly.ViaCodec(New())
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// FieldTag returns Tag, so dolly.Dropped honors `xml:"-"` exclusions.
func (c *xmlCodec) FieldTag() string {
	return Tag
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
