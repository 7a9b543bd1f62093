// Package bson provides a BSON codec for dolly.
//
// Use Strategy to duplicate instances by round-tripping them through BSON:
//
//	dolly.OnType[Settings](cloner, bson.Strategy(), dolly.MatchExact)
//
// Only what BSON carries survives. Unexported fields and fields tagged
// `bson:"-"` come back zero, and channel or func fields fail the encoding.
// Only documents encode, so the instance must be a struct or a map.
// References shared inside one instance are decoded as separate values.
// dolly.Dropped(New(), t) lists the affected fields of a type.
package bson

import (
	"github.com/zoobzio/dolly"
	"go.mongodb.org/mongo-driver/bson"
)

// Tag is the struct tag BSON field names and exclusions are read from.
const Tag = "bson"

// bsonCodec implements dolly.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() dolly.Codec {
	return &bsonCodec{}
}

// Strategy returns a dolly strategy that clones instances through BSON.
func Strategy() dolly.Strategy {
	return dolly.ViaCodec(New())
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// FieldTag returns Tag, so dolly.Dropped honors `bson:"-"` exclusions.
func (c *bsonCodec) FieldTag() string {
	return Tag
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
