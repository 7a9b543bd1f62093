// Package msgpack provides a MessagePack codec for dolly.
//
// Use Strategy to duplicate instances by round-tripping them through MessagePack:
//
//	dolly.OnType[Settings](cloner, msgpack.Strategy(), dolly.MatchExact)
//
// Only what MessagePack carries survives. Unexported fields and fields tagged
// `msgpack:"-"` come back zero, and channel or func fields fail the encoding.
// Interface fields decode as generic maps and slices unless their concrete type is registered.
// References shared inside one instance are decoded as separate values.
// dolly.Dropped(New(), t) lists the affected fields of a type.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/dolly"
)

// Tag is the struct tag MessagePack field names and exclusions are read from.
const Tag = "msgpack"

// msgpackCodec implements dolly.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() dolly.Codec {
	return &msgpackCodec{}
}

// Strategy returns a dolly strategy that clones instances through MessagePack.
func Strategy() dolly.Strategy {
	return dolly.ViaCodec(New())
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// FieldTag returns Tag, so dolly.Dropped honors `msgpack:"-"` exclusions.
func (c *msgpackCodec) FieldTag() string {
	return Tag
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
