package dolly

import (
	"fmt"
	"reflect"
)

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// ViaCodec returns an Invoke strategy that duplicates an instance by
// marshaling it with c and unmarshaling into a freshly allocated instance
// of the same type. Only what the codec encodes survives; sharing inside the
// instance is not preserved.
func ViaCodec(c Codec) Strategy {
	if c == nil {
		return Invoke(nil)
	}
	return Invoke(func(src any, desc TypeDescriptor) (any, error) {
		data, err := c.Marshal(src)
		if err != nil {
			return nil, fmt.Errorf("%s marshal: %w", c.ContentType(), err)
		}
		dst := desc.New()
		if err := c.Unmarshal(data, dst.Interface()); err != nil {
			return nil, fmt.Errorf("%s unmarshal: %w", c.ContentType(), err)
		}
		return dst.Interface(), nil
	})
}

// FieldTagger is implemented by codecs whose field coverage follows a
// struct tag, such as `json:"-"`.
type FieldTagger interface {
	FieldTag() string
}

// Dropped lists the fields of struct type t (or *t) that a round trip
// through c cannot carry: unexported fields, channels, funcs, and fields
// the codec's tag excludes with "-". Only the top level is inspected.
func Dropped(c Codec, t reflect.Type) []string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	plan, err := planFor(t)
	if err != nil {
		return nil
	}

	var tag string
	if ft, ok := c.(FieldTagger); ok {
		tag = ft.FieldTag()
	}

	var dropped []string
	for _, fm := range plan.meta.Fields {
		if !carried(t.Field(fm.Index[0]), tag) {
			dropped = append(dropped, fm.Name)
		}
	}
	return dropped
}

func carried(sf reflect.StructField, tag string) bool {
	if !sf.IsExported() && !sf.Anonymous {
		return false
	}
	switch sf.Type.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	}
	return tag == "" || sf.Tag.Get(tag) != "-"
}
