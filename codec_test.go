package dolly

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"testing"
)

// testCodec is a simple JSON codec for testing.
type testCodec struct {
	marshalErr error
}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	if c.marshalErr != nil {
		return nil, c.marshalErr
	}
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (c *testCodec) FieldTag() string { return "json" }

type codecConfig struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels"`
	secret string
}

type codecHolder struct {
	Config *codecConfig
	Alias  *codecConfig
}

func TestViaCodec(t *testing.T) {
	cfg := &codecConfig{Name: "svc", Labels: map[string]string{"env": "prod"}, secret: "s"}
	src := &codecHolder{Config: cfg, Alias: cfg}

	c := Of(src)
	OnType[codecConfig](c, ViaCodec(&testCodec{}), MatchExact)

	out, err := c.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	res := out.(*codecHolder)
	if res.Config == cfg {
		t.Fatal("codec strategy should produce a new instance")
	}
	if res.Config.Name != "svc" || res.Config.Labels["env"] != "prod" {
		t.Errorf("Config = %+v", res.Config)
	}
	if res.Config.secret != "" {
		t.Error("fields the codec does not encode should be dropped")
	}
	if res.Alias != res.Config {
		t.Error("shared references should still share one clone")
	}
}

func TestViaCodec_Error(t *testing.T) {
	cause := errors.New("encode failed")
	src := &codecHolder{Config: &codecConfig{Name: "svc"}}

	c := Of(src)
	OnType[codecConfig](c, ViaCodec(&testCodec{marshalErr: cause}), MatchExact)

	_, err := c.Create(context.Background())
	if !errors.Is(err, ErrDuplicationFailed) {
		t.Errorf("err = %v, want ErrDuplicationFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want codec error", err)
	}
}

func TestViaCodec_NilCodec(t *testing.T) {
	if err := ViaCodec(nil).Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
	}
}

func TestDropped(t *testing.T) {
	type record struct {
		ID     string         `json:"id"`
		Cache  map[string]int `json:"-"`
		Notify chan string
		OnSave func()
		secret string
		Labels map[string]string
	}

	tests := []struct {
		name  string
		codec Codec
		typ   reflect.Type
		want  []string
	}{
		{"tagged codec", &testCodec{}, reflect.TypeFor[record](), []string{"Cache", "Notify", "OnSave", "secret"}},
		{"pointer type", &testCodec{}, reflect.TypeFor[*record](), []string{"Cache", "Notify", "OnSave", "secret"}},
		{"untagged codec", untaggedCodec{}, reflect.TypeFor[record](), []string{"Notify", "OnSave", "secret"}},
		{"not a struct", &testCodec{}, reflect.TypeFor[[]string](), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dropped(tt.codec, tt.typ); !slices.Equal(got, tt.want) {
				t.Errorf("Dropped() = %v, want %v", got, tt.want)
			}
		})
	}
}

// untaggedCodec carries every exported field regardless of tags.
type untaggedCodec struct{}

func (untaggedCodec) ContentType() string { return "text/plain" }

func (untaggedCodec) Marshal(any) ([]byte, error) { return nil, nil }

func (untaggedCodec) Unmarshal([]byte, any) error { return nil }
