package json

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/zoobzio/dolly"
)

type settings struct {
	Name  string   `json:"name"`
	Hosts []string `json:"hosts"`
	token string
}

type holder struct {
	Primary *settings
	Mirror  *settings
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() should return non-nil codec")
	}
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	original := &settings{Name: "primary", Hosts: []string{"a", "b"}}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored settings
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Name != original.Name || !slices.Equal(restored.Hosts, original.Hosts) {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v settings
	if err := c.Unmarshal([]byte("invalid json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestStrategy(t *testing.T) {
	src := &settings{Name: "primary", Hosts: []string{"a", "b"}, token: "secret"}
	h := &holder{Primary: src, Mirror: src}

	out, err := dolly.OnType[settings](dolly.Of(h), Strategy(), dolly.MatchExact).Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	clone := out.(*holder)
	if clone.Primary == src {
		t.Fatal("clone should not alias the source")
	}
	if clone.Primary.Name != "primary" || !slices.Equal(clone.Primary.Hosts, src.Hosts) {
		t.Errorf("clone = %+v, want fields of %+v", clone.Primary, src)
	}
	if clone.Primary.token != "" {
		t.Errorf("unexported field should not survive the codec, got %q", clone.Primary.token)
	}
	if clone.Mirror != clone.Primary {
		t.Error("shared reference should resolve to the same clone")
	}

	clone.Primary.Hosts[0] = "changed"
	if src.Hosts[0] != "a" {
		t.Error("mutating the clone changed the source")
	}
}

func TestStrategyMarshalError(t *testing.T) {
	type pipe struct {
		C chan int
	}

	_, err := dolly.OnType[pipe](dolly.Of(&pipe{C: make(chan int)}), Strategy(), dolly.MatchExact).
		Create(context.Background())
	if !errors.Is(err, dolly.ErrDuplicationFailed) {
		t.Fatalf("err = %v, want ErrDuplicationFailed", err)
	}
}

func TestDropped(t *testing.T) {
	type cached struct {
		Name  string         `json:"name"`
		Cache map[string]int `json:"-"`
		token string
	}

	if got := New().(dolly.FieldTagger).FieldTag(); got != Tag {
		t.Errorf("FieldTag() = %q, want %q", got, Tag)
	}

	want := []string{"Cache", "token"}
	if got := dolly.Dropped(New(), reflect.TypeFor[cached]()); !slices.Equal(got, want) {
		t.Errorf("Dropped() = %v, want %v", got, want)
	}
}
