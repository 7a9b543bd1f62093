package dolly

import (
	"errors"
	"testing"
)

func TestStrategy_Validate(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		wantErr  bool
	}{
		{"none", None, true},
		{"keep", Keep(), false},
		{"shallow", Shallow(), false},
		{"shallow-or-keep", ShallowOrKeep(), false},
		{"shallow-or-nil", ShallowOrNil(), false},
		{"deep", Deep(), false},
		{"fail", Fail(), false},
		{"use-instance", UseInstance(&struct{}{}), false},
		{"use-instance nil", UseInstance(nil), false},
		{"invoke", Invoke(func(src any, _ TypeDescriptor) (any, error) { return src, nil }), false},
		{"invoke nil", Invoke(nil), true},
		{"unknown", Strategy{kind: Kind(42)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.strategy.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Validate() error should match ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestStrategy_String(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     string
	}{
		{None, "none"},
		{Keep(), "keep"},
		{ShallowOrKeep(), "shallow-or-keep"},
		{Deep(), "deep"},
		{Fail(), "fail"},
		{Strategy{kind: Kind(42)}, "kind(42)"},
	}

	for _, tt := range tests {
		if got := tt.strategy.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStrategy_Instance(t *testing.T) {
	v := &struct{ N int }{N: 1}

	if got := UseInstance(v).Instance(); got != v {
		t.Errorf("Instance() = %v, want %v", got, v)
	}
	if got := UseInstance(nil).Instance(); got != nil {
		t.Errorf("Instance() = %v, want nil", got)
	}
	if got := Keep().Instance(); got != nil {
		t.Errorf("Keep().Instance() = %v, want nil", got)
	}
}

func TestStrategy_Duplicating(t *testing.T) {
	duplicating := map[Kind]bool{
		KindDeep:          true,
		KindShallow:       true,
		KindShallowOrKeep: true,
		KindShallowOrNil:  true,
	}

	for _, s := range []Strategy{Keep(), Shallow(), ShallowOrKeep(), ShallowOrNil(), Deep(), Fail(), UseInstance(nil), Invoke(nil)} {
		if got := s.duplicating(); got != duplicating[s.Kind()] {
			t.Errorf("%s.duplicating() = %v, want %v", s, got, duplicating[s.Kind()])
		}
	}
}
