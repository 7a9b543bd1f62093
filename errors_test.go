package dolly

import (
	"errors"
	"testing"
)

func TestConfigError_Is(t *testing.T) {
	err := newConfigError("app.User", "invoke strategy requires a function")

	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Error("ConfigError should unwrap to ErrInvalidConfiguration")
	}

	if errors.Is(err, ErrDuplicationFailed) {
		t.Error("ConfigError should not match ErrDuplicationFailed")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with type",
			err:  newConfigError("app.User", "strategy is not configured"),
			want: "invalid configuration for type app.User: strategy is not configured",
		},
		{
			name: "without type",
			err:  newConfigError("", "max depth -1 is negative"),
			want: "invalid configuration: max depth -1 is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShallowCopyError(t *testing.T) {
	err := &ShallowCopyError{Type: "app.Cache", Reason: "contains lock mu.sync.Mutex"}

	if !errors.Is(err, ErrUnsupportedShallowCopy) {
		t.Error("ShallowCopyError should unwrap to ErrUnsupportedShallowCopy")
	}

	want := "unsupported shallow copy of app.Cache: contains lock mu.sync.Mutex"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFieldError(t *testing.T) {
	cause := errors.New("boom")
	err := newFieldError("app.User", "Email", cause)

	if !errors.Is(err, ErrFieldCopyFailed) {
		t.Error("FieldError should match ErrFieldCopyFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("FieldError should match its cause")
	}

	want := "copy field app.User.Email: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDuplicationError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := newFieldError("app.User", "Email", ErrFieldAccess)
		err := newDuplicationError("app.User", KindShallow, cause)

		if !errors.Is(err, ErrDuplicationFailed) {
			t.Error("DuplicationError should match ErrDuplicationFailed")
		}
		if !errors.Is(err, ErrFieldAccess) {
			t.Error("DuplicationError should match errors wrapped by its cause")
		}

		var dupErr *DuplicationError
		if !errors.As(err, &dupErr) {
			t.Fatalf("errors.As failed for %T", err)
		}
		if dupErr.Strategy != KindShallow {
			t.Errorf("Strategy = %v, want %v", dupErr.Strategy, KindShallow)
		}
	})

	t.Run("without cause", func(t *testing.T) {
		err := newDuplicationError("app.Token", KindFail, nil)

		want := "duplication failed for app.Token (fail)"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("without strategy", func(t *testing.T) {
		err := newDuplicationError("chan int", KindNone, errors.New("boom"))

		want := "duplication failed for chan int: boom"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplication", newDuplicationError("T", KindFail, nil), true},
		{"config", newConfigError("T", "bad"), true},
		{"depth", ErrDepthExceeded, true},
		{"field", newFieldError("T", "F", ErrFieldAccess), false},
		{"shallow", &ShallowCopyError{Type: "T"}, false},
		{"uncopyable", ErrUncopyable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTerminal(tt.err); got != tt.want {
				t.Errorf("isTerminal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
