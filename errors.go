package dolly

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnsupportedShallowCopy indicates a type cannot be copied one level deep.
	// Recoverable through the error fallback strategy.
	ErrUnsupportedShallowCopy = errors.New("unsupported shallow copy")

	// ErrFieldCopyFailed indicates a field's value failed to clone.
	// Recoverable at the owning instance through the error fallback strategy.
	ErrFieldCopyFailed = errors.New("field copy failed")

	// ErrInvalidConfiguration indicates a strategy or rule was not fully configured.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDuplicationFailed is terminal: the Fail strategy was selected,
	// a fallback failed, or an Invoke function returned an error.
	ErrDuplicationFailed = errors.New("duplication failed")

	// ErrFieldAccess indicates a field could not be read or written.
	ErrFieldAccess = errors.New("field not accessible")

	// ErrUncopyable indicates a value of a kind that cannot be duplicated (chan, unsafe.Pointer).
	ErrUncopyable = errors.New("uncopyable value")

	// ErrDepthExceeded indicates the object graph is deeper than the configured limit.
	ErrDepthExceeded = errors.New("max depth exceeded")
)

// ConfigError represents a configuration error.
// It wraps ErrInvalidConfiguration with context about the type and the reason.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrInvalidConfiguration)
	Type   string // Type the rule or strategy applies to, if known
	Reason string // What is wrong
}

func (e *ConfigError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s for type %s: %s", e.Err.Error(), e.Type, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ShallowCopyError reports why a type cannot be shallow copied.
type ShallowCopyError struct {
	Type   string
	Reason string
}

func (e *ShallowCopyError) Error() string {
	return fmt.Sprintf("%s of %s: %s", ErrUnsupportedShallowCopy.Error(), e.Type, e.Reason)
}

func (e *ShallowCopyError) Unwrap() error {
	return ErrUnsupportedShallowCopy
}

// FieldError represents a failure while copying a single field.
// It matches both ErrFieldCopyFailed and its cause.
type FieldError struct {
	Type  string // Owning type
	Field string // Field name
	Cause error  // Error raised while cloning the field value
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("copy field %s.%s: %v", e.Type, e.Field, e.Cause)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrFieldCopyFailed, e.Cause}
}

// DuplicationError is the terminal error for an instance.
// It matches ErrDuplicationFailed and, when present, its cause.
type DuplicationError struct {
	Type     string // Type of the instance that failed
	Strategy Kind   // Strategy that was executing when the failure became terminal, or KindNone
	Cause    error  // Original error, nil for the Fail strategy
}

func (e *DuplicationError) Error() string {
	msg := ErrDuplicationFailed.Error() + " for " + e.Type
	if e.Strategy != KindNone {
		msg += " (" + e.Strategy.String() + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DuplicationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDuplicationFailed}
	}
	return []error{ErrDuplicationFailed, e.Cause}
}

// newConfigError creates a ConfigError wrapping ErrInvalidConfiguration.
func newConfigError(typeName, reason string) error {
	return &ConfigError{
		Err:    ErrInvalidConfiguration,
		Type:   typeName,
		Reason: reason,
	}
}

// newFieldError creates a FieldError for a failed field copy.
func newFieldError(typeName, field string, cause error) error {
	return &FieldError{
		Type:  typeName,
		Field: field,
		Cause: cause,
	}
}

// newDuplicationError creates a terminal DuplicationError.
func newDuplicationError(typeName string, kind Kind, cause error) error {
	return &DuplicationError{
		Type:     typeName,
		Strategy: kind,
		Cause:    cause,
	}
}

// isTerminal reports whether err must propagate without a fallback attempt.
func isTerminal(err error) bool {
	return errors.Is(err, ErrDuplicationFailed) ||
		errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrDepthExceeded)
}
