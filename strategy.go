package dolly

import (
	"fmt"
	"reflect"
)

// Kind identifies a Strategy variant.
type Kind int

const (
	// KindNone is the absent strategy. It is never executed.
	KindNone Kind = iota

	// KindKeep returns the source instance unchanged.
	KindKeep

	// KindShallow copies the instance one level deep.
	// Fails with ErrUnsupportedShallowCopy when the type cannot be copied.
	KindShallow

	// KindShallowOrKeep copies one level deep, or keeps the source when unsupported.
	KindShallowOrKeep

	// KindShallowOrNil copies one level deep, or yields nil when unsupported.
	KindShallowOrNil

	// KindDeep recursively duplicates the instance.
	KindDeep

	// KindUseInstance substitutes a fixed instance.
	KindUseInstance

	// KindInvoke calls a user function.
	KindInvoke

	// KindFail treats resolution as a terminal error.
	KindFail

	kindCount = int(iota)
)

var kindNames = [kindCount]string{
	KindNone:          "none",
	KindKeep:          "keep",
	KindShallow:       "shallow",
	KindShallowOrKeep: "shallow-or-keep",
	KindShallowOrNil:  "shallow-or-nil",
	KindDeep:          "deep",
	KindUseInstance:   "use-instance",
	KindInvoke:        "invoke",
	KindFail:          "fail",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Func builds the clone of src itself. Its return value is used verbatim;
// the function is responsible for any further recursion it wants.
type Func func(src any, desc TypeDescriptor) (any, error)

// Strategy decides how a single instance is duplicated.
// Strategies are immutable values; build them with the constructors below.
type Strategy struct {
	kind     Kind
	instance reflect.Value
	fn       Func
}

// None is the absent strategy. OnInstance(x, None) removes an instance override.
var None = Strategy{}

// Keep returns a strategy that keeps the source instance.
func Keep() Strategy { return Strategy{kind: KindKeep} }

// Shallow returns a strategy that copies one level deep and fails when the
// type does not support it, so the error fallback applies.
func Shallow() Strategy { return Strategy{kind: KindShallow} }

// ShallowOrKeep copies one level deep, keeping the source when unsupported.
func ShallowOrKeep() Strategy { return Strategy{kind: KindShallowOrKeep} }

// ShallowOrNil copies one level deep, substituting nil when unsupported.
func ShallowOrNil() Strategy { return Strategy{kind: KindShallowOrNil} }

// Deep returns the recursive duplication strategy.
func Deep() Strategy { return Strategy{kind: KindDeep} }

// Fail returns a strategy that raises ErrDuplicationFailed.
func Fail() Strategy { return Strategy{kind: KindFail} }

// UseInstance substitutes v for every instance the strategy applies to.
// A nil v substitutes nil.
func UseInstance(v any) Strategy {
	return Strategy{kind: KindUseInstance, instance: reflect.ValueOf(v)}
}

// Invoke delegates duplication to fn.
func Invoke(fn Func) Strategy {
	return Strategy{kind: KindInvoke, fn: fn}
}

// useValue substitutes an already reflected value. Used for memo hits.
func useValue(v reflect.Value) Strategy {
	return Strategy{kind: KindUseInstance, instance: v}
}

// Kind returns the strategy variant.
func (s Strategy) Kind() Kind { return s.kind }

// Instance returns the substitute of a UseInstance strategy.
func (s Strategy) Instance() any {
	if !s.instance.IsValid() || !s.instance.CanInterface() {
		return nil
	}
	return s.instance.Interface()
}

// Validate reports ErrInvalidConfiguration for strategies that cannot be executed.
func (s Strategy) Validate() error {
	switch s.kind {
	case KindNone:
		return newConfigError("", "strategy is not configured")
	case KindInvoke:
		if s.fn == nil {
			return newConfigError("", "invoke strategy requires a function")
		}
	case KindKeep, KindShallow, KindShallowOrKeep, KindShallowOrNil, KindDeep, KindUseInstance, KindFail:
	default:
		return newConfigError("", fmt.Sprintf("unknown strategy %s", s.kind))
	}
	return nil
}

func (s Strategy) String() string {
	return s.kind.String()
}

// duplicating reports whether errors raised by the strategy are eligible for the error fallback.
func (s Strategy) duplicating() bool {
	switch s.kind {
	case KindDeep, KindShallow, KindShallowOrKeep, KindShallowOrNil:
		return true
	default:
		return false
	}
}
