package dolly

import (
	"fmt"
	"reflect"
)

// cloneAny classifies v and routes it: scalars and nil pass through,
// containers are rebuilt element by element, and struct values and
// pointers go through the resolution pipeline.
//
// The result may be invalid (nil) or of a different type than v when an
// override substituted it; callers place it with assign.
func (s *session) cloneAny(v reflect.Value, depth int) (reflect.Value, error) {
	if !v.IsValid() {
		return v, nil
	}
	if s.cfg.maxDepth > 0 && depth > s.cfg.maxDepth {
		return reflect.Value{}, fmt.Errorf("%w: limit %d at %s", ErrDepthExceeded, s.cfg.maxDepth, v.Type())
	}

	switch v.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.Func:
		return v, nil

	case reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return v, nil
		}
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUncopyable, v.Type())

	case reflect.Interface:
		if v.IsNil() {
			return v, nil
		}
		return s.cloneAny(v.Elem(), depth+1)

	case reflect.Ptr:
		if v.IsNil() {
			return v, nil
		}
		return s.cloneInstance(v, depth)

	case reflect.Slice:
		return s.cloneSlice(v, depth)

	case reflect.Array:
		return s.cloneArray(v, depth)

	case reflect.Map:
		return s.cloneMap(v, depth)

	case reflect.Struct:
		return s.cloneStruct(v, depth)
	}

	return v, nil
}

// isPlain reports whether values of t can be copied by assignment alone.
func isPlain(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.Func:
		return true
	default:
		return false
	}
}

func (s *session) cloneSlice(v reflect.Value, depth int) (reflect.Value, error) {
	if v.IsNil() {
		return v, nil
	}

	n := v.Len()
	out := reflect.MakeSlice(v.Type(), n, n)
	if isPlain(v.Type().Elem()) {
		reflect.Copy(out, v)
		return out, nil
	}

	for i := 0; i < n; i++ {
		c, err := s.cloneAny(v.Index(i), depth+1)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		if err := assign(out.Index(i), c); err != nil {
			return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
	}
	return out, nil
}

func (s *session) cloneArray(v reflect.Value, depth int) (reflect.Value, error) {
	out := reflect.New(v.Type()).Elem()
	if isPlain(v.Type().Elem()) {
		reflect.Copy(out, v)
		return out, nil
	}

	for i := 0; i < v.Len(); i++ {
		c, err := s.cloneAny(v.Index(i), depth+1)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		if err := assign(out.Index(i), c); err != nil {
			return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
	}
	return out, nil
}

func (s *session) cloneMap(v reflect.Value, depth int) (reflect.Value, error) {
	if v.IsNil() {
		return v, nil
	}

	out := reflect.MakeMapWithSize(v.Type(), v.Len())
	elem := v.Type().Elem()
	plain := isPlain(elem)

	iter := v.MapRange()
	for iter.Next() {
		k, val := iter.Key(), iter.Value()
		if plain {
			out.SetMapIndex(k, val)
			continue
		}

		c, err := s.cloneAny(val, depth+1)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", k, err)
		}
		slot := reflect.New(elem).Elem()
		if err := assign(slot, c); err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", k, err)
		}
		out.SetMapIndex(k, slot)
	}
	return out, nil
}

// cloneStruct copies a struct value. Values have no identity, but they are
// resolved like instances of their type, minus memo and instance overrides.
// Lock values always come out zeroed.
func (s *session) cloneStruct(v reflect.Value, depth int) (reflect.Value, error) {
	t := v.Type()
	if isLock(t) {
		return reflect.Zero(t), nil
	}

	desc, err := s.describe(t)
	if err != nil {
		return reflect.Value{}, err
	}

	strategy := s.resolveValue(t, desc)
	return s.withFallback(desc, strategy, func(st Strategy) (reflect.Value, error) {
		return s.executeValue(v, st, desc, depth)
	})
}

// executeValue applies one strategy to a struct value. Keep and the shallow
// kinds copy the value itself; a value holding a lock cannot be copied.
func (s *session) executeValue(v reflect.Value, st Strategy, desc TypeDescriptor, depth int) (reflect.Value, error) {
	switch st.kind {
	case KindKeep, KindShallowOrKeep:
		return v, nil

	case KindShallow:
		if path := lockPath(v.Type()); path != "" {
			return reflect.Value{}, &ShallowCopyError{Type: desc.Name(), Reason: "contains lock " + path}
		}
		return v, nil

	case KindShallowOrNil:
		if lockPath(v.Type()) != "" {
			return reflect.Value{}, nil
		}
		return v, nil

	case KindDeep:
		dst := reflect.New(v.Type()).Elem()
		mark := s.memo.mark()
		if err := s.copyFields(dst, addressable(v), desc, depth); err != nil {
			s.memo.rollback(mark)
			return reflect.Value{}, err
		}
		return dst, nil

	case KindUseInstance:
		return derefTo(st.instance, v.Type()), nil

	case KindInvoke:
		if st.fn == nil {
			return reflect.Value{}, newConfigError(desc.Name(), "invoke strategy requires a function")
		}
		res, err := st.fn(addressable(v).Interface(), desc)
		if err != nil {
			return reflect.Value{}, newDuplicationError(desc.Name(), KindInvoke, err)
		}
		return derefTo(reflect.ValueOf(res), v.Type()), nil

	case KindFail:
		return reflect.Value{}, newDuplicationError(desc.Name(), KindFail, nil)
	}

	return reflect.Value{}, newConfigError(desc.Name(), "strategy "+st.kind.String()+" cannot be executed")
}

// derefTo unwraps a non-nil *t into its t, so strategies built for
// instances also fill value slots.
func derefTo(v reflect.Value, t reflect.Type) reflect.Value {
	if v.IsValid() && v.Kind() == reflect.Ptr && v.Type().Elem() == t && !v.IsNil() {
		return v.Elem()
	}
	return v
}

// addressable returns v itself or an addressable copy of it, so that
// unexported fields can be read.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	tmp := reflect.New(v.Type()).Elem()
	tmp.Set(v)
	return tmp
}
