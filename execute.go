package dolly

import (
	"errors"
	"reflect"
)

// cloneInstance resolves and executes the strategy for a non-nil pointer,
// applies the error fallback once, and records the result in the memo.
func (s *session) cloneInstance(src reflect.Value, depth int) (reflect.Value, error) {
	desc, err := s.describe(src.Type().Elem())
	if err != nil {
		return reflect.Value{}, err
	}

	strategy := s.resolve(src, desc)
	out, err := s.withFallback(desc, strategy, func(st Strategy) (reflect.Value, error) {
		return s.execute(src, st, desc, depth)
	})
	if err != nil {
		return reflect.Value{}, err
	}

	s.memo.install(identityOf(src), out)
	return out, nil
}

// withFallback runs strategy and, if a duplicating strategy failed with a
// recoverable error, runs the error fallback exactly once.
func (s *session) withFallback(desc TypeDescriptor, strategy Strategy, run func(Strategy) (reflect.Value, error)) (reflect.Value, error) {
	out, err := run(strategy)
	if err == nil {
		return out, nil
	}
	if !strategy.duplicating() || isTerminal(err) {
		return reflect.Value{}, err
	}

	fallback := s.cfg.fallback
	emitCloneFallback(s.ctx, desc.Name(), strategy.kind, fallback.kind, err)

	out, err = run(fallback)
	if err != nil {
		if !errors.Is(err, ErrDuplicationFailed) {
			err = newDuplicationError(desc.Name(), fallback.kind, err)
		}
		return reflect.Value{}, err
	}
	return out, nil
}

// execute applies one strategy to src. It never consults the fallback.
func (s *session) execute(src reflect.Value, st Strategy, desc TypeDescriptor, depth int) (reflect.Value, error) {
	switch st.kind {
	case KindKeep:
		return src, nil

	case KindShallow:
		return shallowCopy(src)

	case KindShallowOrKeep:
		out, err := shallowCopy(src)
		if errors.Is(err, ErrUnsupportedShallowCopy) {
			return src, nil
		}
		return out, err

	case KindShallowOrNil:
		out, err := shallowCopy(src)
		if errors.Is(err, ErrUnsupportedShallowCopy) {
			return reflect.Value{}, nil
		}
		return out, err

	case KindDeep:
		return s.deepDuplicate(src, desc, depth)

	case KindUseInstance:
		return st.instance, nil

	case KindInvoke:
		if st.fn == nil {
			return reflect.Value{}, newConfigError(desc.Name(), "invoke strategy requires a function")
		}
		res, err := st.fn(src.Interface(), desc)
		if err != nil {
			return reflect.Value{}, newDuplicationError(desc.Name(), KindInvoke, err)
		}
		return reflect.ValueOf(res), nil

	case KindFail:
		return reflect.Value{}, newDuplicationError(desc.Name(), KindFail, nil)
	}

	return reflect.Value{}, newConfigError(desc.Name(), "strategy "+st.kind.String()+" cannot be executed")
}

// deepDuplicate allocates a fresh instance, registers it before copying any
// field so cycles resolve to it, then fills it. On failure every memo entry
// installed since registration is removed.
func (s *session) deepDuplicate(src reflect.Value, desc TypeDescriptor, depth int) (reflect.Value, error) {
	dst := desc.New()

	mark := s.memo.mark()
	s.memo.install(identityOf(src), dst)

	var err error
	if desc.Type().Kind() == reflect.Struct {
		err = s.copyFields(dst.Elem(), src.Elem(), desc, depth)
	} else {
		var out reflect.Value
		out, err = s.cloneAny(src.Elem(), depth+1)
		if err == nil {
			err = assign(dst.Elem(), out)
		}
	}

	if err != nil {
		s.memo.rollback(mark)
		return reflect.Value{}, err
	}
	return dst, nil
}

// copyFields routes every storage field of src through the cloner into dst.
// Both values must be addressable.
func (s *session) copyFields(dst, src reflect.Value, desc TypeDescriptor, depth int) error {
	for _, fm := range desc.Fields() {
		val, err := desc.Read(src, fm.Name)
		if err != nil {
			return newFieldError(desc.Name(), fm.Name, err)
		}

		out := val
		if mode := FieldMode(fm.Tags[tagClone]); mode == FieldSkip || !plainField(fm) {
			out, err = s.copyField(val, mode, depth)
			if err != nil {
				return newFieldError(desc.Name(), fm.Name, err)
			}
		}

		if err := desc.Write(dst, fm.Name, out); err != nil {
			if isNoField(err) {
				continue
			}
			return newFieldError(desc.Name(), fm.Name, err)
		}
	}
	return nil
}

// copyField copies one field value according to its clone tag.
func (s *session) copyField(v reflect.Value, mode FieldMode, depth int) (reflect.Value, error) {
	switch mode {
	case FieldSkip:
		return reflect.Value{}, nil
	case FieldKeep:
		return v, nil
	case FieldShallow:
		return shallowValue(v)
	default:
		return s.cloneAny(v, depth+1)
	}
}
