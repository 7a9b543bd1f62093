package dolly

import (
	"reflect"
	"sync"
)

// Cloneable allows types to provide their own duplication logic.
//
// When clone methods are enabled (the default), an instance whose type
// implements Clone() returning either T or *T is duplicated by calling it,
// after instance and class overrides but before the builtin and global
// defaults. The result is used verbatim, so Clone must return an
// independent copy. Clone must not call back into dolly with its receiver.
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloneable[T any] interface {
	Clone() T
}

var cloneMethodCache sync.Map // reflect.Type -> bool

// hasCloneMethod reports whether pointer type t has a usable Clone method.
func hasCloneMethod(t reflect.Type) bool {
	return cachedCloneCheck(t, func() bool {
		return cloneResultOK(t, t) || cloneResultOK(t, t.Elem())
	})
}

// hasValueCloneMethod reports whether value type t has Clone() T on a value receiver.
func hasValueCloneMethod(t reflect.Type) bool {
	return cachedCloneCheck(t, func() bool {
		return cloneResultOK(t, t)
	})
}

func cachedCloneCheck(t reflect.Type, check func() bool) bool {
	if cached, ok := cloneMethodCache.Load(t); ok {
		return cached.(bool)
	}
	ok := check()
	cloneMethodCache.Store(t, ok)
	return ok
}

// cloneResultOK reports whether t's method set has Clone() returning want.
func cloneResultOK(t, want reflect.Type) bool {
	m, ok := t.MethodByName("Clone")
	if !ok {
		return false
	}
	// Method types from a reflect.Type include the receiver.
	if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
		return false
	}
	return m.Type.Out(0) == want
}

// callCloneMethod calls v.Clone() and adapts a T result to *T for pointers.
func callCloneMethod(v reflect.Value) (reflect.Value, error) {
	out := v.MethodByName("Clone").Call(nil)[0]
	if v.Kind() == reflect.Ptr && out.Type() == v.Type().Elem() {
		p := reflect.New(out.Type())
		p.Elem().Set(out)
		return p, nil
	}
	return out, nil
}

// cloneMethodStrategy invokes the instance's own Clone method.
var cloneMethodStrategy = Invoke(func(src any, _ TypeDescriptor) (any, error) {
	out, err := callCloneMethod(reflect.ValueOf(src))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
})
