package dolly

import (
	"reflect"
)

// classRule is a class override. Exactly one of typ or name is set.
type classRule struct {
	typ      reflect.Type
	name     string
	mode     MatchMode
	strategy Strategy
}

// sameKey reports whether r and o target the same type and mode.
func (r classRule) sameKey(o classRule) bool {
	return r.typ == o.typ && r.name == o.name && r.mode == o.mode
}

// matches reports whether the rule applies to instances of pointer type ptr.
func (r classRule) matches(ptr reflect.Type) bool {
	elem := ptr.Elem()

	if r.typ != nil {
		if elem == r.typ {
			return true
		}
		if r.mode != MatchAssignable {
			return false
		}
		if r.typ.Kind() == reflect.Interface {
			return ptr.Implements(r.typ)
		}
		return embeds(elem, func(t reflect.Type) bool { return t == r.typ })
	}

	if typeNameMatches(elem, r.name) {
		return true
	}
	if r.mode != MatchAssignable {
		return false
	}
	return embeds(elem, func(t reflect.Type) bool { return typeNameMatches(t, r.name) })
}

// typeNameMatches compares name against t's short ("pkg.Type") and full
// ("import/path.Type") names.
func typeNameMatches(t reflect.Type, name string) bool {
	if t.String() == name {
		return true
	}
	return t.PkgPath() != "" && t.PkgPath()+"."+t.Name() == name
}

// embeds reports whether struct type t embeds, directly or through embedded
// structs and pointers, a type satisfying match.
func embeds(t reflect.Type, match func(reflect.Type) bool) bool {
	seen := map[reflect.Type]bool{}
	var walk func(reflect.Type) bool
	walk = func(t reflect.Type) bool {
		if t.Kind() != reflect.Struct || seen[t] {
			return false
		}
		seen[t] = true
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if match(ft) || walk(ft) {
				return true
			}
		}
		return false
	}
	return walk(t)
}

// resolve picks the strategy for a non-nil pointer instance:
// memo, instance overrides, class overrides in insertion order, the type's
// own Clone method, the builtin default, then the global default.
func (s *session) resolve(src reflect.Value, desc TypeDescriptor) Strategy {
	id := identityOf(src)
	if out, ok := s.memo.lookup(id); ok {
		return useValue(out)
	}

	if st, ok := s.cfg.instances[id]; ok {
		return st
	}

	ptr := src.Type()
	return s.resolveClass(ptr, desc, s.cfg.cloneMethods && hasCloneMethod(ptr))
}

// resolveValue picks the strategy for a struct value. Values have no
// identity, so memo and instance overrides never apply.
func (s *session) resolveValue(t reflect.Type, desc TypeDescriptor) Strategy {
	return s.resolveClass(reflect.PointerTo(t), desc, s.cfg.cloneMethods && hasValueCloneMethod(t))
}

func (s *session) resolveClass(ptr reflect.Type, desc TypeDescriptor, cloneMethod bool) Strategy {
	for _, rule := range s.cfg.classes {
		if rule.matches(ptr) {
			return rule.strategy
		}
	}

	if cloneMethod {
		return cloneMethodStrategy
	}

	if desc.Builtin() {
		return s.cfg.builtin
	}

	return s.cfg.global
}
