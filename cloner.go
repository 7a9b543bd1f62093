package dolly

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// DefaultMaxDepth is the default nesting limit of a clone pass. A linked
// list longer than this fails with ErrDepthExceeded; raise it or disable it
// with Cloner.MaxDepth for such graphs.
const DefaultMaxDepth = 100000

// Cloner duplicates the object graph reachable from a bound source value.
//
// Configure it with the chained On* methods, then call Create. A Cloner
// may be reused: every Create call gets its own identity memo. Create only
// reads the configuration, so concurrent Create calls are safe as long as
// nobody reconfigures the Cloner meanwhile.
//
// Configuration errors are recorded by the setter that detected them;
// Validate reports the first one and Create refuses to run.
type Cloner struct {
	source any

	instances map[identity]Strategy
	classes   []classRule

	builtin  Strategy
	global   Strategy
	fallback Strategy

	introspector Introspector
	cloneMethods bool
	maxDepth     int

	err error
}

// Of binds source and returns a Cloner with the default configuration:
// deep duplication for application types, shallow-or-keep for builtin
// types and as the error fallback.
func Of(source any) *Cloner {
	return &Cloner{
		source:       source,
		instances:    make(map[identity]Strategy),
		builtin:      ShallowOrKeep(),
		global:       Deep(),
		fallback:     ShallowOrKeep(),
		introspector: Introspect(),
		cloneMethods: true,
		maxDepth:     DefaultMaxDepth,
	}
}

// Copy deep clones source with the default configuration.
// It is a shortcut of Of(source).Create(context.Background()).
func Copy(source any) (any, error) {
	return Of(source).Create(context.Background())
}

// Clone deep clones source with the default configuration and returns the
// clone with its static type.
func Clone[T any](source T) (T, error) {
	var zero T
	out, err := Copy(source)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	typed, ok := out.(T)
	if !ok {
		return zero, newConfigError(reflect.TypeFor[T]().String(), fmt.Sprintf("clone has type %T", out))
	}
	return typed, nil
}

// MustClone is like Clone but panics on error.
func MustClone[T any](source T) T {
	out, err := Clone(source)
	if err != nil {
		panic(err)
	}
	return out
}

// OnClass registers a class override for t. Pointer types are normalized to
// their element, so t and *t are the same rule. Registering the same type
// and mode again overwrites the rule in place.
func (c *Cloner) OnClass(t reflect.Type, s Strategy, m MatchMode) *Cloner {
	if t == nil {
		c.fail(newConfigError("", "class override requires a type"))
		return c
	}
	if t.Kind() == reflect.Ptr && t.Elem().Kind() != reflect.Interface {
		t = t.Elem()
	}
	return c.addClass(classRule{typ: t, mode: m, strategy: s}, t.String())
}

// OnClassName registers a class override by type name, either "pkg.Type"
// or "import/path.Type".
func (c *Cloner) OnClassName(name string, s Strategy, m MatchMode) *Cloner {
	if name == "" {
		c.fail(newConfigError("", "class override requires a type name"))
		return c
	}
	return c.addClass(classRule{name: name, mode: m, strategy: s}, name)
}

// OnType registers a class override for T. See Cloner.OnClass.
func OnType[T any](c *Cloner, s Strategy, m MatchMode) *Cloner {
	return c.OnClass(reflect.TypeFor[T](), s, m)
}

func (c *Cloner) addClass(rule classRule, typeName string) *Cloner {
	if !IsValidMatchMode(rule.mode) {
		c.fail(newConfigError(typeName, fmt.Sprintf("unknown match mode %d", int(rule.mode))))
		return c
	}
	if !c.check(typeName, rule.strategy) {
		return c
	}
	for i, existing := range c.classes {
		if existing.sameKey(rule) {
			c.classes[i] = rule
			return c
		}
	}
	c.classes = append(c.classes, rule)
	return c
}

// OnInstance registers a strategy for one instance, which must be a non-nil
// pointer. Passing None removes an existing override.
func (c *Cloner) OnInstance(instance any, s Strategy) *Cloner {
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		c.fail(newConfigError(fmt.Sprintf("%T", instance), "instance override requires a non-nil pointer"))
		return c
	}

	id := identityOf(v)
	if s.kind == KindNone {
		delete(c.instances, id)
		return c
	}
	if c.check(v.Type().String(), s) {
		c.instances[id] = s
	}
	return c
}

// OnBuiltinTypeDefault sets the strategy for instances of standard library types.
func (c *Cloner) OnBuiltinTypeDefault(s Strategy) *Cloner {
	if c.check("", s) {
		c.builtin = s
	}
	return c
}

// OnGlobalDefault sets the strategy used when nothing else matches.
func (c *Cloner) OnGlobalDefault(s Strategy) *Cloner {
	if c.check("", s) {
		c.global = s
	}
	return c
}

// OnErrorFallback sets the strategy tried once when a duplicating strategy fails.
func (c *Cloner) OnErrorFallback(s Strategy) *Cloner {
	if c.check("", s) {
		c.fallback = s
	}
	return c
}

// AccessPrivate controls whether unexported fields are read and written.
// When disabled, deep duplication of a type with unexported fields fails
// with ErrFieldAccess and the error fallback applies.
func (c *Cloner) AccessPrivate(enabled bool) *Cloner {
	if enabled {
		c.introspector = Introspect()
	} else {
		c.introspector = IntrospectExported()
	}
	return c
}

// WithIntrospector replaces the type introspector.
func (c *Cloner) WithIntrospector(i Introspector) *Cloner {
	if i == nil {
		c.fail(newConfigError("", "introspector must not be nil"))
		return c
	}
	c.introspector = i
	return c
}

// UseCloneMethods controls whether types implementing Cloneable are
// duplicated by their own Clone method.
func (c *Cloner) UseCloneMethods(enabled bool) *Cloner {
	c.cloneMethods = enabled
	return c
}

// MaxDepth limits how deep a clone pass may descend. Each nested field or
// element counts as one level. A graph nested deeper than n fails the
// whole pass with ErrDepthExceeded, even when it is otherwise valid, and the
// error fallback does not apply. Zero disables the limit, leaving only the
// goroutine stack to bound recursion.
func (c *Cloner) MaxDepth(n int) *Cloner {
	if n < 0 {
		c.fail(newConfigError("", fmt.Sprintf("max depth %d is negative", n)))
		return c
	}
	c.maxDepth = n
	return c
}

// Validate returns the first configuration error, if any.
func (c *Cloner) Validate() error {
	return c.err
}

// Create executes one full duplication pass over the bound source.
//
// Every failure matches ErrDuplicationFailed, except configuration errors
// detected before the pass, which match ErrInvalidConfiguration. The
// context is only used for signals.
func (c *Cloner) Create(ctx context.Context) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	typeName := fmt.Sprintf("%T", c.source)
	start := time.Now()
	emitCloneStart(ctx, typeName)

	s := newSession(ctx, c)
	out, err := s.cloneAny(reflect.ValueOf(c.source), 0)
	if err != nil && !errors.Is(err, ErrDuplicationFailed) {
		// No strategy owns errors that escape the pass unwrapped.
		err = newDuplicationError(typeName, KindNone, err)
	}

	emitCloneComplete(ctx, typeName, time.Since(start), s.memo.len(), err)

	if err != nil {
		return nil, err
	}
	if !out.IsValid() {
		return nil, nil
	}
	return out.Interface(), nil
}

// check validates s, recording the error against typeName.
func (c *Cloner) check(typeName string, s Strategy) bool {
	err := s.Validate()
	if err == nil {
		return true
	}
	var cfgErr *ConfigError
	if typeName != "" && errors.As(err, &cfgErr) {
		err = newConfigError(typeName, cfgErr.Reason)
	}
	c.fail(err)
	return false
}

func (c *Cloner) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}
