// Package dolly duplicates arbitrary object graphs.
//
// A clone pass walks everything reachable from a source value and builds a
// structurally equivalent graph that shares nothing mutable with it, unless
// configuration says otherwise. Shared references and cycles are preserved:
// if two fields point at the same instance, the two clone fields point at the
// same clone.
//
// # Basic Usage
//
//	clone, err := dolly.Clone(order)
//
//	// or with configuration
//	out, err := dolly.Of(order).
//	    OnInstance(order.Customer, dolly.Keep()).
//	    OnClass(reflect.TypeFor[Audit](), dolly.Fail(), dolly.MatchExact).
//	    Create(ctx)
//
// # Instances
//
// Only non-nil pointers have identity. Each one is resolved to a Strategy in
// this order, first match wins:
//
//   - the clone already made for it in this pass
//   - instance overrides (OnInstance)
//   - class overrides in registration order (OnClass, OnClassName, OnType)
//   - the type's own Clone method, see Cloneable
//   - the builtin default for standard library types (OnBuiltinTypeDefault)
//   - the global default (OnGlobalDefault)
//
// Struct values have no identity either, but they go through the same class
// overrides and defaults, so a rule for T also covers T fields and []T
// elements. Scalars, strings and funcs are copied as-is. Slices, maps and
// arrays are rebuilt element by element. Map keys are copied as-is.
//
// Types are standard library types when their package is found under
// GOROOT. Package main and the modules of the running binary never are.
//
// # Strategies
//
//   - Keep: reuse the source instance
//   - Shallow: copy one level deep, fail if the type holds a lock by value
//   - ShallowOrKeep, ShallowOrNil: like Shallow, keeping or dropping unsupported instances
//   - Deep: allocate without initialization and clone every field recursively
//   - UseInstance(v): substitute v
//   - Invoke(fn): let fn build the clone
//   - Fail: abort the pass with ErrDuplicationFailed
//
// # Error Fallback
//
// When a Deep or Shallow strategy fails with a recoverable error, the error
// fallback strategy (OnErrorFallback) is tried once for that instance. Any
// clones registered while the failed attempt ran are discarded first. A failing
// fallback, the Fail strategy, a failing Invoke function, configuration
// errors and ErrDepthExceeded all abort the pass.
//
// # Field Tags
//
// Struct fields can opt out of deep duplication:
//
//	type Session struct {
//	    User   *User                  // cloned
//	    Pool   *Pool   `clone:"keep"`    // shared with the source
//	    Header Header  `clone:"shallow"` // copied one level deep
//	    cache  *Cache  `clone:"-"`       // left zero
//	}
//
// # Codec Strategies
//
// ViaCodec turns any Codec into a strategy that round-trips instances through
// an encoding. Dropped lists the fields such a round trip loses.
// Implementations are available as submodules:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Metadata
//
// Type plans are built from sentinel metadata. Prepare[T] scans T and its
// related types through sentinel up front; plans built afterwards reuse the
// scanned tags and relationships, visible through TypeDescriptor.Metadata.
//
// # Signals
//
// Every pass emits SignalCloneStart and SignalCloneComplete through capitan,
// and SignalCloneFallback each time the error fallback runs.
package dolly
