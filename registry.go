package dolly

import (
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

var (
	registry   = make(map[reflect.Type]*typePlan)
	registryMu sync.RWMutex
)

// planFor returns the cached plan for t or builds a new one.
// Plans are shared by every Cloner and introspector in the process.
func planFor(t reflect.Type) (*typePlan, error) {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[t]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[t]; ok {
		return cached, nil
	}

	plan, err := buildPlan(t)
	if err != nil {
		return nil, err
	}

	registry[t] = plan
	return plan, nil
}

// Prepare scans T, and the types it references within its module, into
// sentinel's metadata cache. Type plans built afterwards carry the scanned
// tags and relationships. T must be a struct or a pointer to one.
func Prepare[T any]() error {
	if _, err := sentinel.TryScan[T](); err != nil {
		return newConfigError(reflect.TypeFor[T]().String(), err.Error())
	}

	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	registryMu.Lock()
	delete(registry, t)
	registryMu.Unlock()
	return nil
}

// Reset clears the type plan registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[reflect.Type]*typePlan)
}
