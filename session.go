package dolly

import (
	"context"
	"reflect"
)

// identity is a stable per-instance key: the pointer type plus its address.
// The type is part of the key so a struct and its first field stay distinct.
type identity struct {
	typ  reflect.Type
	addr uintptr
}

func identityOf(v reflect.Value) identity {
	return identity{typ: v.Type(), addr: v.Pointer()}
}

// memo maps source identities to their clones.
// The journal records installation order so a failed subtree can be undone.
type memo struct {
	entries map[identity]reflect.Value
	journal []identity
}

func newMemo() memo {
	return memo{entries: make(map[identity]reflect.Value)}
}

func (m *memo) lookup(id identity) (reflect.Value, bool) {
	v, ok := m.entries[id]
	return v, ok
}

// install records or finalizes the clone of id.
func (m *memo) install(id identity, v reflect.Value) {
	if _, ok := m.entries[id]; !ok {
		m.journal = append(m.journal, id)
	}
	m.entries[id] = v
}

// mark returns a rollback point.
func (m *memo) mark() int {
	return len(m.journal)
}

// rollback removes every entry installed since mark.
func (m *memo) rollback(mark int) {
	for _, id := range m.journal[mark:] {
		delete(m.entries, id)
	}
	m.journal = m.journal[:mark]
}

func (m *memo) len() int {
	return len(m.entries)
}

// session is the state of a single Create call. It borrows the Cloner's
// configuration read-only and owns its memo.
type session struct {
	ctx   context.Context
	cfg   *Cloner
	memo  memo
	descs map[reflect.Type]TypeDescriptor
}

func newSession(ctx context.Context, cfg *Cloner) *session {
	return &session{
		ctx:   ctx,
		cfg:   cfg,
		memo:  newMemo(),
		descs: make(map[reflect.Type]TypeDescriptor),
	}
}

// describe returns the descriptor for t, asking the introspector once per session.
func (s *session) describe(t reflect.Type) (TypeDescriptor, error) {
	if d, ok := s.descs[t]; ok {
		return d, nil
	}
	d, err := s.cfg.introspector.Describe(t)
	if err != nil {
		return nil, err
	}
	s.descs[t] = d
	return d, nil
}
