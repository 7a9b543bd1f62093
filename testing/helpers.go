// Package testing provides fixtures and graph assertions for dolly.
package testing

import (
	"fmt"
	"reflect"
	"testing"
)

// Team is the root of the organisation fixture.
type Team struct {
	Name    string      `json:"name" yaml:"name" msgpack:"name" bson:"name"`
	Lead    *Employee   `json:"lead" yaml:"lead" msgpack:"lead" bson:"lead"`
	Members []*Employee `json:"members" yaml:"members" msgpack:"members" bson:"members"`
	Parent  *Team       `json:"-" yaml:"-" msgpack:"-" bson:"-"`
}

// Employee belongs to a Team and may report to a manager.
type Employee struct {
	Name    string         `json:"name" yaml:"name" msgpack:"name" bson:"name"`
	Skills  map[string]int `json:"skills" yaml:"skills" msgpack:"skills" bson:"skills"`
	Team    *Team          `json:"-" yaml:"-" msgpack:"-" bson:"-"`
	Manager *Employee      `json:"-" yaml:"-" msgpack:"-" bson:"-"`
	notes   []string
}

// Notes returns the employee's private notes.
func (e *Employee) Notes() []string { return e.notes }

// NewOrg builds a team graph with back references and shared instances:
// every member points at the team, the lead is also a member, and members
// report to the lead.
func NewOrg() *Team {
	root := &Team{Name: "platform"}
	lead := &Employee{
		Name:   "ada",
		Skills: map[string]int{"go": 5, "sql": 3},
		Team:   root,
		notes:  []string{"founder"},
	}
	root.Lead = lead
	root.Members = []*Employee{lead}

	for _, name := range []string{"grace", "linus"} {
		root.Members = append(root.Members, &Employee{
			Name:    name,
			Skills:  map[string]int{"go": 4},
			Team:    root,
			Manager: lead,
			notes:   []string{"joined " + name},
		})
	}
	return root
}

// Profile is a flat, codec friendly fixture.
type Profile struct {
	ID     string            `json:"id" yaml:"id" msgpack:"id" bson:"id" xml:"id"`
	Tags   []string          `json:"tags" yaml:"tags" msgpack:"tags" bson:"tags" xml:"tag"`
	Limits map[string]int    `json:"limits" yaml:"limits" msgpack:"limits" bson:"limits" xml:"-"`
	Extra  map[string]string `json:"extra,omitempty" yaml:"extra,omitempty" msgpack:"extra,omitempty" bson:"extra,omitempty" xml:"-"`
}

// NewProfile returns a populated Profile.
func NewProfile() *Profile {
	return &Profile{
		ID:     "p-1",
		Tags:   []string{"a", "b"},
		Limits: map[string]int{"cpu": 2, "mem": 512},
	}
}

// Link is a singly linked list node.
type Link struct {
	Value int
	Next  *Link
}

// NewChain returns a list of n links holding 1..n.
func NewChain(n int) *Link {
	var head *Link
	for i := n; i > 0; i-- {
		head = &Link{Value: i, Next: head}
	}
	return head
}

// AssertIsomorphic fails t unless clone is an independent copy of src:
// equal values, the same sharing topology, and no pointer, slice backing
// array or map reachable from both.
func AssertIsomorphic(t testing.TB, src, clone any) {
	t.Helper()
	c := &checker{
		fwd: make(map[ref]ref),
		rev: make(map[ref]ref),
	}
	c.walk("root", reflect.ValueOf(src), reflect.ValueOf(clone))
	for _, msg := range c.failures {
		t.Errorf("%s", msg)
	}
}

type ref struct {
	typ  reflect.Type
	addr uintptr
}

type checker struct {
	fwd      map[ref]ref
	rev      map[ref]ref
	failures []string
}

func (c *checker) fail(path, format string, args ...any) {
	c.failures = append(c.failures, path+": "+fmt.Sprintf(format, args...))
}

func (c *checker) walk(path string, a, b reflect.Value) {
	if a.IsValid() != b.IsValid() {
		c.fail(path, "validity differs")
		return
	}
	if !a.IsValid() {
		return
	}
	if a.Type() != b.Type() {
		c.fail(path, "type %s != %s", a.Type(), b.Type())
		return
	}

	switch a.Kind() {
	case reflect.Ptr:
		if a.IsNil() || b.IsNil() {
			if a.IsNil() != b.IsNil() {
				c.fail(path, "nil pointer mismatch")
			}
			return
		}
		ka, kb := ref{a.Type(), a.Pointer()}, ref{b.Type(), b.Pointer()}
		if ka == kb {
			c.fail(path, "pointer %#x is shared with the source", ka.addr)
			return
		}
		if mapped, ok := c.fwd[ka]; ok {
			if mapped != kb {
				c.fail(path, "shared source instance cloned more than once")
			}
			return
		}
		if back, ok := c.rev[kb]; ok && back != ka {
			c.fail(path, "distinct source instances merged into one clone")
			return
		}
		c.fwd[ka], c.rev[kb] = kb, ka
		c.walk(path, a.Elem(), b.Elem())

	case reflect.Interface:
		if a.IsNil() != b.IsNil() {
			c.fail(path, "nil interface mismatch")
			return
		}
		if !a.IsNil() {
			c.walk(path, a.Elem(), b.Elem())
		}

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			c.walk(path+"."+a.Type().Field(i).Name, a.Field(i), b.Field(i))
		}

	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			c.fail(path, "slice length %d != %d", a.Len(), b.Len())
			return
		}
		if a.Len() > 0 && a.Pointer() == b.Pointer() {
			c.fail(path, "slice backing array is shared with the source")
		}
		for i := 0; i < a.Len(); i++ {
			c.walk(fmt.Sprintf("%s[%d]", path, i), a.Index(i), b.Index(i))
		}

	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			c.walk(fmt.Sprintf("%s[%d]", path, i), a.Index(i), b.Index(i))
		}

	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			c.fail(path, "map length %d != %d", a.Len(), b.Len())
			return
		}
		if !a.IsNil() && a.Pointer() == b.Pointer() {
			c.fail(path, "map is shared with the source")
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() {
				c.fail(path, "key %v missing", iter.Key())
				continue
			}
			c.walk(fmt.Sprintf("%s[%v]", path, iter.Key()), iter.Value(), bv)
		}

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		// Not duplicated.

	default:
		if !scalarEqual(a, b) {
			c.fail(path, "value %v != %v", a, b)
		}
	}
}

func scalarEqual(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	}
	return false
}
