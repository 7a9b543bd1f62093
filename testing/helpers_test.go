package testing

import (
	"fmt"
	"testing"

	"github.com/zoobzio/dolly"
)

// recorder captures assertion failures instead of failing the test.
type recorder struct {
	testing.TB
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestNewOrg(t *testing.T) {
	org := NewOrg()

	if len(org.Members) != 3 {
		t.Fatalf("len(Members) = %d, want 3", len(org.Members))
	}
	if org.Members[0] != org.Lead {
		t.Error("lead should also be a member")
	}
	for _, m := range org.Members {
		if m.Team != org {
			t.Errorf("%s should point back at the team", m.Name)
		}
	}
	if org.Members[1].Manager != org.Lead {
		t.Error("members should report to the lead")
	}
}

func TestNewChain(t *testing.T) {
	n := 0
	for l := NewChain(5); l != nil; l = l.Next {
		n++
		if l.Value != n {
			t.Errorf("link %d holds %d", n, l.Value)
		}
	}
	if n != 5 {
		t.Errorf("chain length = %d, want 5", n)
	}
}

func TestAssertIsomorphic_Clone(t *testing.T) {
	org := NewOrg()

	clone, err := dolly.Clone(org)
	if err != nil {
		t.Fatalf("Clone() error: %v", err)
	}

	r := &recorder{TB: t}
	AssertIsomorphic(r, org, clone)
	if len(r.errors) != 0 {
		t.Errorf("AssertIsomorphic() reported %v", r.errors)
	}
}

func TestAssertIsomorphic_Shared(t *testing.T) {
	org := NewOrg()

	r := &recorder{TB: t}
	AssertIsomorphic(r, org, org)
	if len(r.errors) == 0 {
		t.Error("AssertIsomorphic() should reject a graph compared with itself")
	}
}

func TestAssertIsomorphic_BrokenSharing(t *testing.T) {
	src := []*Link{{Value: 1}}
	src = append(src, src[0])
	broken := []*Link{{Value: 1}, {Value: 1}}

	r := &recorder{TB: t}
	AssertIsomorphic(r, src, broken)
	if len(r.errors) == 0 {
		t.Error("AssertIsomorphic() should reject a clone that splits a shared instance")
	}
}

func TestAssertIsomorphic_ValueMismatch(t *testing.T) {
	r := &recorder{TB: t}
	AssertIsomorphic(r, NewProfile(), &Profile{ID: "other", Tags: []string{"a", "b"}, Limits: map[string]int{"cpu": 2, "mem": 512}})
	if len(r.errors) != 1 {
		t.Errorf("AssertIsomorphic() reported %d errors, want 1: %v", len(r.errors), r.errors)
	}
}
