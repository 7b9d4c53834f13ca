package buildfile

import (
	"testing"
)

func TestRegistry_InsertionOrder(t *testing.T) {
	r := newRegistry[string]()
	r.insert("c", "1")
	r.insert("a", "2")
	r.insert("b", "3")

	got := r.Names()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Names() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := newRegistry[string]()
	r.insert("a", "1")
	r.insert("b", "2")
	r.insert("a", "3")

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
	if v, ok := r.get("a"); !ok || v != "3" {
		t.Errorf("get(a) = %q, %v; want %q, true", v, ok, "3")
	}
	if r.len() != 2 {
		t.Errorf("len() = %d, want 2", r.len())
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := newRegistry[int]()
	if _, ok := r.get("missing"); ok {
		t.Error("get(missing) reported ok for absent name")
	}
}

func TestRegistry_NamesIsCopy(t *testing.T) {
	r := newRegistry[string]()
	r.insert("a", "1")

	names := r.Names()
	names[0] = "mutated"
	if got := r.Names()[0]; got != "a" {
		t.Errorf("Names() shares backing array: got %q after mutation", got)
	}
}
