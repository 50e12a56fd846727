package sat

import "testing"

func TestNew(t *testing.T) {
	if l := New(12, false); l.Index() != 12 || l.Sign() {
		t.Fatalf("TestNew() failed, got: %d", l)
	}
	if l := New(12, true); l.Index() != 12 || !l.Sign() {
		t.Fatalf("TestNew() failed, got: %d", l)
	}
}

func TestNot(t *testing.T) {
	if l := New(5, false).Not(); l != New(5, true) {
		t.Fatalf("TestNot() failed, got: %d", l)
	}
	if l := New(5, true).Not(); l != New(5, false) {
		t.Fatalf("TestNot() failed, got: %d", l)
	}
}

func TestZ(t *testing.T) {
	// Variable 0 maps to solver variable 1.
	if m := New(0, false).Z(); m.Dimacs() != 1 {
		t.Fatalf("TestZ() failed, got: %d", m.Dimacs())
	}
	if m := New(0, true).Z(); m.Dimacs() != -1 {
		t.Fatalf("TestZ() failed, got: %d", m.Dimacs())
	}
	if m := New(3, true).Z(); m.Dimacs() != -4 {
		t.Fatalf("TestZ() failed, got: %d", m.Dimacs())
	}
}
