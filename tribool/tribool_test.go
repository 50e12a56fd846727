package tribool

import "testing"

func TestNewFromBool(t *testing.T) {
	if tb := NewFromBool(true); !tb.True() {
		t.Fatalf("TestNewFromBool() failed, got: %s", tb)
	}
	if tb := NewFromBool(false); !tb.False() {
		t.Fatalf("TestNewFromBool() failed, got: %s", tb)
	}
}

func TestNot(t *testing.T) {
	if True.Not() != False || False.Not() != True || Undef.Not() != Undef {
		t.Fatalf("TestNot() failed")
	}
}

func TestString(t *testing.T) {
	if True.String() != "true" || False.String() != "false" || Undef.String() != "undef" {
		t.Fatalf("TestString() failed")
	}
}
