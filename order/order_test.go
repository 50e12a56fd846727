package order

import (
	"testing"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

func TestCompareByWeight(t *testing.T) {
	sig := logic.NewSignature()
	b := logic.NewBank(sig)
	f := sig.AddFunc("f", 1)
	a := sig.AddFunc("a", 0)
	kbo := NewKBO()

	if got := kbo.Compare(b.Apply(f, b.Const(a)), b.Const(a)); got != Greater {
		t.Fatalf("f(a) vs a: got %s", got)
	}
	if got := kbo.Compare(b.Const(a), b.Apply(f, b.Const(a))); got != Less {
		t.Fatalf("a vs f(a): got %s", got)
	}
	if got := kbo.Compare(b.Const(a), b.Const(a)); got != Equal {
		t.Fatalf("a vs a: got %s", got)
	}
}

func TestCompareVariableCondition(t *testing.T) {
	sig := logic.NewSignature()
	b := logic.NewBank(sig)
	f := sig.AddFunc("f", 1)
	kbo := NewKBO()

	// f(X0) > X0 since X0 occurs in f(X0).
	if got := kbo.Compare(b.Apply(f, b.Var(0)), b.Var(0)); got != Greater {
		t.Fatalf("f(X0) vs X0: got %s", got)
	}
	// f(X0) and X1 share no variables.
	if got := kbo.Compare(b.Apply(f, b.Var(0)), b.Var(1)); got != Incomparable {
		t.Fatalf("f(X0) vs X1: got %s", got)
	}
	// Distinct variables are incomparable.
	if got := kbo.Compare(b.Var(0), b.Var(1)); got != Incomparable {
		t.Fatalf("X0 vs X1: got %s", got)
	}
}

func TestComparePrecedenceAndLex(t *testing.T) {
	sig := logic.NewSignature()
	b := logic.NewBank(sig)
	a := sig.AddFunc("a", 0)
	c := sig.AddFunc("c", 0)
	g := sig.AddFunc("g", 2)
	kbo := NewKBO()

	// Equal weight, higher symbol number wins.
	if got := kbo.Compare(b.Const(c), b.Const(a)); got != Greater {
		t.Fatalf("c vs a: got %s", got)
	}
	// Equal weight and head, first differing argument decides.
	s := b.Apply(g, b.Const(c), b.Const(a))
	u := b.Apply(g, b.Const(a), b.Const(c))
	if got := kbo.Compare(s, u); got != Greater {
		t.Fatalf("g(c,a) vs g(a,c): got %s", got)
	}
}
