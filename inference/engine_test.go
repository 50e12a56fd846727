package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

func TestReplaceTerm(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	f := sig.AddFunc("f", 1)
	g := sig.AddFunc("g", 2)
	a := sig.AddFunc("a", 0)
	b := sig.AddFunc("b", 0)

	fa := bank.Apply(f, bank.Const(a))
	tm := bank.Apply(g, fa, bank.Apply(f, fa))

	got := replaceTerm(bank, tm, fa, bank.Const(b))
	want := bank.Apply(g, bank.Const(b), bank.Apply(f, bank.Const(b)))
	assert.Same(t, want, got)

	// No occurrence leaves the term untouched.
	assert.Same(t, tm, replaceTerm(bank, tm, bank.Const(b), bank.Const(a)))
}

func TestRewriteLit(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	f := sig.AddFunc("f", 1)
	a := sig.AddFunc("a", 0)

	fa := bank.Apply(f, bank.Const(a))
	l := bank.Lit(p, true, fa)

	got := rewriteLit(bank, l, fa, bank.Const(a))
	assert.Same(t, bank.Lit(p, true, bank.Const(a)), got)
}

func TestBuildAlts(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	q := sig.AddPred("q", 1)
	a := sig.AddFunc("a", 0)

	base := logic.NewClause([]*logic.Literal{
		bank.Lit(p, true, bank.Var(0)),
		bank.Lit(q, false, bank.Var(0)),
	}, 0, logic.NewInference(logic.RuleInput))

	pa := bank.Lit(p, true, bank.Const(a))
	qaPos := bank.Lit(q, true, bank.Const(a))
	instance := logic.NewClause([]*logic.Literal{pa, qaPos}, 0,
		logic.NewInference(logic.RuleInput))

	alts := buildAlts(bank, base, instance)
	require.Len(t, alts, 2)
	assert.Equal(t, []*logic.Literal{pa}, alts[0])
	// The sign must agree: ~q(X) has no positive alternative.
	assert.Empty(t, alts[1])
}

func TestWithoutLit(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	a := sig.AddFunc("a", 0)

	l0 := bank.Lit(p, true, bank.Const(a))
	l1 := bank.Lit(p, false, bank.Const(a))
	c := logic.NewClause([]*logic.Literal{l0, l1}, 0, logic.NewInference(logic.RuleInput))

	assert.Equal(t, []*logic.Literal{l1}, withoutLit(c, 0))
	assert.Equal(t, []*logic.Literal{l0}, withoutLit(c, 1))
}

func TestConclusionAge(t *testing.T) {
	c0 := logic.NewClause(nil, 0, logic.NewInference(logic.RuleInput))
	c3 := logic.NewClause(nil, 3, logic.NewInference(logic.RuleInput))

	assert.Equal(t, 4, conclusionAge(c0, c3))
	assert.Equal(t, 1, conclusionAge(c0))
}
