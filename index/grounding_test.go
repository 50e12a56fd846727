package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

func TestGroundingImplied(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 0)
	q := sig.AddPred("q", 0)

	x := NewGroundingIndex(bank)

	cp := logic.NewClause([]*logic.Literal{bank.Lit(p, true)}, 0,
		logic.NewInference(logic.RuleInput))
	x.Insert(cp)

	// {p} implies p but not q.
	assert.True(t, x.Implied(cp).True())
	cq := logic.NewClause([]*logic.Literal{bank.Lit(q, true)}, 0,
		logic.NewInference(logic.RuleInput))
	assert.True(t, x.Implied(cq).False())
}

func TestGroundingResolvedConsequence(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 0)
	q := sig.AddPred("q", 0)

	x := NewGroundingIndex(bank)

	// {p | q, ~p} implies q.
	x.Insert(logic.NewClause([]*logic.Literal{bank.Lit(p, true), bank.Lit(q, true)}, 0,
		logic.NewInference(logic.RuleInput)))
	x.Insert(logic.NewClause([]*logic.Literal{bank.Lit(p, false)}, 0,
		logic.NewInference(logic.RuleInput)))

	cq := logic.NewClause([]*logic.Literal{bank.Lit(q, true)}, 0,
		logic.NewInference(logic.RuleInput))
	assert.True(t, x.Implied(cq).True())
}

func TestGroundingIdentifiesVariables(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)

	x := NewGroundingIndex(bank)

	// p(X) grounds to the same propositional atom as p(Y).
	px := logic.NewClause([]*logic.Literal{bank.Lit(p, true, bank.Var(0))}, 0,
		logic.NewInference(logic.RuleInput))
	py := logic.NewClause([]*logic.Literal{bank.Lit(p, true, bank.Var(1))}, 0,
		logic.NewInference(logic.RuleInput))
	x.Insert(px)

	assert.True(t, x.Implied(py).True())
}

func TestGroundingMembership(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 0)

	x := NewGroundingIndex(bank)
	c := logic.NewClause([]*logic.Literal{bank.Lit(p, true)}, 0,
		logic.NewInference(logic.RuleInput))

	x.Insert(c)
	require.True(t, x.Contains(c))
	x.Remove(c)
	assert.False(t, x.Contains(c))
}
