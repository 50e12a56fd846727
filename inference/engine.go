// Package inference provides the inference engines driven by the
// saturation loop: generating engines produce new clauses from an
// activated clause, forward simplifiers reduce or discard a new clause
// against the simplifying container, and backward simplifiers use a
// selected clause to reduce the to-be-simplified container.
package inference

import (
	"github.com/Danilo-Araujo-Silva/vampire/index"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/order"
	"github.com/Danilo-Araujo-Silva/vampire/resource"
)

// Selector is the literal selection oracle: it returns the indices of
// the selected literals of a clause.
type Selector func(c *logic.Clause) []int

// TotalSelection selects every literal.
func TotalSelection(c *logic.Clause) []int {
	out := make([]int, c.Len())
	for i := range out {
		out[i] = i
	}
	return out
}

// Context is the view an engine holds of the running saturation
// algorithm. Engines may read through it but must not destroy anything
// they reach.
type Context interface {
	IndexManager() *index.Manager
	Bank() *logic.Bank
	Ordering() order.Ordering
	Limits() *resource.Limits
	Selection() Selector
}

// ForwardSimplifier simplifies a new clause against the simplifying
// container. Simplify returns (nil, false) to keep the clause,
// (nil, true) to delete it as redundant, and (replacement, true) to
// replace it by a strictly simpler clause.
type ForwardSimplifier interface {
	Simplify(c *logic.Clause) (*logic.Clause, bool, error)
	// Detach releases the engine's index requests.
	Detach()
}

// BwRecord is one backward simplification: the victim clause is
// discarded and, when Replacement is non-nil, replaced by it.
type BwRecord struct {
	Victim      *logic.Clause
	Replacement *logic.Clause
}

// BackwardSimplifier finds the clauses of the to-be-simplified container
// that a selected clause discards or replaces.
type BackwardSimplifier interface {
	SimplifyCandidates(c *logic.Clause) ([]BwRecord, error)
	Detach()
}

// Generator performs the generating inferences applicable to an
// activated clause.
type Generator interface {
	Generate(c *logic.Clause) ([]*logic.Clause, error)
	Detach()
}

// conclusionAge is one past the age of the youngest premise.
func conclusionAge(premises ...*logic.Clause) int {
	age := 0
	for _, p := range premises {
		if p.Age()+1 > age {
			age = p.Age() + 1
		}
	}
	return age
}

// withoutLit returns the literals of c except the one at position i.
func withoutLit(c *logic.Clause, i int) []*logic.Literal {
	out := make([]*logic.Literal, 0, c.Len()-1)
	for j, l := range c.Lits() {
		if j != i {
			out = append(out, l)
		}
	}
	return out
}

// buildAlts computes, for every literal of base, the list of literals of
// instance it can match, trying both argument orders for commutative
// literals.
func buildAlts(bank *logic.Bank, base, instance *logic.Clause) [][]*logic.Literal {
	alts := make([][]*logic.Literal, base.Len())
	for i, bl := range base.Lits() {
		for _, il := range instance.Lits() {
			if bl.Pred() != il.Pred() || bl.Positive() != il.Positive() {
				continue
			}
			if logic.CanMatchArgs(bl, il, false) ||
				(bank.Commutative(il) && logic.CanMatchArgs(bl, il, true)) {
				alts[i] = append(alts[i], il)
			}
		}
	}
	return alts
}

// replaceTerm replaces every occurrence of from inside t by to. Sharing
// makes occurrence tests pointer comparisons.
func replaceTerm(b *logic.Bank, t, from, to *logic.Term) *logic.Term {
	if t == from {
		return to
	}
	if t.IsVar() || t.Weight() < from.Weight() {
		return t
	}
	changed := false
	args := make([]*logic.Term, t.Arity())
	for i, a := range t.Args() {
		args[i] = replaceTerm(b, a, from, to)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return b.Apply(t.Func(), args...)
}

// rewriteLit replaces every occurrence of from inside l by to.
func rewriteLit(b *logic.Bank, l *logic.Literal, from, to *logic.Term) *logic.Literal {
	changed := false
	args := make([]*logic.Term, l.Arity())
	for i, a := range l.Args() {
		args[i] = replaceTerm(b, a, from, to)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return l
	}
	return b.Lit(l.Pred(), l.Positive(), args...)
}
