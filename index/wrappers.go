package index

import (
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/order"
)

// Index mirrors the contents of the clause container it is attached to.
// Insert and Remove are driven exclusively by the container's event
// broadcast.
type Index interface {
	Insert(c *logic.Clause)
	Remove(c *logic.Clause)
}

// GeneratingLiteralIndex indexes every literal of generating clauses. It
// answers the unification queries of the generating inferences.
type GeneratingLiteralIndex struct {
	*litSubstIndex
}

// Insert adds the clause's literals.
func (x *GeneratingLiteralIndex) Insert(c *logic.Clause) {
	for _, l := range c.Lits() {
		x.insert(l, c)
	}
}

// Remove removes the clause's literals.
func (x *GeneratingLiteralIndex) Remove(c *logic.Clause) {
	for _, l := range c.Lits() {
		x.remove(l, c)
	}
}

// SimplifyingLiteralIndex indexes every literal of simplifying clauses.
type SimplifyingLiteralIndex struct {
	*litSubstIndex
}

// Insert adds the clause's literals.
func (x *SimplifyingLiteralIndex) Insert(c *logic.Clause) {
	for _, l := range c.Lits() {
		x.insert(l, c)
	}
}

// Remove removes the clause's literals.
func (x *SimplifyingLiteralIndex) Remove(c *logic.Clause) {
	for _, l := range c.Lits() {
		x.remove(l, c)
	}
}

// UnitClauseLiteralIndex indexes the literals of unit clauses only.
type UnitClauseLiteralIndex struct {
	*litSubstIndex
}

// Insert adds the literal of a unit clause; other clauses are ignored.
func (x *UnitClauseLiteralIndex) Insert(c *logic.Clause) {
	if c.Unit() {
		x.insert(c.Lit(0), c)
	}
}

// Remove removes the literal of a unit clause.
func (x *UnitClauseLiteralIndex) Remove(c *logic.Clause) {
	if c.Unit() {
		x.remove(c.Lit(0), c)
	}
}

// NonUnitClauseLiteralIndex indexes the literals of non-unit clauses.
type NonUnitClauseLiteralIndex struct {
	*litSubstIndex
}

// Insert adds the literals of a non-unit clause; unit clauses are
// ignored.
func (x *NonUnitClauseLiteralIndex) Insert(c *logic.Clause) {
	if c.Unit() {
		return
	}
	for _, l := range c.Lits() {
		x.insert(l, c)
	}
}

// Remove removes the literals of a non-unit clause.
func (x *NonUnitClauseLiteralIndex) Remove(c *logic.Clause) {
	if c.Unit() {
		return
	}
	for _, l := range c.Lits() {
		x.remove(l, c)
	}
}

// FwSubsumptionLiteralIndex indexes every literal of simplifying clauses
// for subsumption candidate retrieval.
type FwSubsumptionLiteralIndex struct {
	*litSubstIndex
}

// Insert adds the clause's literals.
func (x *FwSubsumptionLiteralIndex) Insert(c *logic.Clause) {
	for _, l := range c.Lits() {
		x.insert(l, c)
	}
}

// Remove removes the clause's literals.
func (x *FwSubsumptionLiteralIndex) Remove(c *logic.Clause) {
	for _, l := range c.Lits() {
		x.remove(l, c)
	}
}

// RewriteRuleIndex indexes the literals of positive unit equalities,
// which are the candidate rewrite rules.
type RewriteRuleIndex struct {
	*litSubstIndex
	ord order.Ordering
}

// Insert adds the equality literal of a positive unit equality clause.
func (x *RewriteRuleIndex) Insert(c *logic.Clause) {
	if c.Unit() && c.Lit(0).IsEquality() && c.Lit(0).Positive() {
		x.insert(c.Lit(0), c)
	}
}

// Remove removes the equality literal of a positive unit equality clause.
func (x *RewriteRuleIndex) Remove(c *logic.Clause) {
	if c.Unit() && c.Lit(0).IsEquality() && c.Lit(0).Positive() {
		x.remove(c.Lit(0), c)
	}
}

// SuperpositionSubtermIndex indexes the non-variable subterms of
// generating clauses, the rewritable positions of superposition.
type SuperpositionSubtermIndex struct {
	*termSubstIndex
	ord order.Ordering
}

// Insert adds the clause's non-variable subterms.
func (x *SuperpositionSubtermIndex) Insert(c *logic.Clause) {
	eachSubterm(c, x.insert)
}

// Remove removes the clause's non-variable subterms.
func (x *SuperpositionSubtermIndex) Remove(c *logic.Clause) {
	eachSubterm(c, x.remove)
}

// SuperpositionLHSIndex indexes the oriented sides of positive equalities
// of generating clauses.
type SuperpositionLHSIndex struct {
	*termSubstIndex
	ord order.Ordering
}

// Insert adds the greater sides of the clause's positive equalities.
func (x *SuperpositionLHSIndex) Insert(c *logic.Clause) {
	eachOrientedLHS(c, x.ord, x.insert)
}

// Remove removes the greater sides of the clause's positive equalities.
func (x *SuperpositionLHSIndex) Remove(c *logic.Clause) {
	eachOrientedLHS(c, x.ord, x.remove)
}

// AcyclicityTermIndex indexes the subterms of positive equalities.
type AcyclicityTermIndex struct {
	*termSubstIndex
}

// Insert adds the subterms of the clause's positive equalities.
func (x *AcyclicityTermIndex) Insert(c *logic.Clause) {
	eachEqualitySubterm(c, x.insert)
}

// Remove removes the subterms of the clause's positive equalities.
func (x *AcyclicityTermIndex) Remove(c *logic.Clause) {
	eachEqualitySubterm(c, x.remove)
}

// DemodulationSubtermIndex indexes all non-variable subterms of
// to-be-simplified clauses, the positions backward demodulation may
// rewrite.
type DemodulationSubtermIndex struct {
	*termSubstIndex
}

// Insert adds the clause's non-variable subterms.
func (x *DemodulationSubtermIndex) Insert(c *logic.Clause) {
	eachSubterm(c, x.insert)
}

// Remove removes the clause's non-variable subterms.
func (x *DemodulationSubtermIndex) Remove(c *logic.Clause) {
	eachSubterm(c, x.remove)
}

// DemodulationLHSIndex indexes the oriented left-hand sides of positive
// unit equalities, the demodulators of forward demodulation.
type DemodulationLHSIndex struct {
	*termSubstIndex
	ord order.Ordering
}

// Insert adds the oriented sides of a positive unit equality clause.
func (x *DemodulationLHSIndex) Insert(c *logic.Clause) {
	if c.Unit() {
		eachOrientedLHS(c, x.ord, x.insert)
	}
}

// Remove removes the oriented sides of a positive unit equality clause.
func (x *DemodulationLHSIndex) Remove(c *logic.Clause) {
	if c.Unit() {
		eachOrientedLHS(c, x.ord, x.remove)
	}
}

// SubsumptionCodeTree indexes whole simplifying clauses for subsumption
// candidate retrieval.
type SubsumptionCodeTree struct {
	*clauseCodeIndex
}

// Insert adds the clause.
func (x *SubsumptionCodeTree) Insert(c *logic.Clause) {
	x.insert(c)
}

// Remove removes the clause.
func (x *SubsumptionCodeTree) Remove(c *logic.Clause) {
	x.remove(c)
}

// eachSubterm calls fn for every non-variable subterm occurrence of the
// clause.
func eachSubterm(c *logic.Clause, fn func(t *logic.Term, l *logic.Literal, c *logic.Clause)) {
	for _, l := range c.Lits() {
		for _, a := range l.Args() {
			eachSubtermOf(a, l, c, fn)
		}
	}
}

func eachSubtermOf(t *logic.Term, l *logic.Literal, c *logic.Clause, fn func(*logic.Term, *logic.Literal, *logic.Clause)) {
	if t.IsVar() {
		return
	}
	fn(t, l, c)
	for _, a := range t.Args() {
		eachSubtermOf(a, l, c, fn)
	}
}

// eachEqualitySubterm calls fn for every non-variable subterm occurrence
// of the clause's positive equalities.
func eachEqualitySubterm(c *logic.Clause, fn func(t *logic.Term, l *logic.Literal, c *logic.Clause)) {
	for _, l := range c.Lits() {
		if !l.IsEquality() || !l.Positive() {
			continue
		}
		for _, a := range l.Args() {
			eachSubtermOf(a, l, c, fn)
		}
	}
}

// eachOrientedLHS calls fn for each side of the clause's positive
// equalities that the ordering makes greater than the other side.
func eachOrientedLHS(c *logic.Clause, ord order.Ordering, fn func(t *logic.Term, l *logic.Literal, c *logic.Clause)) {
	for _, l := range c.Lits() {
		if !l.IsEquality() || !l.Positive() {
			continue
		}
		switch ord.Compare(l.Arg(0), l.Arg(1)) {
		case order.Greater:
			fn(l.Arg(0), l, c)
		case order.Less:
			fn(l.Arg(1), l, c)
		}
	}
}
