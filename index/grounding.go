package index

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/sat"
	"github.com/Danilo-Araujo-Silva/vampire/tribool"
)

// GroundingIndex maps simplifying clauses to ground propositional
// clauses inside a SAT solver. Global subsumption asks it whether a
// grounded query clause is already implied.
//
// The SAT database only grows: clauses of removed simplifiers stay in
// the solver. That keeps the implication check sound, since every clause
// ever added was a logical consequence of the input.
type GroundingIndex struct {
	bank *logic.Bank
	g    *gini.Gini

	// groundFn is the constant substituted for every variable when
	// grounding.
	groundFn int

	litVars map[*logic.Literal]int
	nextVar int

	// members tracks the clauses currently attached, so the index
	// mirrors its container even though the solver does not retract.
	members map[*logic.Clause]struct{}
}

// NewGroundingIndex returns a grounding index over the given bank.
func NewGroundingIndex(bank *logic.Bank) *GroundingIndex {
	return &GroundingIndex{
		bank:     bank,
		g:        gini.New(),
		groundFn: bank.Signature().AddFunc("$ground", 0),
		litVars:  map[*logic.Literal]int{},
		members:  map[*logic.Clause]struct{}{},
	}
}

// groundLit returns the propositional literal for the grounding of l.
func (x *GroundingIndex) groundLit(l *logic.Literal) sat.Lit {
	grounded := l
	if !l.Ground() {
		sub := logic.Substitution{}
		for _, v := range l.Vars() {
			sub[v] = x.bank.Const(x.groundFn)
		}
		grounded = x.bank.SubstLit(l, sub)
	}
	atom := grounded
	if atom.Negative() {
		atom = x.bank.Complement(atom)
	}
	v, ok := x.litVars[atom]
	if !ok {
		v = x.nextVar
		x.nextVar++
		x.litVars[atom] = v
	}
	return sat.New(v, grounded.Negative())
}

// Insert adds the grounding of the clause to the SAT database.
func (x *GroundingIndex) Insert(c *logic.Clause) {
	x.members[c] = struct{}{}
	for _, l := range c.Lits() {
		x.g.Add(x.groundLit(l).Z())
	}
	x.g.Add(z.LitNull)
}

// Remove detaches the clause. The SAT database keeps its grounding; see
// the type comment.
func (x *GroundingIndex) Remove(c *logic.Clause) {
	delete(x.members, c)
}

// Contains reports whether the clause is attached.
func (x *GroundingIndex) Contains(c *logic.Clause) bool {
	_, ok := x.members[c]

	return ok
}

// Implied reports whether the grounding of the query clause is a
// consequence of the SAT database: the solver is asked for a model of
// the database in which every literal of the grounded query is false.
// Undef means the solver gave up within its budget.
func (x *GroundingIndex) Implied(query *logic.Clause) tribool.Tribool {
	assumptions := make([]z.Lit, 0, query.Len())
	for _, l := range query.Lits() {
		assumptions = append(assumptions, x.groundLit(l).Not().Z())
	}
	x.g.Assume(assumptions...)

	switch x.g.Solve() {
	case -1:
		return tribool.True
	case 1:
		return tribool.False
	}
	return tribool.Undef
}
