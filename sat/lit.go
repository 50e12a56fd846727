// Package sat maps ground first-order literals to propositional literals
// for the SAT-backed grounding index. The encoding keeps the sign in the
// least significant bit, which makes L and ~L adjacent when sorted and
// converts directly to the solver's literal type.
package sat

import (
	"fmt"

	"github.com/go-air/gini/z"
)

const Undef = Lit(-1)

// Lit is a propositional literal represented by an integer. The sign is
// the least significant bit and the variable is obtained by a right bit
// shift.
//
// An unknown literal is denoted as -1.
type Lit int

// New returns a new literal given a 0-indexed variable, v, and whether
// the literal is negative.
func New(v int, neg bool) Lit {
	if neg {
		return Lit(v + v + 1)
	}
	return Lit(v + v)
}

// Not negates a literal.
func (l Lit) Not() Lit {
	return Lit(l ^ 1)
}

// Sign returns true if the literal is negative.
func (l Lit) Sign() bool {
	return l&1 == 1
}

// Index returns the literal's variable index.
func (l Lit) Index() int {
	return int(l >> 1)
}

// Z converts the literal to the solver's representation. Solver variables
// are 1-based, so variable 0 here becomes solver variable 1.
func (l Lit) Z() z.Lit {
	v := z.Var(l.Index() + 1)
	if l.Sign() {
		return v.Neg()
	}
	return v.Pos()
}

// String implements the Stringer interface.
func (l Lit) String() string {
	if l.Sign() {
		return fmt.Sprintf("~%d", l.Index())
	}
	return fmt.Sprintf("%d", l.Index())
}
