package logic

import (
	"fmt"
	"strings"
)

// Store identifies which clause population a clause currently belongs to.
type Store uint8

const (
	// StoreNone marks a clause outside every population.
	StoreNone = Store(iota)
	// StoreUnprocessed marks a clause waiting in the unprocessed queue.
	StoreUnprocessed
	// StorePassive marks a clause waiting in the passive queue.
	StorePassive
	// StoreSelected marks a clause between selection and activation. A
	// selected clause is in no container.
	StoreSelected
	// StoreActive marks a clause in the active set.
	StoreActive
)

// String implements the Stringer interface.
func (s Store) String() string {
	switch s {
	case StoreNone:
		return "none"
	case StoreUnprocessed:
		return "unprocessed"
	case StorePassive:
		return "passive"
	case StoreSelected:
		return "selected"
	case StoreActive:
		return "active"
	}
	return "invalid"
}

// Rule names the inference rule that produced a clause.
type Rule uint8

const (
	RuleInput = Rule(iota)
	RuleResolution
	RuleFactoring
	RuleEqualityResolution
	RuleForwardDemodulation
	RuleForwardSubsumptionDemodulation
	RuleSubsumptionResolution
	RuleGlobalSubsumption
)

// String implements the Stringer interface.
func (r Rule) String() string {
	switch r {
	case RuleInput:
		return "input"
	case RuleResolution:
		return "resolution"
	case RuleFactoring:
		return "factoring"
	case RuleEqualityResolution:
		return "equality resolution"
	case RuleForwardDemodulation:
		return "forward demodulation"
	case RuleForwardSubsumptionDemodulation:
		return "forward subsumption demodulation"
	case RuleSubsumptionResolution:
		return "subsumption resolution"
	case RuleGlobalSubsumption:
		return "global subsumption"
	}
	return "unknown"
}

// Inference records how a clause came to be. Records are immutable; the
// premise graph reaching back to the input clauses stays intact for as
// long as the conclusion is referenced.
type Inference struct {
	rule     Rule
	premises []*Clause
}

// NewInference returns an inference record.
func NewInference(rule Rule, premises ...*Clause) *Inference {
	return &Inference{rule: rule, premises: premises}
}

// Rule returns the inference rule.
func (inf *Inference) Rule() Rule {
	return inf.rule
}

// Premises returns the premise clauses. The returned slice must not be
// mutated.
func (inf *Inference) Premises() []*Clause {
	return inf.premises
}

// Clause is an ordered sequence of literals together with its saturation
// bookkeeping: store, age, weight and the inference that produced it.
type Clause struct {
	lits   []*Literal
	store  Store
	age    int
	weight int
	inf    *Inference
}

// NewClause returns a clause over the given literals with store none.
func NewClause(lits []*Literal, age int, inf *Inference) *Clause {
	c := &Clause{lits: lits, store: StoreNone, age: age, inf: inf}
	for _, l := range lits {
		c.weight += l.Weight()
	}
	return c
}

// Len returns the number of literals.
func (c *Clause) Len() int {
	return len(c.lits)
}

// Empty reports whether the clause has no literals.
func (c *Clause) Empty() bool {
	return len(c.lits) == 0
}

// Lit returns the idx-th literal.
func (c *Clause) Lit(idx int) *Literal {
	return c.lits[idx]
}

// Lits returns the literals. The returned slice must not be mutated.
func (c *Clause) Lits() []*Literal {
	return c.lits
}

// GetLiteralPosition returns the position of a literal within the clause,
// or -1 when the literal does not occur. When a literal occurs more than
// once the first position is returned.
func (c *Clause) GetLiteralPosition(l *Literal) int {
	for i, cl := range c.lits {
		if cl == l {
			return i
		}
	}
	return -1
}

// Store returns the clause's current population.
func (c *Clause) Store() Store {
	return c.store
}

// SetStore moves the clause to a new population. Store values progress
// linearly: none -> unprocessed -> passive -> selected -> active, with a
// transition back to none allowed from every state on discard. Any other
// transition panics.
func (c *Clause) SetStore(s Store) {
	if !storeTransitionOK(c.store, s) {
		panic(fmt.Sprintf("logic: forbidden store transition %s -> %s", c.store, s))
	}
	c.store = s
}

func storeTransitionOK(from, to Store) bool {
	if to == StoreNone {
		return true
	}
	switch from {
	case StoreNone:
		return to == StoreUnprocessed
	case StoreUnprocessed:
		return to == StorePassive
	case StorePassive:
		return to == StoreSelected
	case StoreSelected:
		return to == StoreActive
	}
	return false
}

// Age returns the round the clause was born in.
func (c *Clause) Age() int {
	return c.age
}

// Weight returns the clause's symbol count.
func (c *Clause) Weight() int {
	return c.weight
}

// Inference returns the inference record that produced the clause.
func (c *Clause) Inference() *Inference {
	return c.inf
}

// Unit reports whether the clause has exactly one literal.
func (c *Clause) Unit() bool {
	return len(c.lits) == 1
}

// ClauseString renders a clause using the signature's symbol names. The
// empty clause prints as $false.
func (b *Bank) ClauseString(c *Clause) string {
	if c.Empty() {
		return "$false"
	}
	parts := make([]string, c.Len())
	for i, l := range c.lits {
		parts[i] = b.LitString(l)
	}
	return strings.Join(parts, " | ")
}
