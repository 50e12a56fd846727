package container

import (
	"fmt"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// Feature maps a clause to the numeric feature used to route it into one
// of a split passive container's sub-queues, e.g. a theory-axiom
// distance.
type Feature func(c *logic.Clause) float64

// SplitPassive splits the passive population into several sub-queues
// selected by a clause feature, with per-queue cutoffs and ratios.
// Sub-queues are served round-robin proportionally to their ratios.
type SplitPassive struct {
	events
	feature Feature
	queues  []Passive
	cutoffs []float64
	ratios  []int
	// balances counts selections served per queue; the next selection
	// comes from the non-empty queue with the smallest balance-to-ratio
	// quotient.
	balances []int
	// homes remembers which sub-queue each clause was routed to, so that
	// removal does not depend on re-evaluating the feature.
	homes map[*logic.Clause]int
	size  int
}

// NewSplitPassive returns a split passive container. The cutoffs must be
// ascending and the last cutoff must admit every clause.
func NewSplitPassive(feature Feature, queues []Passive, cutoffs []float64, ratios []int) *SplitPassive {
	if len(queues) == 0 || len(queues) != len(cutoffs) || len(queues) != len(ratios) {
		panic("container: inconsistent split passive layout")
	}
	for i := 1; i < len(cutoffs); i++ {
		if cutoffs[i] < cutoffs[i-1] {
			panic("container: split passive cutoffs must be ascending")
		}
	}
	return &SplitPassive{
		feature:  feature,
		queues:   queues,
		cutoffs:  cutoffs,
		ratios:   ratios,
		balances: make([]int, len(queues)),
		homes:    map[*logic.Clause]int{},
	}
}

// bestQueue returns the first sub-queue whose cutoff admits the clause.
func (p *SplitPassive) bestQueue(c *logic.Clause) int {
	f := p.feature(c)
	for i, cutoff := range p.cutoffs {
		if f <= cutoff {
			return i
		}
	}
	return len(p.queues) - 1
}

// Add routes the clause into its sub-queue and fires the added event.
func (p *SplitPassive) Add(c *logic.Clause) {
	qi := p.bestQueue(c)
	p.homes[c] = qi
	p.queues[qi].Add(c)
	p.size++
	p.added.fire(c)
}

// Remove removes the clause from its sub-queue and fires the removed
// event.
func (p *SplitPassive) Remove(c *logic.Clause) {
	qi, ok := p.homes[c]
	if !ok {
		panic(fmt.Sprintf("container: removing absent clause from split passive: %v", c))
	}
	delete(p.homes, c)
	p.queues[qi].Remove(c)
	p.size--
	p.removed.fire(c)
}

// PopSelected serves the sub-queue that is furthest behind its ratio and
// fires the removed event.
func (p *SplitPassive) PopSelected() *logic.Clause {
	best := -1
	var bestQuot float64
	for i, q := range p.queues {
		if q.Empty() {
			continue
		}
		quot := float64(p.balances[i]) / float64(p.ratios[i])
		if best < 0 || quot < bestQuot {
			best = i
			bestQuot = quot
		}
	}
	if best < 0 {
		return nil
	}
	c := p.queues[best].PopSelected()
	p.balances[best]++
	delete(p.homes, c)
	p.size--
	p.removed.fire(c)

	return c
}

// Empty reports whether no passive clauses remain.
func (p *SplitPassive) Empty() bool {
	return p.size == 0
}

// Len returns the number of passive clauses across all sub-queues.
func (p *SplitPassive) Len() int {
	return p.size
}
