package container

import (
	"fmt"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// Passive is a priority-ordered population exposing selection of the best
// clause.
type Passive interface {
	Container
	// PopSelected removes and returns the best clause, firing the
	// removed event so that attached indices stay in sync.
	PopSelected() *logic.Clause
	// Empty reports whether no passive clauses remain.
	Empty() bool
	// Len returns the number of passive clauses.
	Len() int
}

// AWPassive orders passive clauses by a heuristic alternating between age
// and weight with a configured age:weight ratio. A ratio of a:0 always
// selects by age, 0:w always by weight.
type AWPassive struct {
	events
	ageRatio    int
	weightRatio int
	// balance walks through one age+weight period; selections with
	// balance below ageRatio come from the age ordering.
	balance int

	byAge    *clauseHeap
	byWeight *clauseHeap

	// seq gives insertion numbers used as the final tie-breaker, which
	// keeps selection deterministic.
	seq     map[*logic.Clause]int
	nextSeq int
}

// NewAWPassive returns an empty passive queue with the given age:weight
// selection ratio.
func NewAWPassive(ageRatio, weightRatio int) *AWPassive {
	if ageRatio < 0 || weightRatio < 0 || ageRatio+weightRatio == 0 {
		panic("container: invalid age:weight ratio")
	}
	p := &AWPassive{
		ageRatio:    ageRatio,
		weightRatio: weightRatio,
		seq:         map[*logic.Clause]int{},
	}
	p.byAge = newClauseHeap(func(a, b *logic.Clause) bool {
		if a.Age() != b.Age() {
			return a.Age() < b.Age()
		}
		if a.Weight() != b.Weight() {
			return a.Weight() < b.Weight()
		}
		return p.seq[a] < p.seq[b]
	})
	p.byWeight = newClauseHeap(func(a, b *logic.Clause) bool {
		if a.Weight() != b.Weight() {
			return a.Weight() < b.Weight()
		}
		if a.Age() != b.Age() {
			return a.Age() < b.Age()
		}
		return p.seq[a] < p.seq[b]
	})

	return p
}

// Add inserts a clause and fires the added event.
func (p *AWPassive) Add(c *logic.Clause) {
	p.seq[c] = p.nextSeq
	p.nextSeq++
	p.byAge.push(c)
	p.byWeight.push(c)
	p.added.fire(c)
}

// Remove removes a clause and fires the removed event.
func (p *AWPassive) Remove(c *logic.Clause) {
	if _, ok := p.seq[c]; !ok {
		panic(fmt.Sprintf("container: removing absent clause from passive: %v", c))
	}
	p.byAge.remove(c)
	p.byWeight.remove(c)
	delete(p.seq, c)
	p.removed.fire(c)
}

// PopSelected removes and returns the best clause according to the
// age:weight alternation, firing the removed event.
func (p *AWPassive) PopSelected() *logic.Clause {
	if p.Empty() {
		return nil
	}
	var c *logic.Clause
	if p.byAgeTurn() {
		c = p.byAge.pop()
		p.byWeight.remove(c)
	} else {
		c = p.byWeight.pop()
		p.byAge.remove(c)
	}
	p.balance = (p.balance + 1) % (p.ageRatio + p.weightRatio)
	delete(p.seq, c)
	p.removed.fire(c)

	return c
}

func (p *AWPassive) byAgeTurn() bool {
	if p.weightRatio == 0 {
		return true
	}
	if p.ageRatio == 0 {
		return false
	}
	return p.balance < p.ageRatio
}

// Empty reports whether no passive clauses remain.
func (p *AWPassive) Empty() bool {
	return p.byAge.len() == 0
}

// Len returns the number of passive clauses.
func (p *AWPassive) Len() int {
	return p.byAge.len()
}

// clauseHeap is a binary min-heap over clauses with an index map enabling
// removal from the middle.
type clauseHeap struct {
	items   []*logic.Clause
	indices map[*logic.Clause]int
	less    func(a, b *logic.Clause) bool
}

func newClauseHeap(less func(a, b *logic.Clause) bool) *clauseHeap {
	return &clauseHeap{
		items:   []*logic.Clause{},
		indices: map[*logic.Clause]int{},
		less:    less,
	}
}

func (h *clauseHeap) len() int {
	return len(h.items)
}

func (h *clauseHeap) push(c *logic.Clause) {
	h.indices[c] = len(h.items)
	h.items = append(h.items, c)
	h.up(h.len() - 1)
}

func (h *clauseHeap) pop() *logic.Clause {
	n := len(h.items) - 1
	h.swap(0, n)
	h.down(0, n)
	c := h.items[n]
	h.items = h.items[:n]
	delete(h.indices, c)

	return c
}

func (h *clauseHeap) remove(c *logic.Clause) {
	i, ok := h.indices[c]
	if !ok {
		return
	}
	n := len(h.items) - 1
	if i != n {
		h.swap(i, n)
		h.items = h.items[:n]
		delete(h.indices, c)
		h.down(i, n)
		h.up(i)

		return
	}
	h.items = h.items[:n]
	delete(h.indices, c)
}

func (h *clauseHeap) swap(i, j int) {
	a, b := h.items[i], h.items[j]

	h.items[i], h.items[j] = b, a
	h.indices[a], h.indices[b] = j, i
}

// up percolates an element up, as adopted from Go's container/heap
// package.
func (h *clauseHeap) up(j int) {
	for {
		i := (j - 1) / 2
		if i == j || !h.less(h.items[j], h.items[i]) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

// down percolates an element down, as adopted from Go's container/heap
// package.
func (h *clauseHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && h.less(h.items[j2], h.items[j1]) {
			j = j2
		}
		if !h.less(h.items[j], h.items[i]) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
