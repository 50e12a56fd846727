package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

func clause(age, weight int) *logic.Clause {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", weight-1)

	args := make([]*logic.Term, weight-1)
	for i := range args {
		args[i] = bank.Var(i)
	}
	return logic.NewClause([]*logic.Literal{bank.Lit(p, true, args...)}, age,
		logic.NewInference(logic.RuleInput))
}

func TestEventOrder(t *testing.T) {
	u := NewUnprocessed()
	var calls []string

	u.Added().Subscribe(func(c *logic.Clause) { calls = append(calls, "first") })
	u.Added().Subscribe(func(c *logic.Clause) { calls = append(calls, "second") })

	u.Add(clause(0, 2))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestUnprocessedFIFO(t *testing.T) {
	u := NewUnprocessed()
	c1 := clause(0, 2)
	c2 := clause(1, 2)

	u.Add(c1)
	u.Add(c2)

	if u.Pop() != c1 || u.Pop() != c2 {
		t.Fatalf("queue is not FIFO")
	}
	if u.Pop() != nil {
		t.Fatalf("pop on empty queue did not return nil")
	}
}

func TestUnprocessedRemoveAbsentPanics(t *testing.T) {
	u := NewUnprocessed()
	assert.Panics(t, func() { u.Remove(clause(0, 2)) })
}

func TestAWPassiveAlternation(t *testing.T) {
	// Ratio 1:1 alternates between the oldest and the lightest clause.
	p := NewAWPassive(1, 1)
	old := clause(0, 5)
	young := clause(3, 2)
	mid := clause(1, 4)

	p.Add(young)
	p.Add(mid)
	p.Add(old)

	require.Equal(t, 3, p.Len())
	assert.Same(t, old, p.PopSelected())   // age turn
	assert.Same(t, young, p.PopSelected()) // weight turn
	assert.Same(t, mid, p.PopSelected())
	assert.True(t, p.Empty())
}

func TestAWPassiveWeightOnly(t *testing.T) {
	p := NewAWPassive(0, 1)
	heavy := clause(0, 9)
	light := clause(5, 2)

	p.Add(heavy)
	p.Add(light)

	assert.Same(t, light, p.PopSelected())
	assert.Same(t, heavy, p.PopSelected())
}

func TestPassivePopFiresRemovedEvent(t *testing.T) {
	p := NewAWPassive(1, 1)
	var removed []*logic.Clause
	p.Removed().Subscribe(func(c *logic.Clause) { removed = append(removed, c) })

	c := clause(0, 3)
	p.Add(c)
	p.PopSelected()

	require.Len(t, removed, 1)
	assert.Same(t, c, removed[0])
}

func TestPassiveRemove(t *testing.T) {
	p := NewAWPassive(1, 1)
	c1 := clause(0, 3)
	c2 := clause(1, 2)

	p.Add(c1)
	p.Add(c2)
	p.Remove(c1)

	assert.Equal(t, 1, p.Len())
	assert.Same(t, c2, p.PopSelected())
	assert.Panics(t, func() { p.Remove(c1) })
}

func TestFakeContainerRebroadcasts(t *testing.T) {
	f := NewFakeContainer()
	var added, removed int

	f.Added().Subscribe(func(c *logic.Clause) { added++ })
	f.Removed().Subscribe(func(c *logic.Clause) { removed++ })

	c := clause(0, 2)
	f.Add(c)
	f.Remove(c)
	f.Remove(c) // holds nothing, so double remove only re-broadcasts

	assert.Equal(t, 1, added)
	assert.Equal(t, 2, removed)
}

func TestActiveSet(t *testing.T) {
	a := NewActive()
	c := clause(0, 2)

	a.Add(c)
	assert.True(t, a.Contains(c))
	assert.Equal(t, 1, a.Len())

	a.Remove(c)
	assert.False(t, a.Contains(c))
	assert.Panics(t, func() { a.Remove(c) })
}

func TestSplitPassiveRouting(t *testing.T) {
	// Two sub-queues split on age: <= 1 goes first, the rest second.
	queues := []Passive{NewAWPassive(1, 0), NewAWPassive(1, 0)}
	feature := func(c *logic.Clause) float64 { return float64(c.Age()) }
	sp := NewSplitPassive(feature, queues, []float64{1, 100}, []int{2, 1})

	young1 := clause(0, 2)
	young2 := clause(1, 2)
	old1 := clause(7, 2)
	old2 := clause(9, 2)

	sp.Add(young1)
	sp.Add(young2)
	sp.Add(old1)
	sp.Add(old2)
	require.Equal(t, 4, sp.Len())

	// Ratio 2:1 serves the first queue twice per round.
	assert.Same(t, young1, sp.PopSelected())
	assert.Same(t, old1, sp.PopSelected())
	assert.Same(t, young2, sp.PopSelected())
	assert.Same(t, old2, sp.PopSelected())
	assert.True(t, sp.Empty())
}

func TestSplitPassiveRemove(t *testing.T) {
	queues := []Passive{NewAWPassive(1, 0), NewAWPassive(1, 0)}
	feature := func(c *logic.Clause) float64 { return float64(c.Age()) }
	sp := NewSplitPassive(feature, queues, []float64{1, 100}, []int{1, 1})

	c := clause(0, 2)
	sp.Add(c)
	sp.Remove(c)

	assert.True(t, sp.Empty())
	assert.Panics(t, func() { sp.Remove(c) })
}
