// Package container provides the observable clause populations of the
// given-clause algorithm: the unprocessed queue, the passive priority
// queue, the active set, and a fake container that only re-broadcasts
// events so that simplification can run against derived sets such as
// "active union passive".
package container

import (
	"fmt"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// Event is a multi-subscriber publish channel for clause add/remove
// notifications. Subscribers are invoked synchronously in subscription
// order, before the mutating container operation returns.
type Event struct {
	subs []func(*logic.Clause)
}

// Subscribe appends a subscriber. There is no unsubscribe for plain
// functions; use SubscribeHandle when the subscription must be undone.
func (e *Event) Subscribe(fn func(*logic.Clause)) {
	e.subs = append(e.subs, fn)
}

// SubscribeHandle appends a subscriber and returns a handle that removes
// it again. Used by indices, which detach when destroyed.
func (e *Event) SubscribeHandle(fn func(*logic.Clause)) func() {
	e.subs = append(e.subs, fn)
	idx := len(e.subs) - 1

	return func() {
		e.subs[idx] = nil
	}
}

func (e *Event) fire(c *logic.Clause) {
	for _, fn := range e.subs {
		if fn != nil {
			fn(c)
		}
	}
}

// Container is a population of clauses with observable add and remove.
type Container interface {
	// Add inserts a clause and fires the added event.
	Add(c *logic.Clause)
	// Remove removes a clause and fires the removed event. Removing an
	// absent clause is a programming error and panics.
	Remove(c *logic.Clause)
	// Added returns the added event for subscription.
	Added() *Event
	// Removed returns the removed event for subscription.
	Removed() *Event
}

// events is the common event pair embedded by every container.
type events struct {
	added   Event
	removed Event
}

// Added returns the added event.
func (e *events) Added() *Event {
	return &e.added
}

// Removed returns the removed event.
func (e *events) Removed() *Event {
	return &e.removed
}

// FakeContainer holds no clauses itself; add and remove only re-broadcast
// events. The saturation loop calls Add and Remove at the moments the
// derived set it stands for changes.
type FakeContainer struct {
	events
}

// NewFakeContainer returns a fake container.
func NewFakeContainer() *FakeContainer {
	return &FakeContainer{}
}

// Add fires the added event.
func (f *FakeContainer) Add(c *logic.Clause) {
	f.added.fire(c)
}

// Remove fires the removed event.
func (f *FakeContainer) Remove(c *logic.Clause) {
	f.removed.fire(c)
}

// Active is the unordered set of activated clauses. Every index attached
// to the generating container subscribes to its events.
type Active struct {
	events
	clauses map[*logic.Clause]struct{}
}

// NewActive returns an empty active set.
func NewActive() *Active {
	return &Active{clauses: map[*logic.Clause]struct{}{}}
}

// Add inserts a clause and fires the added event.
func (a *Active) Add(c *logic.Clause) {
	a.clauses[c] = struct{}{}
	a.added.fire(c)
}

// Remove removes a clause and fires the removed event.
func (a *Active) Remove(c *logic.Clause) {
	if _, ok := a.clauses[c]; !ok {
		panic(fmt.Sprintf("container: removing absent clause from active: %v", c))
	}
	delete(a.clauses, c)
	a.removed.fire(c)
}

// Contains reports whether the clause is in the set.
func (a *Active) Contains(c *logic.Clause) bool {
	_, ok := a.clauses[c]

	return ok
}

// Len returns the number of clauses in the set.
func (a *Active) Len() int {
	return len(a.clauses)
}

// Each calls fn for every clause in the set, in no particular order.
func (a *Active) Each(fn func(*logic.Clause)) {
	for c := range a.clauses {
		fn(c)
	}
}
