package container

import (
	"fmt"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// Unprocessed is the FIFO of pending new clauses. Note that this is not
// async-safe.
type Unprocessed struct {
	events
	items []*logic.Clause
}

// NewUnprocessed returns a new empty queue.
func NewUnprocessed() *Unprocessed {
	return &Unprocessed{
		items: []*logic.Clause{},
	}
}

// Add inserts a new clause at the back of the queue and fires the added
// event.
func (q *Unprocessed) Add(c *logic.Clause) {
	q.items = append(q.items, c)
	q.added.fire(c)
}

// Pop removes the first clause off the queue. Popping for processing is
// not a removal, so no removed event fires. Returns nil on an empty
// queue.
func (q *Unprocessed) Pop() *logic.Clause {
	if len(q.items) == 0 {
		return nil
	}
	first := q.items[0]
	q.items = q.items[1:len(q.items)]

	return first
}

// Remove removes a clause from anywhere in the queue and fires the
// removed event.
func (q *Unprocessed) Remove(c *logic.Clause) {
	for i, item := range q.items {
		if item == c {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.removed.fire(c)

			return
		}
	}
	panic(fmt.Sprintf("container: removing absent clause from unprocessed: %v", c))
}

// Empty reports whether the queue holds no clauses.
func (q *Unprocessed) Empty() bool {
	return len(q.items) == 0
}

// Len returns the size of the queue.
func (q *Unprocessed) Len() int {
	return len(q.items)
}
