package index

import (
	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// LitEntry is one literal occurrence stored in a literal index.
type LitEntry struct {
	Lit    *logic.Literal
	Clause *logic.Clause
}

// LitIterator iterates retrieval results of a literal index. Iterators
// must be fully consumed or dropped before the underlying index is
// mutated again.
type LitIterator struct {
	items []LitEntry
	pos   int
}

// Next returns the next entry and whether one was available.
func (it *LitIterator) Next() (LitEntry, bool) {
	if it.pos >= len(it.items) {
		return LitEntry{}, false
	}
	e := it.items[it.pos]
	it.pos++

	return e, true
}

// litKeySig groups literals by predicate and sign, the discrimination a
// substitution tree performs at its root.
type litKeySig struct {
	pred     int
	positive bool
}

// litSubstIndex is the in-memory stand-in for a literal substitution
// tree: retrieval-correct generalization, instance and unification
// candidate queries over literal occurrences.
type litSubstIndex struct {
	bank    *logic.Bank
	entries map[litKeySig][]LitEntry
}

func newLitSubstIndex(bank *logic.Bank) *litSubstIndex {
	return &litSubstIndex{bank: bank, entries: map[litKeySig][]LitEntry{}}
}

func (x *litSubstIndex) insert(l *logic.Literal, c *logic.Clause) {
	key := litKeySig{l.Pred(), l.Positive()}
	x.entries[key] = append(x.entries[key], LitEntry{Lit: l, Clause: c})
}

func (x *litSubstIndex) remove(l *logic.Literal, c *logic.Clause) {
	key := litKeySig{l.Pred(), l.Positive()}
	es := x.entries[key]
	for i, e := range es {
		if e.Lit == l && e.Clause == c {
			es[i] = es[len(es)-1]
			x.entries[key] = es[:len(es)-1]

			return
		}
	}
}

// Generalizations returns the stored literals that match onto the query
// literal. With complementary set, the stored sign must be opposite to
// the query's.
func (x *litSubstIndex) Generalizations(query *logic.Literal, complementary bool) *LitIterator {
	wantPositive := query.Positive()
	if complementary {
		wantPositive = !wantPositive
	}
	key := litKeySig{query.Pred(), wantPositive}

	var out []LitEntry
	for _, e := range x.entries[key] {
		if logic.CanMatchArgs(e.Lit, query, false) {
			out = append(out, e)
		} else if x.bank.Commutative(e.Lit) && logic.CanMatchArgs(e.Lit, query, true) {
			out = append(out, e)
		}
	}
	return &LitIterator{items: out}
}

// Instances returns the stored literals that the query literal matches
// onto.
func (x *litSubstIndex) Instances(query *logic.Literal, complementary bool) *LitIterator {
	wantPositive := query.Positive()
	if complementary {
		wantPositive = !wantPositive
	}
	key := litKeySig{query.Pred(), wantPositive}

	var out []LitEntry
	for _, e := range x.entries[key] {
		if logic.CanMatchArgs(query, e.Lit, false) {
			out = append(out, e)
		} else if x.bank.Commutative(query) && logic.CanMatchArgs(query, e.Lit, true) {
			out = append(out, e)
		}
	}
	return &LitIterator{items: out}
}

// Unifications returns the stored literals that may unify with the query
// literal. The candidates share the query's predicate; callers perform
// the actual unification after renaming apart.
func (x *litSubstIndex) Unifications(query *logic.Literal, complementary bool) *LitIterator {
	wantPositive := query.Positive()
	if complementary {
		wantPositive = !wantPositive
	}
	key := litKeySig{query.Pred(), wantPositive}
	out := make([]LitEntry, len(x.entries[key]))
	copy(out, x.entries[key])

	return &LitIterator{items: out}
}

// TermEntry is one term occurrence stored in a term index, together with
// the literal and clause it occurs in.
type TermEntry struct {
	Term   *logic.Term
	Lit    *logic.Literal
	Clause *logic.Clause
}

// TermIterator iterates retrieval results of a term index.
type TermIterator struct {
	items []TermEntry
	pos   int
}

// Next returns the next entry and whether one was available.
func (it *TermIterator) Next() (TermEntry, bool) {
	if it.pos >= len(it.items) {
		return TermEntry{}, false
	}
	e := it.items[it.pos]
	it.pos++

	return e, true
}

// termSubstIndex is the in-memory stand-in for a term substitution tree.
// Variables index under a shared key because a variable generalizes every
// term.
type termSubstIndex struct {
	entries map[int][]TermEntry
	// varEntries holds entries whose term is a variable.
	varEntries []TermEntry
}

func newTermSubstIndex() *termSubstIndex {
	return &termSubstIndex{entries: map[int][]TermEntry{}}
}

func (x *termSubstIndex) insert(t *logic.Term, l *logic.Literal, c *logic.Clause) {
	if t.IsVar() {
		x.varEntries = append(x.varEntries, TermEntry{Term: t, Lit: l, Clause: c})

		return
	}
	x.entries[t.Func()] = append(x.entries[t.Func()], TermEntry{Term: t, Lit: l, Clause: c})
}

func (x *termSubstIndex) remove(t *logic.Term, l *logic.Literal, c *logic.Clause) {
	if t.IsVar() {
		for i, e := range x.varEntries {
			if e.Term == t && e.Lit == l && e.Clause == c {
				x.varEntries[i] = x.varEntries[len(x.varEntries)-1]
				x.varEntries = x.varEntries[:len(x.varEntries)-1]

				return
			}
		}
		return
	}
	es := x.entries[t.Func()]
	for i, e := range es {
		if e.Term == t && e.Lit == l && e.Clause == c {
			es[i] = es[len(es)-1]
			x.entries[t.Func()] = es[:len(es)-1]

			return
		}
	}
}

// Generalizations returns the stored terms that match onto the query
// term.
func (x *termSubstIndex) Generalizations(query *logic.Term) *TermIterator {
	var out []TermEntry
	out = append(out, x.varEntries...)
	if !query.IsVar() {
		for _, e := range x.entries[query.Func()] {
			if logic.MatchTerms(e.Term, query, logic.Substitution{}) {
				out = append(out, e)
			}
		}
	}
	return &TermIterator{items: out}
}

// Instances returns the stored terms that the query term matches onto.
func (x *termSubstIndex) Instances(query *logic.Term) *TermIterator {
	var out []TermEntry
	if query.IsVar() {
		for _, es := range x.entries {
			out = append(out, es...)
		}
		out = append(out, x.varEntries...)

		return &TermIterator{items: out}
	}
	for _, e := range x.entries[query.Func()] {
		if logic.MatchTerms(query, e.Term, logic.Substitution{}) {
			out = append(out, e)
		}
	}
	return &TermIterator{items: out}
}

// ClauseIterator iterates whole-clause retrieval results.
type ClauseIterator struct {
	items []*logic.Clause
	pos   int
}

// Next returns the next clause and whether one was available.
func (it *ClauseIterator) Next() (*logic.Clause, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	c := it.items[it.pos]
	it.pos++

	return c, true
}

// clauseCodeIndex is the in-memory stand-in for a clause code tree: it
// retrieves stored clauses that can possibly subsume a query clause,
// filtering on length and on the per-predicate literal counts.
type clauseCodeIndex struct {
	clauses  map[*logic.Clause]struct{}
	profiles map[*logic.Clause]map[litKeySig]int
}

func newClauseCodeIndex() *clauseCodeIndex {
	return &clauseCodeIndex{
		clauses:  map[*logic.Clause]struct{}{},
		profiles: map[*logic.Clause]map[litKeySig]int{},
	}
}

func clauseProfile(c *logic.Clause) map[litKeySig]int {
	p := map[litKeySig]int{}
	for _, l := range c.Lits() {
		p[litKeySig{l.Pred(), l.Positive()}]++
	}
	return p
}

func (x *clauseCodeIndex) insert(c *logic.Clause) {
	x.clauses[c] = struct{}{}
	x.profiles[c] = clauseProfile(c)
}

func (x *clauseCodeIndex) remove(c *logic.Clause) {
	delete(x.clauses, c)
	delete(x.profiles, c)
}

// Candidates returns the stored clauses that pass the subsumption
// pre-filter against the query clause: no longer than the query, and no
// predicate/sign occurring more often than in the query.
func (x *clauseCodeIndex) Candidates(query *logic.Clause) *ClauseIterator {
	qp := clauseProfile(query)

	var out []*logic.Clause
	for c := range x.clauses {
		if c.Len() > query.Len() {
			continue
		}
		ok := true
		for key, n := range x.profiles[c] {
			if qp[key] < n {
				ok = false

				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return &ClauseIterator{items: out}
}
