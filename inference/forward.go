package inference

import (
	"github.com/Danilo-Araujo-Silva/vampire/index"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/mlmatch"
	"github.com/Danilo-Araujo-Silva/vampire/order"
)

// ForwardSubsumption deletes a new clause subsumed by a simplifying
// clause and applies subsumption resolution against the same candidate
// set.
type ForwardSubsumption struct {
	ctx     Context
	idx     *index.SubsumptionCodeTree
	litIdx  *index.FwSubsumptionLiteralIndex
	matcher *mlmatch.Matcher
}

// NewForwardSubsumption requests the subsumption indices and returns the
// engine.
func NewForwardSubsumption(ctx Context) *ForwardSubsumption {
	return &ForwardSubsumption{
		ctx:     ctx,
		idx:     ctx.IndexManager().Request(index.FwSubsumptionCodeTree).(*index.SubsumptionCodeTree),
		litIdx:  ctx.IndexManager().Request(index.FwSubsumptionSubstTree).(*index.FwSubsumptionLiteralIndex),
		matcher: mlmatch.NewMatcher(ctx.Bank()),
	}
}

// Detach releases the engine's index requests.
func (s *ForwardSubsumption) Detach() {
	s.ctx.IndexManager().Release(index.FwSubsumptionCodeTree)
	s.ctx.IndexManager().Release(index.FwSubsumptionSubstTree)
}

// Simplify deletes c when a stored clause subsumes it, and otherwise
// tries subsumption resolution, replacing c by c minus the resolved
// literal.
func (s *ForwardSubsumption) Simplify(c *logic.Clause) (*logic.Clause, bool, error) {
	bank := s.ctx.Bank()

	it := s.idx.Candidates(c)
	var candidates []*logic.Clause
	for {
		d, ok := it.Next()
		if !ok {
			break
		}
		candidates = append(candidates, d)
	}
	// Plain subsumption first: an existing clause maps into c under one
	// substitution, injectively over c's literal occurrences.
	for _, d := range candidates {
		alts := buildAlts(bank, d, c)
		s.matcher.Init(d.Lits(), c, alts,
			mlmatch.WithMultiset(), mlmatch.WithLimits(s.ctx.Limits()))
		ok, err := s.matcher.NextMatch()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return nil, true, nil
		}
	}
	// Subsumption resolution: one base literal is designated resolved;
	// the rest must map into c. The match must extend to mapping the
	// resolved base literal onto the complement of a literal of c,
	// which is then cut from c.
	for _, d := range candidates {
		repl, ok, err := s.trySubsumptionResolution(d, c)
		if err != nil || ok {
			return repl, ok, err
		}
	}
	return nil, false, nil
}

func (s *ForwardSubsumption) trySubsumptionResolution(d, c *logic.Clause) (*logic.Clause, bool, error) {
	bank := s.ctx.Bank()
	alts := buildAlts(bank, d, c)

	for bi, bl := range d.Lits() {
		// The resolved base literal must complement-match some literal
		// of c at all.
		anyComplement := false
		for _, cl := range c.Lits() {
			if bl.Pred() == cl.Pred() && bl.Positive() != cl.Positive() &&
				logic.CanMatchArgs(bl, bank.Complement(cl), false) {
				anyComplement = true

				break
			}
		}
		if !anyComplement {
			continue
		}
		s.matcher.Init(d.Lits(), c, alts,
			mlmatch.WithResolved(bi), mlmatch.WithLimits(s.ctx.Limits()))
		for {
			ok, err := s.matcher.NextMatch()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				break
			}
			sub := s.matcher.Bindings()
			for ci, cl := range c.Lits() {
				if bl.Pred() != cl.Pred() || bl.Positive() == cl.Positive() {
					continue
				}
				ext := logic.Substitution{}
				for v, t := range sub {
					ext[v] = t
				}
				if logic.MatchArgs(bl, bank.Complement(cl), ext) {
					repl := logic.NewClause(withoutLit(c, ci), conclusionAge(c, d),
						logic.NewInference(logic.RuleSubsumptionResolution, c, d))

					return repl, true, nil
				}
			}
		}
	}
	return nil, false, nil
}

// ForwardDemodulation rewrites a new clause with the oriented unit
// equalities of the simplifying container.
type ForwardDemodulation struct {
	ctx Context
	idx *index.DemodulationLHSIndex
}

// NewForwardDemodulation requests the demodulator index and returns the
// engine.
func NewForwardDemodulation(ctx Context) *ForwardDemodulation {
	return &ForwardDemodulation{
		ctx: ctx,
		idx: ctx.IndexManager().Request(index.FwDemodulationLHSSubstTree).(*index.DemodulationLHSIndex),
	}
}

// Detach releases the engine's index request.
func (d *ForwardDemodulation) Detach() {
	d.ctx.IndexManager().Release(index.FwDemodulationLHSSubstTree)
}

// Simplify rewrites the first rewritable subterm of c with a stored
// demodulator, replacing c by the rewritten clause.
func (d *ForwardDemodulation) Simplify(c *logic.Clause) (*logic.Clause, bool, error) {
	bank := d.ctx.Bank()
	ord := d.ctx.Ordering()

	for li, l := range c.Lits() {
		var found *logic.Literal
		var fromTerm, toTerm *logic.Term
		var demodulator *logic.Clause

		eachLitSubterm(l, func(t *logic.Term) bool {
			it := d.idx.Generalizations(t)
			for {
				e, ok := it.Next()
				if !ok {
					return false
				}
				// A unit equality lhs = rhs with sigma(lhs) == t; the
				// rewrite needs t greater than sigma(rhs).
				sub := logic.Substitution{}
				if !logic.MatchTerms(e.Term, t, sub) {
					continue
				}
				rhs := e.Lit.Arg(0)
				if rhs == e.Term {
					rhs = e.Lit.Arg(1)
				}
				rhsInst := bank.SubstTerm(rhs, sub)
				if ord.Compare(t, rhsInst) != order.Greater {
					continue
				}
				found = l
				fromTerm = t
				toTerm = rhsInst
				demodulator = e.Clause

				return true
			}
		})
		if found == nil {
			continue
		}
		lits := make([]*logic.Literal, c.Len())
		copy(lits, c.Lits())
		lits[li] = rewriteLit(bank, l, fromTerm, toTerm)

		repl := logic.NewClause(lits, conclusionAge(c, demodulator),
			logic.NewInference(logic.RuleForwardDemodulation, c, demodulator))

		return repl, true, nil
	}
	return nil, false, nil
}

// eachLitSubterm walks the non-variable subterm occurrences of a
// literal until fn returns true.
func eachLitSubterm(l *logic.Literal, fn func(*logic.Term) bool) {
	var walk func(t *logic.Term) bool
	walk = func(t *logic.Term) bool {
		if t.IsVar() {
			return false
		}
		if fn(t) {
			return true
		}
		for _, a := range t.Args() {
			if walk(a) {
				return true
			}
		}
		return false
	}
	for _, a := range l.Args() {
		if walk(a) {
			return
		}
	}
}

// ForwardSubsumptionDemodulation combines subsumption with rewriting:
// a simplifying clause consisting of a positive equality and a part
// that maps into c rewrites the unmatched rest of c.
type ForwardSubsumptionDemodulation struct {
	ctx     Context
	idx     *index.SubsumptionCodeTree
	matcher *mlmatch.Matcher
}

// NewForwardSubsumptionDemodulation requests the subsumption code tree
// and returns the engine.
func NewForwardSubsumptionDemodulation(ctx Context) *ForwardSubsumptionDemodulation {
	return &ForwardSubsumptionDemodulation{
		ctx:     ctx,
		idx:     ctx.IndexManager().Request(index.FwSubsumptionCodeTree).(*index.SubsumptionCodeTree),
		matcher: mlmatch.NewMatcher(ctx.Bank()),
	}
}

// Detach releases the engine's index request.
func (f *ForwardSubsumptionDemodulation) Detach() {
	f.ctx.IndexManager().Release(index.FwSubsumptionCodeTree)
}

// Simplify looks for a stored clause whose literals map into c except
// for one positive equality, and uses that equality to rewrite the
// unmatched part of c.
func (f *ForwardSubsumptionDemodulation) Simplify(c *logic.Clause) (*logic.Clause, bool, error) {
	bank := f.ctx.Bank()
	ord := f.ctx.Ordering()

	it := f.idx.Candidates(c)
	for {
		d, ok := it.Next()
		if !ok {
			return nil, false, nil
		}
		if !hasPositiveEquality(d) {
			continue
		}
		alts := buildAlts(bank, d, c)
		f.matcher.Init(d.Lits(), c, alts,
			mlmatch.WithMultiset(), mlmatch.WithEqualitySkip(),
			mlmatch.WithLimits(f.ctx.Limits()))
		for {
			matched, err := f.matcher.NextMatch()
			if err != nil {
				return nil, false, err
			}
			if !matched {
				break
			}
			eq := f.matcher.EqualityForDemodulation()
			if eq == nil {
				// Full subsumption is forward subsumption's business;
				// this engine only handles the equality-skip case.
				continue
			}
			sub := f.matcher.Bindings()
			bitmap := f.matcher.MatchedAltsBitmap()
			if repl := f.rewriteRest(c, d, eq, sub, bitmap, ord); repl != nil {
				return repl, true, nil
			}
		}
	}
}

// rewriteRest rewrites a subterm of the unmatched literals of c with the
// skipped equality under the match substitution, or returns nil.
func (f *ForwardSubsumptionDemodulation) rewriteRest(c, d *logic.Clause, eq *logic.Literal,
	sub logic.Substitution, bitmap []bool, ord order.Ordering) *logic.Clause {
	bank := f.ctx.Bank()

	for side := 0; side < 2; side++ {
		lhs := eq.Arg(side)
		rhs := eq.Arg(1 - side)

		for ci, cl := range c.Lits() {
			if bitmap[ci] {
				continue
			}
			var repl *logic.Clause
			eachLitSubterm(cl, func(t *logic.Term) bool {
				ext := logic.Substitution{}
				for v, bt := range sub {
					ext[v] = bt
				}
				if !logic.MatchTerms(lhs, t, ext) {
					return false
				}
				rhsInst := bank.SubstTerm(rhs, ext)
				if ord.Compare(t, rhsInst) != order.Greater {
					return false
				}
				lits := make([]*logic.Literal, c.Len())
				copy(lits, c.Lits())
				lits[ci] = rewriteLit(bank, cl, t, rhsInst)
				repl = logic.NewClause(lits, conclusionAge(c, d),
					logic.NewInference(logic.RuleForwardSubsumptionDemodulation, c, d))

				return true
			})
			if repl != nil {
				return repl
			}
		}
	}
	return nil
}

func hasPositiveEquality(c *logic.Clause) bool {
	for _, l := range c.Lits() {
		if l.IsEquality() && l.Positive() {
			return true
		}
	}
	return false
}

// GlobalSubsumption shortens a new clause when the grounding index
// already implies a proper subclause of it.
type GlobalSubsumption struct {
	ctx Context
	idx *index.GroundingIndex
}

// NewGlobalSubsumption requests the grounding index and returns the
// engine.
func NewGlobalSubsumption(ctx Context) *GlobalSubsumption {
	return &GlobalSubsumption{
		ctx: ctx,
		idx: ctx.IndexManager().Request(index.FwGlobalSubsumptionIndex).(*index.GroundingIndex),
	}
}

// Detach releases the engine's index request.
func (g *GlobalSubsumption) Detach() {
	g.ctx.IndexManager().Release(index.FwGlobalSubsumptionIndex)
}

// Simplify replaces c by c minus one literal when the grounding of that
// subclause is already implied by the grounded simplifying clauses.
func (g *GlobalSubsumption) Simplify(c *logic.Clause) (*logic.Clause, bool, error) {
	if c.Len() < 2 {
		return nil, false, nil
	}
	for i := 0; i < c.Len(); i++ {
		shorter := logic.NewClause(withoutLit(c, i), conclusionAge(c),
			logic.NewInference(logic.RuleGlobalSubsumption, c))
		if g.idx.Implied(shorter).True() {
			return shorter, true, nil
		}
	}
	return nil, false, nil
}
