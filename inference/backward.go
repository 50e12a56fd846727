package inference

import (
	"github.com/Danilo-Araujo-Silva/vampire/index"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/mlmatch"
)

// BackwardSubsumption discards clauses of the to-be-simplified container
// that the selected clause subsumes.
type BackwardSubsumption struct {
	ctx     Context
	idx     *index.SimplifyingLiteralIndex
	matcher *mlmatch.Matcher
}

// NewBackwardSubsumption requests the backward simplification index and
// returns the engine.
func NewBackwardSubsumption(ctx Context) *BackwardSubsumption {
	return &BackwardSubsumption{
		ctx:     ctx,
		idx:     ctx.IndexManager().Request(index.BwSimplificationSubstTree).(*index.SimplifyingLiteralIndex),
		matcher: mlmatch.NewMatcher(ctx.Bank()),
	}
}

// Detach releases the engine's index request.
func (s *BackwardSubsumption) Detach() {
	s.ctx.IndexManager().Release(index.BwSimplificationSubstTree)
}

// SimplifyCandidates returns the indexed clauses subsumed by c. The
// candidates come from the instances of c's first literal, which every
// subsumed clause must contain.
func (s *BackwardSubsumption) SimplifyCandidates(c *logic.Clause) ([]BwRecord, error) {
	if c.Empty() {
		return nil, nil
	}
	bank := s.ctx.Bank()

	seen := map[*logic.Clause]struct{}{}
	it := s.idx.Instances(c.Lit(0), false)
	var victims []BwRecord
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		d := e.Clause
		if d == c {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		if d.Len() < c.Len() {
			continue
		}
		alts := buildAlts(bank, c, d)
		s.matcher.Init(c.Lits(), d, alts,
			mlmatch.WithMultiset(), mlmatch.WithLimits(s.ctx.Limits()))
		ok, err := s.matcher.NextMatch()
		if err != nil {
			return nil, err
		}
		if ok {
			victims = append(victims, BwRecord{Victim: d})
		}
	}
	return victims, nil
}
