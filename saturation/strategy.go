package saturation

import "github.com/Danilo-Araujo-Silva/vampire/logic"

// discountStrategy simplifies against the active clauses only: passive
// clauses are never used as simplifiers. The selected clause is
// forward-simplified against active once more before activation, since
// active has grown since the clause was drained.
type discountStrategy struct {
	alg *Algorithm
}

func (s *discountStrategy) handleClauseBeforeActivation(c *logic.Clause) (bool, error) {
	survived, err := s.alg.forwardSimplify(c)
	if err != nil {
		return false, err
	}
	if !survived {
		c.SetStore(logic.StoreNone)

		return false, nil
	}
	if err := s.alg.backwardSimplify(c); err != nil {
		return false, err
	}
	return true, nil
}

// otterStrategy simplifies against the union of active and passive,
// tracked by a fake container. Forward simplification already saw the
// passive clauses when the clause was drained, so only backward
// simplification remains here.
type otterStrategy struct {
	alg *Algorithm
}

func (s *otterStrategy) handleClauseBeforeActivation(c *logic.Clause) (bool, error) {
	if err := s.alg.backwardSimplify(c); err != nil {
		return false, err
	}
	return true, nil
}

// discottStrategy forward-simplifies against active but
// backward-simplifies the union of active and passive. The selected
// clause left the to-be-simplified container when it was popped from
// passive, so it cannot simplify itself here; activation re-adds it
// through the active add event.
type discottStrategy struct {
	alg *Algorithm
}

func (s *discottStrategy) handleClauseBeforeActivation(c *logic.Clause) (bool, error) {
	if err := s.alg.backwardSimplify(c); err != nil {
		return false, err
	}
	return true, nil
}
