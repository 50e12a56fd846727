package inference

import (
	"github.com/Danilo-Araujo-Silva/vampire/index"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

// BinaryResolution resolves the activated clause against the generating
// container through the generating literal index.
type BinaryResolution struct {
	ctx Context
	idx *index.GeneratingLiteralIndex
}

// NewBinaryResolution requests the generating index and returns the
// engine.
func NewBinaryResolution(ctx Context) *BinaryResolution {
	return &BinaryResolution{
		ctx: ctx,
		idx: ctx.IndexManager().Request(index.GeneratingSubstTree).(*index.GeneratingLiteralIndex),
	}
}

// Detach releases the engine's index request.
func (r *BinaryResolution) Detach() {
	r.ctx.IndexManager().Release(index.GeneratingSubstTree)
}

// Generate resolves each selected literal of c against the unifiable
// complementary literals in the generating container.
func (r *BinaryResolution) Generate(c *logic.Clause) ([]*logic.Clause, error) {
	bank := r.ctx.Bank()

	var out []*logic.Clause
	for _, li := range r.ctx.Selection()(c) {
		l := c.Lit(li)
		it := r.idx.Unifications(l, true)
		for {
			e, ok := it.Next()
			if !ok {
				break
			}
			d := e.Clause
			// Rename the side premise apart from c.
			offset := logic.MaxVar(c) + 1
			dl := bank.RenameLit(e.Lit, offset)

			sub := logic.Substitution{}
			if !logic.UnifyLits(l, bank.Complement(dl), sub) {
				continue
			}
			lits := make([]*logic.Literal, 0, c.Len()+d.Len()-2)
			for j, cl := range c.Lits() {
				if j != li {
					lits = append(lits, bank.SubstLit(cl, sub))
				}
			}
			di := d.GetLiteralPosition(e.Lit)
			for j, dlit := range d.Lits() {
				if j != di {
					lits = append(lits, bank.SubstLit(bank.RenameLit(dlit, offset), sub))
				}
			}
			out = append(out, logic.NewClause(lits, conclusionAge(c, d),
				logic.NewInference(logic.RuleResolution, c, d)))
		}
	}
	return out, nil
}

// Factoring unifies pairs of same-polarity literals of the activated
// clause, merging them in the conclusion.
type Factoring struct {
	ctx Context
}

// NewFactoring returns the engine. Factoring works on the activated
// clause alone and holds no index.
func NewFactoring(ctx Context) *Factoring {
	return &Factoring{ctx: ctx}
}

// Detach is a no-op; factoring holds no index.
func (f *Factoring) Detach() {}

// Generate factors each unifiable pair of literals of c.
func (f *Factoring) Generate(c *logic.Clause) ([]*logic.Clause, error) {
	bank := f.ctx.Bank()

	var out []*logic.Clause
	for i := 0; i < c.Len(); i++ {
		for j := i + 1; j < c.Len(); j++ {
			a, b := c.Lit(i), c.Lit(j)
			if a.Pred() != b.Pred() || a.Positive() != b.Positive() {
				continue
			}
			sub := logic.Substitution{}
			if !logic.UnifyLits(a, b, sub) {
				continue
			}
			lits := make([]*logic.Literal, 0, c.Len()-1)
			for k, l := range c.Lits() {
				if k != j {
					lits = append(lits, bank.SubstLit(l, sub))
				}
			}
			out = append(out, logic.NewClause(lits, conclusionAge(c),
				logic.NewInference(logic.RuleFactoring, c)))
		}
	}
	return out, nil
}

// EqualityResolution resolves negative equalities of the activated
// clause whose sides unify.
type EqualityResolution struct {
	ctx Context
}

// NewEqualityResolution returns the engine.
func NewEqualityResolution(ctx Context) *EqualityResolution {
	return &EqualityResolution{ctx: ctx}
}

// Detach is a no-op; equality resolution holds no index.
func (e *EqualityResolution) Detach() {}

// Generate resolves each negative equality s != t of c with unifiable
// sides.
func (e *EqualityResolution) Generate(c *logic.Clause) ([]*logic.Clause, error) {
	bank := e.ctx.Bank()

	var out []*logic.Clause
	for i, l := range c.Lits() {
		if !l.IsEquality() || l.Positive() {
			continue
		}
		sub := logic.Substitution{}
		if !logic.UnifyTerms(l.Arg(0), l.Arg(1), sub) {
			continue
		}
		lits := make([]*logic.Literal, 0, c.Len()-1)
		for k, cl := range c.Lits() {
			if k != i {
				lits = append(lits, bank.SubstLit(cl, sub))
			}
		}
		out = append(out, logic.NewClause(lits, conclusionAge(c),
			logic.NewInference(logic.RuleEqualityResolution, c)))
	}
	return out, nil
}
