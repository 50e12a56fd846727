package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danilo-Araujo-Silva/vampire/container"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/order"
)

// fakeAlg is a minimal Saturation view for manager tests.
type fakeAlg struct {
	bank           *logic.Bank
	generating     container.Container
	simplifying    container.Container
	toBeSimplified container.Container
}

func (f *fakeAlg) GeneratingContainer() container.Container     { return f.generating }
func (f *fakeAlg) SimplifyingContainer() container.Container    { return f.simplifying }
func (f *fakeAlg) ToBeSimplifiedContainer() container.Container { return f.toBeSimplified }
func (f *fakeAlg) Ordering() order.Ordering                     { return order.NewKBO() }
func (f *fakeAlg) Bank() *logic.Bank                            { return f.bank }

func newFakeAlg(equalSimp bool) (*fakeAlg, *container.Active) {
	active := container.NewActive()
	alg := &fakeAlg{
		bank:           logic.NewBank(logic.NewSignature()),
		generating:     active,
		simplifying:    active,
		toBeSimplified: active,
	}
	if !equalSimp {
		alg.toBeSimplified = container.NewFakeContainer()
	}
	return alg, active
}

func unitClause(bank *logic.Bank, name string) *logic.Clause {
	p := bank.Signature().AddPred(name, 0)

	return logic.NewClause([]*logic.Literal{bank.Lit(p, true)}, 0,
		logic.NewInference(logic.RuleInput))
}

// When the simplifying and to-be-simplified containers coincide, the
// backward kind folds onto the forward kind: one physical index,
// refcount two.
func TestAliasCollapse(t *testing.T) {
	alg, _ := newFakeAlg(true)
	m := NewManager(alg)

	bw := m.Request(BwSimplificationSubstTree)
	fw := m.Request(FwSimplificationSubstTree)

	assert.Same(t, bw, fw)
	assert.Equal(t, 2, m.RefCount(FwSimplificationSubstTree))
	assert.Equal(t, 2, m.RefCount(BwSimplificationSubstTree))
	assert.True(t, m.Contains(BwSimplificationSubstTree))

	m.Release(BwSimplificationSubstTree)
	m.Release(FwSimplificationSubstTree)
	assert.True(t, m.Empty())
}

// Distinct containers keep distinct physical indices.
func TestNoAliasWhenContainersDiffer(t *testing.T) {
	alg, _ := newFakeAlg(false)
	m := NewManager(alg)

	bw := m.Request(BwSimplificationSubstTree)
	fw := m.Request(FwSimplificationSubstTree)

	assert.NotSame(t, bw, fw)
	assert.Equal(t, 1, m.RefCount(BwSimplificationSubstTree))
}

// Requests and releases balance: intermediate refcounts equal
// #requests - #releases, and a balanced sequence empties the kind.
func TestRefCountBalance(t *testing.T) {
	alg, _ := newFakeAlg(true)
	m := NewManager(alg)

	for i := 1; i <= 3; i++ {
		m.Request(GeneratingSubstTree)
		assert.Equal(t, i, m.RefCount(GeneratingSubstTree))
	}
	for i := 2; i >= 0; i-- {
		m.Release(GeneratingSubstTree)
		assert.Equal(t, i, m.RefCount(GeneratingSubstTree))
	}
	assert.False(t, m.Contains(GeneratingSubstTree))
	assert.Panics(t, func() { m.Release(GeneratingSubstTree) })
}

// An attached index mirrors its container; detaching leaves the
// container's clauses untouched.
func TestAttachDetachRoundTrip(t *testing.T) {
	alg, active := newFakeAlg(true)
	m := NewManager(alg)

	idx := m.Request(FwSubsumptionCodeTree).(*SubsumptionCodeTree)

	c1 := unitClause(alg.bank, "p")
	c2 := unitClause(alg.bank, "q")
	active.Add(c1)
	active.Add(c2)

	assert.Len(t, idx.clauses, 2)

	active.Remove(c1)
	assert.Len(t, idx.clauses, 1)

	m.Release(FwSubsumptionCodeTree)
	// The container keeps its clause; only the index subscription ends.
	assert.True(t, active.Contains(c2))
	active.Add(c1)
	assert.Len(t, idx.clauses, 1)
}

// An index created while its container is non-empty loads the existing
// clauses.
func TestAttachLoadsExistingClauses(t *testing.T) {
	alg, active := newFakeAlg(true)
	m := NewManager(alg)

	c := unitClause(alg.bank, "p")
	active.Add(c)

	idx := m.Request(FwSubsumptionCodeTree).(*SubsumptionCodeTree)
	assert.Len(t, idx.clauses, 1)
}

// Provided indices are pinned: matching releases never destroy them.
func TestProvideIndexPinned(t *testing.T) {
	alg, active := newFakeAlg(true)
	m := NewManager(alg)

	own := &SubsumptionCodeTree{newClauseCodeIndex()}
	m.ProvideIndex(FwSubsumptionCodeTree, own)

	got := m.Request(FwSubsumptionCodeTree)
	assert.Same(t, own, got)

	m.Release(FwSubsumptionCodeTree)
	m.Release(FwSubsumptionCodeTree)
	assert.True(t, m.Contains(FwSubsumptionCodeTree))

	assert.Panics(t, func() { m.ProvideIndex(FwSubsumptionCodeTree, own) })
	_ = active
}

// Every kind constructs and attaches.
func TestCreateAllKinds(t *testing.T) {
	alg, active := newFakeAlg(false)
	m := NewManager(alg)

	kinds := []Kind{
		GeneratingSubstTree,
		FwSimplificationSubstTree,
		BwSimplificationSubstTree,
		FwSimplifyingUnitClauseSubstTree,
		GeneratingUnitClauseSubstTree,
		GeneratingNonUnitClauseSubstTree,
		SuperpositionSubtermSubstTree,
		SuperpositionLHSSubstTree,
		AcyclicityIndex,
		BwDemodulationSubtermSubstTree,
		FwDemodulationLHSSubstTree,
		FwSubsumptionCodeTree,
		FwSubsumptionSubstTree,
		FwRewriteRuleSubstTree,
		FwGlobalSubsumptionIndex,
	}
	for _, k := range kinds {
		require.NotNil(t, m.Request(k), "kind %s", k)
	}
	active.Add(unitClause(alg.bank, "p"))
	for _, k := range kinds {
		m.Release(k)
	}
	assert.True(t, m.Empty())
}

func TestLiteralIndexRetrieval(t *testing.T) {
	alg, active := newFakeAlg(true)
	m := NewManager(alg)
	bank := alg.bank
	sig := bank.Signature()

	idx := m.Request(FwSimplificationSubstTree).(*SimplifyingLiteralIndex)

	p := sig.AddPred("p", 1)
	a := sig.AddFunc("a", 0)
	px := bank.Lit(p, true, bank.Var(0))
	pa := bank.Lit(p, true, bank.Const(a))
	c := logic.NewClause([]*logic.Literal{px}, 0, logic.NewInference(logic.RuleInput))
	active.Add(c)

	// p(X) generalizes p(a).
	it := idx.Generalizations(pa, false)
	e, ok := it.Next()
	require.True(t, ok)
	assert.Same(t, px, e.Lit)
	assert.Same(t, c, e.Clause)
	_, ok = it.Next()
	assert.False(t, ok)

	// No complementary generalization exists.
	it = idx.Generalizations(pa, true)
	_, ok = it.Next()
	assert.False(t, ok)

	// Instances of p(X) include the stored p(X) itself.
	it = idx.Instances(px, false)
	_, ok = it.Next()
	require.True(t, ok)
}
