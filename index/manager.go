package index

import (
	"fmt"

	"github.com/Danilo-Araujo-Silva/vampire/container"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/order"
)

// Saturation is the view the index manager needs of the running
// saturation algorithm: the three container roles, the ordering and the
// term bank.
type Saturation interface {
	GeneratingContainer() container.Container
	SimplifyingContainer() container.Container
	ToBeSimplifiedContainer() container.Container
	Ordering() order.Ordering
	Bank() *logic.Bank
}

// entry is one registered index with its reference count. External
// entries were provided from the outside; their refcount starts at one
// and the manager never destroys them, whatever releases follow.
type entry struct {
	idx      Index
	refCnt   int
	external bool
	detach   func()
}

// Manager is the reference-counted registry of indices. An index is
// created on the first request for its kind, attached to the container
// the kind designates, and destroyed again when the last request is
// released.
type Manager struct {
	alg   Saturation
	store map[Kind]*entry

	// equalSimpContainers folds the backward simplification kind onto
	// the forward one, so that strategies whose simplifying and
	// to-be-simplified containers coincide share one physical index.
	equalSimpContainers bool
}

// NewManager returns a manager for the given algorithm.
func NewManager(alg Saturation) *Manager {
	return &Manager{
		alg:                 alg,
		store:               map[Kind]*entry{},
		equalSimpContainers: alg.SimplifyingContainer() == alg.ToBeSimplifiedContainer(),
	}
}

// alias applies the backward-to-forward fold. It runs on every request,
// release, get and contains.
func (m *Manager) alias(k Kind) Kind {
	if k == BwSimplificationSubstTree && m.equalSimpContainers {
		return FwSimplificationSubstTree
	}
	return k
}

// Request increments the kind's reference count, creating and attaching
// the index on the zero-to-one transition.
func (m *Manager) Request(k Kind) Index {
	k = m.alias(k)

	if e, ok := m.store[k]; ok {
		e.refCnt++

		return e.idx
	}
	idx, cont := m.create(k)
	e := &entry{idx: idx, refCnt: 1}
	e.detach = attach(idx, cont)
	m.store[k] = e

	return idx
}

// Release decrements the kind's reference count, destroying the index on
// the one-to-zero transition. Releasing an unheld kind is a programming
// error.
func (m *Manager) Release(k Kind) {
	k = m.alias(k)

	e, ok := m.store[k]
	if !ok {
		panic(fmt.Sprintf("index: release of unheld kind %s", k))
	}
	e.refCnt--
	if e.refCnt == 0 && !e.external {
		e.detach()
		delete(m.store, k)
	}
}

// Contains reports whether an index of the kind is registered.
func (m *Manager) Contains(k Kind) bool {
	_, ok := m.store[m.alias(k)]

	return ok
}

// Get returns the registered index of the kind. The index may disappear
// once the code that requested it releases it.
func (m *Manager) Get(k Kind) Index {
	k = m.alias(k)

	e, ok := m.store[k]
	if !ok {
		panic(fmt.Sprintf("index: get of unheld kind %s", k))
	}
	return e.idx
}

// RefCount returns the kind's current reference count, zero when the
// kind is not registered.
func (m *Manager) RefCount(k Kind) int {
	if e, ok := m.store[m.alias(k)]; ok {
		return e.refCnt
	}
	return 0
}

// ProvideIndex registers an externally owned index under the kind. The
// refcount starts at one, and the manager never destroys the index, even
// when releases bring the count to zero. There must not be an index of
// the kind from before.
func (m *Manager) ProvideIndex(k Kind, idx Index) {
	k = m.alias(k)

	if _, ok := m.store[k]; ok {
		panic(fmt.Sprintf("index: kind %s already registered", k))
	}
	m.store[k] = &entry{idx: idx, refCnt: 1, external: true, detach: func() {}}
}

// Empty reports whether no indices are registered.
func (m *Manager) Empty() bool {
	return len(m.store) == 0
}

// create constructs the indexing structure and wrapper for a kind and
// returns it with the container it attaches to.
func (m *Manager) create(k Kind) (Index, container.Container) {
	bank := m.alg.Bank()
	ord := m.alg.Ordering()

	switch k {
	case GeneratingSubstTree:
		return &GeneratingLiteralIndex{newLitSubstIndex(bank)}, m.alg.GeneratingContainer()
	case FwSimplificationSubstTree:
		return &SimplifyingLiteralIndex{newLitSubstIndex(bank)}, m.alg.SimplifyingContainer()
	case BwSimplificationSubstTree:
		return &SimplifyingLiteralIndex{newLitSubstIndex(bank)}, m.alg.ToBeSimplifiedContainer()
	case FwSimplifyingUnitClauseSubstTree:
		return &UnitClauseLiteralIndex{newLitSubstIndex(bank)}, m.alg.SimplifyingContainer()
	case GeneratingUnitClauseSubstTree:
		return &UnitClauseLiteralIndex{newLitSubstIndex(bank)}, m.alg.GeneratingContainer()
	case GeneratingNonUnitClauseSubstTree:
		return &NonUnitClauseLiteralIndex{newLitSubstIndex(bank)}, m.alg.GeneratingContainer()
	case SuperpositionSubtermSubstTree:
		return &SuperpositionSubtermIndex{newTermSubstIndex(), ord}, m.alg.GeneratingContainer()
	case SuperpositionLHSSubstTree:
		return &SuperpositionLHSIndex{newTermSubstIndex(), ord}, m.alg.GeneratingContainer()
	case AcyclicityIndex:
		return &AcyclicityTermIndex{newTermSubstIndex()}, m.alg.GeneratingContainer()
	case BwDemodulationSubtermSubstTree:
		return &DemodulationSubtermIndex{newTermSubstIndex()}, m.alg.ToBeSimplifiedContainer()
	case FwDemodulationLHSSubstTree:
		return &DemodulationLHSIndex{newTermSubstIndex(), ord}, m.alg.SimplifyingContainer()
	case FwSubsumptionCodeTree:
		return &SubsumptionCodeTree{newClauseCodeIndex()}, m.alg.SimplifyingContainer()
	case FwSubsumptionSubstTree:
		return &FwSubsumptionLiteralIndex{newLitSubstIndex(bank)}, m.alg.SimplifyingContainer()
	case FwRewriteRuleSubstTree:
		return &RewriteRuleIndex{newLitSubstIndex(bank), ord}, m.alg.SimplifyingContainer()
	case FwGlobalSubsumptionIndex:
		return NewGroundingIndex(bank), m.alg.SimplifyingContainer()
	}
	panic(fmt.Sprintf("index: unsupported kind %d", k))
}

// attach subscribes the index to the container's events and loads any
// clauses the container already holds. The returned function undoes the
// subscription.
func attach(idx Index, cont container.Container) func() {
	unsubAdd := cont.Added().SubscribeHandle(idx.Insert)
	unsubRemove := cont.Removed().SubscribeHandle(idx.Remove)

	if each, ok := cont.(interface{ Each(func(*logic.Clause)) }); ok {
		each.Each(idx.Insert)
	}
	return func() {
		unsubAdd()
		unsubRemove()
	}
}
