package saturation

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danilo-Araujo-Silva/vampire/config"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
)

func testConfig(strategy config.Strategy) *config.Config {
	cfg := config.New()
	cfg.Strategy = strategy
	cfg.Logger.SetLevel(logrus.PanicLevel)

	return cfg
}

func input(lits ...*logic.Literal) *logic.Clause {
	return logic.NewClause(lits, 0, logic.NewInference(logic.RuleInput))
}

// Feeding {p, ~p} derives the empty clause by resolution.
func TestRefutationOnComplementaryUnits(t *testing.T) {
	for _, strategy := range []config.Strategy{config.Discount, config.Otter, config.Discott} {
		t.Run(string(strategy), func(t *testing.T) {
			sig := logic.NewSignature()
			bank := logic.NewBank(sig)
			p := sig.AddPred("p", 0)

			alg := New(testConfig(strategy), bank)
			defer alg.Close()

			res := alg.Run([]*logic.Clause{
				input(bank.Lit(p, true)),
				input(bank.Lit(p, false)),
			})

			require.Equal(t, ReasonRefutation, res.Reason)
			require.NotNil(t, res.Refutation)
			assert.True(t, res.Refutation.Empty())

			inf := res.Refutation.Inference()
			assert.Equal(t, logic.RuleResolution, inf.Rule())
			require.Len(t, inf.Premises(), 2)
			for _, prem := range inf.Premises() {
				assert.Equal(t, logic.RuleInput, prem.Inference().Rule())
				// No clause may be left mid-activation.
				assert.NotEqual(t, logic.StoreSelected, prem.Store())
			}
		})
	}
}

// A consistent problem saturates.
func TestSaturationOnSatisfiableProblem(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	q := sig.AddPred("q", 1)
	a := sig.AddFunc("a", 0)

	alg := New(testConfig(config.Discount), bank)
	defer alg.Close()

	// {p(a), ~p(X) | q(X)} has the model {p(a), q(a)}.
	res := alg.Run([]*logic.Clause{
		input(bank.Lit(p, true, bank.Const(a))),
		input(bank.Lit(p, false, bank.Var(0)), bank.Lit(q, true, bank.Var(0))),
	})

	assert.Equal(t, ReasonSatisfiable, res.Reason)
	assert.Nil(t, res.Refutation)
}

// A chain p -> q -> r with p and ~r closes over several rounds.
func TestRefutationThroughChain(t *testing.T) {
	for _, strategy := range []config.Strategy{config.Discount, config.Otter, config.Discott} {
		t.Run(string(strategy), func(t *testing.T) {
			sig := logic.NewSignature()
			bank := logic.NewBank(sig)
			p := sig.AddPred("p", 1)
			q := sig.AddPred("q", 1)
			r := sig.AddPred("r", 1)
			a := sig.AddFunc("a", 0)

			alg := New(testConfig(strategy), bank)
			defer alg.Close()

			res := alg.Run([]*logic.Clause{
				input(bank.Lit(p, true, bank.Const(a))),
				input(bank.Lit(p, false, bank.Var(0)), bank.Lit(q, true, bank.Var(0))),
				input(bank.Lit(q, false, bank.Var(0)), bank.Lit(r, true, bank.Var(0))),
				input(bank.Lit(r, false, bank.Const(a))),
			})

			assert.Equal(t, ReasonRefutation, res.Reason)
		})
	}
}

// Forward subsumption deletes a duplicate before it reaches passive.
func TestForwardSubsumptionDeletesDuplicate(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	a := sig.AddFunc("a", 0)

	alg := New(testConfig(config.Otter), bank)
	defer alg.Close()

	general := input(bank.Lit(p, true, bank.Var(0)))
	specific := input(bank.Lit(p, true, bank.Const(a)))

	res := alg.Run([]*logic.Clause{general, specific})

	assert.Equal(t, ReasonSatisfiable, res.Reason)
	// In Otter the passive clauses simplify, so p(a) dies while still
	// unprocessed: p(X) entered passive first and subsumes it.
	assert.Equal(t, 1, alg.Stats().FwSubsumed)
	assert.Equal(t, logic.StoreNone, specific.Store())
}

// A unit equality demodulates a heavier clause.
func TestForwardDemodulation(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	f := sig.AddFunc("f", 1)
	a := sig.AddFunc("a", 0)

	alg := New(testConfig(config.Otter), bank)
	defer alg.Close()

	// f(X) = X orients left-to-right; p(f(a)) rewrites to p(a), which
	// then resolves with ~p(a).
	res := alg.Run([]*logic.Clause{
		input(bank.Eq(bank.Apply(f, bank.Var(0)), bank.Var(0))),
		input(bank.Lit(p, true, bank.Apply(f, bank.Const(a)))),
		input(bank.Lit(p, false, bank.Const(a))),
	})

	require.Equal(t, ReasonRefutation, res.Reason)
	assert.Greater(t, alg.Stats().FwSimplified, 0)
}

// drain places an unsimplifiable clause into passive exactly once, with
// exactly one add event.
func TestDrainAddsToPassiveOnce(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)

	alg := New(testConfig(config.Discount), bank)
	defer alg.Close()

	adds := 0
	alg.passive.Added().Subscribe(func(c *logic.Clause) { adds++ })

	c := input(bank.Lit(p, true, bank.Var(0)))
	alg.newClause(c)
	require.NoError(t, alg.drain(alg.unprocessed.Pop()))

	assert.Equal(t, 1, adds)
	assert.Equal(t, logic.StorePassive, c.Store())
	assert.Equal(t, 1, alg.passive.Len())
}

// Store values only ever move along the permitted transitions,
// observed through the container events of a full run.
func TestStoreProgressionObserved(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	q := sig.AddPred("q", 1)
	a := sig.AddFunc("a", 0)

	alg := New(testConfig(config.Discount), bank)
	defer alg.Close()

	alg.passive.Added().Subscribe(func(c *logic.Clause) {
		assert.Equal(t, logic.StorePassive, c.Store())
	})
	alg.active.Added().Subscribe(func(c *logic.Clause) {
		assert.Equal(t, logic.StoreActive, c.Store())
	})
	alg.unprocessed.Added().Subscribe(func(c *logic.Clause) {
		assert.Equal(t, logic.StoreUnprocessed, c.Store())
	})

	alg.Run([]*logic.Clause{
		input(bank.Lit(p, true, bank.Const(a))),
		input(bank.Lit(p, false, bank.Var(0)), bank.Lit(q, true, bank.Var(0))),
	})
}

// The time budget converts into the corresponding termination reason.
func TestTimeLimitReason(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 2)

	cfg := testConfig(config.Discount)
	cfg.TimeLimit = config.Duration(time.Nanosecond)

	alg := New(cfg, bank)
	defer alg.Close()

	// A growing problem; the budget fires at the loop top first.
	res := alg.Run([]*logic.Clause{
		input(bank.Lit(p, true, bank.Var(0), bank.Var(1))),
		input(bank.Lit(p, false, bank.Var(1), bank.Var(0)),
			bank.Lit(p, true, bank.Var(0), bank.Var(1))),
	})

	assert.Equal(t, ReasonTimeLimit, res.Reason)
}

// Backward subsumption removes a weaker active clause when a stronger
// one is selected.
func TestBackwardSubsumption(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)
	p := sig.AddPred("p", 1)
	q := sig.AddPred("q", 0)
	a := sig.AddFunc("a", 0)

	alg := New(testConfig(config.Discount), bank)
	defer alg.Close()

	// The heavier but older p(a) | q is selected first on the age turn
	// and activated; the younger general unit p(X) is selected next and
	// wipes p(a) | q from active.
	weaker := input(bank.Lit(p, true, bank.Const(a)), bank.Lit(q, true))
	general := logic.NewClause(
		[]*logic.Literal{bank.Lit(p, true, bank.Var(0))}, 2,
		logic.NewInference(logic.RuleInput))

	res := alg.Run([]*logic.Clause{weaker, general})

	assert.Equal(t, ReasonSatisfiable, res.Reason)
	assert.Equal(t, 1, alg.Stats().BwSimplified)
	assert.Equal(t, logic.StoreNone, weaker.Store())
}

// Index refcounts drop to zero when the engines detach.
func TestCloseReleasesIndices(t *testing.T) {
	sig := logic.NewSignature()
	bank := logic.NewBank(sig)

	alg := New(testConfig(config.Discount), bank)
	alg.Close()

	assert.True(t, alg.imgr.Empty())
}
