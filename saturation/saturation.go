// Package saturation runs the given-clause algorithm: it coordinates the
// unprocessed, passive and active clause populations, drives forward and
// backward simplification through the index manager, and performs
// generating inferences over the active set until it derives the empty
// clause, exhausts the passive queue, or runs out of budget.
package saturation

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Danilo-Araujo-Silva/vampire/config"
	"github.com/Danilo-Araujo-Silva/vampire/container"
	"github.com/Danilo-Araujo-Silva/vampire/index"
	"github.com/Danilo-Araujo-Silva/vampire/inference"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/order"
	"github.com/Danilo-Araujo-Silva/vampire/resource"
	"github.com/Danilo-Araujo-Silva/vampire/stats"
)

// Reason is the termination reason of a proof attempt.
type Reason uint8

const (
	// ReasonRefutation means the empty clause was derived.
	ReasonRefutation = Reason(iota)
	// ReasonSatisfiable means the search space was exhausted without
	// losing completeness.
	ReasonSatisfiable
	// ReasonRefutationNotFound means the search space was exhausted
	// after an incomplete strategy discarded clauses.
	ReasonRefutationNotFound
	// ReasonTimeLimit means the time budget ran out.
	ReasonTimeLimit
	// ReasonMemoryLimit means the memory ceiling was hit.
	ReasonMemoryLimit
	// ReasonUnknown means the attempt ended for an unexpected cause.
	ReasonUnknown
)

// String implements the Stringer interface.
func (r Reason) String() string {
	switch r {
	case ReasonRefutation:
		return "refutation"
	case ReasonSatisfiable:
		return "satisfiable"
	case ReasonRefutationNotFound:
		return "refutation not found"
	case ReasonTimeLimit:
		return "time limit"
	case ReasonMemoryLimit:
		return "memory limit"
	}
	return "unknown"
}

// Result is the outcome of a proof attempt.
type Result struct {
	Reason Reason
	// Refutation is the derived empty clause when Reason is
	// ReasonRefutation; its inference graph reaches back to the input.
	Refutation *logic.Clause
}

// strategy is the hook between clause selection and activation; the
// saturation variants differ only here and in their container wiring.
type strategy interface {
	// handleClauseBeforeActivation runs with c in the selected store.
	// Returning false discards c instead of activating it.
	handleClauseBeforeActivation(c *logic.Clause) (bool, error)
}

// Algorithm is the saturation loop. It owns the three clause
// populations and the index manager; engines hold weak references
// through the inference.Context view.
type Algorithm struct {
	cfg *config.Config
	log *logrus.Logger

	bank   *logic.Bank
	ord    order.Ordering
	sel    inference.Selector
	limits *resource.Limits
	stats  *stats.Statistics

	unprocessed *container.Unprocessed
	passive     container.Passive
	active      *container.Active

	simplifying    container.Container
	toBeSimplified container.Container

	imgr *index.Manager

	fwSimplifiers []inference.ForwardSimplifier
	bwSimplifiers []inference.BackwardSimplifier
	generators    []inference.Generator

	strat      strategy
	refutation *logic.Clause

	// LRS bookkeeping: the weight ceiling learnt from selections and
	// whether discarding has made the attempt incomplete.
	lrs               bool
	maxSelectedWeight int
	incomplete        bool
}

// New builds the saturation algorithm for the configured strategy. The
// strategy is fixed for the lifetime of the algorithm.
func New(cfg *config.Config, bank *logic.Bank) *Algorithm {
	a := &Algorithm{
		cfg:         cfg,
		log:         cfg.Logger,
		bank:        bank,
		ord:         order.NewKBO(),
		sel:         inference.TotalSelection,
		limits:      resource.NewLimits(cfg.TimeLimit.Std(), cfg.MemoryLimitMB),
		stats:       &stats.Statistics{},
		unprocessed: container.NewUnprocessed(),
		active:      container.NewActive(),
	}
	a.passive = buildPassive(cfg)

	switch cfg.Strategy {
	case config.Discount, config.LRS:
		a.simplifying = a.active
		a.toBeSimplified = a.active
		a.strat = &discountStrategy{a}
		a.lrs = cfg.Strategy == config.LRS
	case config.Otter:
		fake := container.NewFakeContainer()
		a.wireDerivedSet(fake)
		a.simplifying = fake
		a.toBeSimplified = fake
		a.strat = &otterStrategy{a}
	case config.Discott:
		fake := container.NewFakeContainer()
		a.wireDerivedSet(fake)
		a.simplifying = a.active
		a.toBeSimplified = fake
		a.strat = &discottStrategy{a}
	default:
		panic(errors.Errorf("saturation: unknown strategy %q", cfg.Strategy))
	}

	a.imgr = index.NewManager(a)

	a.fwSimplifiers = []inference.ForwardSimplifier{
		inference.NewForwardDemodulation(a),
		inference.NewForwardSubsumption(a),
		inference.NewForwardSubsumptionDemodulation(a),
		inference.NewGlobalSubsumption(a),
	}
	a.bwSimplifiers = []inference.BackwardSimplifier{
		inference.NewBackwardSubsumption(a),
	}
	a.generators = []inference.Generator{
		inference.NewBinaryResolution(a),
		inference.NewFactoring(a),
		inference.NewEqualityResolution(a),
	}

	return a
}

// wireDerivedSet keeps a fake container tracking the union of active and
// passive: the loop informs it on every add and remove of either set, so
// the indices attached to it stay in sync.
func (a *Algorithm) wireDerivedSet(fake *container.FakeContainer) {
	a.passive.Added().Subscribe(fake.Add)
	a.passive.Removed().Subscribe(fake.Remove)
	a.active.Added().Subscribe(fake.Add)
	a.active.Removed().Subscribe(fake.Remove)
}

// buildPassive builds the configured passive container: a single
// age/weight queue, or a split of such queues by clause age with
// per-queue cutoffs and ratios.
func buildPassive(cfg *config.Config) container.Passive {
	if len(cfg.SplitQueueRatios) == 0 {
		return container.NewAWPassive(cfg.AgeRatio, cfg.WeightRatio)
	}
	queues := make([]container.Passive, len(cfg.SplitQueueRatios))
	for i := range queues {
		queues[i] = container.NewAWPassive(cfg.AgeRatio, cfg.WeightRatio)
	}
	feature := func(c *logic.Clause) float64 {
		return float64(c.Age())
	}
	return container.NewSplitPassive(feature, queues, cfg.SplitQueueCutoffs, cfg.SplitQueueRatios)
}

// Interface views handed to the index manager and the engines.

// GeneratingContainer returns the container generating inferences run
// over.
func (a *Algorithm) GeneratingContainer() container.Container { return a.active }

// SimplifyingContainer returns the container forward simplification runs
// against.
func (a *Algorithm) SimplifyingContainer() container.Container { return a.simplifying }

// ToBeSimplifiedContainer returns the container backward simplification
// runs against.
func (a *Algorithm) ToBeSimplifiedContainer() container.Container { return a.toBeSimplified }

// Ordering returns the simplification ordering.
func (a *Algorithm) Ordering() order.Ordering { return a.ord }

// Bank returns the term bank.
func (a *Algorithm) Bank() *logic.Bank { return a.bank }

// IndexManager returns the index manager.
func (a *Algorithm) IndexManager() *index.Manager { return a.imgr }

// Limits returns the resource budget.
func (a *Algorithm) Limits() *resource.Limits { return a.limits }

// Selection returns the literal selection oracle.
func (a *Algorithm) Selection() inference.Selector { return a.sel }

// Stats returns the run's statistics.
func (a *Algorithm) Stats() *stats.Statistics { return a.stats }

// Close detaches the engines, releasing their index requests.
func (a *Algorithm) Close() {
	for _, e := range a.fwSimplifiers {
		e.Detach()
	}
	for _, e := range a.bwSimplifiers {
		e.Detach()
	}
	for _, e := range a.generators {
		e.Detach()
	}
}

// Run feeds the input clauses into the loop and saturates. Budget
// exhaustion is converted into the corresponding termination reason.
func (a *Algorithm) Run(input []*logic.Clause) *Result {
	for _, c := range input {
		a.stats.InputClauses++
		a.newClause(c)
	}
	res, err := a.saturate()
	if err != nil {
		reason := ReasonUnknown
		switch errors.Cause(err) {
		case resource.ErrTimeLimit:
			reason = ReasonTimeLimit
		case resource.ErrMemoryLimit:
			reason = ReasonMemoryLimit
		}
		a.log.WithField("reason", reason).Info("saturation aborted")

		return &Result{Reason: reason}
	}
	a.log.WithField("reason", res.Reason).Info("saturation finished")

	return res
}

// saturate is the given-clause loop.
func (a *Algorithm) saturate() (*Result, error) {
	for {
		if err := a.limits.Check(); err != nil {
			return nil, err
		}
		for !a.unprocessed.Empty() {
			c := a.unprocessed.Pop()
			if err := a.drain(c); err != nil {
				return nil, err
			}
			if a.refutation != nil {
				return &Result{Reason: ReasonRefutation, Refutation: a.refutation}, nil
			}
		}
		if a.passive.Empty() {
			if a.incomplete {
				return &Result{Reason: ReasonRefutationNotFound}, nil
			}
			return &Result{Reason: ReasonSatisfiable}, nil
		}

		c := a.passive.PopSelected()
		c.SetStore(logic.StoreSelected)
		a.stats.SelectionRounds++
		if c.Weight() > a.maxSelectedWeight {
			a.maxSelectedWeight = c.Weight()
		}
		a.log.WithFields(logrus.Fields{
			"clause": a.bank.ClauseString(c),
			"age":    c.Age(),
			"weight": c.Weight(),
		}).Debug("selected")

		ok, err := a.strat.handleClauseBeforeActivation(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			if c.Store() == logic.StoreSelected {
				c.SetStore(logic.StoreNone)
			}
			continue
		}
		if err := a.activate(c); err != nil {
			return nil, err
		}
	}
}

// newClause sends a freshly derived clause into the unprocessed queue.
func (a *Algorithm) newClause(c *logic.Clause) {
	c.SetStore(logic.StoreUnprocessed)
	a.unprocessed.Add(c)
}

// drain processes one unprocessed clause: refutation check, forward
// simplification against the simplifying container, and retention in
// passive.
func (a *Algorithm) drain(c *logic.Clause) error {
	if c.Empty() {
		c.SetStore(logic.StoreNone)
		a.refutation = c

		return nil
	}
	if a.lrs && a.discardByLimits(c) {
		c.SetStore(logic.StoreNone)
		a.incomplete = true

		return nil
	}
	survived, err := a.forwardSimplify(c)
	if err != nil {
		return err
	}
	if !survived {
		c.SetStore(logic.StoreNone)

		return nil
	}
	c.SetStore(logic.StorePassive)
	a.passive.Add(c)
	a.stats.PassiveAdded++

	return nil
}

// discardByLimits is the limited-resource predicate: once more than half
// of the time budget is spent, clauses heavier than anything selected so
// far are not worth keeping.
func (a *Algorithm) discardByLimits(c *logic.Clause) bool {
	limit := a.limits.TimeLimit()
	if limit == 0 || a.maxSelectedWeight == 0 {
		return false
	}
	if a.limits.Elapsed()*2 < limit {
		return false
	}
	return c.Weight() > a.maxSelectedWeight
}

// forwardSimplify runs the forward simplification engines over c. It
// returns false when c was deleted or replaced; a replacement has
// already been sent to unprocessed.
func (a *Algorithm) forwardSimplify(c *logic.Clause) (bool, error) {
	for _, e := range a.fwSimplifiers {
		repl, done, err := e.Simplify(c)
		if err != nil {
			return false, err
		}
		if !done {
			continue
		}
		if repl != nil {
			a.stats.FwSimplified++
			a.newClause(repl)
		} else {
			a.stats.FwSubsumed++
		}
		return false, nil
	}
	return true, nil
}

// backwardSimplify uses c to discard or replace clauses of the
// to-be-simplified container. Victims leave their containers with their
// events firing; replacements go to unprocessed.
func (a *Algorithm) backwardSimplify(c *logic.Clause) error {
	for _, e := range a.bwSimplifiers {
		recs, err := e.SimplifyCandidates(c)
		if err != nil {
			return err
		}
		for _, r := range recs {
			switch r.Victim.Store() {
			case logic.StorePassive:
				a.passive.Remove(r.Victim)
			case logic.StoreActive:
				a.active.Remove(r.Victim)
			default:
				continue
			}
			r.Victim.SetStore(logic.StoreNone)
			a.stats.BwSimplified++
			if r.Replacement != nil {
				a.newClause(r.Replacement)
			}
		}
	}
	return nil
}

// activate moves c into the active set and runs the generating
// inferences over it.
func (a *Algorithm) activate(c *logic.Clause) error {
	c.SetStore(logic.StoreActive)
	a.active.Add(c)
	a.stats.ActivatedClauses++

	for _, g := range a.generators {
		concls, err := g.Generate(c)
		if err != nil {
			return err
		}
		for _, gc := range concls {
			a.stats.GeneratedClauses++
			a.newClause(gc)
		}
	}
	return nil
}
