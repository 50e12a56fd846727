// Package stats collects the counters of one proof attempt and can
// expose them as Prometheus gauges for callers that scrape.
package stats

import "github.com/prometheus/client_golang/prometheus"

// Statistics keeps the counters of one saturation run.
type Statistics struct {
	// InputClauses counts the clauses fed into the loop.
	InputClauses int
	// GeneratedClauses counts the conclusions of generating inferences.
	GeneratedClauses int
	// ActivatedClauses counts successful activations.
	ActivatedClauses int
	// PassiveAdded counts clauses that survived forward simplification.
	PassiveAdded int
	// FwSubsumed counts deletions by forward subsumption.
	FwSubsumed int
	// FwSimplified counts replacements by forward simplification.
	FwSimplified int
	// BwSimplified counts removals by backward simplification.
	BwSimplified int
	// SelectionRounds counts given-clause selections.
	SelectionRounds int
}

// Register installs the counters as gauges on the given registerer.
func (s *Statistics) Register(r prometheus.Registerer) {
	gauge := func(name, help string, v *int) {
		r.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "vampire",
			Subsystem: "saturation",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(*v) }))
	}
	gauge("input_clauses", "Clauses fed into the loop.", &s.InputClauses)
	gauge("generated_clauses", "Conclusions of generating inferences.", &s.GeneratedClauses)
	gauge("activated_clauses", "Successful activations.", &s.ActivatedClauses)
	gauge("passive_added", "Clauses that survived forward simplification.", &s.PassiveAdded)
	gauge("fw_subsumed", "Deletions by forward simplification.", &s.FwSubsumed)
	gauge("fw_simplified", "Replacements by forward simplification.", &s.FwSimplified)
	gauge("bw_simplified", "Removals by backward simplification.", &s.BwSimplified)
	gauge("selection_rounds", "Given-clause selections.", &s.SelectionRounds)
}
