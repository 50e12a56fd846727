package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Danilo-Araujo-Silva/vampire/config"
	"github.com/Danilo-Araujo-Silva/vampire/encoding"
	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/saturation"
)

var (
	flagConfig      string
	flagStrategy    string
	flagRatio       string
	flagTimeLimit   time.Duration
	flagMemoryMB    uint64
	flagLogLevel    string
	flagProof       bool
	flagStats       bool
	flagMetricsAddr string
)

func main() {
	cmd := &cobra.Command{
		Use:          "vampire [problem file]",
		Short:        "Saturation-based first-order theorem prover",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	cmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "saturation strategy (discount, otter, discott, lrs)")
	cmd.Flags().StringVar(&flagRatio, "age-weight-ratio", "", "clause selection ratio, e.g. 1:4")
	cmd.Flags().DurationVarP(&flagTimeLimit, "time-limit", "t", 0, "time budget, e.g. 60s")
	cmd.Flags().Uint64VarP(&flagMemoryMB, "memory-limit", "m", 0, "memory ceiling in MB")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&flagProof, "proof", "p", false, "print the refutation")
	cmd.Flags().BoolVar(&flagStats, "stats", true, "print statistics")
	cmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :8081")

	if err := cmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(path string) error {
	cfg := config.New()
	if flagConfig != "" {
		if err := cfg.LoadFile(flagConfig); err != nil {
			return err
		}
	}
	if flagStrategy != "" {
		cfg.Strategy = config.Strategy(flagStrategy)
	}
	if flagRatio != "" {
		age, weight, err := parseRatio(flagRatio)
		if err != nil {
			return err
		}
		cfg.AgeRatio, cfg.WeightRatio = age, weight
	}
	if flagTimeLimit > 0 {
		cfg.TimeLimit = config.Duration(flagTimeLimit)
	}
	if flagMemoryMB > 0 {
		cfg.MemoryLimitMB = flagMemoryMB
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	problem, err := encoding.ParseProblem(f)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	cfg.Logger.WithField("clauses", len(problem.Clauses)).Info("problem read")

	alg := saturation.New(cfg, problem.Bank)
	defer alg.Close()

	if flagMetricsAddr != "" {
		serveMetrics(cfg, alg, flagMetricsAddr)
	}

	tStart := time.Now()
	res := alg.Run(problem.Clauses)
	elapsed := time.Since(tStart)

	fmt.Printf("%% Termination reason: %s\n", res.Reason)
	if flagProof && res.Refutation != nil {
		printProof(problem.Bank, res.Refutation)
	}
	if flagStats {
		displayStats(alg, elapsed)
	}

	switch res.Reason {
	case saturation.ReasonRefutation, saturation.ReasonSatisfiable:
		return nil
	}
	os.Exit(1)

	return nil
}

func parseRatio(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("invalid ratio %q", s)
	}
	age, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid ratio %q", s)
	}
	weight, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid ratio %q", s)
	}
	return age, weight, nil
}

// printProof walks the inference graph premises-first, numbering every
// clause once.
func printProof(bank *logic.Bank, refutation *logic.Clause) {
	numbers := map[*logic.Clause]int{}

	var walk func(c *logic.Clause) int
	walk = func(c *logic.Clause) int {
		if n, ok := numbers[c]; ok {
			return n
		}
		inf := c.Inference()
		premises := make([]int, 0, len(inf.Premises()))
		for _, p := range inf.Premises() {
			premises = append(premises, walk(p))
		}
		n := len(numbers) + 1
		numbers[c] = n

		refs := make([]string, len(premises))
		for i, p := range premises {
			refs[i] = strconv.Itoa(p)
		}
		from := inf.Rule().String()
		if len(refs) > 0 {
			from += " " + strings.Join(refs, ",")
		}
		fmt.Printf("%d. %s  [%s]\n", n, bank.ClauseString(c), from)

		return n
	}
	walk(refutation)
}

// serveMetrics exposes the run's statistics as Prometheus gauges on
// /metrics so long-running attempts can be scraped while they search.
func serveMetrics(cfg *config.Config, alg *saturation.Algorithm, addr string) {
	registry := prometheus.NewRegistry()
	alg.Stats().Register(registry)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(addr, metricsMux); err != nil {
			cfg.Logger.WithError(err).Error("metrics serving failed")
		}
	}()
	cfg.Logger.WithField("addr", addr).Info("serving metrics")
}

func displayStats(alg *saturation.Algorithm, t time.Duration) {
	s := alg.Stats()

	fmt.Fprint(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Time Taken:      %fs\n", t.Seconds())
	fmt.Fprintf(os.Stderr, "Input:           %d\n", s.InputClauses)
	fmt.Fprintf(os.Stderr, "Generated:       %d\n", s.GeneratedClauses)
	fmt.Fprintf(os.Stderr, "Activated:       %d\n", s.ActivatedClauses)
	fmt.Fprintf(os.Stderr, "Passive Added:   %d\n", s.PassiveAdded)
	fmt.Fprintf(os.Stderr, "Fw Subsumed:     %d\n", s.FwSubsumed)
	fmt.Fprintf(os.Stderr, "Fw Simplified:   %d\n", s.FwSimplified)
	fmt.Fprintf(os.Stderr, "Bw Simplified:   %d\n", s.BwSimplified)
	fmt.Fprintf(os.Stderr, "Selections:      %d\n", s.SelectionRounds)
	fmt.Fprint(os.Stderr, "\n")
}
