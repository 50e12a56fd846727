// Package config carries the options of a proof attempt: the saturation
// strategy, the clause selection heuristic, resource limits and logging.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parsing duration %q", s)
	}
	*d = Duration(parsed)

	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Strategy names a saturation algorithm variant.
type Strategy string

const (
	// Discount simplifies against the active clauses only.
	Discount = Strategy("discount")
	// Otter simplifies against active and passive clauses.
	Otter = Strategy("otter")
	// Discott forward-simplifies against active clauses but
	// backward-simplifies active and passive.
	Discott = Strategy("discott")
	// LRS is Discount with resource-aware passive limits.
	LRS = Strategy("lrs")
)

// Config is the configuration of a proof attempt.
type Config struct {
	Logger *logrus.Logger `yaml:"-"`

	Strategy Strategy `yaml:"strategy"`
	// AgeRatio and WeightRatio steer clause selection: out of
	// AgeRatio+WeightRatio selections, AgeRatio come from the age
	// ordering.
	AgeRatio    int `yaml:"ageRatio"`
	WeightRatio int `yaml:"weightRatio"`

	// SplitQueueRatios and SplitQueueCutoffs, when non-empty, split the
	// passive queue into sub-queues served proportionally.
	SplitQueueRatios  []int     `yaml:"splitQueueRatios"`
	SplitQueueCutoffs []float64 `yaml:"splitQueueCutoffs"`

	TimeLimit     Duration `yaml:"timeLimit"`
	MemoryLimitMB uint64   `yaml:"memoryLimitMB"`

	LogLevel string `yaml:"logLevel"`
}

// New returns the default configuration: Discount with a 1:1 age:weight
// ratio and no resource limits.
func New() *Config {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)

	return &Config{
		Logger:      logger,
		Strategy:    Discount,
		AgeRatio:    1,
		WeightRatio: 1,
	}
}

// LoadFile overlays the configuration with a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return c.finish()
}

// finish validates the configuration and applies the log level.
func (c *Config) finish() error {
	switch c.Strategy {
	case Discount, Otter, Discott, LRS:
	default:
		return errors.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.AgeRatio < 0 || c.WeightRatio < 0 || c.AgeRatio+c.WeightRatio == 0 {
		return errors.Errorf("invalid age:weight ratio %d:%d", c.AgeRatio, c.WeightRatio)
	}
	if len(c.SplitQueueRatios) != len(c.SplitQueueCutoffs) {
		return errors.New("split queue ratios and cutoffs differ in length")
	}
	if c.LogLevel != "" {
		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			return errors.Wrap(err, "parsing log level")
		}
		c.Logger.SetLevel(level)
	}
	return nil
}

// Validate checks the configuration without loading anything.
func (c *Config) Validate() error {
	return c.finish()
}
