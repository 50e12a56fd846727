package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, Discount, cfg.Strategy)
	assert.Equal(t, 1, cfg.AgeRatio)
	assert.Equal(t, 1, cfg.WeightRatio)
	assert.NotNil(t, cfg.Logger)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prover.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
strategy: otter
ageRatio: 1
weightRatio: 4
timeLimit: 30s
logLevel: debug
`), 0o644))

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, Otter, cfg.Strategy)
	assert.Equal(t, 4, cfg.WeightRatio)
	assert.Equal(t, Duration(30*time.Second), cfg.TimeLimit)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := New()
	cfg.Strategy = "zigzag"
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.AgeRatio = 0
	cfg.WeightRatio = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.SplitQueueRatios = []int{1}
	assert.Error(t, cfg.Validate())
}
