// Package resource enforces the time and memory budget of a proof
// attempt. Checks are cooperative: the saturation loop polls at the top
// of each iteration and the matcher polls every few ten thousand inner
// iterations.
package resource

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// ErrTimeLimit is returned when the time budget is exhausted.
var ErrTimeLimit = errors.New("time limit exceeded")

// ErrMemoryLimit is returned when the memory ceiling is exceeded.
var ErrMemoryLimit = errors.New("memory limit exceeded")

// Limits is the resource budget of one proof attempt. A zero value means
// no limit for the respective resource.
type Limits struct {
	start       time.Time
	timeLimit   time.Duration
	memoryLimit uint64

	// memCheckCtr counts down to the next memory poll; reading runtime
	// stats on every call would dominate the loop.
	memCheckCtr int
}

// NewLimits returns a budget starting now. timeLimit and memoryLimitMB
// of zero disable the respective check.
func NewLimits(timeLimit time.Duration, memoryLimitMB uint64) *Limits {
	return &Limits{
		start:       time.Now(),
		timeLimit:   timeLimit,
		memoryLimit: memoryLimitMB * 1024 * 1024,
	}
}

// TimeLimit returns the configured time budget, zero when unlimited.
func (l *Limits) TimeLimit() time.Duration {
	return l.timeLimit
}

// Elapsed returns the time spent since the budget was started.
func (l *Limits) Elapsed() time.Duration {
	return time.Since(l.start)
}

// TimeLimitReached reports whether the time budget is exhausted.
func (l *Limits) TimeLimitReached() bool {
	return l.timeLimit > 0 && time.Since(l.start) >= l.timeLimit
}

// Check polls the budget and returns ErrTimeLimit or ErrMemoryLimit when
// a limit has been reached, nil otherwise.
func (l *Limits) Check() error {
	if l == nil {
		return nil
	}
	if l.TimeLimitReached() {
		return ErrTimeLimit
	}
	if l.memoryLimit > 0 {
		l.memCheckCtr--
		if l.memCheckCtr <= 0 {
			l.memCheckCtr = 64

			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			if ms.HeapAlloc > l.memoryLimit {
				return ErrMemoryLimit
			}
		}
	}
	return nil
}

// IsBudgetError reports whether err is one of the budget errors,
// unwrapping any context added along the way.
func IsBudgetError(err error) bool {
	cause := errors.Cause(err)

	return cause == ErrTimeLimit || cause == ErrMemoryLimit
}
