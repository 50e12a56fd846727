package resource

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNoLimits(t *testing.T) {
	l := NewLimits(0, 0)

	assert.False(t, l.TimeLimitReached())
	assert.NoError(t, l.Check())
}

func TestTimeLimit(t *testing.T) {
	l := NewLimits(time.Nanosecond, 0)
	time.Sleep(time.Millisecond)

	assert.True(t, l.TimeLimitReached())
	assert.Equal(t, ErrTimeLimit, l.Check())
}

func TestNilLimitsCheck(t *testing.T) {
	var l *Limits

	assert.NoError(t, l.Check())
}

func TestIsBudgetError(t *testing.T) {
	assert.True(t, IsBudgetError(ErrTimeLimit))
	assert.True(t, IsBudgetError(ErrMemoryLimit))
	assert.True(t, IsBudgetError(errors.Wrap(ErrTimeLimit, "matching")))
	assert.False(t, IsBudgetError(errors.New("other")))
}
