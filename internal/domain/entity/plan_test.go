package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanEvenSpacing(t *testing.T) {
	// 33s, 10 screenshots: i*33/11 = 3i
	plan, err := NewPlan(33, 10)
	require.NoError(t, err)
	require.Len(t, plan.Timepoints, 10)

	for i, tp := range plan.Timepoints {
		assert.Equal(t, i+1, tp.Index)
		assert.Equal(t, 3*(i+1), tp.Seconds)
	}
}

func TestNewPlanBoundsAndOrdering(t *testing.T) {
	cases := []struct {
		duration float64
		count    int
	}{
		{10, 1},
		{59.94, 5},
		{3600, 100},
		{7.2, 3},
	}

	for _, tc := range cases {
		plan, err := NewPlan(tc.duration, tc.count)
		require.NoError(t, err)
		require.Len(t, plan.Timepoints, tc.count)

		prev := -1
		for _, tp := range plan.Timepoints {
			assert.GreaterOrEqual(t, tp.Seconds, 0)
			assert.Less(t, float64(tp.Seconds), tc.duration)
			assert.GreaterOrEqual(t, tp.Seconds, prev, "timestamps must be non-decreasing")
			prev = tp.Seconds
		}
	}
}

func TestNewPlanRejectsNonPositiveCount(t *testing.T) {
	_, err := NewPlan(100, 0)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = NewPlan(100, -3)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestNewPlanRejectsNonPositiveDuration(t *testing.T) {
	_, err := NewPlan(0, 5)
	assert.True(t, errors.Is(err, ErrUnprocessableMedia))

	_, err = NewPlan(-1, 5)
	assert.True(t, errors.Is(err, ErrUnprocessableMedia))
}

func TestNewPlanShortMediaKeepsDuplicates(t *testing.T) {
	// 5s of media, 10 screenshots: every interval is under a second, so
	// truncation collapses neighbours. Duplicates are kept by contract.
	plan, err := NewPlan(5, 10)
	require.NoError(t, err)
	require.Len(t, plan.Timepoints, 10)

	seen := map[int]int{}
	for _, tp := range plan.Timepoints {
		seen[tp.Seconds]++
	}
	dup := false
	for _, n := range seen {
		if n > 1 {
			dup = true
		}
	}
	assert.True(t, dup, "short media should produce duplicate timestamps")
}
