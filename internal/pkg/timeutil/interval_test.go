package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	return loc
}

func TestAtClock(t *testing.T) {
	loc := mustLocation(t)

	got, err := AtClock("2025-03-10", "14:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 0, 0, 0, loc), got)

	got, err = AtClock("2025-03-10", "08:30:15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 30, 15, 0, loc), got)

	_, err = AtClock("2025-03-10", "25:00", loc)
	assert.Error(t, err)

	_, err = AtClock("not-a-date", "14:00", loc)
	assert.Error(t, err)
}

func TestIntervalIntersect(t *testing.T) {
	loc := mustLocation(t)
	iv := func(start, end string) Interval {
		a, err := AtClock("2025-03-10", start, loc)
		require.NoError(t, err)
		b, err := AtClock("2025-03-10", end, loc)
		require.NoError(t, err)
		return NewInterval(a, b)
	}

	got, ok := iv("09:00", "12:00").Intersect(iv("10:00", "14:00"))
	require.True(t, ok)
	assert.Equal(t, iv("10:00", "12:00"), got)

	// Touching intervals do not overlap.
	_, ok = iv("09:00", "10:00").Intersect(iv("10:00", "11:00"))
	assert.False(t, ok)

	_, ok = iv("09:00", "10:00").Intersect(iv("11:00", "12:00"))
	assert.False(t, ok)
}

func TestIntervalSubtract(t *testing.T) {
	loc := mustLocation(t)
	iv := func(start, end string) Interval {
		a, _ := AtClock("2025-03-10", start, loc)
		b, _ := AtClock("2025-03-10", end, loc)
		return NewInterval(a, b)
	}

	// Lunch window fully inside the worked interval splits it in two.
	parts := iv("09:00", "15:00").Subtract(iv("11:45", "13:15"))
	require.Len(t, parts, 2)
	assert.Equal(t, iv("09:00", "11:45"), parts[0])
	assert.Equal(t, iv("13:15", "15:00"), parts[1])

	// Disjoint subtrahend leaves the interval untouched.
	parts = iv("09:00", "11:00").Subtract(iv("11:45", "13:15"))
	require.Len(t, parts, 1)
	assert.Equal(t, iv("09:00", "11:00"), parts[0])

	// Overlap on one edge trims a single side.
	parts = iv("11:00", "14:00").Subtract(iv("10:00", "12:00"))
	require.Len(t, parts, 1)
	assert.Equal(t, iv("12:00", "14:00"), parts[0])

	// Subtrahend covering everything leaves nothing.
	parts = iv("12:00", "13:00").Subtract(iv("11:45", "13:15"))
	assert.Empty(t, parts)
}

func TestIntervalContains(t *testing.T) {
	loc := mustLocation(t)
	start, _ := AtClock("2025-03-10", "09:00", loc)
	end, _ := AtClock("2025-03-10", "10:00", loc)
	iv := NewInterval(start, end)

	assert.True(t, iv.Contains(start))
	assert.True(t, iv.Contains(start.Add(30*time.Minute)))
	assert.False(t, iv.Contains(end), "half-open: end is excluded")
	assert.False(t, iv.Contains(start.Add(-time.Minute)))
}
