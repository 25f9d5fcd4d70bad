package payroll

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
	"github.com/edulab-vn/center-backend-go/internal/pkg/timeutil"
)

func newResolver(t *testing.T) (*PayrollServiceImpl, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	svc, err := NewPayrollService(nil, nil, nil, nil, testConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc.(*PayrollServiceImpl), loc
}

func rated(loc *time.Location, startClock, endClock, roleKey string, priority int) ratedInterval {
	start, _ := timeutil.AtClock("2025-03-10", startClock, loc)
	end, _ := timeutil.AtClock("2025-03-10", endClock, loc)
	return ratedInterval{
		interval: timeutil.NewInterval(start, end),
		roleKey:  roleKey,
		priority: priority,
	}
}

func TestResolveOverlappingBlocksEmpty(t *testing.T) {
	svc, _ := newResolver(t)
	blocks := svc.resolveOverlappingBlocks(nil, staff.Staff{})
	assert.Empty(t, blocks)
}

func TestResolveOverlappingBlocksMergesContiguous(t *testing.T) {
	svc, loc := newResolver(t)

	blocks := svc.resolveOverlappingBlocks([]ratedInterval{
		rated(loc, "09:00", "10:00", "part-time", 1),
		rated(loc, "10:00", "11:00", "part-time", 1),
	}, staff.Staff{})

	require.Len(t, blocks, 1)
	assert.Equal(t, "part-time", blocks[0].Type)
	assert.Equal(t, 120, blocks[0].Duration)
}

func TestResolveOverlappingBlocksGapSplits(t *testing.T) {
	svc, loc := newResolver(t)

	blocks := svc.resolveOverlappingBlocks([]ratedInterval{
		rated(loc, "09:00", "10:00", "part-time", 1),
		rated(loc, "11:00", "12:00", "part-time", 1),
	}, staff.Staff{})

	require.Len(t, blocks, 2)
	assert.Equal(t, 60, blocks[0].Duration)
	assert.Equal(t, 60, blocks[1].Duration)
}

func TestResolveOverlappingBlocksPriorityWins(t *testing.T) {
	svc, loc := newResolver(t)

	blocks := svc.resolveOverlappingBlocks([]ratedInterval{
		rated(loc, "09:00", "12:00", "part-time", 1),
		rated(loc, "10:00", "11:00", "teacher", 3),
	}, staff.Staff{})

	require.Len(t, blocks, 3)
	assert.Equal(t, "part-time", blocks[0].Type)
	assert.Equal(t, 60, blocks[0].Duration)
	assert.Equal(t, "teacher", blocks[1].Type)
	assert.Equal(t, 60, blocks[1].Duration)
	assert.Equal(t, "part-time", blocks[2].Type)
	assert.Equal(t, 60, blocks[2].Duration)
}

// Equal priority falls back to the higher rate; equal rate keeps the first
// interval found.
func TestResolveOverlappingBlocksRateTieBreak(t *testing.T) {
	svc, loc := newResolver(t)

	st := staff.Staff{Rates: map[string]decimal.Decimal{
		"senior-ta": decimal.NewFromInt(70000),
		"junior-ta": decimal.NewFromInt(50000),
	}}

	blocks := svc.resolveOverlappingBlocks([]ratedInterval{
		rated(loc, "09:00", "11:00", "junior-ta", 2),
		rated(loc, "09:00", "11:00", "senior-ta", 2),
	}, st)

	require.Len(t, blocks, 1)
	assert.Equal(t, "senior-ta", blocks[0].Type)
	assert.Equal(t, 120, blocks[0].Duration)
}

func TestResolveOverlappingBlocksFirstFoundOnFullTie(t *testing.T) {
	svc, loc := newResolver(t)

	st := staff.Staff{Rates: map[string]decimal.Decimal{
		"role-a": decimal.NewFromInt(50000),
		"role-b": decimal.NewFromInt(50000),
	}}

	blocks := svc.resolveOverlappingBlocks([]ratedInterval{
		rated(loc, "09:00", "10:00", "role-a", 2),
		rated(loc, "09:00", "10:00", "role-b", 2),
	}, st)

	require.Len(t, blocks, 1)
	assert.Equal(t, "role-a", blocks[0].Type)
}
