package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
)

// resolveOverlappingBlocks flattens possibly-overlapping rated intervals
// into non-overlapping work blocks. The day is scanned minute by minute;
// each contested minute goes to the interval with the highest role
// priority, then the highest rate, then whichever was found first.
// Contiguous minutes won by the same role merge into one block.
func (s *PayrollServiceImpl) resolveOverlappingBlocks(intersections []ratedInterval, st staff.Staff) []payroll.WorkBlock {
	if len(intersections) == 0 {
		return []payroll.WorkBlock{}
	}

	sort.Slice(intersections, func(i, j int) bool {
		return intersections[i].interval.Start.Before(intersections[j].interval.Start)
	})

	overallStart := intersections[0].interval.Start
	overallEnd := intersections[0].interval.End
	for _, in := range intersections[1:] {
		if in.interval.End.After(overallEnd) {
			overallEnd = in.interval.End
		}
	}

	blocks := []payroll.WorkBlock{}
	processedUntil := overallStart

	for minute := overallStart; minute.Before(overallEnd); minute = minute.Add(time.Minute) {
		best := s.bestForMinute(intersections, minute, st)
		if best == nil {
			continue
		}

		// Extend the previous block only when this minute follows on from
		// it directly; a gap starts a fresh block even for the same role.
		contiguous := !minute.After(processedUntil)
		if len(blocks) > 0 && blocks[len(blocks)-1].Type == best.roleKey && contiguous {
			blocks[len(blocks)-1].Duration++
		} else {
			blocks = append(blocks, payroll.WorkBlock{
				Type:     best.roleKey,
				Duration: 1,
				Pay:      decimal.Zero,
			})
		}

		next := minute.Add(time.Minute)
		if next.After(processedUntil) {
			processedUntil = next
		}
	}

	return blocks
}

func (s *PayrollServiceImpl) bestForMinute(intersections []ratedInterval, minute time.Time, st staff.Staff) *ratedInterval {
	var best *ratedInterval
	for i := range intersections {
		candidate := &intersections[i]
		if !candidate.interval.Contains(minute) {
			continue
		}
		if best == nil {
			best = candidate
			continue
		}
		if candidate.priority != best.priority {
			if candidate.priority > best.priority {
				best = candidate
			}
			continue
		}
		if candidateRate, bestRate := st.Rates[candidate.roleKey], st.Rates[best.roleKey]; candidateRate.GreaterThan(bestRate) {
			best = candidate
		}
	}
	return best
}
