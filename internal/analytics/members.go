package analytics

import (
	"sort"
	"time"

	"github.com/citanz/dashboard/backend/internal/domain"
)

// KeyMetrics counts all members, active members and members who signed up in
// the current month, all against one captured instant.
func (e *Engine) KeyMetrics(members []domain.MemberRecord) domain.KeyMetrics {
	return e.KeyMetricsAt(members, e.Now())
}

// KeyMetricsAt is KeyMetrics evaluated at now.
func (e *Engine) KeyMetricsAt(members []domain.MemberRecord, now time.Time) domain.KeyMetrics {
	current := e.month(now)
	km := domain.KeyMetrics{Total: len(members)}
	for _, m := range members {
		if m.ExpiresAt != nil && m.ExpiresAt.After(now) {
			km.Active++
		}
		if m.SignedUpAt != nil && e.month(*m.SignedUpAt) == current {
			km.NewThisMonth++
		}
	}
	return km
}

// MembershipStatus splits members with a known expiry into active and expired.
// Members without an expiry are not counted.
func (e *Engine) MembershipStatus(members []domain.MemberRecord) domain.MembershipStatus {
	return e.MembershipStatusAt(members, e.Now())
}

// MembershipStatusAt is MembershipStatus evaluated at now.
func (e *Engine) MembershipStatusAt(members []domain.MemberRecord, now time.Time) domain.MembershipStatus {
	var st domain.MembershipStatus
	for _, m := range members {
		if m.ExpiresAt == nil {
			continue
		}
		if m.ExpiresAt.After(now) {
			st.Active++
		} else {
			st.Expired++
		}
	}
	return st
}

// RenewalFunnel puts every member in exactly one of Renewed (a last payment is
// recorded) or Not Renewed.
func (e *Engine) RenewalFunnel(members []domain.MemberRecord) domain.RenewalFunnel {
	var f domain.RenewalFunnel
	for _, m := range members {
		if m.LastPaidAt != nil {
			f.Renewed++
		} else {
			f.NotRenewed++
		}
	}
	return f
}

// ActivityHeatmap counts last logins per weekday (Monday = 0) and hour. The
// result always has 7*24 cells, day-major, zero-filled.
func (e *Engine) ActivityHeatmap(members []domain.MemberRecord) []domain.HeatmapCell {
	var grid [7][24]int
	for _, m := range members {
		if m.LastLoginAt == nil {
			continue
		}
		t := m.LastLoginAt.In(e.loc)
		day := (int(t.Weekday()) + 6) % 7
		grid[day][t.Hour()]++
	}

	cells := make([]domain.HeatmapCell, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			cells = append(cells, domain.HeatmapCell{Day: day, Hour: hour, Count: grid[day][hour]})
		}
	}
	return cells
}

// NewMembers counts sign-ups per month, chronologically, omitting empty months.
func (e *Engine) NewMembers(members []domain.MemberRecord) []domain.MonthCount {
	counts := make(map[string]int)
	for _, m := range members {
		if m.SignedUpAt == nil {
			continue
		}
		counts[e.month(*m.SignedUpAt)]++
	}

	out := make([]domain.MonthCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, domain.MonthCount{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
