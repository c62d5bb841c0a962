package analytics

import (
	"time"

	"github.com/citanz/dashboard/backend/internal/domain"
)

// Snapshot computes every view against a single captured instant.
func (e *Engine) Snapshot(members []domain.MemberRecord, payments []domain.PaymentRecord) domain.Snapshot {
	return e.SnapshotAt(members, payments, e.Now())
}

// SnapshotAt is Snapshot evaluated at now.
func (e *Engine) SnapshotAt(members []domain.MemberRecord, payments []domain.PaymentRecord, now time.Time) domain.Snapshot {
	return domain.Snapshot{
		GeneratedAt:         now,
		KeyMetrics:          e.KeyMetricsAt(members, now),
		RegionDistribution:  e.RegionDistribution(members),
		MembershipStatus:    e.MembershipStatusAt(members, now),
		PaymentDistribution: e.PaymentDistribution(payments),
		RenewalFunnel:       e.RenewalFunnel(members),
		IncomeTrend:         e.IncomeTrend(payments),
		ActivityHeatmap:     e.ActivityHeatmap(members),
		GeoDistribution:     e.GeoDistribution(members),
		CityMap:             e.CityMap(members),
		NewMembers:          e.NewMembers(members),
	}
}
