package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citanz/dashboard/backend/internal/domain"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	e := New(Options{})
	e.WithClock(func() time.Time { return fixedNow })
	return e
}

func ts(year int, month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func sampleMembers() []domain.MemberRecord {
	return []domain.MemberRecord{
		{ID: "CITANZ-1", Region: "Auckland", City: "Auckland CBD", ExpiresAt: ts(2025, 1, 1, 0, 0), SignedUpAt: ts(2024, 6, 2, 9, 0), LastPaidAt: ts(2024, 6, 2, 9, 5), LastLoginAt: ts(2024, 6, 10, 9, 30)},
		{ID: "CITANZ-2", Region: "奥克兰", City: "North Shore", ExpiresAt: ts(2024, 1, 1, 0, 0), SignedUpAt: ts(2023, 12, 5, 14, 0), LastLoginAt: ts(2024, 6, 10, 9, 59)},
		{ID: "CITANZ-3", Region: "Waikato", City: "Hamilton West", SignedUpAt: ts(2024, 6, 30, 23, 0), LastPaidAt: ts(2024, 5, 1, 8, 0), LastLoginAt: ts(2024, 6, 16, 0, 5)},
		{ID: "CITANZ-4", Region: "", City: "", ExpiresAt: ts(2024, 6, 15, 12, 0)},
		{ID: "CITANZ-5", Region: "auckland", City: "Auckland CBD", ExpiresAt: ts(2030, 1, 1, 0, 0), SignedUpAt: ts(2023, 12, 20, 10, 0)},
		{ID: "CITANZ-6", Region: "Wellington", City: "Atlantis"},
	}
}

func TestKeyMetrics(t *testing.T) {
	km := newTestEngine().KeyMetrics(sampleMembers())

	assert.Equal(t, domain.KeyMetrics{Total: 6, Active: 2, NewThisMonth: 2}, km)
}

func TestKeyMetricsEmpty(t *testing.T) {
	assert.Equal(t, domain.KeyMetrics{}, newTestEngine().KeyMetrics(nil))
}

func TestKeyMetricsCapturesClockOnce(t *testing.T) {
	e := New(Options{})
	calls := 0
	e.WithClock(func() time.Time {
		calls++
		return fixedNow
	})

	e.KeyMetrics(sampleMembers())
	assert.Equal(t, 1, calls)

	calls = 0
	e.Snapshot(sampleMembers(), nil)
	assert.Equal(t, 1, calls)
}

func TestMembershipStatus(t *testing.T) {
	members := sampleMembers()
	st := newTestEngine().MembershipStatus(members)

	assert.Equal(t, domain.MembershipStatus{Active: 2, Expired: 2}, st)

	withExpiry := 0
	for _, m := range members {
		if m.ExpiresAt != nil {
			withExpiry++
		}
	}
	assert.Equal(t, withExpiry, st.Active+st.Expired)
}

func TestMembershipStatusExpiryEqualToNowIsExpired(t *testing.T) {
	st := newTestEngine().MembershipStatusAt([]domain.MemberRecord{{ExpiresAt: ts(2024, 6, 15, 12, 0)}}, fixedNow)
	assert.Equal(t, domain.MembershipStatus{Expired: 1}, st)
}

func TestRenewalFunnel(t *testing.T) {
	members := sampleMembers()
	f := newTestEngine().RenewalFunnel(members)

	assert.Equal(t, domain.RenewalFunnel{Renewed: 2, NotRenewed: 4}, f)
	assert.Equal(t, len(members), f.Renewed+f.NotRenewed)
}

func TestActivityHeatmap(t *testing.T) {
	cells := newTestEngine().ActivityHeatmap(sampleMembers())
	require.Len(t, cells, 168)

	// 2024-06-10 is a Monday, 2024-06-16 a Sunday.
	assert.Equal(t, domain.HeatmapCell{Day: 0, Hour: 9, Count: 2}, cells[9])
	assert.Equal(t, domain.HeatmapCell{Day: 6, Hour: 0, Count: 1}, cells[6*24])

	total := 0
	for i, c := range cells {
		assert.Equal(t, i/24, c.Day)
		assert.Equal(t, i%24, c.Hour)
		total += c.Count
	}
	assert.Equal(t, 3, total)
}

func TestActivityHeatmapEmptyIsDense(t *testing.T) {
	cells := newTestEngine().ActivityHeatmap(nil)
	require.Len(t, cells, 168)
	for _, c := range cells {
		assert.Zero(t, c.Count)
	}
}

func TestActivityHeatmapUsesLocation(t *testing.T) {
	e := New(Options{Location: time.FixedZone("NZST", 12*3600)})
	// Sunday 23:00 UTC is Monday 11:00 in UTC+12.
	cells := e.ActivityHeatmap([]domain.MemberRecord{{LastLoginAt: ts(2024, 6, 16, 23, 0)}})
	assert.Equal(t, 1, cells[0*24+11].Count)
}

func TestNewMembers(t *testing.T) {
	got := newTestEngine().NewMembers(sampleMembers())

	assert.Equal(t, []domain.MonthCount{
		{Month: "2023-12", Count: 2},
		{Month: "2024-06", Count: 2},
	}, got)
}

func TestNewMembersEmpty(t *testing.T) {
	got := newTestEngine().NewMembers(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
