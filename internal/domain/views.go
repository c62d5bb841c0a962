package domain

import (
	"errors"
	"fmt"
	"time"
)

// KeyMetrics holds the headline counters of the dashboard.
type KeyMetrics struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	NewThisMonth int `json:"new_this_month"`
}

// MembershipStatus splits members with a known expiry into active and expired.
type MembershipStatus struct {
	Active  int `json:"Active"`
	Expired int `json:"Expired"`
}

// RenewalFunnel splits all members on whether a payment was ever recorded.
type RenewalFunnel struct {
	Renewed    int `json:"Renewed"`
	NotRenewed int `json:"Not Renewed"`
}

// AmountCount counts payments of one exact amount.
type AmountCount struct {
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// MonthAmount is the summed payment amount of one calendar month (YYYY-MM).
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// MonthCount is the number of events in one calendar month (YYYY-MM).
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// HeatmapCell counts logins on one weekday (Monday = 0) and hour.
type HeatmapCell struct {
	Day   int `json:"day"`
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// NameCount is a labelled count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RegionDistribution separates the configured main regions from the rest.
type RegionDistribution struct {
	Main  []NameCount `json:"main"`
	Other []NameCount `json:"other"`
}

// RegionNode is a region with its city breakdown.
type RegionNode struct {
	Name     string      `json:"name"`
	Count    int         `json:"count"`
	Children []NameCount `json:"children"`
}

// CityPoint is a gazetteer place with the number of members matched to it.
type CityPoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
}

// Snapshot bundles every view computed against the same instant.
type Snapshot struct {
	GeneratedAt         time.Time          `json:"generated_at"`
	KeyMetrics          KeyMetrics         `json:"key_metrics"`
	RegionDistribution  RegionDistribution `json:"region_distribution"`
	MembershipStatus    MembershipStatus   `json:"membership_status"`
	PaymentDistribution []AmountCount      `json:"payment_distribution"`
	RenewalFunnel       RenewalFunnel      `json:"renewal_funnel"`
	IncomeTrend         []MonthAmount      `json:"income_trend"`
	ActivityHeatmap     []HeatmapCell      `json:"activity_heatmap"`
	GeoDistribution     []RegionNode       `json:"geo_distribution"`
	CityMap             []CityPoint        `json:"city_map"`
	NewMembers          []MonthCount       `json:"new_members"`
}

// View names, as used by the HTTP routes and exports.
const (
	ViewKeyMetrics          = "key_metrics"
	ViewRegionDistribution  = "region_distribution"
	ViewMembershipStatus    = "membership_status"
	ViewPaymentDistribution = "payment_distribution"
	ViewRenewalFunnel       = "renewal_funnel"
	ViewIncomeTrend         = "income_trend"
	ViewActivityHeatmap     = "activity_heatmap"
	ViewGeoDistribution     = "nz_city_distribution"
	ViewCityMap             = "city_map"
	ViewNewMembers          = "new_members"
)

// ViewNames lists every view in dashboard order.
var ViewNames = []string{
	ViewKeyMetrics,
	ViewRegionDistribution,
	ViewMembershipStatus,
	ViewPaymentDistribution,
	ViewRenewalFunnel,
	ViewIncomeTrend,
	ViewActivityHeatmap,
	ViewGeoDistribution,
	ViewCityMap,
	ViewNewMembers,
}

// ErrUnknownView is returned for a view name not in ViewNames.
var ErrUnknownView = errors.New("unknown view")

// View returns the named view of s.
func (s Snapshot) View(name string) (any, error) {
	switch name {
	case ViewKeyMetrics:
		return s.KeyMetrics, nil
	case ViewRegionDistribution:
		return s.RegionDistribution, nil
	case ViewMembershipStatus:
		return s.MembershipStatus, nil
	case ViewPaymentDistribution:
		return s.PaymentDistribution, nil
	case ViewRenewalFunnel:
		return s.RenewalFunnel, nil
	case ViewIncomeTrend:
		return s.IncomeTrend, nil
	case ViewActivityHeatmap:
		return s.ActivityHeatmap, nil
	case ViewGeoDistribution:
		return s.GeoDistribution, nil
	case ViewCityMap:
		return s.CityMap, nil
	case ViewNewMembers:
		return s.NewMembers, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}
