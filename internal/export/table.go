// Package export renders dashboard snapshots as spreadsheets.
package export

import (
	"fmt"

	"github.com/citanz/dashboard/backend/internal/domain"
)

// ErrUnknownView is returned for a view name the snapshot does not have.
var ErrUnknownView = domain.ErrUnknownView

// Table is one view flattened into a header and rows of cell values.
type Table struct {
	Header []string
	Rows   [][]any
}

// ViewTable flattens the named view of snap.
func ViewTable(snap domain.Snapshot, view string) (Table, error) {
	switch view {
	case domain.ViewKeyMetrics:
		km := snap.KeyMetrics
		return Table{
			Header: []string{"metric", "value"},
			Rows: [][]any{
				{"total", km.Total},
				{"active", km.Active},
				{"new_this_month", km.NewThisMonth},
			},
		}, nil

	case domain.ViewRegionDistribution:
		t := Table{Header: []string{"group", "region", "count"}}
		for _, nc := range snap.RegionDistribution.Main {
			t.Rows = append(t.Rows, []any{"main", nc.Name, nc.Count})
		}
		for _, nc := range snap.RegionDistribution.Other {
			t.Rows = append(t.Rows, []any{"other", nc.Name, nc.Count})
		}
		return t, nil

	case domain.ViewMembershipStatus:
		return Table{
			Header: []string{"status", "count"},
			Rows: [][]any{
				{"Active", snap.MembershipStatus.Active},
				{"Expired", snap.MembershipStatus.Expired},
			},
		}, nil

	case domain.ViewPaymentDistribution:
		t := Table{Header: []string{"amount", "count"}}
		for _, ac := range snap.PaymentDistribution {
			t.Rows = append(t.Rows, []any{ac.Amount, ac.Count})
		}
		return t, nil

	case domain.ViewRenewalFunnel:
		return Table{
			Header: []string{"stage", "count"},
			Rows: [][]any{
				{"Renewed", snap.RenewalFunnel.Renewed},
				{"Not Renewed", snap.RenewalFunnel.NotRenewed},
			},
		}, nil

	case domain.ViewIncomeTrend:
		t := Table{Header: []string{"month", "amount"}}
		for _, ma := range snap.IncomeTrend {
			t.Rows = append(t.Rows, []any{ma.Month, ma.Amount})
		}
		return t, nil

	case domain.ViewActivityHeatmap:
		t := Table{Header: []string{"day", "hour", "count"}}
		for _, c := range snap.ActivityHeatmap {
			t.Rows = append(t.Rows, []any{c.Day, c.Hour, c.Count})
		}
		return t, nil

	case domain.ViewGeoDistribution:
		t := Table{Header: []string{"region", "region_count", "city", "city_count"}}
		for _, node := range snap.GeoDistribution {
			if len(node.Children) == 0 {
				t.Rows = append(t.Rows, []any{node.Name, node.Count, "", ""})
				continue
			}
			for _, child := range node.Children {
				t.Rows = append(t.Rows, []any{node.Name, node.Count, child.Name, child.Count})
			}
		}
		return t, nil

	case domain.ViewCityMap:
		t := Table{Header: []string{"city", "latitude", "longitude", "count"}}
		for _, p := range snap.CityMap {
			t.Rows = append(t.Rows, []any{p.Name, p.Latitude, p.Longitude, p.Count})
		}
		return t, nil

	case domain.ViewNewMembers:
		t := Table{Header: []string{"month", "count"}}
		for _, mc := range snap.NewMembers {
			t.Rows = append(t.Rows, []any{mc.Month, mc.Count})
		}
		return t, nil

	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}
