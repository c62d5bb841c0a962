package analytics

import (
	"sort"

	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/region"
)

// RegionDistribution deduplicates member regions and separates the configured
// main regions from the rest.
func (e *Engine) RegionDistribution(members []domain.MemberRecord) domain.RegionDistribution {
	locations := e.dedup.Deduplicate(members, region.FieldRegion)
	main, other := e.dedup.Split(locations, e.mainRegions)
	return domain.RegionDistribution{
		Main:  toNameCounts(main),
		Other: toNameCounts(other),
	}
}

// GeoDistribution builds the region → city hierarchy. Regions are
// deduplicated; cities are counted by raw value within each region. The
// Unknown region is kept without a city breakdown.
func (e *Engine) GeoDistribution(members []domain.MemberRecord) []domain.RegionNode {
	regions := e.dedup.Deduplicate(members, region.FieldRegion)
	unknownKey := e.dedup.Key(domain.UnknownLabel)

	citiesByRegion := make(map[string][]string, len(regions))
	for _, m := range members {
		key := e.dedup.Key(m.RegionLabel())
		if key == unknownKey {
			continue
		}
		citiesByRegion[key] = append(citiesByRegion[key], m.CityLabel())
	}

	nodes := make([]domain.RegionNode, 0, len(regions))
	for _, r := range regions {
		node := domain.RegionNode{Name: r.Label, Count: r.Count, Children: []domain.NameCount{}}
		if r.Key != unknownKey {
			node.Children = countValues(citiesByRegion[r.Key])
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// CityMap counts members per gazetteer entry their city matches. Unmatched
// cities are left out. Ordered by count descending, then gazetteer order.
func (e *Engine) CityMap(members []domain.MemberRecord) []domain.CityPoint {
	entries := e.matcher.Entries()
	order := make(map[string]int, len(entries))
	for i, entry := range entries {
		order[entry.Name] = i
	}

	counts := make(map[string]int)
	found := make(map[string]domain.GazetteerEntry)
	for _, m := range members {
		entry, ok := e.matcher.Match(m.CityLabel())
		if !ok {
			continue
		}
		counts[entry.Name]++
		found[entry.Name] = entry
	}

	points := make([]domain.CityPoint, 0, len(found))
	for name, entry := range found {
		points = append(points, domain.CityPoint{
			Name:      name,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
			Count:     counts[name],
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		return order[points[i].Name] < order[points[j].Name]
	})
	return points
}

// countValues counts exact values, most frequent first, ties in order of first
// appearance.
func countValues(values []string) []domain.NameCount {
	index := make(map[string]int)
	out := []domain.NameCount{}
	for _, v := range values {
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, domain.NameCount{Name: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func toNameCounts(locations []domain.CanonicalLocation) []domain.NameCount {
	out := make([]domain.NameCount, len(locations))
	for i, loc := range locations {
		out[i] = domain.NameCount{Name: loc.Label, Count: loc.Count}
	}
	return out
}
