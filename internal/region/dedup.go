// Package region collapses differently spelled location names into canonical
// locations and counts members per location.
package region

import (
	"sort"

	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/translit"
)

// Field selects which member column to deduplicate.
type Field int

const (
	FieldRegion Field = iota
	FieldCity
)

func (f Field) String() string {
	switch f {
	case FieldRegion:
		return "Region"
	case FieldCity:
		return "City"
	default:
		return "Unknown"
	}
}

func (f Field) value(m domain.MemberRecord) string {
	if f == FieldCity {
		return m.CityLabel()
	}
	return m.RegionLabel()
}

// Deduplicator groups raw labels by transliterated key.
type Deduplicator struct {
	tr *translit.Transliterator
}

// New returns a Deduplicator keyed by tr. A nil tr uses translit.Default().
func New(tr *translit.Transliterator) *Deduplicator {
	if tr == nil {
		tr = translit.Default()
	}
	return &Deduplicator{tr: tr}
}

// Key exposes the grouping key used for label.
func (d *Deduplicator) Key(label string) string {
	return d.tr.Key(label)
}

// Deduplicate groups members by the canonical key of field. Missing values
// count as "Unknown".
func (d *Deduplicator) Deduplicate(members []domain.MemberRecord, field Field) []domain.CanonicalLocation {
	values := make([]string, len(members))
	for i, m := range members {
		values[i] = field.value(m)
	}
	return d.DeduplicateValues(values)
}

// DeduplicateValues groups raw labels by canonical key. Each group keeps the
// label of its first occurrence in input order. Groups are ordered by key,
// then stably sorted by descending count, so equal counts stay in key order.
func (d *Deduplicator) DeduplicateValues(values []string) []domain.CanonicalLocation {
	if len(values) == 0 {
		return []domain.CanonicalLocation{}
	}

	index := make(map[string]int)
	var groups []domain.CanonicalLocation
	for _, v := range values {
		if v == "" {
			v = domain.UnknownLabel
		}
		key := d.tr.Key(v)
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, domain.CanonicalLocation{Key: key, Label: v, Count: 1})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	return groups
}

// Split partitions locations into those whose key equals the key of one of
// mainNames and the rest. Both halves keep the input order.
func (d *Deduplicator) Split(locations []domain.CanonicalLocation, mainNames []string) (main, other []domain.CanonicalLocation) {
	mainKeys := make(map[string]struct{}, len(mainNames))
	for _, name := range mainNames {
		mainKeys[d.tr.Key(name)] = struct{}{}
	}

	main = []domain.CanonicalLocation{}
	other = []domain.CanonicalLocation{}
	for _, loc := range locations {
		if _, ok := mainKeys[loc.Key]; ok {
			main = append(main, loc)
		} else {
			other = append(other, loc)
		}
	}
	return main, other
}

var defaultDeduplicator = New(nil)

// Deduplicate runs the default Deduplicator.
func Deduplicate(members []domain.MemberRecord, field Field) []domain.CanonicalLocation {
	return defaultDeduplicator.Deduplicate(members, field)
}

// DeduplicateValues runs the default Deduplicator over plain labels.
func DeduplicateValues(values []string) []domain.CanonicalLocation {
	return defaultDeduplicator.DeduplicateValues(values)
}
