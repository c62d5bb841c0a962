// Package gazetteer holds the static New Zealand place table used to attach
// coordinates to member cities.
package gazetteer

import "github.com/citanz/dashboard/backend/internal/domain"

// Table is an ordered, read-only list of gazetteer entries. Declaration order
// matters: matching walks entries front to back and the first hit wins.
type Table struct {
	entries []domain.GazetteerEntry
	byName  map[string]int
}

// NewTable copies entries into a Table. Later duplicates of a name are kept in
// order but Lookup resolves to the first one.
func NewTable(entries []domain.GazetteerEntry) *Table {
	t := &Table{
		entries: append([]domain.GazetteerEntry(nil), entries...),
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range t.entries {
		if _, ok := t.byName[e.Name]; !ok {
			t.byName[e.Name] = i
		}
	}
	return t
}

// Entries returns a copy of the entries in declaration order.
func (t *Table) Entries() []domain.GazetteerEntry {
	return append([]domain.GazetteerEntry(nil), t.entries...)
}

// Len reports the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup finds an entry by its canonical name.
func (t *Table) Lookup(name string) (domain.GazetteerEntry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return domain.GazetteerEntry{}, false
	}
	return t.entries[i], true
}

// Regions first, then the main cities.
var newZealand = []domain.GazetteerEntry{
	{Name: "Northland", Latitude: -35.7317, Longitude: 174.3242},
	{Name: "Auckland", Latitude: -36.8485, Longitude: 174.7633},
	{Name: "Waikato", Latitude: -37.7870, Longitude: 175.2793},
	{Name: "Bay of Plenty", Latitude: -37.6878, Longitude: 176.1651},
	{Name: "Gisborne", Latitude: -38.6623, Longitude: 178.0176},
	{Name: "Hawke's Bay", Latitude: -39.4928, Longitude: 176.9120},
	{Name: "Taranaki", Latitude: -39.0556, Longitude: 174.0752},
	{Name: "Manawatu-Whanganui", Latitude: -40.3523, Longitude: 175.6082},
	{Name: "Wellington", Latitude: -41.2865, Longitude: 174.7762},
	{Name: "Tasman", Latitude: -41.2706, Longitude: 173.2840},
	{Name: "Nelson", Latitude: -41.2706, Longitude: 173.2840},
	{Name: "Marlborough", Latitude: -41.5134, Longitude: 173.9611},
	{Name: "West Coast", Latitude: -42.4504, Longitude: 171.2108},
	{Name: "Canterbury", Latitude: -43.5321, Longitude: 172.6362},
	{Name: "Otago", Latitude: -45.8788, Longitude: 170.5028},
	{Name: "Southland", Latitude: -46.4132, Longitude: 168.3538},
	{Name: "Hamilton", Latitude: -37.7870, Longitude: 175.2793},
	{Name: "Tauranga", Latitude: -37.6878, Longitude: 176.1651},
	{Name: "Napier-Hastings", Latitude: -39.4928, Longitude: 176.9120},
	{Name: "Palmerston North", Latitude: -40.3523, Longitude: 175.6082},
	{Name: "Christchurch", Latitude: -43.5321, Longitude: 172.6362},
	{Name: "Dunedin", Latitude: -45.8788, Longitude: 170.5028},
	{Name: "Invercargill", Latitude: -46.4132, Longitude: 168.3538},
	{Name: "Queenstown", Latitude: -45.0312, Longitude: 168.6626},
}

var defaultTable = NewTable(newZealand)

// Default returns the built-in New Zealand table. It is shared and must not be
// modified; Table exposes no mutators.
func Default() *Table { return defaultTable }
