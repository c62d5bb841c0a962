package domain

// CanonicalLocation groups every raw spelling of one place under a single key.
type CanonicalLocation struct {
	Key   string
	Label string
	Count int
}

// GazetteerEntry is a reference place with WGS84 coordinates.
type GazetteerEntry struct {
	Name      string
	Latitude  float64
	Longitude float64
}
