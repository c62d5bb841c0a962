// Package geo resolves free-text city names to gazetteer entries.
package geo

import (
	"strings"

	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/gazetteer"
)

type aliasSet struct {
	entry   domain.GazetteerEntry
	aliases []string
}

// Matcher maps city text to the first gazetteer entry that has an alias
// contained in the text. Aliases are computed once; a Matcher is read-only and
// safe for concurrent use.
type Matcher struct {
	sets []aliasSet
}

// NewMatcher indexes the aliases of every entry of table in declaration order.
// A nil table uses gazetteer.Default().
func NewMatcher(table *gazetteer.Table) *Matcher {
	if table == nil {
		table = gazetteer.Default()
	}
	entries := table.Entries()
	m := &Matcher{sets: make([]aliasSet, 0, len(entries))}
	for _, e := range entries {
		m.sets = append(m.sets, aliasSet{entry: e, aliases: Aliases(e.Name)})
	}
	return m
}

// Aliases returns the spellings a gazetteer name is matched by: lowercase,
// lowercase without spaces and lowercase with hyphens turned into spaces.
// Duplicates are dropped, order is kept.
func Aliases(name string) []string {
	lower := strings.ToLower(name)
	candidates := []string{
		lower,
		strings.ReplaceAll(lower, " ", ""),
		strings.ReplaceAll(lower, "-", " "),
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// normalize lowercases text and removes spaces, the form aliases are searched in.
func normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "")
}

// Match returns the first entry whose alias occurs in text. ok is false when no
// entry matches; callers treat that as domain.UnknownLabel.
func (m *Matcher) Match(text string) (domain.GazetteerEntry, bool) {
	needle := normalize(text)
	if needle == "" {
		return domain.GazetteerEntry{}, false
	}
	for _, set := range m.sets {
		for _, alias := range set.aliases {
			if strings.Contains(needle, alias) {
				return set.entry, true
			}
		}
	}
	return domain.GazetteerEntry{}, false
}

// Label returns the matched entry name or domain.UnknownLabel.
func (m *Matcher) Label(text string) string {
	if e, ok := m.Match(text); ok {
		return e.Name
	}
	return domain.UnknownLabel
}

// Entries returns the indexed entries in match order.
func (m *Matcher) Entries() []domain.GazetteerEntry {
	out := make([]domain.GazetteerEntry, len(m.sets))
	for i, set := range m.sets {
		out[i] = set.entry
	}
	return out
}
