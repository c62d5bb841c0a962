package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/gazetteer"
)

func TestAliases(t *testing.T) {
	assert.Equal(t, []string{"auckland"}, Aliases("Auckland"))
	assert.Equal(t, []string{"palmerston north", "palmerstonnorth"}, Aliases("Palmerston North"))
	assert.Equal(t, []string{"napier-hastings", "napier hastings"}, Aliases("Napier-Hastings"))
}

func TestMatch(t *testing.T) {
	m := NewMatcher(nil)

	tests := []struct {
		input string
		want  string
	}{
		{"Hamilton West", "Hamilton"},
		{"Atlantis", domain.UnknownLabel},
		{"auckland cbd", "Auckland"},
		{"Palmerston North", "Palmerston North"},
		{"PALMERSTON  NORTH", "Palmerston North"},
		{"Christchurch Central", "Christchurch"},
		{"Napier-Hastings", "Napier-Hastings"},
		{"Nelson", "Nelson"},
		{"Mount Wellington", "Wellington"},
		{"", domain.UnknownLabel},
		{"Unknown", domain.UnknownLabel},
		{"奥克兰", domain.UnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Label(tt.input))
		})
	}
}

func TestMatchFirstEntryWins(t *testing.T) {
	table := gazetteer.NewTable([]domain.GazetteerEntry{
		{Name: "Ham", Latitude: 1},
		{Name: "Hamilton", Latitude: 2},
	})
	m := NewMatcher(table)

	e, ok := m.Match("Hamilton")
	require.True(t, ok)
	assert.Equal(t, "Ham", e.Name)
}

func TestMatchReturnsCoordinates(t *testing.T) {
	e, ok := NewMatcher(nil).Match("Queenstown Hill")
	require.True(t, ok)
	assert.Equal(t, "Queenstown", e.Name)
	assert.InDelta(t, -45.0312, e.Latitude, 1e-9)
	assert.InDelta(t, 168.6626, e.Longitude, 1e-9)
}

func TestMatchIsDeterministic(t *testing.T) {
	m := NewMatcher(nil)
	inputs := []string{"Hamilton West", "Atlantis", "Dunedin North", "west coast", "Tasman Bay"}
	for _, in := range inputs {
		first := m.Label(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, m.Label(in))
		}
	}
}

func TestEntries(t *testing.T) {
	m := NewMatcher(nil)
	assert.Equal(t, gazetteer.Default().Entries(), m.Entries())
}
