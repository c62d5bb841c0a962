package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberLabels(t *testing.T) {
	m := MemberRecord{Region: "Otago"}
	assert.Equal(t, "Otago", m.RegionLabel())
	assert.Equal(t, UnknownLabel, m.CityLabel())
}

func TestSnapshotView(t *testing.T) {
	snap := Snapshot{
		KeyMetrics: KeyMetrics{Total: 4},
		CityMap:    []CityPoint{{Name: "Dunedin", Count: 1}},
	}

	for _, name := range ViewNames {
		_, err := snap.View(name)
		require.NoError(t, err, name)
	}

	v, err := snap.View(ViewKeyMetrics)
	require.NoError(t, err)
	assert.Equal(t, KeyMetrics{Total: 4}, v)

	v, err = snap.View(ViewCityMap)
	require.NoError(t, err)
	assert.Equal(t, snap.CityMap, v)

	_, err = snap.View("members")
	assert.ErrorIs(t, err, ErrUnknownView)
}
