package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/catalog-extractor/internal/domain"
)

func keys(t *groupTable) []string {
	var out []string
	for _, g := range t.groups() {
		out = append(out, g.key)
	}
	return out
}

func TestGroupFragments_GroupsByTrimmedName(t *testing.T) {
	fragments := []domain.Fragment{
		{Name: "Swan Statue ", Page: 5},
		{Name: "Camel Statue", Page: 7},
		{Name: "Swan Statue", Page: 9},
		{Name: "swan statue", Page: 10},
	}

	table, _ := groupFragments(fragments, 2)

	assert.Equal(t, []string{"Swan Statue", "Camel Statue", "swan statue"}, keys(table))
	assert.Len(t, table.index["Swan Statue"].fragments, 2)
}

func TestGroupFragments_AttachesNearbySpec(t *testing.T) {
	spec := domain.Fragment{Specifications: "weighs 300 gram, 10cm", Page: 6, FullText: "weighs 300 gram, 10cm"}
	fragments := []domain.Fragment{
		{Name: "Swan Statue", Page: 5, FullText: "Swan Statue"},
		spec,
		{Name: "Swan Statue", Page: 5, FullText: "Swan Statue"},
	}

	table, dropped := groupFragments(fragments, 2)

	assert.Zero(t, dropped)
	g := table.index["Swan Statue"]
	require.Len(t, g.fragments, 3)
	assert.Equal(t, spec, g.fragments[2])
}

func TestGroupFragments_DropsSpecBeyondWindow(t *testing.T) {
	fragments := []domain.Fragment{
		{Name: "Swan Statue", Page: 1},
		{Specifications: "10cm", Page: 4},
	}

	table, dropped := groupFragments(fragments, 2)

	assert.Equal(t, 1, dropped)
	assert.Len(t, table.index["Swan Statue"].fragments, 1)
}

func TestGroupFragments_FirstGroupWithEarlierPageWins(t *testing.T) {
	fragments := []domain.Fragment{
		{Name: "Horse Statue", Page: 1},
		{Name: "Camel Statue", Page: 3},
		{Specifications: "20cm", Page: 3},
		{PriceText: "₹ 4,999", Page: 5},
	}

	table, dropped := groupFragments(fragments, 2)

	// page 3 spec: Horse is the first group with an earlier page (distance 2).
	// page 5 price: Horse is tried first again and is within reach through the
	// attached page 3 spec, even though Camel is just as close.
	horse := table.index["Horse Statue"].fragments
	require.Len(t, horse, 3)
	assert.Equal(t, 3, horse[1].Page)
	assert.Equal(t, 5, horse[2].Page)
	assert.Len(t, table.index["Camel Statue"].fragments, 1)
	assert.Zero(t, dropped)
}

func TestGroupFragments_FirstGroupTooFarDiscards(t *testing.T) {
	fragments := []domain.Fragment{
		{Name: "Horse Statue", Page: 1},
		{Name: "Camel Statue", Page: 8},
		{Specifications: "20cm", Page: 9},
	}

	table, dropped := groupFragments(fragments, 2)

	assert.Equal(t, 1, dropped, "only the first group with an earlier page is tried")
	assert.Len(t, table.index["Camel Statue"].fragments, 1)
}

func TestGroupFragments_IgnoresNamedAndEmptyFragments(t *testing.T) {
	fragments := []domain.Fragment{
		{Name: "Horse Statue", Page: 1},
		{Name: "Camel Statue", Specifications: "20cm", Page: 2},
		{Page: 2, FullText: "nothing tagged"},
	}

	table, dropped := groupFragments(fragments, 2)

	assert.Zero(t, dropped)
	assert.Len(t, table.index["Horse Statue"].fragments, 1)
	assert.Len(t, table.index["Camel Statue"].fragments, 1)
}

func TestGroup_NearestEarlier(t *testing.T) {
	g := &group{fragments: []domain.Fragment{{Page: 2}, {Page: 5}, {Page: 7}}}

	d, ok := g.nearestEarlier(7)
	assert.True(t, ok)
	assert.Equal(t, 2, d)

	_, ok = g.nearestEarlier(2)
	assert.False(t, ok, "same page does not count")
}
