package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
)

func TestShortQueriesHideThePanel(t *testing.T) {
	records := directory.BuiltinTemples()

	for _, q := range []string{"", "a", "T", "स"} {
		res := Filter(q, records)
		assert.False(t, res.Visible, "query %q", q)
		assert.Empty(t, res.Matches)
		assert.False(t, res.NoResults())
	}
}

func TestMatchesNameOrLocationCaseInsensitively(t *testing.T) {
	records := directory.BuiltinTemples()

	res := Filter("TEMPLE", records)
	assert.True(t, res.Visible)
	assert.Equal(t, []string{
		"tirupati-balaji", "golden-temple", "jagannath-puri", "kedarnath",
		"vaishno-devi", "somnath", "meenakshi-temple", "siddhivinayak",
	}, res.IDs())

	res = Filter("punjab", records)
	assert.Equal(t, []string{"golden-temple"}, res.IDs())

	res = Filter("mumbai", records)
	assert.Equal(t, []string{"siddhivinayak"}, res.IDs())
}

func TestMatchesPreserveDirectoryOrder(t *testing.T) {
	records := directory.BuiltinTemples()

	res := Filter("nath", records)
	assert.Equal(t, []string{"jagannath-puri", "kedarnath", "somnath"}, res.IDs())
}

func TestNoResultsIsDistinctFromHidden(t *testing.T) {
	records := directory.BuiltinTemples()

	res := Filter("nonexistent-xyz", records)
	assert.True(t, res.Visible)
	assert.Empty(t, res.Matches)
	assert.True(t, res.NoResults())
}

func TestTwoRuneQueryIsVisible(t *testing.T) {
	res := Filter("पु", directory.BuiltinTemples())
	assert.True(t, res.Visible)
	assert.True(t, res.NoResults())
}
