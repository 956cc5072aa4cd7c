package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{UserID: 1, Name: "low level rich", Stats: Stats{Level: 2, TotalCoins: 90000}},
		{UserID: 2, Name: "high level", Stats: Stats{Level: 5, TotalCoins: 1000}},
		{UserID: 3, Name: "tied richer", Stats: Stats{Level: 5, TotalCoins: 3000}},
		{UserID: 4, Name: "bottom", Stats: Stats{Level: 1, TotalCoins: 0}},
	}

	SortEntries(entries)

	got := make([]uint, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.UserID)
	}
	// Level descending first, then coins break the 5/5 tie.
	assert.Equal(t, []uint{3, 2, 1, 4}, got)
}

func TestSortEntriesFullTieIsStableByUserID(t *testing.T) {
	entries := []Entry{
		{UserID: 9, Stats: Stats{Level: 3, TotalCoins: 500}},
		{UserID: 2, Stats: Stats{Level: 3, TotalCoins: 500}},
		{UserID: 5, Stats: Stats{Level: 3, TotalCoins: 500}},
	}

	SortEntries(entries)

	assert.Equal(t, uint(2), entries[0].UserID)
	assert.Equal(t, uint(5), entries[1].UserID)
	assert.Equal(t, uint(9), entries[2].UserID)
}
