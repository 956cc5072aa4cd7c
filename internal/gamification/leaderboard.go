package gamification

import "sort"

// Entry is one member's row on a circle leaderboard
type Entry struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Stats     Stats  `json:"stats"`
}

// SortEntries orders a leaderboard by level descending, breaking ties by
// coins descending and finally by user id so the order is stable across
// recomputations.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Stats.Level != b.Stats.Level {
			return a.Stats.Level > b.Stats.Level
		}
		if a.Stats.TotalCoins != b.Stats.TotalCoins {
			return a.Stats.TotalCoins > b.Stats.TotalCoins
		}
		return a.UserID < b.UserID
	})
}
