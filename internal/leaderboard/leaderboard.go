// ABOUTME: Ranks gym members by monthly points for the leaderboard.
// ABOUTME: Ties fall back to total points, then name, so the order is stable.
package leaderboard

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

// MaxEntries caps the ranking length.
const MaxEntries = 50

// Entry is one member's standing before ranking.
type Entry struct {
	UserID        uuid.UUID
	Name          string
	TotalPoints   int
	WeeklyPoints  int
	MonthlyPoints int
}

// Rank orders entries and assigns 1-based ranks. The input is not modified.
func Rank(entries []Entry, currentUserID uuid.UUID) []models.RankingEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		if c := cmp.Compare(b.MonthlyPoints, a.MonthlyPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(sorted) > MaxEntries {
		sorted = sorted[:MaxEntries]
	}

	out := make([]models.RankingEntry, 0, len(sorted))
	for i, e := range sorted {
		out = append(out, models.RankingEntry{
			UserID:        e.UserID,
			Name:          e.Name,
			Rank:          i + 1,
			TotalPoints:   e.TotalPoints,
			WeeklyPoints:  e.WeeklyPoints,
			MonthlyPoints: e.MonthlyPoints,
			IsCurrentUser: e.UserID == currentUserID,
		})
	}
	return out
}

// RankOf returns the user's rank, or 0 if they are not in the ranking.
func RankOf(ranking []models.RankingEntry, userID uuid.UUID) int {
	for _, r := range ranking {
		if r.UserID == userID {
			return r.Rank
		}
	}
	return 0
}
