// ABOUTME: Fixed achievement catalog and the rules that unlock each entry.
// ABOUTME: Unlocking is one-way; earned entries are never re-stamped.
package achievements

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

// Catalog identifiers.
const (
	FirstWorkout = "first-workout"
	Streak7      = "streak-7"
	Workouts30   = "workouts-30"
	Top3         = "top-3"
	Points5000   = "points-5000"
	Workouts100  = "workouts-100"
	Streak30     = "streak-30"
	PerfectWeek  = "perfect-week"
	Champion     = "champion"
	Premium      = "premium"
)

type definition struct {
	id          string
	name        string
	description string
}

// Order is display order.
var definitions = []definition{
	{FirstWorkout, "First Workout", "Complete your first workout"},
	{Streak7, "Full Week", "Train 7 days in a row"},
	{Workouts30, "30 Workouts", "Complete 30 workouts"},
	{Top3, "Top 3", "Finish in the top 3 of your gym"},
	{Points5000, "5000 Points", "Earn 5000 points"},
	{Workouts100, "100 Workouts", "Complete 100 workouts"},
	{Streak30, "Perfect Month", "Train 30 days in a row"},
	{PerfectWeek, "Perfect Week", "Complete 7 workouts in one week"},
	{Champion, "Champion", "Reach first place in your gym"},
	{Premium, "Premium", "Subscribe to Premium"},
}

// rules unlock from stats alone. Entries missing here depend on signals.
var rules = map[string]func(models.UserStats) bool{
	FirstWorkout: func(s models.UserStats) bool { return s.TotalWorkouts >= 1 },
	Streak7:      func(s models.UserStats) bool { return s.CurrentStreak >= 7 },
	Workouts30:   func(s models.UserStats) bool { return s.TotalWorkouts >= 30 },
	Points5000:   func(s models.UserStats) bool { return s.TotalPoints >= 5000 },
	Workouts100:  func(s models.UserStats) bool { return s.TotalWorkouts >= 100 },
	Streak30:     func(s models.UserStats) bool { return s.CurrentStreak >= 30 },
	PerfectWeek:  func(s models.UserStats) bool { return s.WeeklyWorkoutsCount >= 7 },
}

// Signals carries facts the stats snapshot does not hold.
type Signals struct {
	// Rank is the user's 1-based position in their gym; 0 means unranked.
	Rank    int
	Premium bool
}

var signalRules = map[string]func(Signals) bool{
	Top3:     func(s Signals) bool { return s.Rank >= 1 && s.Rank <= 3 },
	Champion: func(s Signals) bool { return s.Rank == 1 },
	Premium:  func(s Signals) bool { return s.Premium },
}

// DefaultCatalog returns every achievement, unearned and without an owner.
func DefaultCatalog() []*models.Achievement {
	out := make([]*models.Achievement, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, &models.Achievement{
			ID:          d.id,
			Name:        d.name,
			Description: d.description,
			Icon:        d.id,
		})
	}
	return out
}

// Seed returns the catalog instantiated for one user.
func Seed(userID uuid.UUID) []*models.Achievement {
	out := DefaultCatalog()
	for _, a := range out {
		a.UserID = userID
	}
	return out
}

// IsSignal reports whether an achievement unlocks from external signals.
func IsSignal(id string) bool {
	_, ok := signalRules[id]
	return ok
}

// Evaluate unlocks every unearned entry whose stats rule holds and returns
// the newly unlocked entries. Signal-driven and unknown entries are skipped.
func Evaluate(stats models.UserStats, catalog []*models.Achievement, now time.Time) []*models.Achievement {
	return unlock(catalog, now, func(id string) bool {
		rule, ok := rules[id]
		return ok && rule(stats)
	})
}

// ApplySignals unlocks the ranking and subscription entries.
func ApplySignals(signals Signals, catalog []*models.Achievement, now time.Time) []*models.Achievement {
	return unlock(catalog, now, func(id string) bool {
		rule, ok := signalRules[id]
		return ok && rule(signals)
	})
}

func unlock(catalog []*models.Achievement, now time.Time, satisfied func(id string) bool) []*models.Achievement {
	unlocked := []*models.Achievement{}
	for _, a := range catalog {
		if a == nil || a.Earned || !satisfied(a.ID) {
			continue
		}
		at := now
		a.Earned = true
		a.EarnedAt = &at
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// Earned counts earned entries.
func Earned(catalog []*models.Achievement) int {
	n := 0
	for _, a := range catalog {
		if a != nil && a.Earned {
			n++
		}
	}
	return n
}
