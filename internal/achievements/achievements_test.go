// ABOUTME: Tests for achievement unlocking from stats and external signals.
// ABOUTME: Covers thresholds, idempotence, and skipping of signal-driven entries.
package achievements

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

func ids(as []*models.Achievement) []string {
	out := []string{}
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func find(catalog []*models.Achievement, id string) *models.Achievement {
	for _, a := range catalog {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 10)

	seen := map[string]bool{}
	for _, a := range catalog {
		assert.False(t, a.Earned)
		assert.Nil(t, a.EarnedAt)
		assert.NotEmpty(t, a.Name)
		assert.False(t, seen[a.ID], "duplicate %s", a.ID)
		seen[a.ID] = true
	}
	for _, id := range []string{Top3, Champion, Premium} {
		assert.True(t, IsSignal(id), id)
	}
	assert.False(t, IsSignal(FirstWorkout))
}

func TestSeed(t *testing.T) {
	userID := uuid.New()
	for _, a := range Seed(userID) {
		assert.Equal(t, userID, a.UserID)
	}
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name  string
		stats models.UserStats
		want  []string
	}{
		{"nothing yet", models.UserStats{}, []string{}},
		{"first workout", models.UserStats{TotalWorkouts: 1}, []string{FirstWorkout}},
		{"week streak", models.UserStats{TotalWorkouts: 7, CurrentStreak: 7, WeeklyWorkoutsCount: 7},
			[]string{FirstWorkout, Streak7, PerfectWeek}},
		{"six day streak", models.UserStats{TotalWorkouts: 6, CurrentStreak: 6}, []string{FirstWorkout}},
		{"veteran", models.UserStats{TotalWorkouts: 100, TotalPoints: 5000, CurrentStreak: 30},
			[]string{FirstWorkout, Streak7, Workouts30, Points5000, Workouts100, Streak30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.stats, DefaultCatalog(), now)
			assert.Equal(t, tt.want, ids(got))
			for _, a := range got {
				assert.True(t, a.Earned)
				require.NotNil(t, a.EarnedAt)
				assert.True(t, a.EarnedAt.Equal(now))
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	catalog := DefaultCatalog()
	stats := models.UserStats{TotalWorkouts: 1}

	first := Evaluate(stats, catalog, now)
	assert.Equal(t, []string{FirstWorkout}, ids(first))

	later := now.Add(24 * time.Hour)
	second := Evaluate(stats, catalog, later)
	assert.Empty(t, second)

	a := find(catalog, FirstWorkout)
	require.NotNil(t, a.EarnedAt)
	assert.True(t, a.EarnedAt.Equal(now), "earned date must not be re-stamped")
}

func TestEvaluateSkipsSignalEntries(t *testing.T) {
	catalog := DefaultCatalog()
	stats := models.UserStats{TotalWorkouts: 1000, TotalPoints: 1 << 20, CurrentStreak: 365, WeeklyWorkoutsCount: 7}

	Evaluate(stats, catalog, now)

	for _, id := range []string{Top3, Champion, Premium} {
		assert.False(t, find(catalog, id).Earned, id)
	}
	assert.Equal(t, 7, Earned(catalog))
}

func TestEvaluateIgnoresUnknownAndNil(t *testing.T) {
	catalog := []*models.Achievement{nil, {ID: "legacy-badge"}}
	got := Evaluate(models.UserStats{TotalWorkouts: 50}, catalog, now)
	assert.Empty(t, got)
}

func TestApplySignals(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    []string
	}{
		{"unranked", Signals{}, []string{}},
		{"fourth", Signals{Rank: 4}, []string{}},
		{"third", Signals{Rank: 3}, []string{Top3}},
		{"first", Signals{Rank: 1}, []string{Top3, Champion}},
		{"premium only", Signals{Premium: true}, []string{Premium}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := DefaultCatalog()
			got := ApplySignals(tt.signals, catalog, now)
			assert.Equal(t, tt.want, ids(got))
			assert.False(t, find(catalog, FirstWorkout).Earned)
		})
	}
}

func TestApplySignalsIsIdempotent(t *testing.T) {
	catalog := DefaultCatalog()
	ApplySignals(Signals{Rank: 1, Premium: true}, catalog, now)

	// Losing first place does not revoke anything.
	got := ApplySignals(Signals{Rank: 9}, catalog, now.Add(time.Hour))
	assert.Empty(t, got)
	assert.True(t, find(catalog, Champion).Earned)
	assert.Equal(t, 3, Earned(catalog))
}
