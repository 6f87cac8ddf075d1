// ABOUTME: Points and calorie formulas for completed workouts.
// ABOUTME: Pure functions; negative inputs are clamped to zero.
package scoring

import (
	"math"

	"github.com/harperreed/fitrank/internal/models"
)

// Scoring constants. Multipliers are in tenths and the streak bonus is
// one twentieth per day so points can be computed exactly in integers.
const (
	PointsPerExercise  = 50
	StreakBonusDivisor = 20
	CalorieReferenceKg = 70.0
	beginnerTenths     = 10
	intermediateTenths = 13
	advancedTenths     = 16
)

func levelTenths(level models.Level) int {
	switch level {
	case models.LevelIntermediate:
		return intermediateTenths
	case models.LevelAdvanced:
		return advancedTenths
	default:
		return beginnerTenths
	}
}

// LevelMultiplier weights session minutes by experience.
func LevelMultiplier(level models.Level) float64 {
	return float64(levelTenths(level)) / 10
}

// CalorieRate is the per-minute burn factor for a 70 kg person at a level.
func CalorieRate(level models.Level) float64 {
	switch level {
	case models.LevelIntermediate:
		return 7
	case models.LevelAdvanced:
		return 9
	default:
		return 5
	}
}

// WorkoutPoints scores a finished workout.
//
//	base   = minutes*levelMultiplier + exercises*50
//	points = round(base * (1 + streak*0.05))
//
// The product is exact: base is kept in tenths and the bonus as
// (20+streak)/20, so halves always round up.
func WorkoutPoints(durationMinutes, exerciseCount, currentStreak int, level models.Level) int {
	duration := max(durationMinutes, 0)
	exercises := max(exerciseCount, 0)
	streak := max(currentStreak, 0)

	baseTenths := duration*levelTenths(level) + exercises*PointsPerExercise*10
	num := baseTenths * (StreakBonusDivisor + streak)
	den := 10 * StreakBonusDivisor
	return (num + den/2) / den
}

// EstimateCalories estimates energy burned, scaled linearly by body weight.
func EstimateCalories(durationMinutes int, level models.Level, bodyWeightKg float64) int {
	duration := float64(max(durationMinutes, 0))
	if bodyWeightKg < 0 || math.IsNaN(bodyWeightKg) || math.IsInf(bodyWeightKg, 0) {
		bodyWeightKg = 0
	}
	return roundHalfUp(duration * CalorieRate(level) * bodyWeightKg / CalorieReferenceKg)
}

func roundHalfUp(x float64) int {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}
