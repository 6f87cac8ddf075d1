// ABOUTME: Maps weekly training frequency and goal to a named split plan.
// ABOUTME: Pure lookup over a fixed decision table; no errors are possible.
package planner

import (
	"github.com/harperreed/fitrank/internal/catalog"
	"github.com/harperreed/fitrank/internal/models"
)

// SelectPlan returns the split for a weekly frequency and goal.
//
//	2 -> full body
//	3 -> 3-day split
//	4 -> 4-day split for hypertrophy or beginner health, else upper/lower
//	5 -> 4-day split
//	6 -> upper/lower
//
// Frequencies outside 2..6 are clamped to the nearest bound.
func SelectPlan(weeklyFrequency int, goal models.Goal) models.PlanType {
	switch clampFrequency(weeklyFrequency) {
	case 2:
		return models.PlanFullBody
	case 3:
		return models.PlanThreeDay
	case 4:
		if goal == models.GoalHypertrophy || goal == models.GoalBeginnerHealth {
			return models.PlanFourDay
		}
		return models.PlanUpperLower
	case 5:
		return models.PlanFourDay
	default:
		return models.PlanUpperLower
	}
}

// PlanFor resolves the full plan definition for a profile's frequency and goal.
func PlanFor(weeklyFrequency int, goal models.Goal) models.WorkoutPlan {
	p, _ := catalog.Plan(SelectPlan(weeklyFrequency, goal))
	return p
}

// DayFor returns the day bucket for the n-th session (zero based) of a week,
// rotating through the plan's days.
func DayFor(plan models.WorkoutPlan, session int) (models.PlanDay, bool) {
	if len(plan.Days) == 0 {
		return models.PlanDay{}, false
	}
	if session < 0 {
		session = 0
	}
	return plan.Days[session%len(plan.Days)], true
}

func clampFrequency(f int) int {
	if f < models.MinWeeklyFrequency {
		return models.MinWeeklyFrequency
	}
	if f > models.MaxWeeklyFrequency {
		return models.MaxWeeklyFrequency
	}
	return f
}
