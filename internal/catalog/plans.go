// ABOUTME: Static split plans: full body, upper/lower, 3-day and 4-day splits.
// ABOUTME: Each plan lists ordered day buckets of catalog exercises.
package catalog

import "github.com/harperreed/fitrank/internal/models"

var plans = map[models.PlanType]models.WorkoutPlan{
	models.PlanFullBody: {
		Type:        models.PlanFullBody,
		Name:        "Full Body",
		DaysPerWeek: 2,
		Days: []models.PlanDay{
			{Name: "Full Body A", Exercises: []models.Exercise{
				ex("Back squat", legs, 3, 10, 90),
				ex("Flat bench press", chest, 3, 10, 90),
				ex("Bent-over row", back, 3, 10, 90),
				ex("Shoulder press", shoulders, 3, 12, 60),
				ex("Plank", abs, 3, 30, 45),
			}},
			{Name: "Full Body B", Exercises: []models.Exercise{
				ex("Deadlift", back, 3, 8, 120),
				ex("Incline bench press", chest, 3, 10, 90),
				ex("Lat pulldown", back, 3, 12, 60),
				ex("Lunges", legs, 3, 12, 60),
				ex("Barbell curl", biceps, 2, 12, 45),
				ex("Rope pushdown", triceps, 2, 12, 45),
			}},
		},
	},
	models.PlanUpperLower: {
		Type:        models.PlanUpperLower,
		Name:        "Upper / Lower",
		DaysPerWeek: 4,
		Days: []models.PlanDay{
			{Name: "Upper", Exercises: []models.Exercise{
				exRange("Flat bench press", chest, 4, 6, 10, 90),
				exRange("Bent-over row", back, 4, 6, 10, 90),
				exRange("Shoulder press", shoulders, 3, 8, 12, 75),
				exRange("Lat pulldown", back, 3, 10, 12, 60),
				ex("Barbell curl", biceps, 3, 12, 45),
				ex("Skull crusher", triceps, 3, 12, 45),
			}},
			{Name: "Lower", Exercises: []models.Exercise{
				exRange("Back squat", legs, 4, 6, 10, 120),
				exRange("Stiff-leg deadlift", legs, 3, 8, 12, 90),
				ex("Leg press", legs, 3, 15, 75),
				ex("Leg curl", legs, 3, 12, 60),
				ex("Standing calf raise", legs, 4, 15, 45),
				ex("Crunches", abs, 3, 20, 30),
			}},
		},
	},
	models.PlanThreeDay: {
		Type:        models.PlanThreeDay,
		Name:        "Push / Pull / Legs",
		DaysPerWeek: 3,
		Days: []models.PlanDay{
			{Name: "Push", Exercises: []models.Exercise{
				exRange("Flat bench press", chest, 4, 8, 12, 90),
				exRange("Incline bench press", chest, 3, 8, 12, 75),
				ex("Shoulder press", shoulders, 3, 12, 60),
				ex("Rope pushdown", triceps, 3, 12, 45),
				ex("Overhead triceps extension", triceps, 3, 12, 45),
			}},
			{Name: "Pull", Exercises: []models.Exercise{
				exRange("Deadlift", back, 3, 5, 8, 120),
				exRange("Lat pulldown", back, 4, 8, 12, 75),
				ex("Seated cable row", back, 3, 12, 60),
				ex("Barbell curl", biceps, 3, 12, 45),
				ex("Hammer curl", biceps, 3, 12, 45),
			}},
			{Name: "Legs", Exercises: []models.Exercise{
				exRange("Back squat", legs, 4, 8, 12, 120),
				ex("Leg press", legs, 3, 15, 75),
				ex("Lunges", legs, 3, 12, 60),
				ex("Leg curl", legs, 3, 12, 60),
				ex("Plank", abs, 3, 45, 45),
			}},
		},
	},
	models.PlanFourDay: {
		Type:        models.PlanFourDay,
		Name:        "4-Day Split",
		DaysPerWeek: 4,
		Days: []models.PlanDay{
			{Name: "Chest & Triceps", Exercises: []models.Exercise{
				exRange("Flat bench press", chest, 4, 8, 12, 90),
				exRange("Incline bench press", chest, 3, 8, 12, 75),
				ex("Push-ups", chest, 3, 15, 45),
				ex("Skull crusher", triceps, 3, 12, 45),
				ex("Rope pushdown", triceps, 3, 12, 45),
			}},
			{Name: "Back & Biceps", Exercises: []models.Exercise{
				exRange("Deadlift", back, 3, 5, 8, 120),
				exRange("Bent-over row", back, 4, 8, 12, 90),
				ex("Lat pulldown", back, 3, 12, 60),
				ex("Barbell curl", biceps, 3, 12, 45),
				ex("Hammer curl", biceps, 3, 12, 45),
			}},
			{Name: "Legs", Exercises: []models.Exercise{
				exRange("Back squat", legs, 4, 8, 12, 120),
				ex("Leg press", legs, 4, 15, 75),
				ex("Stiff-leg deadlift", legs, 3, 12, 75),
				ex("Leg curl", legs, 3, 12, 60),
				ex("Standing calf raise", legs, 4, 20, 30),
			}},
			{Name: "Shoulders & Abs", Exercises: []models.Exercise{
				exRange("Barbell military press", shoulders, 4, 8, 12, 90),
				ex("Arnold press", shoulders, 3, 12, 60),
				ex("Side plank", abs, 3, 45, 30),
				ex("V-ups", abs, 3, 15, 30),
				ex("Crunches", abs, 3, 20, 30),
			}},
		},
	},
}

// Plan returns a split plan by type. The second result is false for unknown types.
func Plan(t models.PlanType) (models.WorkoutPlan, bool) {
	p, ok := plans[t]
	if !ok {
		return models.WorkoutPlan{}, false
	}
	return clonePlan(p), true
}

// Plans returns every split plan ordered by days per week.
func Plans() []models.WorkoutPlan {
	order := []models.PlanType{models.PlanFullBody, models.PlanThreeDay, models.PlanFourDay, models.PlanUpperLower}
	out := make([]models.WorkoutPlan, 0, len(order))
	for _, t := range order {
		out = append(out, clonePlan(plans[t]))
	}
	return out
}

func clonePlan(p models.WorkoutPlan) models.WorkoutPlan {
	days := make([]models.PlanDay, len(p.Days))
	for i, d := range p.Days {
		days[i] = models.PlanDay{Name: d.Name, Exercises: clone(d.Exercises)}
	}
	p.Days = days
	return p
}
