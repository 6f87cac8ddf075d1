// ABOUTME: Static exercise pools keyed by training level and goal.
// ABOUTME: Accessors hand out copies so the tables are never mutated.
package catalog

import (
	"strings"

	"github.com/harperreed/fitrank/internal/models"
)

type poolKey struct {
	level models.Level
	goal  models.Goal
}

// ex builds a catalog entry with an ID derived from its name.
func ex(name string, group models.MuscleGroup, sets, reps, rest int) models.Exercise {
	return models.Exercise{
		ID:          Slugify(name),
		Name:        name,
		MuscleGroup: group,
		Sets:        sets,
		Reps:        reps,
		RestSeconds: rest,
	}
}

// exRange builds a catalog entry prescribing a rep range.
func exRange(name string, group models.MuscleGroup, sets, repsMin, repsMax, rest int) models.Exercise {
	e := ex(name, group, sets, repsMin, rest)
	e.RepsMax = repsMax
	return e
}

const (
	chest     = models.MuscleChest
	back      = models.MuscleBack
	legs      = models.MuscleLegs
	shoulders = models.MuscleShoulders
	biceps    = models.MuscleBiceps
	triceps   = models.MuscleTriceps
	abs       = models.MuscleAbs
)

var pools = map[poolKey][]models.Exercise{
	{models.LevelBeginner, models.GoalHypertrophy}: {
		ex("Flat bench press", chest, 3, 12, 60),
		ex("Back squat", legs, 3, 15, 60),
		ex("Barbell curl", biceps, 3, 12, 45),
		ex("Skull crusher", triceps, 3, 12, 45),
		ex("Shoulder press", shoulders, 3, 12, 60),
		ex("Seated cable row", back, 3, 12, 60),
		ex("Leg press", legs, 3, 15, 60),
		ex("Standing calf raise", legs, 3, 20, 30),
	},
	{models.LevelBeginner, models.GoalWeightLoss}: {
		ex("Burpees", legs, 3, 10, 30),
		ex("Jump squats", legs, 3, 15, 30),
		ex("Mountain climbers", abs, 3, 20, 30),
		ex("Plank", abs, 3, 30, 30),
		ex("Jumping jacks", legs, 3, 30, 30),
		ex("Running in place", legs, 3, 60, 30),
	},
	{models.LevelBeginner, models.GoalEndurance}: {
		ex("Push-ups", chest, 3, 15, 30),
		ex("Bodyweight squat", legs, 3, 20, 30),
		ex("Plank hold", abs, 3, 45, 30),
		ex("Lunges", legs, 3, 12, 30),
		ex("Crunches", abs, 3, 20, 30),
	},
	{models.LevelBeginner, models.GoalBeginnerHealth}: {
		ex("Brisk walk", legs, 1, 20, 0),
		ex("Full body stretch", back, 1, 10, 0),
		ex("Bodyweight squat", legs, 2, 15, 45),
		ex("Plank", abs, 2, 30, 45),
		ex("Incline push-ups", chest, 2, 10, 45),
	},
	{models.LevelIntermediate, models.GoalHypertrophy}: {
		ex("Incline bench press", chest, 4, 10, 75),
		ex("Deep squat", legs, 4, 12, 90),
		ex("Alternating dumbbell curl", biceps, 4, 10, 60),
		ex("Overhead triceps extension", triceps, 4, 10, 60),
		ex("Arnold press", shoulders, 4, 10, 75),
		ex("Lat pulldown", back, 4, 10, 75),
		ex("Deadlift", back, 4, 8, 90),
		ex("Stiff-leg deadlift", legs, 4, 12, 75),
	},
	{models.LevelIntermediate, models.GoalWeightLoss}: {
		ex("Advanced burpees", legs, 4, 12, 30),
		ex("Box jump", legs, 4, 12, 30),
		ex("Kettlebell swing", back, 4, 15, 30),
		ex("Battle rope", shoulders, 4, 30, 30),
		ex("Sprints", legs, 6, 30, 60),
	},
	{models.LevelIntermediate, models.GoalEndurance}: {
		ex("Diamond push-ups", triceps, 4, 15, 30),
		ex("Bulgarian split squat", legs, 4, 12, 30),
		ex("Side plank", abs, 4, 45, 30),
		ex("Jump lunges", legs, 4, 20, 30),
		ex("V-ups", abs, 4, 15, 30),
	},
	{models.LevelIntermediate, models.GoalBeginnerHealth}: {
		ex("Interval walk", legs, 1, 30, 0),
		ex("Yoga flow", back, 1, 15, 0),
		ex("Goblet squat", legs, 3, 15, 60),
		ex("Plank with reach", abs, 3, 40, 60),
		ex("Push-ups", chest, 3, 12, 60),
	},
	{models.LevelAdvanced, models.GoalHypertrophy}: {
		ex("Decline bench press", chest, 5, 8, 90),
		ex("Front squat", legs, 5, 8, 120),
		ex("Hammer curl", biceps, 5, 8, 75),
		ex("Rope pushdown", triceps, 5, 12, 60),
		ex("Barbell military press", shoulders, 5, 8, 90),
		ex("Bent-over row", back, 5, 8, 90),
		ex("Sumo deadlift", legs, 5, 6, 120),
		ex("Leg curl", legs, 5, 10, 75),
	},
	{models.LevelAdvanced, models.GoalWeightLoss}: {
		ex("Tuck jump burpees", legs, 5, 15, 30),
		ex("Thruster", shoulders, 5, 15, 45),
		ex("Clean and press", shoulders, 5, 12, 45),
		ex("Rowing machine", back, 5, 60, 60),
		ex("Assault bike", legs, 6, 45, 60),
	},
	{models.LevelAdvanced, models.GoalEndurance}: {
		ex("Muscle-ups", back, 5, 8, 60),
		ex("Pistol squats", legs, 5, 10, 45),
		ex("RKC plank", abs, 5, 60, 45),
		ex("Handstand push-ups", shoulders, 5, 8, 60),
		ex("Dragon flag", abs, 5, 8, 60),
	},
	{models.LevelAdvanced, models.GoalBeginnerHealth}: {
		ex("Moderate run", legs, 1, 40, 0),
		ex("Joint mobility", back, 1, 15, 0),
		ex("Pistol squat", legs, 4, 8, 75),
		ex("L-sit", abs, 4, 30, 60),
		ex("Archer push-ups", chest, 4, 10, 75),
	},
}

// Pool returns the exercises eligible for a level and goal.
// The second result is false when no pool exists for the pair.
func Pool(level models.Level, goal models.Goal) ([]models.Exercise, bool) {
	p, ok := pools[poolKey{level, goal}]
	if !ok {
		return nil, false
	}
	return clone(p), true
}

// DefaultPool returns the beginner health pool used when a pair has no pool.
func DefaultPool() []models.Exercise {
	return clone(pools[poolKey{models.LevelBeginner, models.GoalBeginnerHealth}])
}

// Lookup finds a catalog exercise by ID across every pool and plan.
func Lookup(id string) (models.Exercise, bool) {
	for _, p := range pools {
		for _, e := range p {
			if e.ID == id {
				return e, true
			}
		}
	}
	for _, plan := range plans {
		for _, d := range plan.Days {
			for _, e := range d.Exercises {
				if e.ID == id {
					return e, true
				}
			}
		}
	}
	return models.Exercise{}, false
}

// Slugify turns a display name into a lowercase dash-separated identifier.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func clone(src []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, len(src))
	copy(out, src)
	return out
}
