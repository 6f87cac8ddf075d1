// ABOUTME: Exercise catalog entries, generated exercise instances, and split plans.
// ABOUTME: Catalog types are value types; only GeneratedExercise carries mutable state.
package models

import (
	"strconv"

	"github.com/google/uuid"
)

// MuscleGroup is the primary target of an exercise.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleAbs       MuscleGroup = "abs"
)

// Exercise is an immutable catalog entry.
type Exercise struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	MuscleGroup MuscleGroup `json:"muscle_group" yaml:"muscle_group"`
	Sets        int         `json:"sets" yaml:"sets"`
	Reps        int         `json:"reps" yaml:"reps"`
	RepsMax     int         `json:"reps_max,omitempty" yaml:"reps_max,omitempty"` // range upper bound when > Reps
	RestSeconds int         `json:"rest_seconds" yaml:"rest_seconds"`
}

// RepRange returns the prescribed reps as a display string.
func (e Exercise) RepRange() string {
	if e.RepsMax > e.Reps {
		return strconv.Itoa(e.Reps) + "-" + strconv.Itoa(e.RepsMax)
	}
	return strconv.Itoa(e.Reps)
}

// GeneratedExercise is an exercise placed in one workout.
type GeneratedExercise struct {
	Exercise   `yaml:",inline"`
	InstanceID uuid.UUID `json:"instance_id" yaml:"instance_id"`
	Completed  bool      `json:"completed" yaml:"completed"`
}

// NewGeneratedExercise stamps a catalog exercise for use in a workout.
func NewGeneratedExercise(e Exercise) GeneratedExercise {
	return GeneratedExercise{
		Exercise:   e,
		InstanceID: uuid.New(),
	}
}

// PlanType names a weekly split.
type PlanType string

const (
	PlanFullBody   PlanType = "full-body"
	PlanUpperLower PlanType = "upper-lower"
	PlanThreeDay   PlanType = "3-day-split"
	PlanFourDay    PlanType = "4-day-split"
)

// PlanDay is one named day of a split.
type PlanDay struct {
	Name      string     `json:"name" yaml:"name"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

// WorkoutPlan is a statically defined weekly split.
type WorkoutPlan struct {
	Type        PlanType  `json:"type" yaml:"type"`
	Name        string    `json:"name" yaml:"name"`
	DaysPerWeek int       `json:"days_per_week" yaml:"days_per_week"`
	Days        []PlanDay `json:"days" yaml:"days"`
}
