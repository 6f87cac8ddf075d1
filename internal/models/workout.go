// ABOUTME: Workout session model holding generated exercises and the scored result.
// ABOUTME: A workout is in progress until Completed is set, then it is immutable.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout represents one training session.
type Workout struct {
	ID              uuid.UUID           `json:"id" yaml:"id"`
	UserID          uuid.UUID           `json:"user_id" yaml:"user_id"`
	Date            time.Time           `json:"date" yaml:"date"`
	Plan            PlanType            `json:"plan,omitempty" yaml:"plan,omitempty"`
	Exercises       []GeneratedExercise `json:"exercises" yaml:"exercises"`
	DurationMinutes int                 `json:"duration_minutes" yaml:"duration_minutes"`
	Points          int                 `json:"points" yaml:"points"`
	Calories        int                 `json:"calories" yaml:"calories"`
	Completed       bool                `json:"completed" yaml:"completed"`
	StartTime       *time.Time          `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime         *time.Time          `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	CreatedAt       time.Time           `json:"created_at" yaml:"created_at"`
}

// NewWorkout creates an in-progress workout for the given exercises.
func NewWorkout(userID uuid.UUID, exercises []GeneratedExercise) *Workout {
	now := time.Now()
	return &Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      now,
		Exercises: exercises,
		StartTime: &now,
		CreatedAt: now,
	}
}

// WithPlan records which split the session was generated under.
func (w *Workout) WithPlan(p PlanType) *Workout {
	w.Plan = p
	return w
}

// WithStartTime sets a custom start timestamp; Date follows it.
func (w *Workout) WithStartTime(t time.Time) *Workout {
	w.StartTime = &t
	w.Date = t
	return w
}

// CompletedCount returns how many exercises have been checked off.
func (w *Workout) CompletedCount() int {
	n := 0
	for _, e := range w.Exercises {
		if e.Completed {
			n++
		}
	}
	return n
}

// AllCompleted reports whether every exercise has been checked off.
// A workout without exercises is never complete.
func (w *Workout) AllCompleted() bool {
	return len(w.Exercises) > 0 && w.CompletedCount() == len(w.Exercises)
}
