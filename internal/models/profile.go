// ABOUTME: UserProfile model plus the Goal and Level enums that drive generation.
// ABOUTME: Parsing accepts both canonical names and the legacy app aliases.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// Goal is the user's training goal.
type Goal string

const (
	GoalHypertrophy    Goal = "hypertrophy"
	GoalWeightLoss     Goal = "weight-loss"
	GoalEndurance      Goal = "endurance"
	GoalBeginnerHealth Goal = "beginner-health"
)

// AllGoals lists every goal in display order.
var AllGoals = []Goal{GoalHypertrophy, GoalWeightLoss, GoalEndurance, GoalBeginnerHealth}

var goalAliases = map[string]Goal{
	"hypertrophy":     GoalHypertrophy,
	"muscle":          GoalHypertrophy,
	"weight-loss":     GoalWeightLoss,
	"weight_loss":     GoalWeightLoss,
	"lose_weight":     GoalWeightLoss,
	"endurance":       GoalEndurance,
	"beginner-health": GoalBeginnerHealth,
	"health":          GoalBeginnerHealth,
}

// ParseGoal converts user input into a Goal.
func ParseGoal(s string) (Goal, error) {
	g, ok := goalAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown goal: %q", s)
	}
	return g, nil
}

// Valid reports whether g is one of the known goals.
func (g Goal) Valid() bool {
	for _, known := range AllGoals {
		if g == known {
			return true
		}
	}
	return false
}

// Level is the user's training experience.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels lists every level from least to most experienced.
var AllLevels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel converts user input into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown level: %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Weekly frequency bounds accepted by the plan selector.
const (
	MinWeeklyFrequency = 2
	MaxWeeklyFrequency = 6
)

// UserProfile is the training profile of one user.
type UserProfile struct {
	ID              uuid.UUID  `json:"id" yaml:"id"`
	Name            string     `json:"name" yaml:"name"`
	Goal            Goal       `json:"goal" yaml:"goal"`
	Level           Level      `json:"level" yaml:"level"`
	TimeAvailable   int        `json:"time_available" yaml:"time_available"`
	WeeklyFrequency int        `json:"weekly_frequency" yaml:"weekly_frequency"`
	BodyWeightKg    float64    `json:"body_weight_kg" yaml:"body_weight_kg"`
	GymID           *uuid.UUID `json:"gym_id,omitempty" yaml:"gym_id,omitempty"`
	Premium         bool       `json:"premium" yaml:"premium"`
	CreatedAt       time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" yaml:"updated_at"`
}

// NewUserProfile creates a profile with sensible defaults for a new user.
func NewUserProfile(name string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		ID:              uuid.New(),
		Name:            name,
		Goal:            GoalBeginnerHealth,
		Level:           LevelBeginner,
		TimeAvailable:   30,
		WeeklyFrequency: 3,
		BodyWeightKg:    70,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate checks that the profile can be fed to the generator and planner.
func (p *UserProfile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !p.Goal.Valid() {
		errs = append(errs, fmt.Errorf("unknown goal %q", p.Goal))
	}
	if !p.Level.Valid() {
		errs = append(errs, fmt.Errorf("unknown level %q", p.Level))
	}
	if p.TimeAvailable <= 0 {
		errs = append(errs, fmt.Errorf("time available must be positive, got %d", p.TimeAvailable))
	}
	if p.WeeklyFrequency < MinWeeklyFrequency || p.WeeklyFrequency > MaxWeeklyFrequency {
		errs = append(errs, fmt.Errorf("weekly frequency must be between %d and %d, got %d",
			MinWeeklyFrequency, MaxWeeklyFrequency, p.WeeklyFrequency))
	}
	if p.BodyWeightKg < 0 {
		errs = append(errs, fmt.Errorf("body weight cannot be negative, got %.1f", p.BodyWeightKg))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
	}
	return nil
}
