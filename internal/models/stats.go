// ABOUTME: UserStats aggregate, Achievement entries, gyms and leaderboard rows.
// ABOUTME: Stats are owned by the progress tracker; one row per user.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStats is the running aggregate of a user's completed workouts.
type UserStats struct {
	UserID              uuid.UUID  `json:"user_id" yaml:"user_id"`
	TotalWorkouts       int        `json:"total_workouts" yaml:"total_workouts"`
	TotalPoints         int        `json:"total_points" yaml:"total_points"`
	CurrentStreak       int        `json:"current_streak" yaml:"current_streak"`
	BestStreak          int        `json:"best_streak" yaml:"best_streak"`
	WeeklyPoints        int        `json:"weekly_points" yaml:"weekly_points"`
	MonthlyPoints       int        `json:"monthly_points" yaml:"monthly_points"`
	LastWorkoutDate     *time.Time `json:"last_workout_date,omitempty" yaml:"last_workout_date,omitempty"`
	WeeklyWorkoutsCount int        `json:"weekly_workouts_count" yaml:"weekly_workouts_count"`
	WeekStartDate       *time.Time `json:"week_start_date,omitempty" yaml:"week_start_date,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at" yaml:"updated_at"`
}

// ZeroStats returns the empty snapshot for a user with no workouts.
func ZeroStats(userID uuid.UUID) *UserStats {
	return &UserStats{UserID: userID}
}

// Achievement is one per-user entry of the achievement catalog.
type Achievement struct {
	ID          string     `json:"id" yaml:"id"`
	UserID      uuid.UUID  `json:"user_id" yaml:"user_id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	Earned      bool       `json:"earned" yaml:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty" yaml:"earned_at,omitempty"`
}

// Gym groups users for the leaderboard.
type Gym struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Address   string    `json:"address,omitempty" yaml:"address,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewGym creates a gym with a generated ID.
func NewGym(name, address string) *Gym {
	return &Gym{
		ID:        uuid.New(),
		Name:      name,
		Address:   address,
		CreatedAt: time.Now(),
	}
}

// RankingEntry is one row of a gym leaderboard.
type RankingEntry struct {
	UserID        uuid.UUID `json:"user_id" yaml:"user_id"`
	Name          string    `json:"name" yaml:"name"`
	Rank          int       `json:"rank" yaml:"rank"`
	TotalPoints   int       `json:"total_points" yaml:"total_points"`
	WeeklyPoints  int       `json:"weekly_points" yaml:"weekly_points"`
	MonthlyPoints int       `json:"monthly_points" yaml:"monthly_points"`
	IsCurrentUser bool      `json:"is_current_user,omitempty" yaml:"is_current_user,omitempty"`
}
