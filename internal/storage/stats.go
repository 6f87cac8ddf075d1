// ABOUTME: UserStats and Achievement persistence for SQLite storage.
// ABOUTME: Stats are one row per user; achievements are keyed by (user, achievement).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

// GetStats returns the user's stats, or a zero snapshot if none are stored.
func (d *DB) GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	query := `
		SELECT total_workouts, total_points, current_streak, best_streak, weekly_points,
			monthly_points, last_workout_date, weekly_workouts_count, week_start_date, updated_at
		FROM user_stats
		WHERE user_id = ?
	`
	s := models.UserStats{UserID: userID}
	var lastWorkout, weekStart sql.NullString
	var updatedAt string

	err := d.db.QueryRowContext(ctx, query, userID.String()).Scan(
		&s.TotalWorkouts, &s.TotalPoints, &s.CurrentStreak, &s.BestStreak, &s.WeeklyPoints,
		&s.MonthlyPoints, &lastWorkout, &s.WeeklyWorkoutsCount, &weekStart, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ZeroStats(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	s.LastWorkoutDate = parseNullTime(lastWorkout)
	s.WeekStartDate = parseNullTime(weekStart)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}

// SaveStats writes the user's stats snapshot.
func (d *DB) SaveStats(ctx context.Context, s *models.UserStats) error {
	query := `
		INSERT INTO user_stats (user_id, total_workouts, total_points, current_streak, best_streak,
			weekly_points, monthly_points, last_workout_date, weekly_workouts_count, week_start_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_workouts = excluded.total_workouts,
			total_points = excluded.total_points,
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			weekly_points = excluded.weekly_points,
			monthly_points = excluded.monthly_points,
			last_workout_date = excluded.last_workout_date,
			weekly_workouts_count = excluded.weekly_workouts_count,
			week_start_date = excluded.week_start_date,
			updated_at = excluded.updated_at
	`
	_, err := d.db.ExecContext(ctx, query,
		s.UserID.String(),
		s.TotalWorkouts,
		s.TotalPoints,
		s.CurrentStreak,
		s.BestStreak,
		s.WeeklyPoints,
		s.MonthlyPoints,
		nullTime(s.LastWorkoutDate),
		s.WeeklyWorkoutsCount,
		nullTime(s.WeekStartDate),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// ListAchievements returns a user's stored achievements ordered by ID.
func (d *DB) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	query := `
		SELECT achievement_id, user_id, name, description, icon, earned, earned_at
		FROM achievements
		WHERE user_id = ?
		ORDER BY achievement_id ASC
	`
	rows, err := d.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []*models.Achievement
	for rows.Next() {
		var a models.Achievement
		var userIDStr string
		var description, icon, earnedAt sql.NullString

		if err := rows.Scan(&a.ID, &userIDStr, &a.Name, &description, &icon, &a.Earned, &earnedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		a.UserID, _ = uuid.Parse(userIDStr)
		a.Description = description.String
		a.Icon = icon.String
		a.EarnedAt = parseNullTime(earnedAt)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// SaveAchievements upserts achievements in a single transaction.
func (d *DB) SaveAchievements(ctx context.Context, as []*models.Achievement) error {
	if len(as) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO achievements (user_id, achievement_id, name, description, icon, earned, earned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, achievement_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			icon = excluded.icon,
			earned = excluded.earned,
			earned_at = excluded.earned_at
	`
	for _, a := range as {
		if _, err := tx.ExecContext(ctx, query,
			a.UserID.String(), a.ID, a.Name, a.Description, a.Icon, a.Earned, nullTime(a.EarnedAt),
		); err != nil {
			return fmt.Errorf("save achievement %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit achievements: %w", err)
	}
	return nil
}
