// ABOUTME: Workout, stats and achievement queries for the Postgres backend.
// ABOUTME: Exercises live in a JSONB column; achievements upsert inside one transaction.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/jackc/pgx/v5"
)

const pgWorkoutColumns = `id, user_id, date, plan, exercises, duration_minutes, points, calories,
	completed, start_time, end_time, created_at`

// SaveWorkout inserts a workout or replaces the stored copy with the same ID.
func (db *Postgres) SaveWorkout(ctx context.Context, w *models.Workout) error {
	exercises, err := json.Marshal(exercisesOrEmpty(w.Exercises))
	if err != nil {
		return fmt.Errorf("marshaling exercises: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO workouts (`+pgWorkoutColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date, plan = EXCLUDED.plan, exercises = EXCLUDED.exercises,
			duration_minutes = EXCLUDED.duration_minutes, points = EXCLUDED.points,
			calories = EXCLUDED.calories, completed = EXCLUDED.completed,
			start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time`,
		w.ID, w.UserID, w.Date, string(w.Plan), exercises, w.DurationMinutes, w.Points,
		w.Calories, w.Completed, w.StartTime, w.EndTime, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving workout: %w", err)
	}
	return nil
}

// GetWorkout retrieves a workout by ID or ID prefix.
func (db *Postgres) GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	id, err := db.resolveID(ctx, "workouts", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := db.Pool.QueryRow(ctx, `SELECT `+pgWorkoutColumns+` FROM workouts WHERE id = $1`, id)
	w, err := scanPgWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return w, err
}

// ListWorkouts retrieves a user's workouts, most recent first.
// A nil userID lists every user's workouts.
func (db *Postgres) ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Workout, error) {
	var filter *uuid.UUID
	if userID != uuid.Nil {
		filter = &userID
	}

	query := `SELECT ` + pgWorkoutColumns + ` FROM workouts
		WHERE $1::uuid IS NULL OR user_id = $1
		ORDER BY date DESC, created_at DESC`
	args := []any{filter}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var out []*models.Workout
	for rows.Next() {
		w, err := scanPgWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteWorkout removes a workout by ID or prefix.
func (db *Postgres) DeleteWorkout(ctx context.Context, idOrPrefix string) error {
	id, err := db.resolveID(ctx, "workouts", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	tag, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

// GetStats returns the user's stats, or a zero snapshot if none are stored.
func (db *Postgres) GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	s := models.UserStats{UserID: userID}
	err := db.Pool.QueryRow(ctx, `
		SELECT total_workouts, total_points, current_streak, best_streak, weekly_points,
			monthly_points, last_workout_date, weekly_workouts_count, week_start_date, updated_at
		FROM user_stats WHERE user_id = $1`, userID).Scan(
		&s.TotalWorkouts, &s.TotalPoints, &s.CurrentStreak, &s.BestStreak, &s.WeeklyPoints,
		&s.MonthlyPoints, &s.LastWorkoutDate, &s.WeeklyWorkoutsCount, &s.WeekStartDate, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ZeroStats(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	return &s, nil
}

// SaveStats writes the user's stats snapshot.
func (db *Postgres) SaveStats(ctx context.Context, s *models.UserStats) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO user_stats (user_id, total_workouts, total_points, current_streak, best_streak,
			weekly_points, monthly_points, last_workout_date, weekly_workouts_count, week_start_date, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (user_id) DO UPDATE SET
			total_workouts = EXCLUDED.total_workouts, total_points = EXCLUDED.total_points,
			current_streak = EXCLUDED.current_streak, best_streak = EXCLUDED.best_streak,
			weekly_points = EXCLUDED.weekly_points, monthly_points = EXCLUDED.monthly_points,
			last_workout_date = EXCLUDED.last_workout_date,
			weekly_workouts_count = EXCLUDED.weekly_workouts_count,
			week_start_date = EXCLUDED.week_start_date, updated_at = EXCLUDED.updated_at`,
		s.UserID, s.TotalWorkouts, s.TotalPoints, s.CurrentStreak, s.BestStreak, s.WeeklyPoints,
		s.MonthlyPoints, s.LastWorkoutDate, s.WeeklyWorkoutsCount, s.WeekStartDate, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving stats: %w", err)
	}
	return nil
}

// ListAchievements returns a user's stored achievements ordered by ID.
func (db *Postgres) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT achievement_id, user_id, name, description, icon, earned, earned_at
		FROM achievements WHERE user_id = $1
		ORDER BY achievement_id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	var out []*models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Description, &a.Icon, &a.Earned, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// SaveAchievements upserts achievements in a single transaction.
func (db *Postgres) SaveAchievements(ctx context.Context, as []*models.Achievement) error {
	if len(as) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, a := range as {
		_, err := tx.Exec(ctx, `
			INSERT INTO achievements (user_id, achievement_id, name, description, icon, earned, earned_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (user_id, achievement_id) DO UPDATE SET
				name = EXCLUDED.name, description = EXCLUDED.description, icon = EXCLUDED.icon,
				earned = EXCLUDED.earned, earned_at = EXCLUDED.earned_at`,
			a.UserID, a.ID, a.Name, a.Description, a.Icon, a.Earned, a.EarnedAt)
		if err != nil {
			return fmt.Errorf("saving achievement %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing achievements: %w", err)
	}
	return nil
}

func scanPgWorkout(row pgx.Row) (*models.Workout, error) {
	var w models.Workout
	var plan string
	var exercises []byte

	err := row.Scan(&w.ID, &w.UserID, &w.Date, &plan, &exercises, &w.DurationMinutes, &w.Points,
		&w.Calories, &w.Completed, &w.StartTime, &w.EndTime, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning workout: %w", err)
	}

	w.Plan = models.PlanType(plan)
	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshaling exercises for workout %s: %w", w.ID, err)
	}
	return &w, nil
}
