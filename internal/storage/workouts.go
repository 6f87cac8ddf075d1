// ABOUTME: Workout CRUD operations for SQLite storage.
// ABOUTME: Generated exercises are stored as a JSON column on the workout row.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

const workoutColumns = `id, user_id, date, plan, exercises, duration_minutes, points, calories,
	completed, start_time, end_time, created_at`

// SaveWorkout inserts a workout or replaces the stored copy with the same ID.
func (d *DB) SaveWorkout(ctx context.Context, w *models.Workout) error {
	exercises, err := json.Marshal(exercisesOrEmpty(w.Exercises))
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	query := `
		INSERT INTO workouts (` + workoutColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			plan = excluded.plan,
			exercises = excluded.exercises,
			duration_minutes = excluded.duration_minutes,
			points = excluded.points,
			calories = excluded.calories,
			completed = excluded.completed,
			start_time = excluded.start_time,
			end_time = excluded.end_time
	`
	_, err = d.db.ExecContext(ctx, query,
		w.ID.String(),
		w.UserID.String(),
		formatTime(w.Date),
		string(w.Plan),
		string(exercises),
		w.DurationMinutes,
		w.Points,
		w.Calories,
		w.Completed,
		nullTime(w.StartTime),
		nullTime(w.EndTime),
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	return nil
}

// GetWorkout retrieves a workout by ID or ID prefix.
func (d *DB) GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	id, err := d.resolveID(ctx, "workouts", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ?`
	w, err := scanWorkout(d.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return w, err
}

// ListWorkouts retrieves a user's workouts, most recent first.
// A nil userID lists every user's workouts.
func (d *DB) ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts`
	var args []any
	if userID != uuid.Nil {
		query += ` WHERE user_id = ?`
		args = append(args, userID.String())
	}
	query += ` ORDER BY date DESC, created_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// DeleteWorkout removes a workout by ID or prefix.
func (d *DB) DeleteWorkout(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolveID(ctx, "workouts", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	result, err := d.db.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(s scanner) (*models.Workout, error) {
	var w models.Workout
	var idStr, userIDStr, date, exercises, createdAt string
	var plan, startTime, endTime sql.NullString

	err := s.Scan(&idStr, &userIDStr, &date, &plan, &exercises, &w.DurationMinutes, &w.Points,
		&w.Calories, &w.Completed, &startTime, &endTime, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.UserID, _ = uuid.Parse(userIDStr)
	w.Date = parseTime(date)
	w.Plan = models.PlanType(plan.String)
	w.StartTime = parseNullTime(startTime)
	w.EndTime = parseNullTime(endTime)
	w.CreatedAt = parseTime(createdAt)

	if err := json.Unmarshal([]byte(exercises), &w.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises for workout %s: %w", idStr, err)
	}

	return &w, nil
}

func exercisesOrEmpty(es []models.GeneratedExercise) []models.GeneratedExercise {
	if es == nil {
		return []models.GeneratedExercise{}
	}
	return es
}

// timeLayout is fixed width so stored timestamps sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

func nullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func parseNullUUID(s sql.NullString) *uuid.UUID {
	if !s.Valid || s.String == "" {
		return nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil
	}
	return &id
}
