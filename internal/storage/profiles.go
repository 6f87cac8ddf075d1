// ABOUTME: Profile and gym CRUD operations for SQLite storage.
// ABOUTME: Resolves 8-char ID prefixes the same way as workouts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

const profileColumns = `id, name, goal, level, time_available, weekly_frequency, body_weight_kg,
	gym_id, premium, created_at, updated_at`

// SaveProfile inserts or updates a profile.
func (d *DB) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			goal = excluded.goal,
			level = excluded.level,
			time_available = excluded.time_available,
			weekly_frequency = excluded.weekly_frequency,
			body_weight_kg = excluded.body_weight_kg,
			gym_id = excluded.gym_id,
			premium = excluded.premium,
			updated_at = excluded.updated_at
	`
	_, err := d.db.ExecContext(ctx, query,
		p.ID.String(),
		p.Name,
		string(p.Goal),
		string(p.Level),
		p.TimeAvailable,
		p.WeeklyFrequency,
		p.BodyWeightKg,
		nullUUID(p.GymID),
		p.Premium,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID or ID prefix.
func (d *DB) GetProfile(ctx context.Context, idOrPrefix string) (*models.UserProfile, error) {
	id, err := d.resolveID(ctx, "profiles", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	p, err := scanProfile(d.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return p, err
}

// ListProfiles returns profiles ordered by name, optionally only one gym's members.
func (d *DB) ListProfiles(ctx context.Context, gymID *uuid.UUID) ([]*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	var args []any
	if gymID != nil {
		query += ` WHERE gym_id = ?`
		args = append(args, gymID.String())
	}
	query += ` ORDER BY name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// SaveGym inserts or updates a gym.
func (d *DB) SaveGym(ctx context.Context, g *models.Gym) error {
	query := `
		INSERT INTO gyms (id, name, address, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, address = excluded.address
	`
	_, err := d.db.ExecContext(ctx, query, g.ID.String(), g.Name, g.Address, formatTime(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("save gym: %w", err)
	}
	return nil
}

// GetGym retrieves a gym by ID or ID prefix.
func (d *DB) GetGym(ctx context.Context, idOrPrefix string) (*models.Gym, error) {
	id, err := d.resolveID(ctx, "gyms", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRowContext(ctx, `SELECT id, name, address, created_at FROM gyms WHERE id = ?`, id)
	g, err := scanGym(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return g, err
}

// ListGyms returns all gyms ordered by name.
func (d *DB) ListGyms(ctx context.Context) ([]*models.Gym, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name, address, created_at FROM gyms ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list gyms: %w", err)
	}
	defer rows.Close()

	var gyms []*models.Gym
	for rows.Next() {
		g, err := scanGym(rows)
		if err != nil {
			return nil, err
		}
		gyms = append(gyms, g)
	}
	return gyms, rows.Err()
}

// resolveID finds the full ID in table from a prefix.
func (d *DB) resolveID(ctx context.Context, table, idOrPrefix string) (string, error) {
	if IsFullID(idOrPrefix) {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	// table is always one of our own constants.
	query := `SELECT id FROM ` + table + ` WHERE id LIKE ? || '%' LIMIT 2`
	rows, err := d.db.QueryContext(ctx, query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s ID: %w", table, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguous, idOrPrefix)
	}
	return matches[0], nil
}

func scanProfile(s scanner) (*models.UserProfile, error) {
	var p models.UserProfile
	var idStr, goal, level, createdAt, updatedAt string
	var gymID sql.NullString

	err := s.Scan(&idStr, &p.Name, &goal, &level, &p.TimeAvailable, &p.WeeklyFrequency,
		&p.BodyWeightKg, &gymID, &p.Premium, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.Goal = models.Goal(goal)
	p.Level = models.Level(level)
	p.GymID = parseNullUUID(gymID)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func scanGym(s scanner) (*models.Gym, error) {
	var g models.Gym
	var idStr, createdAt string
	var address sql.NullString

	if err := s.Scan(&idStr, &g.Name, &address, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan gym: %w", err)
	}

	g.ID, _ = uuid.Parse(idStr)
	g.Address = address.String
	g.CreatedAt = parseTime(createdAt)
	return &g, nil
}
