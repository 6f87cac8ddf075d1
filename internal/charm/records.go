// ABOUTME: Profile, workout, stats, achievement and gym operations for Charm KV storage.
// ABOUTME: Values are JSON; filtering and ordering happen client-side since KV has no indexes.
package charm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/harperreed/fitrank/internal/storage"
)

func achievementKey(userID uuid.UUID, id string) string {
	return AchievementPrefix + userID.String() + ":" + id
}

// SaveProfile stores a profile, replacing any existing copy.
func (c *Client) SaveProfile(_ context.Context, p *models.UserProfile) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.set(ProfilePrefix+p.ID.String(), data)
}

// GetProfile retrieves a profile by ID or ID prefix.
func (c *Client) GetProfile(_ context.Context, idOrPrefix string) (*models.UserProfile, error) {
	data, err := c.getByIDPrefix(ProfilePrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p, err := unmarshalJSON[models.UserProfile](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns profiles ordered by name, optionally only one gym's members.
func (c *Client) ListProfiles(_ context.Context, gymID *uuid.UUID) ([]*models.UserProfile, error) {
	allData, err := c.listByPrefix(ProfilePrefix)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var profiles []*models.UserProfile
	for _, data := range allData {
		p, err := unmarshalJSON[models.UserProfile](data)
		if err != nil {
			continue
		}
		if gymID != nil && (p.GymID == nil || *p.GymID != *gymID) {
			continue
		}
		profiles = append(profiles, p)
	}

	slices.SortFunc(profiles, func(a, b *models.UserProfile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return profiles, nil
}

// SaveWorkout stores a workout, replacing any existing copy.
func (c *Client) SaveWorkout(_ context.Context, w *models.Workout) error {
	data, err := marshalJSON(w)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}
	return c.set(WorkoutPrefix+w.ID.String(), data)
}

// GetWorkout retrieves a workout by ID or ID prefix.
func (c *Client) GetWorkout(_ context.Context, idOrPrefix string) (*models.Workout, error) {
	data, err := c.getByIDPrefix(WorkoutPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	w, err := unmarshalJSON[models.Workout](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal workout: %w", err)
	}
	if w.Exercises == nil {
		w.Exercises = []models.GeneratedExercise{}
	}
	return w, nil
}

// ListWorkouts retrieves a user's workouts, most recent first.
// A nil userID lists every user's workouts.
func (c *Client) ListWorkouts(_ context.Context, userID uuid.UUID, limit int) ([]*models.Workout, error) {
	allData, err := c.listByPrefix(WorkoutPrefix)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	var workouts []*models.Workout
	for _, data := range allData {
		w, err := unmarshalJSON[models.Workout](data)
		if err != nil {
			continue
		}
		if userID != uuid.Nil && w.UserID != userID {
			continue
		}
		if w.Exercises == nil {
			w.Exercises = []models.GeneratedExercise{}
		}
		workouts = append(workouts, w)
	}

	slices.SortFunc(workouts, func(a, b *models.Workout) int {
		if n := b.Date.Compare(a.Date); n != 0 {
			return n
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

// DeleteWorkout removes a workout by ID or prefix.
func (c *Client) DeleteWorkout(_ context.Context, idOrPrefix string) error {
	if err := c.deleteByIDPrefix(WorkoutPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// GetStats returns the user's stats, or a zero snapshot if none are stored.
func (c *Client) GetStats(_ context.Context, userID uuid.UUID) (*models.UserStats, error) {
	data, err := c.get(StatsPrefix + userID.String())
	if errors.Is(err, storage.ErrNotFound) {
		return models.ZeroStats(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	s, err := unmarshalJSON[models.UserStats](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return s, nil
}

// SaveStats writes the user's stats snapshot.
func (c *Client) SaveStats(_ context.Context, s *models.UserStats) error {
	data, err := marshalJSON(s)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	return c.set(StatsPrefix+s.UserID.String(), data)
}

// ListAchievements returns a user's stored achievements ordered by ID.
func (c *Client) ListAchievements(_ context.Context, userID uuid.UUID) ([]*models.Achievement, error) {
	allData, err := c.listByPrefix(AchievementPrefix + userID.String() + ":")
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	var out []*models.Achievement
	for _, data := range allData {
		a, err := unmarshalJSON[models.Achievement](data)
		if err != nil {
			continue
		}
		out = append(out, a)
	}

	slices.SortFunc(out, func(a, b *models.Achievement) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// SaveAchievements upserts achievements with a single sync.
func (c *Client) SaveAchievements(_ context.Context, as []*models.Achievement) error {
	if len(as) == 0 {
		return nil
	}

	entries := make(map[string][]byte, len(as))
	for _, a := range as {
		data, err := marshalJSON(a)
		if err != nil {
			return fmt.Errorf("marshal achievement %s: %w", a.ID, err)
		}
		entries[achievementKey(a.UserID, a.ID)] = data
	}
	return c.setMany(entries)
}

// SaveGym stores a gym, replacing any existing copy.
func (c *Client) SaveGym(_ context.Context, g *models.Gym) error {
	data, err := marshalJSON(g)
	if err != nil {
		return fmt.Errorf("marshal gym: %w", err)
	}
	return c.set(GymPrefix+g.ID.String(), data)
}

// GetGym retrieves a gym by ID or ID prefix.
func (c *Client) GetGym(_ context.Context, idOrPrefix string) (*models.Gym, error) {
	data, err := c.getByIDPrefix(GymPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get gym: %w", err)
	}

	g, err := unmarshalJSON[models.Gym](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal gym: %w", err)
	}
	return g, nil
}

// ListGyms returns all gyms ordered by name.
func (c *Client) ListGyms(_ context.Context) ([]*models.Gym, error) {
	allData, err := c.listByPrefix(GymPrefix)
	if err != nil {
		return nil, fmt.Errorf("list gyms: %w", err)
	}

	var gyms []*models.Gym
	for _, data := range allData {
		g, err := unmarshalJSON[models.Gym](data)
		if err != nil {
			continue
		}
		gyms = append(gyms, g)
	}

	slices.SortFunc(gyms, func(a, b *models.Gym) int {
		return strings.Compare(a.Name, b.Name)
	})
	return gyms, nil
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData(ctx context.Context) (*storage.ExportData, error) {
	return storage.CollectAll(ctx, c)
}

// ImportData imports data from an export document.
func (c *Client) ImportData(ctx context.Context, data *storage.ExportData) error {
	return storage.ImportAll(ctx, c, data)
}
