// ABOUTME: Export and import functionality for fitrank data.
// ABOUTME: Supports a full JSON document and a human-readable YAML summary.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export document version.
const ExportVersion = "1.0"

// ExportData represents the full export format for fitrank data.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Gyms         []*models.Gym         `json:"gyms" yaml:"gyms"`
	Profiles     []*models.UserProfile `json:"profiles" yaml:"profiles"`
	Stats        []*models.UserStats   `json:"stats" yaml:"stats"`
	Achievements []*models.Achievement `json:"achievements" yaml:"achievements"`
	Workouts     []*models.Workout     `json:"workouts" yaml:"workouts"`
}

// CollectAll reads every record from r through its list methods.
func CollectAll(ctx context.Context, r Repository) (*ExportData, error) {
	gyms, err := r.ListGyms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gyms: %w", err)
	}

	profiles, err := r.ListProfiles(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	data := &ExportData{
		Version:      ExportVersion,
		ExportedAt:   time.Now(),
		Tool:         "fitrank",
		Gyms:         orEmpty(gyms),
		Profiles:     orEmpty(profiles),
		Stats:        []*models.UserStats{},
		Achievements: []*models.Achievement{},
	}

	for _, p := range profiles {
		stats, err := r.GetStats(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("get stats for %s: %w", p.ID, err)
		}
		data.Stats = append(data.Stats, stats)

		as, err := r.ListAchievements(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list achievements for %s: %w", p.ID, err)
		}
		data.Achievements = append(data.Achievements, as...)
	}

	workouts, err := r.ListWorkouts(ctx, uuid.Nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	data.Workouts = orEmpty(workouts)

	return data, nil
}

// ImportAll writes data into r in dependency order: gyms, profiles, stats,
// achievements, workouts. Existing records with the same IDs are replaced.
func ImportAll(ctx context.Context, r Repository, data *ExportData) error {
	for _, g := range data.Gyms {
		if err := r.SaveGym(ctx, g); err != nil {
			return fmt.Errorf("import gym: %w", err)
		}
	}
	for _, p := range data.Profiles {
		if err := r.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	for _, s := range data.Stats {
		if err := r.SaveStats(ctx, s); err != nil {
			return fmt.Errorf("import stats: %w", err)
		}
	}
	if err := r.SaveAchievements(ctx, data.Achievements); err != nil {
		return fmt.Errorf("import achievements: %w", err)
	}
	for _, w := range data.Workouts {
		if err := r.SaveWorkout(ctx, w); err != nil {
			return fmt.Errorf("import workout: %w", err)
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	return CollectAll(ctx, d)
}

// ImportData imports data from an export document.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	return ImportAll(ctx, d, data)
}

// ExportJSON exports all data as indented JSON.
func ExportJSON(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, r Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	if data.Version != "" && data.Version != ExportVersion {
		return fmt.Errorf("unsupported export version %q", data.Version)
	}
	return r.ImportData(ctx, &data)
}

// ExportYAML exports a per-user summary as YAML.
func ExportYAML(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	gymNames := make(map[uuid.UUID]string, len(data.Gyms))
	for _, g := range data.Gyms {
		gymNames[g.ID] = g.Name
	}
	stats := make(map[uuid.UUID]*models.UserStats, len(data.Stats))
	for _, s := range data.Stats {
		stats[s.UserID] = s
	}
	earned := make(map[uuid.UUID][]string)
	for _, a := range data.Achievements {
		if a.Earned {
			earned[a.UserID] = append(earned[a.UserID], a.ID)
		}
	}
	workouts := make(map[uuid.UUID][]yamlWorkout)
	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:        w.ID.String()[:8],
			Date:      w.Date.Format(time.RFC3339),
			Plan:      string(w.Plan),
			Completed: w.Completed,
			Duration:  w.DurationMinutes,
			Points:    w.Points,
			Calories:  w.Calories,
		}
		for _, e := range w.Exercises {
			yw.Exercises = append(yw.Exercises, e.Name)
		}
		workouts[w.UserID] = append(workouts[w.UserID], yw)
	}

	doc := yamlExport{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make([]yamlUser, 0, len(data.Profiles)),
	}
	for _, p := range data.Profiles {
		yu := yamlUser{
			ID:           p.ID.String()[:8],
			Name:         p.Name,
			Goal:         string(p.Goal),
			Level:        string(p.Level),
			Frequency:    p.WeeklyFrequency,
			Premium:      p.Premium,
			Achievements: earned[p.ID],
			Workouts:     workouts[p.ID],
		}
		if p.GymID != nil {
			yu.Gym = gymNames[*p.GymID]
		}
		if s, ok := stats[p.ID]; ok {
			yu.Stats = &yamlStats{
				TotalWorkouts: s.TotalWorkouts,
				TotalPoints:   s.TotalPoints,
				CurrentStreak: s.CurrentStreak,
				BestStreak:    s.BestStreak,
				MonthlyPoints: s.MonthlyPoints,
			}
		}
		doc.Users = append(doc.Users, yu)
	}

	return yaml.Marshal(doc)
}

type yamlExport struct {
	Version    string     `yaml:"version"`
	ExportedAt string     `yaml:"exported_at"`
	Tool       string     `yaml:"tool"`
	Users      []yamlUser `yaml:"users"`
}

type yamlUser struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Goal         string        `yaml:"goal"`
	Level        string        `yaml:"level"`
	Frequency    int           `yaml:"weekly_frequency"`
	Gym          string        `yaml:"gym,omitempty"`
	Premium      bool          `yaml:"premium,omitempty"`
	Stats        *yamlStats    `yaml:"stats,omitempty"`
	Achievements []string      `yaml:"achievements,omitempty"`
	Workouts     []yamlWorkout `yaml:"workouts,omitempty"`
}

type yamlStats struct {
	TotalWorkouts int `yaml:"total_workouts"`
	TotalPoints   int `yaml:"total_points"`
	CurrentStreak int `yaml:"current_streak"`
	BestStreak    int `yaml:"best_streak"`
	MonthlyPoints int `yaml:"monthly_points"`
}

type yamlWorkout struct {
	ID        string   `yaml:"id"`
	Date      string   `yaml:"date"`
	Plan      string   `yaml:"plan,omitempty"`
	Completed bool     `yaml:"completed"`
	Duration  int      `yaml:"duration_minutes,omitempty"`
	Points    int      `yaml:"points,omitempty"`
	Calories  int      `yaml:"calories,omitempty"`
	Exercises []string `yaml:"exercises,omitempty"`
}

func orEmpty[T any](s []*T) []*T {
	if s == nil {
		return []*T{}
	}
	return s
}
