// ABOUTME: Repository interface for fitrank data storage.
// ABOUTME: Defines the contract for profiles, workouts, stats, achievements and gyms.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an ID prefix matches several records.
	ErrAmbiguous = errors.New("ambiguous prefix")
	// ErrReadOnly is returned by backends opened without write access.
	ErrReadOnly = errors.New("storage is read-only")
)

// Repository defines the storage interface for fitrank data.
// Every backend (SQLite, Postgres, Charm KV) implements it.
type Repository interface {
	// Profile operations
	SaveProfile(ctx context.Context, p *models.UserProfile) error
	GetProfile(ctx context.Context, idOrPrefix string) (*models.UserProfile, error)
	ListProfiles(ctx context.Context, gymID *uuid.UUID) ([]*models.UserProfile, error)

	// Workout operations. SaveWorkout inserts or replaces by ID.
	SaveWorkout(ctx context.Context, w *models.Workout) error
	GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Workout, error)
	DeleteWorkout(ctx context.Context, idOrPrefix string) error

	// Stats operations. GetStats returns a zero snapshot for unknown users.
	GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
	SaveStats(ctx context.Context, s *models.UserStats) error

	// Achievement operations
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, error)
	SaveAchievements(ctx context.Context, as []*models.Achievement) error

	// Gym operations
	SaveGym(ctx context.Context, g *models.Gym) error
	GetGym(ctx context.Context, idOrPrefix string) (*models.Gym, error)
	ListGyms(ctx context.Context) ([]*models.Gym, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}

// IsFullID reports whether s is a complete UUID rather than a prefix.
func IsFullID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}
