// ABOUTME: Data migration between fitrank storage backends.
// ABOUTME: Copies gyms, profiles, stats, achievements and workouts from source to destination.
package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Gyms         int
	Profiles     int
	Stats        int
	Achievements int
	Workouts     int
}

// MigrateData copies all data from src to dst storage. Records already in
// dst with the same IDs are overwritten.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if err := dst.ImportData(ctx, data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	return &MigrateSummary{
		Gyms:         len(data.Gyms),
		Profiles:     len(data.Profiles),
		Stats:        len(data.Stats),
		Achievements: len(data.Achievements),
		Workouts:     len(data.Workouts),
	}, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
