// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Copies a populated SQLite database into an empty one and compares.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMigrateData(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	p, w := seedTestData(t, src)

	dst := setupTestDB(t)
	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	want := MigrateSummary{Gyms: 1, Profiles: 1, Stats: 1, Achievements: 2, Workouts: 1}
	if *summary != want {
		t.Errorf("summary = %+v, want %+v", *summary, want)
	}

	if _, err := dst.GetProfile(ctx, p.ID.String()); err != nil {
		t.Errorf("profile not migrated: %v", err)
	}
	got, err := dst.GetWorkout(ctx, w.ID.String())
	if err != nil {
		t.Fatalf("workout not migrated: %v", err)
	}
	if got.Exercises[0].InstanceID != w.Exercises[0].InstanceID {
		t.Error("exercise instance IDs changed during migration")
	}

	as, err := dst.ListAchievements(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListAchievements failed: %v", err)
	}
	earned := 0
	for _, a := range as {
		if a.Earned {
			earned++
		}
	}
	if earned != 1 {
		t.Errorf("earned achievements = %d, want 1", earned)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(context.Background(), setupTestDB(t), setupTestDB(t))
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if *summary != (MigrateSummary{}) {
		t.Errorf("summary = %+v, want zero", *summary)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsDirNonEmpty(dir)
	if err != nil || empty {
		t.Errorf("empty dir: got %v, %v", empty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "fitrank.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	full, err := IsDirNonEmpty(dir)
	if err != nil || !full {
		t.Errorf("non-empty dir: got %v, %v", full, err)
	}

	missing, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || missing {
		t.Errorf("missing dir: got %v, %v", missing, err)
	}
}
