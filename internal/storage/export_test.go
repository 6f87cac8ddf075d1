// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies the JSON document, the YAML summary, and import into a fresh database.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
	"gopkg.in/yaml.v3"
)

// seedTestData writes one gym, one member with stats, an achievement and a workout.
func seedTestData(t *testing.T, r Repository) (*models.UserProfile, *models.Workout) {
	t.Helper()
	ctx := context.Background()

	gym := models.NewGym("Iron Temple", "Rua A, 10")
	if err := r.SaveGym(ctx, gym); err != nil {
		t.Fatalf("SaveGym failed: %v", err)
	}

	p := models.NewUserProfile("Ana")
	p.GymID = &gym.ID
	if err := r.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	last := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	stats := &models.UserStats{UserID: p.ID, TotalWorkouts: 1, TotalPoints: 330, CurrentStreak: 1,
		BestStreak: 1, WeeklyPoints: 330, MonthlyPoints: 330, LastWorkoutDate: &last,
		WeeklyWorkoutsCount: 1, UpdatedAt: last}
	if err := r.SaveStats(ctx, stats); err != nil {
		t.Fatalf("SaveStats failed: %v", err)
	}

	if err := r.SaveAchievements(ctx, []*models.Achievement{
		{ID: "first-workout", UserID: p.ID, Name: "First Workout", Earned: true, EarnedAt: &last},
		{ID: "streak-7", UserID: p.ID, Name: "Full Week"},
	}); err != nil {
		t.Fatalf("SaveAchievements failed: %v", err)
	}

	w := models.NewWorkout(p.ID, sampleExercises()).WithStartTime(last)
	w.Completed = true
	w.Points = 330
	if err := r.SaveWorkout(ctx, w); err != nil {
		t.Fatalf("SaveWorkout failed: %v", err)
	}

	return p, w
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedTestData(t, db)

	raw, err := ExportJSON(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(raw, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if export.Tool != "fitrank" {
		t.Errorf("Expected tool fitrank, got %s", export.Tool)
	}
	if len(export.Gyms) != 1 || len(export.Profiles) != 1 || len(export.Stats) != 1 {
		t.Errorf("counts gyms/profiles/stats = %d/%d/%d, want 1/1/1",
			len(export.Gyms), len(export.Profiles), len(export.Stats))
	}
	if len(export.Achievements) != 2 {
		t.Errorf("Expected 2 achievements, got %d", len(export.Achievements))
	}
	if len(export.Workouts) != 1 || len(export.Workouts[0].Exercises) != 2 {
		t.Errorf("Expected 1 workout with 2 exercises, got %+v", export.Workouts)
	}
}

func TestExportEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)

	raw, err := ExportJSON(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(string(raw), `"workouts": []`) {
		t.Errorf("empty export should contain empty arrays, got:\n%s", raw)
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	p, w := seedTestData(t, db)

	raw, err := ExportYAML(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var doc yamlExport
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if doc.Version != ExportVersion {
		t.Errorf("Expected version %s, got %v", ExportVersion, doc.Version)
	}
	if len(doc.Users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(doc.Users))
	}
	u := doc.Users[0]
	if u.ID != p.ID.String()[:8] || u.Name != "Ana" || u.Gym != "Iron Temple" {
		t.Errorf("user = %+v", u)
	}
	if u.Stats == nil || u.Stats.TotalPoints != 330 {
		t.Errorf("stats = %+v", u.Stats)
	}
	if len(u.Achievements) != 1 || u.Achievements[0] != "first-workout" {
		t.Errorf("achievements = %v, want only earned ones", u.Achievements)
	}
	if len(u.Workouts) != 1 || u.Workouts[0].ID != w.ID.String()[:8] {
		t.Errorf("workouts = %+v", u.Workouts)
	}
	if got := u.Workouts[0].Exercises; len(got) != 2 || got[0] != "Push-up" {
		t.Errorf("exercise names = %v", got)
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	p, w := seedTestData(t, src)

	raw, err := ExportJSON(ctx, src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := ImportJSON(ctx, dst, raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	gotProfile, err := dst.GetProfile(ctx, p.ID.String())
	if err != nil {
		t.Fatalf("GetProfile after import failed: %v", err)
	}
	if gotProfile.GymID == nil || *gotProfile.GymID != *p.GymID {
		t.Errorf("gym membership lost: %v", gotProfile.GymID)
	}

	gotWorkout, err := dst.GetWorkout(ctx, w.ID.String())
	if err != nil {
		t.Fatalf("GetWorkout after import failed: %v", err)
	}
	if gotWorkout.Points != 330 || len(gotWorkout.Exercises) != 2 {
		t.Errorf("workout = %+v", gotWorkout)
	}

	stats, err := dst.GetStats(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalPoints != 330 || stats.CurrentStreak != 1 {
		t.Errorf("stats = %+v", stats)
	}

	// Importing twice replaces rather than duplicates.
	if err := ImportJSON(ctx, dst, raw); err != nil {
		t.Fatalf("second ImportJSON failed: %v", err)
	}
	list, _ := dst.ListWorkouts(ctx, p.ID, 0)
	if len(list) != 1 {
		t.Errorf("workouts after re-import = %d, want 1", len(list))
	}
}

func TestImportJSONRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := ImportJSON(ctx, db, []byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if err := ImportJSON(ctx, db, []byte(`{"version":"9.9"}`)); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestImportOrphanWorkoutFails(t *testing.T) {
	db := setupTestDB(t)
	data := &ExportData{
		Version:  ExportVersion,
		Workouts: []*models.Workout{models.NewWorkout(uuid.New(), nil)},
	}

	if err := db.ImportData(context.Background(), data); err == nil {
		t.Error("expected error importing a workout without its profile")
	}
}
