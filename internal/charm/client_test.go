// ABOUTME: Unit tests for Charm-backed storage using an in-memory KV store.
// ABOUTME: Covers key formats, prefix resolution, read-only mode and record round trips.
package charm

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/harperreed/fitrank/internal/storage"
)

type memStore struct {
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (m *memStore) Set(key, value []byte) error {
	m.data[string(key)] = value
	return nil
}

func (m *memStore) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memStore) Keys() ([][]byte, error) {
	var keys []string
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, []byte(k))
	}
	return out, nil
}

func (m *memStore) Sync() error      { m.syncs++; return nil }
func (m *memStore) Reset() error     { m.data = map[string][]byte{}; return nil }
func (m *memStore) IsReadOnly() bool { return m.readOnly }
func (m *memStore) Close() error     { return nil }

func TestKeyPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"Profile", ProfilePrefix, "profile:"},
		{"Workout", WorkoutPrefix, "workout:"},
		{"Stats", StatsPrefix, "stats:"},
		{"Achievement", AchievementPrefix, "achievement:"},
		{"Gym", GymPrefix, "gym:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.prefix)
			}
		})
	}
}

func TestExtractID(t *testing.T) {
	id := "abc12345-1234-1234-1234-123456789abc"
	key := WorkoutPrefix + id

	if extracted := extractID(key, WorkoutPrefix); extracted != id {
		t.Errorf("Expected extracted ID %q, got %q", id, extracted)
	}
}

func TestAchievementKey(t *testing.T) {
	userID := uuid.MustParse("abc12345-1234-1234-1234-123456789abc")
	want := "achievement:abc12345-1234-1234-1234-123456789abc:streak-7"
	if got := achievementKey(userID, "streak-7"); got != want {
		t.Errorf("achievementKey = %q, want %q", got, want)
	}
}

func TestProfileAndWorkoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	c := newClient(mem)

	p := models.NewUserProfile("Ana")
	if err := c.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	got, err := c.GetProfile(ctx, p.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetProfile by prefix failed: %v", err)
	}
	if got.Name != "Ana" {
		t.Errorf("Name = %q", got.Name)
	}

	base := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	for i := range 3 {
		w := models.NewWorkout(p.ID, nil).WithStartTime(base.AddDate(0, 0, i))
		if err := c.SaveWorkout(ctx, w); err != nil {
			t.Fatalf("SaveWorkout failed: %v", err)
		}
	}
	if err := c.SaveWorkout(ctx, models.NewWorkout(uuid.New(), nil)); err != nil {
		t.Fatalf("SaveWorkout failed: %v", err)
	}

	list, err := c.ListWorkouts(ctx, p.ID, 2)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListWorkouts = %d, want 2", len(list))
	}
	if !list[0].Date.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("first workout = %s, want most recent", list[0].Date)
	}
	if list[0].Exercises == nil {
		t.Error("Exercises = nil, want empty slice")
	}

	if mem.syncs == 0 {
		t.Error("expected auto-sync after writes")
	}
}

func TestStatsDefaultToZero(t *testing.T) {
	ctx := context.Background()
	c := newClient(newMemStore())
	userID := uuid.New()

	s, err := c.GetStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if s.UserID != userID || s.TotalWorkouts != 0 {
		t.Errorf("stats = %+v", s)
	}

	s.TotalPoints = 90
	if err := c.SaveStats(ctx, s); err != nil {
		t.Fatalf("SaveStats failed: %v", err)
	}
	s2, _ := c.GetStats(ctx, userID)
	if s2.TotalPoints != 90 {
		t.Errorf("TotalPoints = %d, want 90", s2.TotalPoints)
	}
}

func TestAchievementsScopedToUser(t *testing.T) {
	ctx := context.Background()
	c := newClient(newMemStore())
	a, b := uuid.New(), uuid.New()

	err := c.SaveAchievements(ctx, []*models.Achievement{
		{ID: "streak-7", UserID: a, Name: "Full Week"},
		{ID: "first-workout", UserID: a, Name: "First Workout", Earned: true},
		{ID: "first-workout", UserID: b, Name: "First Workout"},
	})
	if err != nil {
		t.Fatalf("SaveAchievements failed: %v", err)
	}

	got, err := c.ListAchievements(ctx, a)
	if err != nil {
		t.Fatalf("ListAchievements failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "first-workout" || !got[0].Earned {
		t.Errorf("achievements = %+v", got)
	}
}

func TestPrefixResolution(t *testing.T) {
	ctx := context.Background()
	c := newClient(newMemStore())
	userID := uuid.New()

	for _, id := range []string{
		"abcdef01-0000-4000-8000-000000000001",
		"abcdef01-0000-4000-8000-000000000002",
	} {
		w := models.NewWorkout(userID, nil)
		w.ID = uuid.MustParse(id)
		if err := c.SaveWorkout(ctx, w); err != nil {
			t.Fatalf("SaveWorkout failed: %v", err)
		}
	}

	if _, err := c.GetWorkout(ctx, "abcdef01"); !errors.Is(err, storage.ErrAmbiguous) {
		t.Errorf("err = %v, want ErrAmbiguous", err)
	}
	if _, err := c.GetWorkout(ctx, "abcdef01-0000-4000-8000-000000000001"); err != nil {
		t.Errorf("full ID lookup failed: %v", err)
	}
	if _, err := c.GetWorkout(ctx, "ffffffff"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := c.DeleteWorkout(ctx, "abcdef01-0000-4000-8000-000000000002"); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if _, err := c.GetWorkout(ctx, "abcdef01"); err != nil {
		t.Errorf("prefix should be unique after delete: %v", err)
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	mem := newMemStore()
	mem.readOnly = true
	c := newClient(mem)

	err := c.SaveGym(context.Background(), models.NewGym("Box", ""))
	if !errors.Is(err, storage.ErrReadOnly) {
		t.Errorf("err = %v, want ErrReadOnly", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode = %v, want nil", err)
	}
}

func TestExportImportThroughClient(t *testing.T) {
	ctx := context.Background()
	src := newClient(newMemStore())

	gym := models.NewGym("Box", "")
	p := models.NewUserProfile("Ana")
	p.GymID = &gym.ID
	_ = src.SaveGym(ctx, gym)
	_ = src.SaveProfile(ctx, p)
	_ = src.SaveWorkout(ctx, models.NewWorkout(p.ID, nil))

	data, err := src.GetAllData(ctx)
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}

	dst := newClient(newMemStore())
	if err := dst.ImportData(ctx, data); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	members, _ := dst.ListProfiles(ctx, &gym.ID)
	if len(members) != 1 {
		t.Errorf("members = %d, want 1", len(members))
	}
	workouts, _ := dst.ListWorkouts(ctx, p.ID, 0)
	if len(workouts) != 1 {
		t.Errorf("workouts = %d, want 1", len(workouts))
	}
}
