// ABOUTME: Tests for the static exercise pools and split plans.
// ABOUTME: Checks coverage of every level/goal pair and copy-on-read semantics.
package catalog

import (
	"testing"

	"github.com/harperreed/fitrank/internal/models"
)

func TestEveryLevelGoalPairHasPool(t *testing.T) {
	for _, level := range models.AllLevels {
		for _, goal := range models.AllGoals {
			p, ok := Pool(level, goal)
			if !ok {
				t.Errorf("no pool for %s/%s", level, goal)
				continue
			}
			if len(p) < 5 {
				t.Errorf("pool %s/%s has %d exercises, want at least 5", level, goal, len(p))
			}
		}
	}
}

func TestPoolUnknownPair(t *testing.T) {
	if _, ok := Pool("expert", models.GoalHypertrophy); ok {
		t.Error("expected no pool for unknown level")
	}
}

func TestPoolEntriesAreWellFormed(t *testing.T) {
	valid := map[models.MuscleGroup]bool{
		models.MuscleChest: true, models.MuscleBack: true, models.MuscleLegs: true,
		models.MuscleShoulders: true, models.MuscleBiceps: true, models.MuscleTriceps: true,
		models.MuscleAbs: true,
	}
	for key, p := range pools {
		seen := map[string]bool{}
		for _, e := range p {
			if e.ID == "" || e.Name == "" {
				t.Errorf("%v: exercise with empty ID or name: %+v", key, e)
			}
			if seen[e.ID] {
				t.Errorf("%v: duplicate exercise ID %s", key, e.ID)
			}
			seen[e.ID] = true
			if !valid[e.MuscleGroup] {
				t.Errorf("%v: %s has unknown muscle group %q", key, e.ID, e.MuscleGroup)
			}
			if e.Sets <= 0 || e.Reps <= 0 || e.RestSeconds < 0 {
				t.Errorf("%v: %s has invalid prescription %+v", key, e.ID, e)
			}
		}
	}
}

func TestPoolReturnsCopy(t *testing.T) {
	p, _ := Pool(models.LevelBeginner, models.GoalHypertrophy)
	p[0].Name = "mutated"

	again, _ := Pool(models.LevelBeginner, models.GoalHypertrophy)
	if again[0].Name == "mutated" {
		t.Error("Pool must not expose the underlying table")
	}
}

func TestDefaultPoolIsBeginnerHealth(t *testing.T) {
	want, _ := Pool(models.LevelBeginner, models.GoalBeginnerHealth)
	got := DefaultPool()
	if len(got) != len(want) {
		t.Fatalf("DefaultPool len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].ID != want[i].ID {
			t.Errorf("DefaultPool[%d] = %s, want %s", i, got[i].ID, want[i].ID)
		}
	}
}

func TestPlans(t *testing.T) {
	all := Plans()
	if len(all) != 4 {
		t.Fatalf("Plans() returned %d plans, want 4", len(all))
	}
	for _, p := range all {
		if len(p.Days) == 0 {
			t.Errorf("plan %s has no days", p.Type)
		}
		for _, d := range p.Days {
			if len(d.Exercises) == 0 {
				t.Errorf("plan %s day %q has no exercises", p.Type, d.Name)
			}
		}
	}

	p, ok := Plan(models.PlanThreeDay)
	if !ok || len(p.Days) != 3 {
		t.Errorf("3-day split should have 3 days, got %d", len(p.Days))
	}

	p.Days[0].Exercises[0].Name = "mutated"
	again, _ := Plan(models.PlanThreeDay)
	if again.Days[0].Exercises[0].Name == "mutated" {
		t.Error("Plan must not expose the underlying table")
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("dragon-flag")
	if !ok {
		t.Fatal("expected to find dragon-flag")
	}
	if e.MuscleGroup != models.MuscleAbs {
		t.Errorf("dragon-flag muscle group = %s, want abs", e.MuscleGroup)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("unexpected hit for unknown ID")
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Flat bench press":   "flat-bench-press",
		"V-ups":              "v-ups",
		"Chest & Triceps":    "chest-triceps",
		"  Leading spaces":   "leading-spaces",
		"Trailing!":          "trailing",
		"Stiff-leg deadlift": "stiff-leg-deadlift",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
