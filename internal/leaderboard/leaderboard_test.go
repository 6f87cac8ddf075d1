// ABOUTME: Tests for leaderboard ordering, tie-breaks, and the entry cap.
// ABOUTME: Uses go-cmp to diff whole rankings.
package leaderboard

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/models"
)

func TestRankOrdering(t *testing.T) {
	ana, bea, caio, duda := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	entries := []Entry{
		{UserID: ana, Name: "ana", TotalPoints: 900, MonthlyPoints: 300},
		{UserID: bea, Name: "bea", TotalPoints: 1200, MonthlyPoints: 300},
		{UserID: caio, Name: "caio", TotalPoints: 100, MonthlyPoints: 800, WeeklyPoints: 200},
		{UserID: duda, Name: "duda", TotalPoints: 900, MonthlyPoints: 300},
	}

	got := Rank(entries, duda)

	want := []models.RankingEntry{
		{UserID: caio, Name: "caio", Rank: 1, TotalPoints: 100, WeeklyPoints: 200, MonthlyPoints: 800},
		{UserID: bea, Name: "bea", Rank: 2, TotalPoints: 1200, MonthlyPoints: 300},
		{UserID: ana, Name: "ana", Rank: 3, TotalPoints: 900, MonthlyPoints: 300},
		{UserID: duda, Name: "duda", Rank: 4, TotalPoints: 900, MonthlyPoints: 300, IsCurrentUser: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}

	if entries[0].UserID != ana {
		t.Error("Rank reordered the caller's slice")
	}
}

func TestRankCapsEntries(t *testing.T) {
	var entries []Entry
	for i := range MaxEntries + 10 {
		entries = append(entries, Entry{UserID: uuid.New(), Name: fmt.Sprintf("u%03d", i), MonthlyPoints: i})
	}

	got := Rank(entries, uuid.Nil)
	if len(got) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(got), MaxEntries)
	}
	if got[0].MonthlyPoints != MaxEntries+9 || got[0].Rank != 1 {
		t.Errorf("top = %+v", got[0])
	}
	if got[MaxEntries-1].Rank != MaxEntries {
		t.Errorf("last rank = %d", got[MaxEntries-1].Rank)
	}
}

func TestRankEmpty(t *testing.T) {
	got := Rank(nil, uuid.New())
	if got == nil || len(got) != 0 {
		t.Errorf("Rank(nil) = %#v, want empty slice", got)
	}
}

func TestRankOf(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ranking := Rank([]Entry{{UserID: a, MonthlyPoints: 10}, {UserID: b, MonthlyPoints: 20}}, a)

	if got := RankOf(ranking, b); got != 1 {
		t.Errorf("RankOf(b) = %d, want 1", got)
	}
	if got := RankOf(ranking, a); got != 2 {
		t.Errorf("RankOf(a) = %d, want 2", got)
	}
	if got := RankOf(ranking, uuid.New()); got != 0 {
		t.Errorf("RankOf(stranger) = %d, want 0", got)
	}
}
