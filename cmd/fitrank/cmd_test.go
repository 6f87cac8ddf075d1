// ABOUTME: Tests for CLI helper functions and end-to-end command runs.
// ABOUTME: Commands run against a temporary sqlite store and config directory.
package main

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/coach"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`ID: ([0-9a-f]{8})`)

// setupCLI points config and data at temp dirs.
func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FITRANK_DATA_DIR", t.TempDir())
	t.Setenv("FITRANK_BACKEND", "")
	t.Setenv("FITRANK_USER_ID", "")
	t.Setenv("FITRANK_LOG_LEVEL", "error")
	color.NoColor = true
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Post-run hooks are skipped when RunE fails.
	if repo != nil {
		_ = repo.Close()
		repo, coachSvc = nil, nil
	}
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "fitrank %s\n%s", strings.Join(args, " "), out)
	return out
}

func createAna(t *testing.T) {
	t.Helper()
	out := mustRun(t, "profile", "set", "--name", "Ana", "--goal", "hypertrophy",
		"--level", "beginner", "--time", "45", "--frequency", "3", "--weight", "68")
	require.Contains(t, out, "Created profile Ana")
}

func startWorkout(t *testing.T) string {
	t.Helper()
	out := mustRun(t, "workout", "start")
	m := idPattern.FindStringSubmatch(out)
	require.NotNil(t, m, "no workout ID in:\n%s", out)
	return m[1]
}

func checkEverything(t *testing.T, workoutID string) {
	t.Helper()
	for i := 1; i <= 10; i++ {
		out := mustRun(t, "workout", "check", workoutID, strconv.Itoa(i))
		if strings.Contains(out, "All done!") {
			return
		}
	}
	t.Fatal("workout never reported all exercises done")
}

func TestWorkoutLifecycle(t *testing.T) {
	setupCLI(t)
	createAna(t)

	out := mustRun(t, "profile", "show")
	assert.Contains(t, out, "hypertrophy")
	assert.Contains(t, out, "68.0 kg")

	out = mustRun(t, "plan")
	assert.Contains(t, out, "Push / Pull / Legs")

	out = mustRun(t, "workout", "start")
	assert.Contains(t, out, "Started workout with 5 exercises")
	assert.Contains(t, out, "Suggested focus: Push (Push / Pull / Legs)")
	m := idPattern.FindStringSubmatch(out)
	require.NotNil(t, m)
	id := m[1]

	_, err := run(t, "workout", "finish", id)
	require.ErrorIs(t, err, coach.ErrIncompleteWorkout)

	checkEverything(t, id)

	out = mustRun(t, "workout", "finish", id, "--duration", "30")
	assert.Contains(t, out, "Workout finished")
	assert.Contains(t, out, "Duration: 30 min")
	assert.Contains(t, out, "Achievement unlocked: First Workout")

	_, err = run(t, "workout", "finish", id)
	require.ErrorIs(t, err, coach.ErrWorkoutFinished)

	out = mustRun(t, "stats")
	assert.Contains(t, out, "Workouts:  1")
	assert.Contains(t, out, "Streak:    1 days")

	out = mustRun(t, "achievements")
	assert.Contains(t, out, "Achievements 1/10")

	out = mustRun(t, "workout", "list")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "done")

	out = mustRun(t, "workout", "show", id)
	assert.Contains(t, out, "Points:")
}

func TestProfileUpdateKeepsUnchangedFields(t *testing.T) {
	setupCLI(t)
	createAna(t)

	out := mustRun(t, "profile", "set", "--weight", "71.5")
	assert.Contains(t, out, "Updated profile Ana")
	assert.Contains(t, out, "71.5 kg")
	assert.Contains(t, out, "hypertrophy")
	assert.Contains(t, out, "45 min")
}

func TestProfileSetRequiresNameWhenCreating(t *testing.T) {
	setupCLI(t)
	_, err := run(t, "profile", "set", "--goal", "endurance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")
}

func TestProfileSetRejectsInvalidValues(t *testing.T) {
	setupCLI(t)
	_, err := run(t, "profile", "set", "--name", "Ana", "--goal", "yoga")
	require.Error(t, err)

	_, err = run(t, "profile", "set", "--name", "Ana", "--frequency", "9")
	require.Error(t, err)
}

func TestCommandsWithoutProfile(t *testing.T) {
	setupCLI(t)
	for _, args := range [][]string{
		{"workout", "start"},
		{"stats"},
		{"leaderboard"},
	} {
		_, err := run(t, args...)
		assert.ErrorIs(t, err, coach.ErrNoProfile, "fitrank %v", args)
	}
}

func TestWeeklyLimitAndPremium(t *testing.T) {
	setupCLI(t)
	createAna(t)

	startWorkout(t)
	startWorkout(t)

	out, err := run(t, "workout", "start")
	require.ErrorIs(t, err, coach.ErrWeeklyLimit)
	assert.Contains(t, out, "premium on")

	out = mustRun(t, "premium", "on")
	assert.Contains(t, out, "Premium is on")
	assert.Contains(t, out, "Achievement unlocked: Premium")

	startWorkout(t)

	out = mustRun(t, "stats")
	assert.Contains(t, out, "unlimited")

	_, err = run(t, "premium", "maybe")
	require.Error(t, err)
}

func TestGymAndLeaderboard(t *testing.T) {
	setupCLI(t)
	createAna(t)

	_, err := run(t, "leaderboard")
	require.ErrorIs(t, err, coach.ErrNoGym)

	out := mustRun(t, "gym", "add", "Iron Temple", "--address", "Rua Augusta 100")
	m := idPattern.FindStringSubmatch(out)
	require.NotNil(t, m)

	out = mustRun(t, "gym", "list")
	assert.Contains(t, out, "Iron Temple")

	out = mustRun(t, "gym", "join", m[1])
	assert.Contains(t, out, "Ana joined Iron Temple")

	out = mustRun(t, "leaderboard")
	assert.Contains(t, out, "Iron Temple")
	assert.Contains(t, out, "1. Ana")
	assert.NotContains(t, out, "Achievement unlocked", "no points yet")

	id := startWorkout(t)
	checkEverything(t, id)
	mustRun(t, "workout", "finish", id, "--duration", "20")

	out = mustRun(t, "leaderboard")
	assert.Contains(t, out, "Achievement unlocked: Champion")

	out = mustRun(t, "leaderboard")
	assert.NotContains(t, out, "Achievement unlocked")
}

func TestProfileListAndUse(t *testing.T) {
	setupCLI(t)
	createAna(t)

	_, err := run(t, "profile", "set", "--user", uuid.NewString(), "--name", "Bea")
	require.NoError(t, err)

	out := mustRun(t, "profile", "list")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Bea")

	var anaID string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Ana") {
			anaID = strings.Fields(line)[0]
		}
	}
	require.NotEmpty(t, anaID)

	out = mustRun(t, "profile", "use", anaID)
	assert.Contains(t, out, "Active profile is now Ana")

	out = mustRun(t, "profile", "show")
	assert.Contains(t, out, "Ana")
}

func TestExportImport(t *testing.T) {
	setupCLI(t)
	createAna(t)

	out := mustRun(t, "export", "json")
	assert.Contains(t, out, `"name": "Ana"`)

	out = mustRun(t, "export", "yaml")
	assert.Contains(t, out, "name: Ana")

	backup := t.TempDir() + "/backup.json"
	out = mustRun(t, "export", "json", "-o", backup)
	assert.Contains(t, out, "Exported to")

	// Restore into a fresh store.
	t.Setenv("FITRANK_DATA_DIR", t.TempDir())
	out = mustRun(t, "import", backup)
	assert.Contains(t, out, "Imported from")

	out = mustRun(t, "profile", "show")
	assert.Contains(t, out, "Ana")

	_, err := run(t, "export", "markdown")
	require.Error(t, err)
}

func TestMigrateDryRun(t *testing.T) {
	setupCLI(t)
	createAna(t)

	out := mustRun(t, "migrate", "--from", "sqlite", "--to", "charm", "--dry-run")
	assert.Contains(t, out, "Dry run mode")
	assert.Contains(t, out, "Profiles:     1")

	_, err := run(t, "migrate", "--from", "sqlite", "--to", "sqlite")
	require.Error(t, err)

	_, err = run(t, "migrate", "--from", "sqlite", "--to", "postgres")
	require.Error(t, err, "postgres without a DSN must fail")
}

func TestWorkoutListSince(t *testing.T) {
	setupCLI(t)
	createAna(t)
	id := startWorkout(t)

	out := mustRun(t, "workout", "list", "--since", "2000-01-01")
	assert.Contains(t, out, id)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	out = mustRun(t, "workout", "list", "--since", tomorrow)
	assert.Contains(t, out, "No workouts found.")

	out = mustRun(t, "workout", "delete", id)
	assert.Contains(t, out, "Deleted workout")
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"date and time with space", "2025-01-31 08:30", false},
		{"date and time with T", "2025-01-31T08:30", false},
		{"date only", "2025-01-31", false},
		{"RFC3339", "2025-01-31T08:30:00Z", false},
		{"RFC3339 with offset", "2025-01-31T08:30:00+05:00", false},
		{"invalid format", "31-01-2025", true},
		{"invalid random string", "not a date", true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, result.IsZero())
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is a long string", 10, "hello w..."},
		{"abcdefghij", 6, "abc..."},
		{"", 10, ""},
		{"hello", 3, "..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.input, tt.maxLen), "truncate(%q, %d)", tt.input, tt.maxLen)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hi", 5, "hi   "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello world"},
		{"", 5, "     "},
		{"hello", 0, "hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, padRight(tt.input, tt.length), "padRight(%q, %d)", tt.input, tt.length)
	}
}

func TestCommandTree(t *testing.T) {
	assert.Equal(t, "fitrank", rootCmd.Use)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"profile", "plan", "workout", "stats", "achievements", "gym",
		"leaderboard", "premium", "export", "import", "migrate", "mcp",
		"sync", "install-skill",
	} {
		assert.True(t, names[want], "missing command %q", want)
	}

	sub := map[string]bool{}
	for _, c := range workoutCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"start", "check", "finish", "list", "show", "delete"} {
		assert.True(t, sub[want], "missing workout subcommand %q", want)
	}

	assert.Contains(t, workoutCmd.Aliases, "w")
	assert.Equal(t, "true", migrateCmd.Annotations[skipStorage])
	assert.Equal(t, "0", workoutFinishCmd.Flags().Lookup("duration").DefValue)
}
