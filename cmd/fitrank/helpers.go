// ABOUTME: Shared helpers for CLI commands: active profile lookup and output formatting.
// ABOUTME: Output goes to the command's writer so tests can capture it.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/coach"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan, color.Bold)
	faint  = color.New(color.Faint)
)

// activeProfile resolves --user, falling back to the configured profile.
func activeProfile(cmd *cobra.Command) (*models.UserProfile, error) {
	id := userFlag
	if id == "" {
		id = cfg.UserID
	}
	if id == "" {
		return nil, fmt.Errorf("%w: run 'fitrank profile set --name <name>' first", coach.ErrNoProfile)
	}
	return coachSvc.LoadProfile(cmd.Context(), id)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func printExercises(out io.Writer, w *models.Workout) {
	for i, e := range w.Exercises {
		box := "[ ]"
		if e.Completed {
			box = green.Sprint("[x]")
		}
		fmt.Fprintf(out, "  %d. %s %s %dx%s  %s\n",
			i+1, box,
			padRight(truncate(e.Name, 28), 28),
			e.Sets, e.RepRange(),
			faint.Sprintf("rest %ds, %s", e.RestSeconds, e.MuscleGroup))
	}
}

func workoutStatus(w *models.Workout) string {
	if w.Completed {
		return green.Sprint("done")
	}
	return yellow.Sprintf("%d/%d", w.CompletedCount(), len(w.Exercises))
}
