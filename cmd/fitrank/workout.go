// ABOUTME: CLI commands for generating, checking off, and finishing workouts.
// ABOUTME: Supports start, check, finish, list, show, and delete subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/fitrank/internal/coach"
	"github.com/harperreed/fitrank/internal/progress"
	"github.com/spf13/cobra"
)

var (
	finishDuration int
	workoutLimit   int
	workoutSince   string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Generate and track workouts",
	Long: `Generate workouts from your plan and score them when you're done.

WORKFLOW:

  1. Generate today's session:  fitrank workout start
  2. Tick exercises as you go:  fitrank workout check abc123 1
  3. Score the session:         fitrank workout finish abc123

Exercises can be referenced by position (1, 2, ...), by exercise ID
(bench-press) or by the first characters of their instance ID.

COMMANDS:

  start    Generate a new workout with a suggested plan focus
  check    Toggle an exercise done or not done
  finish   Score a fully checked workout
  list     List recent workouts
  show     Show a workout with its exercises
  delete   Delete a workout`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Generate a new workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		session, err := coachSvc.StartWorkout(cmd.Context(), p.ID.String())
		if errors.Is(err, coach.ErrWeeklyLimit) {
			yellow.Fprintln(out, "⚠ Free profiles get 2 workouts per week. Run 'fitrank premium on' to lift the limit.")
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		w := session.Workout
		green.Fprintf(out, "✓ Started workout with %d exercises\n", len(w.Exercises))
		fmt.Fprintf(out, "  ID: %s\n", shortID(w.ID))
		if session.SuggestedDay.Name != "" {
			fmt.Fprintf(out, "  %s\n", faint.Sprintf("Suggested focus: %s (%s)", session.SuggestedDay.Name, session.Plan.Name))
		}
		fmt.Fprintln(out)
		printExercises(out, w)

		if session.Allowance.Remaining != progress.Unlimited {
			fmt.Fprintf(out, "\n%s\n", faint.Sprintf("%d workouts left this week", session.Allowance.Remaining))
		}
		return nil
	},
}

var workoutCheckCmd = &cobra.Command{
	Use:   "check <workout-id> <exercise>",
	Short: "Toggle an exercise done or not done",
	Long: `Toggle an exercise in an unfinished workout.

Examples:
  fitrank workout check abc123 1
  fitrank workout check abc123 squat`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		w, err := coachSvc.ToggleExercise(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to check exercise: %w", err)
		}

		fmt.Fprintf(out, "Workout %s  %s\n", shortID(w.ID), workoutStatus(w))
		printExercises(out, w)
		if w.AllCompleted() {
			fmt.Fprintf(out, "\nAll done! Run 'fitrank workout finish %s' to score it.\n", shortID(w.ID))
		}
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish <workout-id>",
	Short: "Score a fully checked workout",
	Long: `Finish a workout once every exercise is checked.

Duration is measured from when the workout was started. Pass --duration to
record a different number of minutes.

Examples:
  fitrank workout finish abc123
  fitrank workout finish abc123 --duration 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		done, err := coachSvc.FinishWorkout(cmd.Context(), args[0], coach.FinishOptions{
			DurationMinutes: finishDuration,
		})
		if err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}

		w, s := done.Workout, done.Stats
		green.Fprintf(out, "✓ Workout finished: +%d points\n", w.Points)
		fmt.Fprintf(out, "  Duration: %d min\n", w.DurationMinutes)
		fmt.Fprintf(out, "  Calories: ~%d kcal\n", w.Calories)
		fmt.Fprintf(out, "  Streak:   %d days (best %d)\n", s.CurrentStreak, s.BestStreak)
		fmt.Fprintf(out, "  Total:    %d points\n", s.TotalPoints)

		for _, a := range done.Unlocked {
			cyan.Fprintf(out, "\n%s Achievement unlocked: %s\n", a.Icon, a.Name)
			fmt.Fprintf(out, "  %s\n", a.Description)
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent workouts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		workouts, err := coachSvc.RecentWorkouts(cmd.Context(), p.ID, workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if workoutSince != "" {
			since, err := parseTime(workoutSince)
			if err != nil {
				return err
			}
			kept := workouts[:0]
			for _, w := range workouts {
				if !w.Date.Before(since) {
					kept = append(kept, w)
				}
			}
			workouts = kept
		}

		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		for _, w := range workouts {
			points := ""
			if w.Completed {
				points = fmt.Sprintf("%d pts, %d min", w.Points, w.DurationMinutes)
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(w.Date.Format("2006-01-02 15:04")),
				padRight(string(w.Plan), 12),
				padRight(workoutStatus(w), 6),
				points)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		w, err := repo.GetWorkout(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		fmt.Fprintf(out, "Workout: %s\n", shortID(w.ID))
		if w.Plan != "" {
			fmt.Fprintf(out, "Plan: %s\n", w.Plan)
		}
		fmt.Fprintf(out, "Date: %s\n", w.Date.Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "Status: %s\n", workoutStatus(w))
		if w.Completed {
			fmt.Fprintf(out, "Duration: %d min\n", w.DurationMinutes)
			fmt.Fprintf(out, "Points: %d\n", w.Points)
			fmt.Fprintf(out, "Calories: ~%d kcal\n", w.Calories)
		}
		fmt.Fprintln(out, "\nExercises:")
		printExercises(out, w)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Long:    `Delete a workout. Finished workouts keep their contribution to your stats.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteWorkout(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Deleted workout %s\n", args[0])
		return nil
	},
}

func init() {
	workoutFinishCmd.Flags().IntVarP(&finishDuration, "duration", "d", 0, "minutes to record instead of the measured time")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 10, "max workouts to show")
	workoutListCmd.Flags().StringVar(&workoutSince, "since", "", "only workouts on or after this date (2006-01-02)")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutCheckCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
