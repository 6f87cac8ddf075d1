// ABOUTME: CLI commands for progress: points, streaks, allowance and achievements.
// ABOUTME: Stats are rolled to the current week before display.
package main

import (
	"fmt"

	"github.com/harperreed/fitrank/internal/achievements"
	"github.com/harperreed/fitrank/internal/progress"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, streaks and weekly allowance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		s, err := coachSvc.Stats(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		allowance, err := coachSvc.Allowance(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to get allowance: %w", err)
		}

		cyan.Fprintln(out, p.Name)
		fmt.Fprintf(out, "  Workouts:  %d\n", s.TotalWorkouts)
		fmt.Fprintf(out, "  Points:    %d total, %d this week, %d this month\n",
			s.TotalPoints, s.WeeklyPoints, s.MonthlyPoints)
		fmt.Fprintf(out, "  Streak:    %d days (best %d)\n", s.CurrentStreak, s.BestStreak)
		if s.LastWorkoutDate != nil {
			fmt.Fprintf(out, "  Last:      %s\n", s.LastWorkoutDate.Format("2006-01-02"))
		}

		switch {
		case allowance.Remaining == progress.Unlimited:
			fmt.Fprintf(out, "  This week: %d done, unlimited\n", s.WeeklyWorkoutsCount)
		case allowance.Allowed:
			fmt.Fprintf(out, "  This week: %d done, %d left\n", s.WeeklyWorkoutsCount, allowance.Remaining)
		default:
			fmt.Fprintf(out, "  This week: %d done, %s\n", s.WeeklyWorkoutsCount, yellow.Sprint("limit reached"))
		}
		return nil
	},
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		list, err := coachSvc.Achievements(cmd.Context(), p.ID)
		if err != nil {
			return fmt.Errorf("failed to list achievements: %w", err)
		}

		cyan.Fprintf(out, "Achievements %d/%d\n", achievements.Earned(list), len(list))
		for _, a := range list {
			if a.Earned {
				when := ""
				if a.EarnedAt != nil {
					when = faint.Sprint(a.EarnedAt.Format("2006-01-02"))
				}
				fmt.Fprintf(out, "  %s %s %s %s\n", a.Icon, green.Sprint(padRight(a.Name, 16)), a.Description, when)
			} else {
				fmt.Fprintf(out, "  %s %s %s\n", faint.Sprint("·"), faint.Sprint(padRight(a.Name, 16)), faint.Sprint(a.Description))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
}
