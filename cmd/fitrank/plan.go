// ABOUTME: CLI command showing the weekly split chosen for a profile.
// ABOUTME: Flags override the profile's frequency and goal for previews.
package main

import (
	"fmt"

	"github.com/harperreed/fitrank/internal/models"
	"github.com/harperreed/fitrank/internal/planner"
	"github.com/spf13/cobra"
)

var (
	planFrequency int
	planGoal      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show your weekly training split",
	Long: `Show the weekly split that matches your profile.

  2 days   full body
  3 days   push / pull / legs
  4 days   4-day split (hypertrophy, beginner health) or upper / lower
  5 days   4-day split
  6 days   upper / lower

Examples:
  fitrank plan
  fitrank plan --frequency 4 --goal hypertrophy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		freq := planFrequency
		var goal models.Goal
		if planGoal != "" {
			g, err := models.ParseGoal(planGoal)
			if err != nil {
				return err
			}
			goal = g
		}
		if freq == 0 || goal == "" {
			p, err := activeProfile(cmd)
			if err != nil {
				return err
			}
			if freq == 0 {
				freq = p.WeeklyFrequency
			}
			if goal == "" {
				goal = p.Goal
			}
		}

		plan := planner.PlanFor(freq, goal)
		cyan.Fprintf(out, "%s (%d days/week)\n", plan.Name, plan.DaysPerWeek)
		for i, day := range plan.Days {
			fmt.Fprintf(out, "\nDay %d: %s\n", i+1, day.Name)
			for _, e := range day.Exercises {
				fmt.Fprintf(out, "  - %s %dx%s %s\n",
					padRight(e.Name, 28), e.Sets, e.RepRange(),
					faint.Sprintf("rest %ds", e.RestSeconds))
			}
		}
		return nil
	},
}

func init() {
	planCmd.Flags().IntVarP(&planFrequency, "frequency", "f", 0, "sessions per week (default: profile)")
	planCmd.Flags().StringVarP(&planGoal, "goal", "g", "", "training goal (default: profile)")
	rootCmd.AddCommand(planCmd)
}
