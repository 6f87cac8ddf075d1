// ABOUTME: CLI commands for the gym leaderboard and premium status.
// ABOUTME: Viewing the board unlocks ranking achievements for the top three.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/fitrank/internal/models"
	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb", "rank"},
	Short:   "Show your gym's monthly ranking",
	Long: `Rank the members of your gym by points earned this month.
Ties are broken by total points, then by name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		standing, err := coachSvc.Leaderboard(cmd.Context(), p.ID)
		if err != nil {
			return fmt.Errorf("failed to build leaderboard: %w", err)
		}

		cyan.Fprintln(out, standing.Gym.Name)
		for _, e := range standing.Entries {
			printRankingEntry(out, e)
		}
		for _, a := range standing.Unlocked {
			cyan.Fprintf(out, "\n%s Achievement unlocked: %s\n", a.Icon, a.Name)
		}
		return nil
	},
}

func printRankingEntry(out io.Writer, e models.RankingEntry) {
	line := fmt.Sprintf("%3d. %s %6d pts  %s", e.Rank, padRight(truncate(e.Name, 20), 20),
		e.MonthlyPoints, faint.Sprintf("%d total", e.TotalPoints))
	if e.IsCurrentUser {
		green.Fprintln(out, line)
		return
	}
	fmt.Fprintln(out, line)
}

var premiumCmd = &cobra.Command{
	Use:       "premium <on|off>",
	Short:     "Turn premium on or off",
	Long:      `Premium profiles have no weekly workout limit.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		on := args[0] == "on"
		unlocked, err := coachSvc.SetPremium(cmd.Context(), p.ID, on)
		if err != nil {
			return fmt.Errorf("failed to update premium: %w", err)
		}
		if on {
			green.Fprintln(out, "✓ Premium is on. No weekly limit.")
		} else {
			green.Fprintln(out, "✓ Premium is off.")
		}
		for _, a := range unlocked {
			cyan.Fprintf(out, "%s Achievement unlocked: %s\n", a.Icon, a.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(premiumCmd)
}
