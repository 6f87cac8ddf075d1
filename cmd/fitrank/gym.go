// ABOUTME: CLI commands for gyms: create, list, and join.
// ABOUTME: Members of a gym share a leaderboard.
package main

import (
	"fmt"

	"github.com/harperreed/fitrank/internal/models"
	"github.com/spf13/cobra"
)

var gymAddress string

var gymCmd = &cobra.Command{
	Use:   "gym",
	Short: "Manage gyms",
	Long: `Gyms group profiles into a shared leaderboard.

Examples:
  fitrank gym add "Iron Temple" --address "Rua Augusta 100"
  fitrank gym list
  fitrank gym join 1a2b3c4d`,
}

var gymAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a gym",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := models.NewGym(args[0], gymAddress)
		if err := repo.SaveGym(cmd.Context(), g); err != nil {
			return fmt.Errorf("failed to create gym: %w", err)
		}
		out := cmd.OutOrStdout()
		green.Fprintf(out, "✓ Added gym %s\n", g.Name)
		fmt.Fprintf(out, "  ID: %s\n", shortID(g.ID))
		return nil
	},
}

var gymListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List gyms",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		gyms, err := repo.ListGyms(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list gyms: %w", err)
		}
		if len(gyms) == 0 {
			fmt.Fprintln(out, "No gyms found.")
			return nil
		}
		for _, g := range gyms {
			fmt.Fprintf(out, "%s %s %s\n", faint.Sprint(shortID(g.ID)), padRight(g.Name, 24), faint.Sprint(g.Address))
		}
		return nil
	},
}

var gymJoinCmd = &cobra.Command{
	Use:   "join <gym-id>",
	Short: "Join a gym with the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}
		g, err := repo.GetGym(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to find gym: %w", err)
		}

		p.GymID = &g.ID
		if err := coachSvc.UpdateProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to join gym: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ %s joined %s\n", p.Name, g.Name)
		return nil
	},
}

func init() {
	gymAddCmd.Flags().StringVar(&gymAddress, "address", "", "street address")
	gymCmd.AddCommand(gymAddCmd)
	gymCmd.AddCommand(gymListCmd)
	gymCmd.AddCommand(gymJoinCmd)
	rootCmd.AddCommand(gymCmd)
}
