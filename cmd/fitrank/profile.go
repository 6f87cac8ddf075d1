// ABOUTME: CLI commands for the training profile.
// ABOUTME: Supports set (create or update), show, list, and use subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitrank/internal/coach"
	"github.com/harperreed/fitrank/internal/config"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/harperreed/fitrank/internal/planner"
	"github.com/spf13/cobra"
)

var (
	profileName      string
	profileGoal      string
	profileLevel     string
	profileTime      int
	profileFrequency int
	profileWeight    float64
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage your training profile",
	Long: `Your profile drives workout generation and scoring.

FIELDS:

  --goal        hypertrophy, weight-loss, endurance, beginner-health
                (aliases: muscle, lose_weight, health)
  --level       beginner, intermediate, advanced
  --time        minutes available per session (45+ gives 5 exercises, 60+ gives 6)
  --frequency   sessions per week, 2 to 6 (picks the weekly split)
  --weight      body weight in kg (scales calorie estimates)

COMMANDS:

  set    Create a profile, or update the active one
  show   Show the active profile
  list   List all profiles
  use    Switch the active profile`,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the active profile",
	Long: `Create a profile, or update the active one. Only the flags you pass change.

Examples:
  fitrank profile set --name Ana --goal hypertrophy --level beginner --time 45 --frequency 4
  fitrank profile set --weight 71.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		existing, err := activeProfile(cmd)
		if err != nil && !errors.Is(err, coach.ErrNoProfile) {
			return err
		}
		creating := err != nil
		p := existing
		if creating {
			if profileName == "" {
				return fmt.Errorf("--name is required when creating a profile")
			}
			p = models.NewUserProfile(profileName)
		}

		if err := applyProfileFlags(cmd, p); err != nil {
			return err
		}

		if creating {
			if err := coachSvc.CreateProfile(ctx, p); err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
			if err := setActiveUser(p.ID.String()); err != nil {
				return err
			}
			green.Fprintf(out, "✓ Created profile %s\n", p.Name)
		} else {
			if err := coachSvc.UpdateProfile(ctx, p); err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
			green.Fprintf(out, "✓ Updated profile %s\n", p.Name)
		}
		printProfile(cmd, p)
		return nil
	},
}

func applyProfileFlags(cmd *cobra.Command, p *models.UserProfile) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = profileName
	}
	if flags.Changed("goal") {
		g, err := models.ParseGoal(profileGoal)
		if err != nil {
			return err
		}
		p.Goal = g
	}
	if flags.Changed("level") {
		l, err := models.ParseLevel(profileLevel)
		if err != nil {
			return err
		}
		p.Level = l
	}
	if flags.Changed("time") {
		p.TimeAvailable = profileTime
	}
	if flags.Changed("frequency") {
		p.WeeklyFrequency = profileFrequency
	}
	if flags.Changed("weight") {
		p.BodyWeightKg = profileWeight
	}
	return nil
}

// setActiveUser stores the profile ID in the config file, leaving
// environment overrides out of it.
func setActiveUser(id string) error {
	fileCfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg.UserID = id
	if err := fileCfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cfg.UserID = id
	return nil
}

func printProfile(cmd *cobra.Command, p *models.UserProfile) {
	out := cmd.OutOrStdout()
	plan := planner.PlanFor(p.WeeklyFrequency, p.Goal)

	fmt.Fprintf(out, "  ID:        %s\n", faint.Sprint(shortID(p.ID)))
	fmt.Fprintf(out, "  Goal:      %s\n", p.Goal)
	fmt.Fprintf(out, "  Level:     %s\n", p.Level)
	fmt.Fprintf(out, "  Time:      %d min\n", p.TimeAvailable)
	fmt.Fprintf(out, "  Frequency: %d/week (%s)\n", p.WeeklyFrequency, plan.Name)
	fmt.Fprintf(out, "  Weight:    %.1f kg\n", p.BodyWeightKg)
	if p.GymID != nil {
		gym, err := repo.GetGym(cmd.Context(), p.GymID.String())
		if err == nil {
			fmt.Fprintf(out, "  Gym:       %s\n", gym.Name)
		}
	}
	if p.Premium {
		fmt.Fprintf(out, "  Plan:      %s\n", color.New(color.FgMagenta).Sprint("premium"))
	}
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}
		cyan.Fprintln(cmd.OutOrStdout(), p.Name)
		printProfile(cmd, p)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all profiles",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		profiles, err := repo.ListProfiles(cmd.Context(), nil)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(profiles) == 0 {
			fmt.Fprintln(out, "No profiles found.")
			return nil
		}

		for _, p := range profiles {
			marker := " "
			if p.ID.String() == cfg.UserID {
				marker = green.Sprint("*")
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				marker,
				faint.Sprint(shortID(p.ID)),
				padRight(truncate(p.Name, 20), 20),
				padRight(string(p.Goal), 16),
				p.Level)
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Switch the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := coachSvc.LoadProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := setActiveUser(p.ID.String()); err != nil {
			return err
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Active profile is now %s\n", p.Name)
		return nil
	},
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileName, "name", "", "display name")
	f.StringVarP(&profileGoal, "goal", "g", "", "training goal")
	f.StringVarP(&profileLevel, "level", "l", "", "experience level")
	f.IntVarP(&profileTime, "time", "t", 30, "minutes per session")
	f.IntVarP(&profileFrequency, "frequency", "f", 3, "sessions per week (2-6)")
	f.Float64VarP(&profileWeight, "weight", "w", 70, "body weight in kg")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	rootCmd.AddCommand(profileCmd)
}
