// ABOUTME: Root Cobra command for the fitrank CLI.
// ABOUTME: Loads config and handles storage and coach lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitrank/internal/coach"
	"github.com/harperreed/fitrank/internal/config"
	"github.com/harperreed/fitrank/internal/storage"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that manage their own storage or need none.
const skipStorage = "skip-storage"

var (
	cfg      *config.Config
	repo     storage.Repository
	coachSvc *coach.Coach
	logger   *log.Logger

	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fitrank",
	Short: "Workout generator with streaks, points and gym rankings",
	Long: `fitrank generates workouts that fit your goal, level and schedule, then
keeps score: points, calories, streaks, achievements and a monthly gym
leaderboard.

QUICK START:

  $ fitrank profile set --name Ana --goal hypertrophy --level beginner \
      --time 45 --frequency 4 --weight 68
  $ fitrank plan                       # See the weekly split for your profile
  $ fitrank workout start              # Generate today's workout
  $ fitrank workout check abc123 1     # Tick off exercise 1
  $ fitrank workout finish abc123      # Score it once everything is ticked
  $ fitrank stats                      # Points, streaks, weekly allowance

GYMS AND RANKINGS:

  $ fitrank gym add "Iron Temple"
  $ fitrank gym join 1a2b3c4d
  $ fitrank leaderboard

FREE AND PREMIUM:

  Free profiles may generate 2 workouts per week (weeks start Sunday).
  'fitrank premium on' lifts the limit.

STORAGE:

  Configured in ~/.config/fitrank/config.json or with FITRANK_* variables:

    sqlite    (default) ~/.local/share/fitrank/fitrank.db
    postgres  hosted database, set postgres_dsn
    charm     Charm Cloud KV, E2E encrypted and synced across devices

MCP INTEGRATION:

  Run 'fitrank mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = cfg.NewLogger(os.Stderr)
		if err != nil {
			return err
		}
		log.SetDefault(logger)

		if cmd.Annotations[skipStorage] == "true" {
			return nil
		}

		repo, err = cfg.OpenStorage(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend())

		loc, _ := cfg.Location()
		coachSvc = coach.New(repo, coach.WithLocation(loc), coach.WithLogger(logger))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return nil
		}
		err := repo.Close()
		repo = nil
		coachSvc = nil
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "profile ID or prefix (default: active profile)")
}
