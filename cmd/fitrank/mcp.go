// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server bound to the active profile.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitrank/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and acts for the active profile
unless a tool call names another user_id.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitrank": {
        "command": "fitrank",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_profile         Show the training profile
  select_plan         Preview the split for a frequency and goal
  generate_workout    Generate a workout with a suggested plan focus
  check_exercise      Toggle an exercise done or not done
  finish_workout      Score a fully checked workout
  list_workouts       List recent workouts
  get_stats           Points, streaks and weekly allowance
  list_achievements   Achievement catalog with earned status
  leaderboard         Monthly gym ranking

AVAILABLE RESOURCES:

  fitrank://stats             Stats for the active profile
  fitrank://achievements      Achievements for the active profile
  fitrank://workouts/recent   Recent workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := userFlag
		if userID == "" {
			userID = cfg.UserID
		}

		server, err := mcp.NewServer(coachSvc, userID, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
