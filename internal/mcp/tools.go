// ABOUTME: MCP tool implementations for fitrank.
// ABOUTME: Profiles, workout generation and completion, stats, achievements and rankings.
package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/fitrank/internal/achievements"
	"github.com/harperreed/fitrank/internal/coach"
	"github.com/harperreed/fitrank/internal/models"
	"github.com/harperreed/fitrank/internal/planner"
	"github.com/harperreed/fitrank/internal/progress"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the training profile (goal, level, time, weekly frequency, weight, gym)",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_workout",
		Description: "Generate and start a new workout for the user; free accounts get 2 per week",
	}, s.handleGenerateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_exercise",
		Description: "Toggle an exercise in an in-progress workout as done or not done",
	}, s.handleCheckExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish a workout whose exercises are all checked; scores it and updates streaks",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get points, streaks and weekly allowance",
	}, s.handleGetStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_achievements",
		Description: "List achievements with their earned state",
	}, s.handleListAchievements)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "leaderboard",
		Description: "Monthly points ranking of the user's gym",
	}, s.handleLeaderboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "select_plan",
		Description: "Show which weekly split fits a training frequency and goal",
	}, s.handleSelectPlan)
}

// Tool input/output types

type userInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the active profile"`
}

type checkExerciseInput struct {
	WorkoutID string `json:"workout_id" jsonschema:"Workout ID or prefix"`
	Exercise  string `json:"exercise" jsonschema:"1-based position, exercise ID, or instance ID prefix"`
}

type checkExerciseOutput struct {
	WorkoutID string `json:"workout_id"`
	Exercise  string `json:"exercise"`
	Completed bool   `json:"completed"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}

type finishWorkoutInput struct {
	WorkoutID       string `json:"workout_id" jsonschema:"Workout ID or prefix"`
	DurationMinutes int    `json:"duration_minutes,omitempty" jsonschema:"Override the measured duration in minutes"`
}

type listWorkoutsInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the active profile"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listAchievementsInput struct {
	UserID     string `json:"user_id,omitempty" jsonschema:"Profile ID or prefix; defaults to the active profile"`
	EarnedOnly bool   `json:"earned_only,omitempty" jsonschema:"Only list unlocked achievements"`
}

type selectPlanInput struct {
	WeeklyFrequency int    `json:"weekly_frequency" jsonschema:"Training sessions per week (2 to 6)"`
	Goal            string `json:"goal" jsonschema:"hypertrophy, weight-loss, endurance or beginner-health"`
}

// Tool handlers

func (s *Server) profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		userID = s.userID
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: no active profile; run 'fitrank profile set' first", coach.ErrNoProfile)
	}
	return s.coach.LoadProfile(ctx, userID)
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	plan := planner.PlanFor(p.WeeklyFrequency, p.Goal)
	return nil, map[string]any{
		"profile": p,
		"plan":    plan.Name,
	}, nil
}

func (s *Server) handleGenerateWorkout(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.coach.StartWorkout(ctx, p.ID.String())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate workout: %w", err)
	}
	return nil, session, nil
}

func (s *Server) handleCheckExercise(ctx context.Context, req *mcp.CallToolRequest, input checkExerciseInput) (*mcp.CallToolResult, checkExerciseOutput, error) {
	before, err := s.coach.Repository().GetWorkout(ctx, input.WorkoutID)
	if err != nil {
		return nil, checkExerciseOutput{}, fmt.Errorf("workout not found: %s", input.WorkoutID)
	}

	w, err := s.coach.ToggleExercise(ctx, before.ID.String(), input.Exercise)
	if err != nil {
		return nil, checkExerciseOutput{}, fmt.Errorf("failed to check exercise: %w", err)
	}

	var changed models.GeneratedExercise
	for i, e := range w.Exercises {
		if e.Completed != before.Exercises[i].Completed {
			changed = e
			break
		}
	}

	state := "not done"
	if changed.Completed {
		state = "done"
	}
	return nil, checkExerciseOutput{
		WorkoutID: w.ID.String()[:8],
		Exercise:  changed.Name,
		Completed: changed.Completed,
		Done:      w.CompletedCount(),
		Total:     len(w.Exercises),
		Message:   fmt.Sprintf("%s marked %s (%d/%d)", changed.Name, state, w.CompletedCount(), len(w.Exercises)),
	}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input finishWorkoutInput) (*mcp.CallToolResult, any, error) {
	done, err := s.coach.FinishWorkout(ctx, input.WorkoutID, coach.FinishOptions{DurationMinutes: input.DurationMinutes})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to finish workout: %w", err)
	}
	return nil, done, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	p, err := s.profile(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}

	workouts, err := s.coach.RecentWorkouts(ctx, p.ID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, workouts, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.coach.Stats(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stats: %w", err)
	}
	allowance, err := s.coach.Allowance(ctx, p)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	return nil, struct {
		Stats     *models.UserStats  `json:"stats"`
		Allowance progress.Allowance `json:"allowance"`
	}{stats, allowance}, nil
}

func (s *Server) handleListAchievements(ctx context.Context, req *mcp.CallToolRequest, input listAchievementsInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}

	all, err := s.coach.Achievements(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	list := all
	if input.EarnedOnly {
		list = []*models.Achievement{}
		for _, a := range all {
			if a.Earned {
				list = append(list, a)
			}
		}
	}
	return nil, map[string]any{
		"achievements": list,
		"earned":       achievements.Earned(all),
		"total":        len(all),
	}, nil
}

func (s *Server) handleLeaderboard(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	p, err := s.profile(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	standing, err := s.coach.Leaderboard(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	return nil, standing, nil
}

func (s *Server) handleSelectPlan(ctx context.Context, req *mcp.CallToolRequest, input selectPlanInput) (*mcp.CallToolResult, any, error) {
	goal, err := models.ParseGoal(input.Goal)
	if err != nil {
		return nil, nil, err
	}
	return nil, planner.PlanFor(input.WeeklyFrequency, goal), nil
}

// activeUserID resolves the default profile for resources.
func (s *Server) activeUserID(ctx context.Context) (uuid.UUID, error) {
	p, err := s.profile(ctx, "")
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}
