// ABOUTME: MCP resource implementations for fitrank.
// ABOUTME: Provides fitrank://stats, fitrank://achievements, and fitrank://workouts/recent for the active profile.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fitrank/internal/achievements"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	statsURI          = "fitrank://stats"
	achievementsURI   = "fitrank://achievements"
	recentWorkoutsURI = "fitrank://workouts/recent"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Training Stats",
		Description: "Points, streaks and weekly allowance of the active profile",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         achievementsURI,
		Name:        "Achievements",
		Description: "Achievement catalog with earned state for the active profile",
		MIMEType:    "application/json",
	}, s.handleAchievementsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentWorkoutsURI,
		Name:        "Recent Workouts",
		Description: "Last 10 workouts of the active profile",
		MIMEType:    "application/json",
	}, s.handleRecentWorkoutsResource)
}

// Resource handlers

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	p, err := s.profile(ctx, "")
	if err != nil {
		return nil, err
	}

	stats, err := s.coach.Stats(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	allowance, err := s.coach.Allowance(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}

	return jsonResource(statsURI, map[string]any{
		"name":      p.Name,
		"premium":   p.Premium,
		"stats":     stats,
		"allowance": allowance,
	})
}

func (s *Server) handleAchievementsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.activeUserID(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.coach.Achievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	return jsonResource(achievementsURI, map[string]any{
		"achievements": all,
		"earned":       achievements.Earned(all),
		"total":        len(all),
	})
}

func (s *Server) handleRecentWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.activeUserID(ctx)
	if err != nil {
		return nil, err
	}

	workouts, err := s.coach.RecentWorkouts(ctx, userID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return jsonResource(recentWorkoutsURI, map[string]any{
		"workouts": workouts,
		"count":    len(workouts),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
