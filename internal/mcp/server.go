// ABOUTME: MCP server setup for fitrank.
// ABOUTME: Wraps the MCP server around a coach and the active user's ID.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitrank/internal/coach"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes coach operations as MCP tools and resources.
type Server struct {
	mcpServer *mcp.Server
	coach     *coach.Coach
	userID    string
	logger    *log.Logger
}

// NewServer creates a new MCP server. userID is the profile used when a
// tool call does not name one; it may be empty.
func NewServer(c *coach.Coach, userID string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitrank",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		coach:     c,
		userID:    userID,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio", "user", s.userID)
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	s.logger.Info("mcp server stopped", "err", err)
	return err
}
