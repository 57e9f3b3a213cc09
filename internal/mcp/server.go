// Package mcp exposes the tiling engine as Model Context Protocol tools so
// assistants can inspect and rearrange windows.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/1broseidon/tilecore/internal/engine"
)

const (
	ServerName    = "tilecore"
	ServerVersion = "0.1.0"
)

// Server is the MCP server. Every tool runs one engine command on exec,
// which is the daemon's IPC client in production.
type Server struct {
	mcpServer *mcpsdk.Server
	exec      engine.Executor
	logger    *zap.Logger
}

// NewServer creates a server driving exec.
func NewServer(exec engine.Executor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		exec:   exec,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// execute runs cmd and logs the outcome.
func (s *Server) execute(ctx context.Context, tool string, cmd engine.Command) (engine.Result, error) {
	res, err := s.exec.Execute(ctx, cmd)
	if err != nil {
		s.logger.Info("tool failed", zap.String("tool", tool), zap.String("op", string(cmd.Op)), zap.Error(err))
		return engine.Result{}, fmt.Errorf("%s failed: %w", tool, err)
	}
	s.logger.Debug("tool executed", zap.String("tool", tool), zap.String("op", string(cmd.Op)))
	return *res, nil
}
