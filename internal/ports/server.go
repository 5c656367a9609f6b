package ports

import "context"

// Server is a long-running outer surface such as the MCP stdio server or
// the HTTP API.
// This is a driving port (called by the application layer).
type Server interface {
	// Start begins serving requests and blocks until ctx ends or serving fails.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}
