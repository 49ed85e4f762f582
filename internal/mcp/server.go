// Package mcp exposes the tourism assistant to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mezotravel/backend/internal/destinations"
	"github.com/mezotravel/backend/internal/documents"
	"github.com/mezotravel/backend/internal/rag"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes assistant tools.
type Server struct {
	docs  *documents.Store
	dests *destinations.Store
	svc   *rag.Service
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(docs *documents.Store, dests *destinations.Store, svc *rag.Service) *Server {
	s := &Server{docs: docs, dests: dests, svc: svc}

	s.mcp = server.NewMCPServer(
		"mezotravel",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
	s.mcp.AddTool(askAssistantTool, s.handleAskAssistant)
	s.mcp.AddTool(listDestinationsTool, s.handleListDestinations)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
