// Package mcpserver exposes city search as Model Context Protocol tools over
// stdio, so assistants can resolve place names to catalog entries.
package mcpserver

import (
	"context"

	"github.com/andreiashu/geosearch"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const (
	// ServerName is the MCP server name
	ServerName = "geosearch"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the search engine it serves.
type Server struct {
	mcp    *server.MCPServer
	engine *geosearch.Engine
	logger zerolog.Logger
}

// NewServer creates an MCP server answering from engine.
func NewServer(engine *geosearch.Engine, logger zerolog.Logger) *Server {
	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion),
		engine: engine,
		logger: logger,
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdio and blocks until stdin closes or the
// process is signalled.
func (s *Server) Serve(_ context.Context) error {
	s.logger.Info().
		Int("cities", s.engine.Stats().Cities).
		Msg("serving MCP tools on stdio")
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchCitiesTool(), s.handleSearchCities)
	s.mcp.AddTool(searchCountryCitiesTool(), s.handleSearchCountryCities)
	s.mcp.AddTool(lookupCityTool(), s.handleLookupCity)
}
