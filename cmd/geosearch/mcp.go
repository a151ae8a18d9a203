package main

import (
	"github.com/andreiashu/geosearch/internal/mcpserver"
	"github.com/andreiashu/geosearch/internal/obs"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve search tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine := a.loadEngine(cmd.Context())
			return mcpserver.NewServer(engine, obs.Logger("mcp")).Serve(cmd.Context())
		},
	}
}
