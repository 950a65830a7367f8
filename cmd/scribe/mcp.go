package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/scribe/mcpserver"
	"github.com/jonwraymond/scribe/registry"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp [script.js]",
		Short: "Run a script, then serve its call histories over MCP on stdio",
		Long: `Run a script, then start a Model Context Protocol server on stdin/stdout
exposing the list_entities, calls, last_call and tail tools.

A failing script is logged and its partial histories are still served.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			if len(args) == 1 {
				ex, err := a.execute(cmd.Context(), args[0])
				if ex == nil {
					return err
				}
				reg = ex.Result.Registry
				for _, line := range ex.Result.Logs {
					a.logger.Info("console", "line", line)
				}
			}

			srv := mcpserver.New(&mcp.Implementation{Name: a.cfg.MCP.Name, Version: a.cfg.MCP.Version}, reg)
			a.logger.Info("serving MCP on stdio", "entities", reg.Len())
			return srv.Run(cmd.Context())
		},
	}
	addRunFlags(cmd)
	return cmd
}
