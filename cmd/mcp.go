package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptlab/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve PromptLab levels as MCP tools",
	Long: `Start a Model Context Protocol server exposing the levels, the prompt
checker and the explanation engine. Stdio is used unless --http is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		engine, llmEnabled := env.engine(ctx)
		srv := mcp.NewServer(mcp.Config{
			Version:  version,
			Catalog:  env.catalog,
			Progress: env.tracker,
			Engine:   engine,
			Events:   env.store.EventRepo(),
			Logger:   env.logger,
		})

		if useHTTP, _ := cmd.Flags().GetBool("http"); useHTTP {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = env.cfg.MCP.HTTPAddr
			}
			env.logger.Info("serving MCP over HTTP", "addr", addr, "llm", llmEnabled)
			return srv.ServeHTTP(ctx, addr)
		}
		env.logger.Debug("serving MCP over stdio", "llm", llmEnabled)
		return srv.ServeStdio(ctx)
	},
}

func init() {
	mcpCmd.Flags().Bool("http", false, "Serve over HTTP instead of stdio")
	mcpCmd.Flags().String("addr", "", "HTTP listen address (default from config, :8765)")
}
