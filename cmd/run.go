package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/promptlab/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	env, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	engine, llmEnabled := env.engine(cmd.Context())
	sess := env.session(engine)
	env.logger.Info("session started", "session", sess.ID(), "level", sess.Level().ID, "llm", llmEnabled)

	return app.Run(app.Options{
		Session:     sess,
		Events:      env.store.EventRepo(),
		Logger:      env.logger,
		LLMEnabled:  llmEnabled,
		SkipWelcome: skipWelcome,
	})
}
