package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/promptlab/internal/config"
	"github.com/abhisek/promptlab/internal/explain"
	"github.com/abhisek/promptlab/internal/game"
	"github.com/abhisek/promptlab/internal/levels"
	"github.com/abhisek/promptlab/internal/llm"
	"github.com/abhisek/promptlab/internal/progress"
	"github.com/abhisek/promptlab/internal/store"
)

// appEnv is everything a command needs: settings, logging, storage, the
// level catalog and saved progress.
type appEnv struct {
	cfg     config.Config
	logger  *log.Logger
	logSink io.Closer
	store   *store.Store
	catalog *levels.Catalog
	tracker *progress.Tracker
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("levels"); p != "" {
		cfg.LevelsFile = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if cmd.Flags().Changed("seed") {
		cfg.Explanation.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path: --db or PROMPTLAB_DB through the
// config, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openEnv loads settings and opens the store. A full-screen UI logs to the
// configured log file only; other commands log to stderr.
func openEnv(cmd *cobra.Command, fullScreen bool) (*appEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &appEnv{cfg: cfg}
	if fullScreen {
		sink, err := cfg.OpenLogFile()
		if err != nil {
			return nil, err
		}
		env.logSink = sink
		env.logger = cfg.NewLogger(sink)
	} else {
		env.logger = cfg.NewLogger(os.Stderr)
	}

	env.catalog, err = levels.Load(cfg.LevelsFile)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("load levels: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	env.store, err = store.Open(dbPath)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	env.logger.Debug("store opened", "path", dbPath)

	env.tracker, err = progress.Load(cmd.Context(), env.store.ProgressRepo(), env.catalog.Total())
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

// Close releases the store and log file.
func (e *appEnv) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logSink != nil {
		e.logSink.Close()
	}
}

// engine builds the explanation engine. The returned flag reports whether
// an LLM provider backs oracle explanations.
func (e *appEnv) engine(ctx context.Context) (*explain.Engine, bool) {
	opts := []explain.Option{
		explain.WithOracleConfig(e.cfg.OracleConfig()),
		explain.WithLogger(e.logger),
	}
	if e.cfg.Explanation.Seed != 0 {
		opts = append(opts, explain.WithSeed(e.cfg.Explanation.Seed))
	}

	llmEnabled := false
	if llmCfg, ok := e.cfg.ResolveLLM(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), e.logger)
		if err != nil {
			e.logger.Warn("LLM provider not configured, oracle explanations fall back to analytical", "err", err)
		} else {
			opts = append(opts, explain.WithProvider(provider))
			llmEnabled = true
			e.logger.Debug("LLM provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())
		}
	}
	return explain.NewEngine(opts...), llmEnabled
}

// session starts a game session over the saved progress. A mode saved by
// the player wins over the configured default; opts are applied last.
func (e *appEnv) session(engine *explain.Engine, opts ...game.Option) *game.Session {
	mode := e.tracker.Mode()
	if mode == "" {
		mode = e.cfg.Explanation.Mode
	}
	base := []game.Option{
		game.WithEvents(e.store.EventRepo()),
		game.WithLogger(e.logger),
		game.WithMode(mode),
	}
	return game.New(e.catalog, e.tracker, engine, append(base, opts...)...)
}
