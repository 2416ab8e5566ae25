package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/config"
	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/ingest"
	"github.com/abhisek/wikismart/internal/learn"
	"github.com/abhisek/wikismart/internal/llm"
	"github.com/abhisek/wikismart/internal/pdftext"
	"github.com/abhisek/wikismart/internal/store"
	"github.com/abhisek/wikismart/internal/wiki"
)

// env is the assembled process: configuration, logger, store and the
// learner service.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *store.Store
	learner *learn.Service
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.logger.Sync()
}

// loadConfig reads --config and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if mode, _ := cmd.Flags().GetString("log-mode"); mode != "" {
		cfg.Log.Mode = mode
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// setup opens the store and builds the learner service. When withLLM is
// false, generation back-ends are not constructed and only ingestion works.
func setup(cmd *cobra.Command, withLLM bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st

	opts := learn.Options{
		Ingester:  ingest.New(wiki.New(cfg.Wiki, logger.Named("wiki")), logger.Named("ingest")),
		Extractor: pdftext.New(cfg.UploadDir, logger.Named("pdftext")),
		Articles:  st.Articles(),
		Quizzes:   st.Quizzes(),
		Attempts:  st.Attempts(),
		Logger:    logger.Named("learn"),
	}

	if withLLM {
		if ops := cfg.FillRoutes(); len(ops) > 0 {
			logger.Warn("routes missing credentials were rerouted",
				zap.Strings("operations", ops),
				zap.String("summarize", cfg.Routes.Summarize.Provider),
				zap.String("translate", cfg.Routes.Translate.Provider),
				zap.String("quiz", cfg.Routes.Quiz.Provider))
			e.cfg = cfg
		}
		if err := cfg.RequireCredentials(); err != nil {
			e.Close()
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		gen, err := buildGenerator(cmd.Context(), cfg, logger)
		if err != nil {
			e.Close()
			return nil, err
		}
		opts.Generator = gen
	}

	e.learner = learn.NewService(opts, cfg.Learn)
	return e, nil
}

// buildGenerator creates one generator per operation route.
func buildGenerator(ctx context.Context, cfg config.Config, logger *zap.Logger) (*generation.Router, error) {
	build := func(op string, route config.Route) (generation.Generator, error) {
		provider, err := llm.NewRoute(ctx, route.Provider, cfg.LLM, logger.Named("llm"))
		if err != nil {
			return nil, fmt.Errorf("%s route: %w", op, err)
		}
		return generation.New(route.Style, provider, cfg.Generation, logger.Named("generation"))
	}

	summarizer, err := build("summarize", cfg.Routes.Summarize)
	if err != nil {
		return nil, err
	}
	translator, err := build("translate", cfg.Routes.Translate)
	if err != nil {
		return nil, err
	}
	quizMaker, err := build("quiz", cfg.Routes.Quiz)
	if err != nil {
		return nil, err
	}
	return generation.NewRouter(summarizer, summarizer, translator, quizMaker), nil
}
