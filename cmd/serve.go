package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/cache"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/config"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/diagnosis"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/llm"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/repo"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine; the environment itself may be configured.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	repository, err := buildRepository(cfg, logger)
	if err != nil {
		return err
	}

	store, err := buildCache(ctx, cfg, logger)
	if err != nil {
		return err
	}

	provider, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}

	diag := diagnosis.NewService(
		provider,
		&repoTopicSource{repo: repository},
		store,
		diagnosis.Config{Mock: cfg.AI.Mock, CacheTTL: cfg.CacheTTL},
		logger,
	)

	return server.New(cfg, repository, store, diag, logger).Run()
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func buildRepository(cfg config.Config, logger *zap.Logger) (repo.Repository, error) {
	if cfg.DatabaseURL != "" && !cfg.UseInMemory {
		r, err := repo.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("using postgres repository")
		return r, nil
	}
	logger.Info("using in-memory repository")
	return repo.NewMemory(), nil
}

func buildCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (cache.Cache, error) {
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("using redis cache", zap.String("addr", cfg.RedisAddr))
		return c, nil
	}
	logger.Info("using in-memory cache")
	return cache.NewMemory(), nil
}

func buildProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) (llm.Provider, error) {
	if cfg.AI.Mock {
		logger.Info("AI mock mode enabled; no model calls will be made")
		return nil, nil
	}
	p, err := llm.NewGeminiProvider(ctx, llm.GeminiConfig{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create model provider: %w", err)
	}
	logger.Info("model gateway ready", zap.String("model", cfg.AI.Model))
	return llm.WithLogging(p, logger), nil
}

// repoTopicSource adapts the repository's topic rows to the prompt metadata
// the analysis pipeline consumes.
type repoTopicSource struct {
	repo repo.Repository
}

func (t *repoTopicSource) TopicsBySubject(ctx context.Context, subject string) ([]diagnosis.TopicInfo, error) {
	topics, err := t.repo.TopicsBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	out := make([]diagnosis.TopicInfo, 0, len(topics))
	for _, topic := range topics {
		out = append(out, diagnosis.TopicInfo{
			Name:          topic.Name,
			JambWeight:    topic.JambWeight,
			Prerequisites: topic.PrerequisiteNames(),
		})
	}
	return out, nil
}
