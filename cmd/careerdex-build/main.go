// Command careerdex-build rebuilds the vector indexes offline, without
// starting the API server.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/config"
	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/embedding"
	"github.com/careerdex/careerdex/internal/index"
	logpkg "github.com/careerdex/careerdex/internal/logger"
	"github.com/careerdex/careerdex/internal/metrics"
	"github.com/careerdex/careerdex/internal/repository/catalog"
	openaiEmb "github.com/careerdex/careerdex/internal/transport/openai"
	builduc "github.com/careerdex/careerdex/internal/usecase/build"
	"github.com/careerdex/careerdex/internal/version"
)

func main() {
	domainFlag := flag.String("domain", "", "build a single domain (job, advice, profile, combined); empty builds everything")
	timeoutFlag := flag.Duration("timeout", 10*time.Minute, "overall build timeout")
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting index build",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.String("index_dir", cfg.Storage.IndexDir),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	var embedder domain.Embedder
	var embedderName string
	switch cfg.Embedding.Provider {
	case "openai":
		embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		embedderName = cfg.Embedding.Model
	default:
		embedder = embedding.NewDeterministic(cfg.Embedding.Dimensions)
		embedderName = embedding.Name
	}

	store := index.NewStore(cfg.Storage.IndexDir, logger)
	cat := catalog.New(cfg.Storage.DataDir, logger)
	svc := builduc.New(store, cat, embedder, embedderName, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	if *domainFlag != "" {
		d, err := domain.ParseDomain(*domainFlag)
		if err != nil {
			logger.Fatal("Invalid domain", zap.String("domain", *domainFlag), zap.Error(err))
		}
		res, err := svc.BuildDomain(ctx, d)
		if err != nil {
			logger.Fatal("Build failed", zap.String("domain", *domainFlag), zap.Error(err))
		}
		logger.Info("Build complete",
			zap.String("domain", string(res.Domain)),
			zap.Int("documents", res.Documents),
			zap.Duration("duration", res.Duration),
		)
		return
	}

	results, err := svc.BuildAll(ctx)
	if err != nil {
		logger.Fatal("Build failed", zap.Error(err))
	}
	for _, res := range results {
		logger.Info("Build complete",
			zap.String("domain", string(res.Domain)),
			zap.Int("documents", res.Documents),
			zap.Int("total_tokens", res.TotalTokens),
			zap.Duration("duration", res.Duration),
		)
	}
}
