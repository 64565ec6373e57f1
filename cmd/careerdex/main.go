package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/config"
	"github.com/careerdex/careerdex/internal/db"
	dbRedis "github.com/careerdex/careerdex/internal/db/redis"
	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/embedding"
	"github.com/careerdex/careerdex/internal/index"
	logpkg "github.com/careerdex/careerdex/internal/logger"
	"github.com/careerdex/careerdex/internal/metrics"
	"github.com/careerdex/careerdex/internal/normalizer"
	"github.com/careerdex/careerdex/internal/repository/catalog"
	"github.com/careerdex/careerdex/internal/repository/embcache"
	chiTransport "github.com/careerdex/careerdex/internal/transport/chi"
	openaiEmb "github.com/careerdex/careerdex/internal/transport/openai"
	builduc "github.com/careerdex/careerdex/internal/usecase/build"
	healthuc "github.com/careerdex/careerdex/internal/usecase/health"
	retrieveuc "github.com/careerdex/careerdex/internal/usecase/retrieve"
	"github.com/careerdex/careerdex/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting careerdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.String("index_dir", cfg.Storage.IndexDir),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	// Register domain metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Optional embedding cache
	var cache db.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(context.Background(), 10*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder, embedderName := buildEmbedder(cfg, cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", embedderName),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	store := index.NewStore(cfg.Storage.IndexDir, logger)
	cat := catalog.New(cfg.Storage.DataDir, logger)
	norm := normalizer.New(normalizer.Tables{})

	buildSvc := builduc.New(store, cat, embedder, embedderName, logger)
	retrSvc := retrieveuc.New(retrieveuc.Config{
		Store:             store,
		Catalog:           cat,
		Embedder:          embedder,
		EmbedderName:      embedderName,
		FilterOverfetch:   cfg.Retrieval.FilterOverfetch,
		CombinedOverfetch: cfg.Retrieval.CombinedOverfetch,
		Fusion: retrieveuc.FusionWeights{
			Match:   cfg.Retrieval.MatchWeight,
			Related: cfg.Retrieval.RelatedWeight,
			Distant: cfg.Retrieval.DistantWeight,
		},
		Lexical: retrieveuc.LexicalWeights{
			IDTitle:    cfg.Lexical.IDTitleWeight,
			TitleField: cfg.Lexical.TitleFieldWeight,
			Tag:        cfg.Lexical.TagWeight,
			Body:       cfg.Lexical.BodyWeight,
			Divisor:    cfg.Lexical.ScoreDivisor,
		},
		Logger: logger,
	})

	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(embedder), cachePinger)

	server := chiTransport.NewServer(
		retrSvc, buildSvc, healthSvc, norm,
		cfg.Retrieval.DefaultTopK, cfg.Retrieval.MaxTopK, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder: provider base, optionally wrapped in
// the cache decorator. Returns the embedder plus the name recorded in build
// metadata.
func buildEmbedder(cfg config.Config, cache db.Store, logger *zap.Logger) (domain.Embedder, string) {
	var base domain.Embedder
	var name string

	switch cfg.Embedding.Provider {
	case "openai":
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		name = cfg.Embedding.Model
	default:
		base = embedding.NewDeterministic(cfg.Embedding.Dimensions)
		name = embedding.Name
	}

	if cache != nil {
		return embcache.New(base, cache, cfg.Cache.Prefix, metrics.EmbeddingCacheTotal, logger), name
	}
	return base, name
}

// embeddingHealthChecker adapts domain.Embedder to health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
