// ABOUTME: Main entry point for the DevPulse Search API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devpulse-search-api/api"
	"devpulse-search-api/api/handlers"
	"devpulse-search-api/core/intent"
	"devpulse-search-api/core/interfaces"
	"devpulse-search-api/core/orchestrator"
	"devpulse-search-api/core/registry"
	"devpulse-search-api/core/relevance"
	"devpulse-search-api/core/searchcache"
	"devpulse-search-api/core/sources"
	"devpulse-search-api/infrastructure/cache/memory"
	"devpulse-search-api/infrastructure/cache/redis"
	openaiembed "devpulse-search-api/infrastructure/embeddings/openai"
	stdhttp "devpulse-search-api/infrastructure/http/standard"
	logruslogger "devpulse-search-api/infrastructure/logger/logrus"
	"devpulse-search-api/pkg/config"
	"devpulse-search-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Feature kill switches, read from FEATURE_* env vars
	flags := featureflags.NewEnvManager("")
	flagCtx := context.Background()

	// Create logger
	logger := logruslogger.NewLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting DevPulse Search API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache()
		logger.Info("Using memory cache", nil)
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Register content sources
	reg := registry.NewRegistry()
	register := func(src interfaces.ContentSource) {
		if err := reg.Register(src); err != nil {
			log.Fatalf("Failed to register source %s: %v", src.Name(), err)
		}
	}
	register(sources.NewGitHubSource(deps, cfg.Sources.GitHubToken))
	register(sources.NewRedditSource(deps))
	register(sources.NewHackerNewsSource(deps))
	register(sources.NewDevToSource(deps))
	register(sources.NewCryptoSource(deps))
	register(sources.NewStocksSource(deps))
	register(sources.NewIGNSource(deps))
	register(sources.NewPCGamerSource(deps))
	logger.Info("Registered content sources", map[string]interface{}{
		"sources": reg.Names(),
	})

	// Create scorer, with semantic blending when an embedding
	// endpoint is configured
	scorerOpts := []relevance.Option{}
	if cfg.Relevance.EmbeddingBaseURL != "" && !flags.IsEnabled(flagCtx, featureflags.DisableSemanticScoring) {
		embedder, err := openaiembed.NewEmbedder(openaiembed.Config{
			BaseURL: cfg.Relevance.EmbeddingBaseURL,
			APIKey:  cfg.Relevance.EmbeddingAPIKey,
			Model:   cfg.Relevance.EmbeddingModel,
		}, logger)
		if err != nil {
			logger.Error("Failed to create embedder, semantic scoring disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			scorerOpts = append(scorerOpts,
				relevance.WithEmbedder(embedder),
				relevance.WithSemanticWeight(cfg.Relevance.SemanticWeight),
			)
			logger.Info("Semantic scoring enabled", map[string]interface{}{
				"model":  cfg.Relevance.EmbeddingModel,
				"weight": cfg.Relevance.SemanticWeight,
			})
		}
	}
	scorer := relevance.NewScorer(scorerOpts...)

	// Create the result cache and orchestrator. A disabled result cache
	// gets a nil backend, which degrades every lookup to a miss.
	cacheBackend := cache
	if flags.IsEnabled(flagCtx, featureflags.DisableResultCache) {
		cacheBackend = nil
		logger.Info("Result cache disabled by feature flag", nil)
	}
	resultCache := searchcache.NewSearchCache(cacheBackend, logger, cfg.ResultTTLDuration())
	orch := orchestrator.NewOrchestrator(
		intent.NewClassifier(),
		reg,
		scorer,
		resultCache,
		logger,
		orchestrator.WithTimeouts(cfg.PerSourceTimeoutDuration(), cfg.GlobalTimeoutDuration()),
		orchestrator.WithDefaultLimit(cfg.Search.DefaultLimit),
	)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  100, // 100 requests per minute
		RateWindow: time.Minute,
	}
	if flags.IsEnabled(flagCtx, featureflags.DisableRateLimit) {
		apiConfig.RateLimit = 0
		logger.Info("Rate limiting disabled by feature flag", nil)
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	searchHandler := handlers.NewSearchHandler(orch)
	searchHandler.RegisterRoutes(humaAPI)

	sourcesHandler := handlers.NewSourcesHandler(reg)
	sourcesHandler.RegisterRoutes(humaAPI)

	healthHandler := handlers.NewHealthHandler(reg, resultCache)
	healthHandler.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

func init() {
	// Print banner
	fmt.Println(`
    ____            ____        __            _____
   / __ \___ _   __/ __ \__  __/ /_______    / ___/___  ____ ___________/ /_
  / / / / _ \ | / / /_/ / / / / / ___/ _ \   \__ \/ _ \/ __ '/ ___/ ___/ __ \
 / /_/ /  __/ |/ / ____/ /_/ / (__  )  __/  ___/ /  __/ /_/ / /  / /__/ / / /
/_____/\___/|___/_/    \__,_/_/____/\___/  /____/\___/\__,_/_/   \___/_/ /_/
	`)
}
