package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/hirescope/hirescope/internal/ai"
	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/embedcache"
	"github.com/hirescope/hirescope/internal/handler"
	"github.com/hirescope/hirescope/internal/middleware"
	"github.com/hirescope/hirescope/internal/service"
	"github.com/hirescope/hirescope/internal/session"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hirescope",
		Short: "hirescope resume screening server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run hirescope server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	entries := make([]ai.GeneratorEntry, 0, 1+len(cfg.Fallbacks))

	primary, err := ai.NewGenProvider(cfg.Provider, cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("init ai provider %s: %w", cfg.Provider, err)
	}
	entries = append(entries, ai.GeneratorEntry{
		Name:      cfg.Provider,
		Generator: ai.NewGenerator(primary, cfg.Model),
	})
	for _, fb := range cfg.Fallbacks {
		provider, err := ai.NewGenProvider(fb.Provider, fb.Data)
		if err != nil {
			return nil, fmt.Errorf("init fallback provider %s: %w", fb.Provider, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      fb.Provider,
			Generator: ai.NewGenerator(provider, fb.Model),
		})
	}
	return ai.NewGroupGenerator(entries), nil
}

func buildEmbedder(cfg config.EmbeddingConfig) (ai.IEmbedder, error) {
	args := cfg.Data
	if args == nil && cfg.Dimensions > 0 {
		args = map[string]interface{}{"dimensions": cfg.Dimensions}
	}
	provider, err := ai.NewEmbedProvider(cfg.Provider, args)
	if err != nil {
		return nil, fmt.Errorf("init embedding provider %s: %w", cfg.Provider, err)
	}
	embedder := ai.NewEmbedder(provider, cfg.Model)
	return embedcache.WrapLruCacheToEmbedder(
		embedder,
		cfg.CacheSize,
		time.Duration(cfg.CacheTTLMinutes)*time.Minute,
	), nil
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	generator, err := buildGenerator(cfg.AI)
	if err != nil {
		return err
	}
	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}

	store := session.NewStore()
	screeningService := service.NewScreeningService(store, embedder, generator, service.Options{
		TopK:             cfg.RAG.TopK,
		HistoryWindow:    cfg.RAG.HistoryWindow,
		MaxQuestionChars: cfg.RAG.MaxQuestionChars,
		MaxInputChars:    cfg.AI.MaxInputChars,
		GenerateTimeout:  time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	})

	deps := handler.RouterDeps{
		Screening:       handler.NewScreeningHandler(screeningService, cfg.RAG.MaxUploadBytes),
		Health:          handler.NewHealthHandler(screeningService),
		RateLimitWindow: time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.AllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
