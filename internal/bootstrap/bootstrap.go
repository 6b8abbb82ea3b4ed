// Package bootstrap wires configuration, infrastructure and application
// services into a ready-to-serve App.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/documedix/documedix/internal/config"
	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/ports"
	"github.com/documedix/documedix/internal/core/usecase"
	"github.com/documedix/documedix/internal/infrastructure/codebook"
	"github.com/documedix/documedix/internal/infrastructure/genai"
	"github.com/documedix/documedix/internal/infrastructure/resilience"
	"github.com/documedix/documedix/internal/infrastructure/scratch"
	"github.com/documedix/documedix/internal/observability/logging"
	"github.com/documedix/documedix/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ServerMetrics

	Client   *genai.Client
	Files    ports.FileService
	Scratch  *scratch.Dir
	Keywords domain.KeywordTable
	Store    domain.StoreInfo

	Pipeline *usecase.DraftPipeline
	Drafts   *usecase.DraftService
	Chat     *usecase.ChatService
	Uploader *usecase.CorpusUploader
}

// New builds the full dependency graph for one service process and resolves
// (creating on first use) the configured file-search store. service names the
// process for logs and metric labels.
func New(ctx context.Context, service string, cfg config.Config) (*App, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	logger := logging.New(service, cfg.LogLevel)
	serverMetrics := metrics.NewServerMetrics(service)

	client := genai.New(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel,
		genai.WithPollInterval(cfg.PollInterval),
	)

	scratchDir, err := scratch.New(cfg.ScratchDir, logger)
	if err != nil {
		return nil, err
	}

	execCfg := resilience.DefaultConfig()
	execCfg.MaxAttempts = cfg.RetryMaxAttempts
	executor := resilience.NewExecutor(execCfg)

	// The codebook is optional: without it item names fall back to the
	// letter-derived category label.
	var resolve usecase.ItemResolver
	if cfg.CodebookPath != "" {
		book, err := codebook.Load(cfg.CodebookPath)
		if err != nil {
			logger.Warn("codebook_load_failed", "path", cfg.CodebookPath, "error", err)
		} else {
			logger.Info("codebook_loaded", "path", cfg.CodebookPath, "entries", book.Len())
			resolve = func(code string) (string, int, bool) {
				entry, ok := book.Lookup(code)
				return entry.Name, entry.Grade, ok
			}
		}
	}

	keywords := domain.DefaultKeywords()
	if cfg.CategoryConfig != "" {
		keywords, err = domain.LoadKeywordOverrides(cfg.CategoryConfig)
		if err != nil {
			return nil, err
		}
		logger.Info("category_keywords_loaded", "path", cfg.CategoryConfig)
	}

	files := genai.NewResilientFileService(client, executor)
	store := genai.NewResilientStore(client, executor)
	generator := serverMetrics.WrapGenerator(service, client)

	uploader := usecase.NewCorpusUploader(store, scratchDir, cfg.StoreDisplayName, logger)
	storeInfo, err := uploader.EnsureStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve file search store: %w", err)
	}
	logger.Info("store_resolved",
		"store", storeInfo.Name,
		"display_name", storeInfo.DisplayName,
		"active_documents", storeInfo.ActiveDocuments,
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  serverMetrics,
		Client:   client,
		Files:    files,
		Scratch:  scratchDir,
		Keywords: keywords,
		Store:    storeInfo,
		Pipeline: usecase.NewDraftPipeline(generator, storeInfo.Name, resolve, logger),
		Drafts:   usecase.NewDraftService(files, generator, scratchDir, storeInfo.Name, resolve, logger),
		Chat:     usecase.NewChatService(generator, storeInfo.Name, logger),
		Uploader: uploader,
	}, nil
}
