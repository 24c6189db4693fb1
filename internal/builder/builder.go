package builder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/cpf-explainer/internal/api"
	policyapi "github.com/futig/cpf-explainer/internal/api/policy"
	simulationapi "github.com/futig/cpf-explainer/internal/api/simulation"
	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/integration/embedding"
	"github.com/futig/cpf-explainer/internal/integration/llm"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/pkg/validator"
	"github.com/futig/cpf-explainer/internal/repository"
	"github.com/futig/cpf-explainer/internal/telegram"
	"github.com/futig/cpf-explainer/internal/usecase/explainer"
	"github.com/futig/cpf-explainer/internal/usecase/retrieval"
	"github.com/futig/cpf-explainer/internal/usecase/simulation"
	"github.com/futig/cpf-explainer/internal/vectorindex"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Embedder covers both the per-query and the corpus build use of the embedding service
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// core holds the components shared by the HTTP server and the Telegram bot
type core struct {
	cfg          *config.Config
	logger       *zap.Logger
	db           *pgxpool.Pool
	index        *vectorindex.Index
	validator    *validator.Validator
	retrievalUC  *retrieval.RetrievalUsecase
	explainerUC  *explainer.ExplainerUsecase
	simulationUC *simulation.SimulationUsecase
}

func Build(environment string) (*App, error) {
	c, err := buildCore(environment)
	if err != nil {
		return nil, err
	}

	policyHandler := policyapi.NewHandler(c.explainerUC, c.retrievalUC, c.validator)
	simulationHandler := simulationapi.NewHandler(c.simulationUC)
	c.logger.Info("API handlers initialized")

	router := api.SetupRouter(policyHandler, simulationHandler, c.index, c.logger)
	c.logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:              c.cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// explanations wait on the generation service
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	c.logger.Info("Application built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return &App{
		server: server,
		db:     c.db,
		logger: c.logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot(environment string) (telegram.Bot, *zap.Logger, func(), error) {
	c, err := buildCore(environment)
	if err != nil {
		return nil, nil, nil, err
	}

	closeDB := func() {
		if c.db != nil {
			c.db.Close()
		}
	}

	if c.cfg.TelegramCfg.BotToken == "" {
		closeDB()
		return nil, nil, nil, errors.New("TELEGRAM_BOT_TOKEN is required to run the telegram bot")
	}

	bot, err := telegram.NewBot(&c.cfg.TelegramCfg, c.explainerUC, c.simulationUC, c.validator, c.logger)
	if err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("Telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, closeDB, nil
}

func buildCore(environment string) (*core, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("corpus_path", cfg.CorpusCfg.Path),
	)

	repo, db, err := setupSimulationRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	embedder, generator := setupConnectors(cfg, log)

	index := vectorindex.New(cfg.CorpusCfg.Path)
	if err := index.Load(ctx); err != nil {
		if !errors.Is(err, entity.ErrCorpusUnavailable) {
			if db != nil {
				db.Close()
			}
			return nil, fmt.Errorf("load corpus: %w", err)
		}
		// Simulations work without a corpus; policy answers report 503 until it is built
		log.Warn("corpus not found, policy questions are unavailable until it is built",
			zap.String("corpus_path", cfg.CorpusCfg.Path),
		)
	} else {
		log.Info("corpus loaded", zap.Int("chunks", index.Len()))
	}

	retrievalUC := retrieval.NewRetrievalUsecase(index, embedder, cfg.RetrievalCfg.QueryCacheTTL)
	explainerUC := explainer.NewExplainerUsecase(retrievalUC, generator, cfg.RetrievalCfg.TopK)
	simulationUC := simulation.NewSimulationUsecase(repo, explainerUC, cfg.BenchmarkCfg.Benchmarks(), cfg.Presets)
	log.Info("Use cases initialized",
		zap.Int("presets", len(cfg.Presets)),
		zap.String("benchmark_year", cfg.BenchmarkCfg.YearLabel),
	)

	return &core{
		cfg:          cfg,
		logger:       log,
		db:           db,
		index:        index,
		validator:    validator.NewValidator(cfg.RetrievalCfg),
		retrievalUC:  retrievalUC,
		explainerUC:  explainerUC,
		simulationUC: simulationUC,
	}, nil
}

// setupSimulationRepository uses Postgres when DATABASE_URL is set and an in-memory store otherwise
func setupSimulationRepository(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
) (simulation.SimulationRepository, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, keeping simulation history in memory",
			zap.Duration("ttl", cfg.HistoryCfg.TTL),
		)
		return repository.NewSimulationMemory(cfg.HistoryCfg.TTL, cfg.HistoryCfg.CleanupInterval), nil, nil
	}

	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	log.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("Database migrations completed successfully")

	return repository.NewSimulationPostgres(db), db, nil
}

func setupConnectors(cfg *config.Config, log *zap.Logger) (Embedder, explainer.Generator) {
	if cfg.EnableMocks {
		log.Info("Using mock connectors for external services")
		return embedding.NewMockConnector(log), llm.NewMockConnector(log)
	}

	log.Info("Using real connectors for external services",
		zap.String("embedding_model", cfg.EmbeddingConnectorCfg.Model),
		zap.String("llm_model", cfg.LLMConnectorCfg.Model),
	)
	return embedding.NewConnector(cfg.EmbeddingConnectorCfg, log), llm.NewConnector(cfg.LLMConnectorCfg, log)
}
