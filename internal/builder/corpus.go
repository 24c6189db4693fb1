package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/corpus"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/usecase/retrieval"
	"github.com/futig/cpf-explainer/internal/vectorindex"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CorpusTools are the components of the offline corpus CLI
type CorpusTools struct {
	Config   config.CorpusConfig
	TopK     int
	Builder  *corpus.Builder
	Embedder Embedder
	Logger   *zap.Logger
}

// BuildCorpusTools wires the corpus builder to the configured embedding service.
// maxChars overrides CORPUS_MAX_CHARS when positive.
func BuildCorpusTools(environment string, maxChars int) (*CorpusTools, error) {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if maxChars <= 0 {
		maxChars = cfg.CorpusCfg.MaxChars
	}

	embedder, _ := setupConnectors(cfg, log)

	return &CorpusTools{
		Config:   cfg.CorpusCfg,
		TopK:     cfg.RetrievalCfg.TopK,
		Builder:  corpus.NewBuilder(embedder, maxChars),
		Embedder: embedder,
		Logger:   log,
	}, nil
}

// Retrieval searches the corpus file at path
func (t *CorpusTools) Retrieval(path string) *retrieval.RetrievalUsecase {
	return retrieval.NewRetrievalUsecase(vectorindex.New(path), t.Embedder, time.Minute)
}

// Context returns a background context carrying the CLI logger
func (t *CorpusTools) Context() context.Context {
	return ctxzap.ToContext(context.Background(), t.Logger)
}
