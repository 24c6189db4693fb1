// Package retrieval embeds user queries and ranks corpus chunks against them.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type RetrievalUsecase struct {
	index    VectorIndex
	embedder Embedder
	// query text -> embedding; skips repeat calls to the embedding service
	queryCache *cache.Cache
}

func NewRetrievalUsecase(index VectorIndex, embedder Embedder, cacheTTL time.Duration) *RetrievalUsecase {
	return &RetrievalUsecase{
		index:      index,
		embedder:   embedder,
		queryCache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Search returns at most k hits ranked by descending similarity, restricted to
// topic when it is non-empty. The corpus is loaded before the query is embedded,
// so a missing corpus reports entity.ErrCorpusUnavailable without calling out.
func (uc *RetrievalUsecase) Search(ctx context.Context, query string, k int, topic string) ([]entity.SearchHit, error) {
	ctx = logger.WithAction(ctx, "Retrieve")
	ctx = logger.AddFields(ctx, zap.Int("k", k), zap.String("topic", topic))

	if err := uc.index.Load(ctx); err != nil {
		return nil, err
	}

	if k <= 0 {
		return []entity.SearchHit{}, nil
	}

	vec, err := uc.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := uc.index.Search(ctx, vec, k, topic)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	ctxzap.Debug(ctx, "retrieval finished", zap.Int("hits", len(hits)))

	return hits, nil
}

// Retrieve is Search without the similarity scores.
func (uc *RetrievalUsecase) Retrieve(ctx context.Context, query string, k int, topic string) ([]entity.CorpusRecord, error) {
	hits, err := uc.Search(ctx, query, k, topic)
	if err != nil {
		return nil, err
	}

	records := make([]entity.CorpusRecord, len(hits))
	for i, h := range hits {
		records[i] = h.Record
	}
	return records, nil
}

func (uc *RetrievalUsecase) embedQuery(ctx context.Context, query string) ([]float32, error) {
	key := strings.TrimSpace(query)
	if cached, ok := uc.queryCache.Get(key); ok {
		ctxzap.Debug(ctx, "query embedding cache hit")
		return cached.([]float32), nil
	}

	vec, err := uc.embedder.Embed(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uc.queryCache.SetDefault(key, vec)
	return vec, nil
}
