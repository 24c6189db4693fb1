package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/integration/common"
	pkgRetry "github.com/futig/cpf-explainer/internal/pkg/retry"
	pkghttp "github.com/futig/cpf-explainer/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector calls an OpenAI-compatible embeddings endpoint.
type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.EmbeddingConnectorConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("embedding", cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// EmbedBatch embeds texts in one request. The result is aligned with texts;
// a response with missing items or differing dimensions fails the whole batch.
func (c *Connector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "embedding batch", zap.Int("texts", len(texts)), zap.String("model", c.config.Model))

	req := &entity.EmbeddingRequest{
		Model: c.config.Model,
		Input: texts,
	}

	resp, err := pkgRetry.Do(ctx, &c.config.Retry, func(ctx context.Context) (*entity.EmbeddingResponse, error) {
		var out entity.EmbeddingResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.Endpoint, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingFailed, err)
	}

	return alignEmbeddings(resp.Data, len(texts))
}

// Embed embeds a single text.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func alignEmbeddings(data []entity.EmbeddingData, want int) ([][]float32, error) {
	if len(data) != want {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", entity.ErrEmbeddingFailed, want, len(data))
	}

	out := make([][]float32, want)
	dims := -1
	for _, item := range data {
		if item.Index < 0 || item.Index >= want || out[item.Index] != nil {
			return nil, fmt.Errorf("%w: unexpected embedding index %d", entity.ErrEmbeddingFailed, item.Index)
		}
		if dims == -1 {
			dims = len(item.Embedding)
		}
		if len(item.Embedding) == 0 || len(item.Embedding) != dims {
			return nil, fmt.Errorf("%w: inconsistent embedding dimensions", entity.ErrEmbeddingFailed)
		}

		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		out[item.Index] = vec
	}

	return out, nil
}
