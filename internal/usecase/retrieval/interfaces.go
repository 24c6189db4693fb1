package retrieval

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type VectorIndex interface {
	Load(ctx context.Context) error
	Search(ctx context.Context, query []float32, k int, topic string) ([]entity.SearchHit, error)
}
