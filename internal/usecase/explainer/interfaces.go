package explainer

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
)

type Retriever interface {
	Retrieve(ctx context.Context, query string, k int, topic string) ([]entity.CorpusRecord, error)
}

type Generator interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (string, error)
}
