package policy

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
)

type ExplainerUsecase interface {
	AnswerPolicyQuestion(ctx context.Context, question string, profile entity.UserProfile) (*entity.Explanation, error)
}

type RetrievalUsecase interface {
	Search(ctx context.Context, query string, k int, topic string) ([]entity.SearchHit, error)
}
