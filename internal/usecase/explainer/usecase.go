// Package explainer grounds generated explanations in retrieved policy excerpts.
package explainer

import (
	"context"
	"errors"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type ExplainerUsecase struct {
	retriever Retriever
	generator Generator
	topK      int
}

func NewExplainerUsecase(retriever Retriever, generator Generator, topK int) *ExplainerUsecase {
	return &ExplainerUsecase{
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}
}

// AnswerPolicyQuestion retrieves excerpts for the question and asks the generation
// service for an explanation. Retrieval errors, including entity.ErrCorpusUnavailable,
// are returned; generation errors become a fallback Explanation.
func (uc *ExplainerUsecase) AnswerPolicyQuestion(
	ctx context.Context,
	question string,
	profile entity.UserProfile,
) (*entity.Explanation, error) {
	topic := topicFor(question)
	ctx = logger.WithAction(ctx, "AnswerPolicyQuestion")
	ctx = logger.AddFields(ctx, zap.String("topic_filter", topic))

	records, err := uc.retriever.Retrieve(ctx, retrievalQuery(question, profile), uc.topK, topic)
	if err != nil {
		return nil, err
	}

	req := &entity.GenerationRequest{
		System:  systemPrompt,
		Context: questionContext(profile, records),
		User:    "User question:\n" + question + "\n\n" + questionInstructions,
	}

	return uc.generate(ctx, req, records)
}

// ExplainSimulation explains projection results against the retirement sums excerpts.
func (uc *ExplainerUsecase) ExplainSimulation(
	ctx context.Context,
	inputs entity.RetirementInputs,
	scenarios []entity.ScenarioResult,
	classification entity.Classification,
) (*entity.Explanation, error) {
	ctx = logger.WithAction(ctx, "ExplainSimulation")

	records, err := uc.retriever.Retrieve(ctx, simulationQuery(classification), uc.topK, TopicRetirementSums)
	if err != nil {
		return nil, err
	}

	req := &entity.GenerationRequest{
		System:  systemPrompt,
		Context: simulationContext(inputs, scenarios, classification, records),
		User:    simulationInstructions,
	}

	return uc.generate(ctx, req, records)
}

func (uc *ExplainerUsecase) generate(
	ctx context.Context,
	req *entity.GenerationRequest,
	records []entity.CorpusRecord,
) (*entity.Explanation, error) {
	explanation := &entity.Explanation{
		Grounded: len(records) > 0,
		Sources:  sourceRefs(records),
	}

	text, err := uc.generator.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}

		ctxzap.Error(ctx, "generation failed, returning fallback", zap.Error(err))
		explanation.Text = FallbackMessage
		explanation.Failure = &entity.GenerationFailure{Reason: err.Error()}
		return explanation, nil
	}

	explanation.Text = text
	ctxzap.Info(ctx, "explanation ready",
		zap.Bool("grounded", explanation.Grounded),
		zap.Int("sources", len(records)),
	)

	return explanation, nil
}

func sourceRefs(records []entity.CorpusRecord) []entity.SourceRef {
	refs := make([]entity.SourceRef, len(records))
	for i, r := range records {
		refs[i] = entity.SourceRef{
			ChunkID: r.ChunkID,
			Title:   r.Title,
			Source:  r.Source,
			Topic:   r.Topic,
		}
	}
	return refs
}
