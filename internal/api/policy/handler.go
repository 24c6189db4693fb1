package policy

import (
	"encoding/json"
	"net/http"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/pkg/response"
	"github.com/futig/cpf-explainer/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	explainer ExplainerUsecase
	retrieval RetrievalUsecase
	validator *validator.Validator
}

func NewHandler(
	explainer ExplainerUsecase,
	retrieval RetrievalUsecase,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		explainer: explainer,
		retrieval: retrieval,
		validator: validator,
	}
}

// AskQuestion handles POST /policy/questions
func (h *Handler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AskQuestion")

	var req entity.PolicyQuestionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateQuestion(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctxzap.Info(ctx, "answering policy question", zap.Int("question_length", len(req.Question)))

	explanation, err := h.explainer.AnswerPolicyQuestion(ctx, req.Question, req.Profile)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	if !explanation.OK() {
		ctxzap.Warn(ctx, "answered with fallback", zap.String("reason", explanation.Failure.Reason))
	}

	response.Success(w, toPolicyQuestionResponse(explanation))
}

// Search handles POST /retrieval/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Search")

	var req entity.SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSearch(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	hits, err := h.retrieval.Search(ctx, req.Query, req.K, req.Topic)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "search completed", zap.Int("results", len(hits)))

	response.Success(w, toSearchResponse(hits))
}
