package simulation

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 16 << 10

	explanationUnavailable = "An explanation is not available right now. The projection above is still valid."
)

type Handler struct {
	usecase SimulationUsecase
}

func NewHandler(usecase SimulationUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateSimulation handles POST /simulations[?explain=true]
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSimulation")

	var inputs entity.RetirementInputs
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&inputs); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	run, err := h.usecase.Simulate(ctx, inputs)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	var explanation *entity.Explanation
	if wantExplanation(r) {
		explanation = h.explain(ctx, run)
	}

	response.Created(w, toSimulationResponse(run, explanation))
}

// ListSimulations handles GET /simulations
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListSimulations")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.usecase.List(ctx, limit)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	summaries := make([]*entity.SimulationSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, toSimulationSummary(run))
	}

	ctxzap.Debug(ctx, "simulations listed", zap.Int("count", len(summaries)))

	response.Success(w, &entity.ListSimulationsResponse{Simulations: summaries})
}

// GetSimulation handles GET /simulations/{simulation_id}[?explain=true]
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "simulation_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "GetSimulation"), zap.String("simulation_id", id))

	run, err := h.usecase.Get(ctx, id)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	var explanation *entity.Explanation
	if wantExplanation(r) {
		explanation = h.explain(ctx, run)
	}

	response.Success(w, toSimulationResponse(run, explanation))
}

// GetReport handles GET /simulations/{simulation_id}/report?format=md|pdf|docx[&explain=true]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "simulation_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "GetReport"), zap.String("simulation_id", id))

	formatParam := r.URL.Query().Get("format")
	format, ok := entity.ParseResultFormat(formatParam)
	if !ok {
		response.Error(ctx, w, http.StatusBadRequest, "format must be one of: md, markdown, pdf, docx", nil)
		return
	}

	var explanationText string
	if wantExplanation(r) {
		run, err := h.usecase.Get(ctx, id)
		if err != nil {
			response.UsecaseError(ctx, w, err)
			return
		}
		explanationText = h.explain(ctx, run).Text
	}

	file, err := h.usecase.Report(ctx, id, format, explanationText)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.File(w, file)
}

// ListPresets handles GET /simulations/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	response.Success(w, &entity.ListPresetsResponse{Presets: h.usecase.Presets()})
}

// GetBenchmarks handles GET /benchmarks
func (h *Handler) GetBenchmarks(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.Benchmarks())
}

// explain never fails the request: the projection stands on its own.
func (h *Handler) explain(ctx context.Context, run *entity.SimulationRun) *entity.Explanation {
	explanation, err := h.usecase.Explain(ctx, run)
	if err != nil {
		ctxzap.Warn(ctx, "simulation explanation unavailable", zap.Error(err))
		return &entity.Explanation{
			Text:    explanationUnavailable,
			Sources: []entity.SourceRef{},
			Failure: &entity.GenerationFailure{Reason: err.Error()},
		}
	}
	return explanation
}

func wantExplanation(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("explain"))
	return v
}
