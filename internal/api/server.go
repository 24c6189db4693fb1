package api

import (
	"net/http"
	"time"

	"github.com/futig/cpf-explainer/internal/api/docs"
	"github.com/futig/cpf-explainer/internal/api/middleware"
	policyapi "github.com/futig/cpf-explainer/internal/api/policy"
	simulationapi "github.com/futig/cpf-explainer/internal/api/simulation"
	"github.com/futig/cpf-explainer/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthReporter reports whether the policy corpus is loaded.
type HealthReporter interface {
	Loaded() bool
	Len() int
	Dimensions() int
}

type healthResponse struct {
	Status           string `json:"status"`
	CorpusLoaded     bool   `json:"corpus_loaded"`
	CorpusChunks     int    `json:"corpus_chunks"`
	CorpusDimensions int    `json:"corpus_dimensions"`
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	policyHandler *policyapi.Handler,
	simulationHandler *simulationapi.Handler,
	health HealthReporter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(90 * time.Second))

	// the service stays healthy without a corpus; simulations still work
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, healthResponse{
			Status:           "healthy",
			CorpusLoaded:     health.Loaded(),
			CorpusChunks:     health.Len(),
			CorpusDimensions: health.Dimensions(),
		})
	})

	docs.RegisterRoutes(r)

	policyapi.RegisterRoutes(r, policyHandler)
	simulationapi.RegisterRoutes(r, simulationHandler)

	return r
}
