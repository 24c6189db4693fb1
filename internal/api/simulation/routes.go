package simulation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers simulator routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/benchmarks", h.GetBenchmarks)

	r.Route("/simulations", func(r chi.Router) {
		r.Post("/", h.CreateSimulation)
		r.Get("/", h.ListSimulations)
		r.Get("/presets", h.ListPresets)

		r.Route("/{simulation_id}", func(r chi.Router) {
			r.Get("/", h.GetSimulation)
			r.Get("/report", h.GetReport)
		})
	})
}
