package policy

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers policy question and retrieval routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/policy/questions", h.AskQuestion)
	r.Post("/retrieval/search", h.Search)
}
