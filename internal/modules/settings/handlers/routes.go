package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the settings routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Get("/instructions", h.HandleGetInstructions)
		r.Put("/instructions/{page}", h.HandleUpdateInstructions)
		r.Delete("/instructions", h.HandleResetInstructions)
	})
}
