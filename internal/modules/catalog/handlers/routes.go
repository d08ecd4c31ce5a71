package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/info", h.HandleGetInfo)
		r.Get("/technologies", h.HandleGetTechnologies)
		r.Get("/modules", h.HandleGetModules)
		r.Get("/receivers", h.HandleGetReceivers)
	})
}
