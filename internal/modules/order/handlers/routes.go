package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the order routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/order", func(r chi.Router) {
		r.Get("/", h.HandleGetOrder)
		r.Get("/export.tsv", h.HandleExportTSV)
		r.Post("/import.tsv", h.HandleImportTSV)
		r.Post("/quote", h.HandleSubmitQuote)
	})
}
