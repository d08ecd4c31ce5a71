package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the session routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.HandleGetSession)
		r.Get("/notices", h.HandleGetNotices)
		r.Get("/modules", h.HandleGetModuleOptions)
		r.Get("/receiver-options", h.HandleGetReceiverOptions)

		r.Post("/system", h.HandleSelectSystem)
		r.Put("/installation", h.HandleSetInstallation)
		r.Put("/vandal", h.HandleSetVandal)
		r.Put("/same-config", h.HandleSetSameConfig)
		r.Put("/receivers/{pn}", h.HandleSetReceiverQuantity)

		r.Route("/panels", func(r chi.Router) {
			r.Post("/", h.HandleAddPanel)
			r.Delete("/last", h.HandleRemovePanel)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/label", h.HandleUpdateLabel)
				r.Post("/modules", h.HandleAddModule)
				r.Delete("/modules/last", h.HandleRemoveModule)
				r.Put("/installation", h.HandleSetPanelInstallation)
				r.Put("/vandal", h.HandleSetPanelVandal)
			})
		})
	})
}
