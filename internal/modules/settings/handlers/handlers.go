// Package handlers provides HTTP handlers for persisted UI preferences.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/modules/settings"
)

// Handler provides HTTP handlers for settings endpoints
type Handler struct {
	service *settings.Service
	log     zerolog.Logger
}

// NewHandler creates a new settings handler
func NewHandler(service *settings.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "settings").Logger(),
	}
}

// HandleGetAll handles GET /api/settings
func (h *Handler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get all settings")
		h.writeError(w, http.StatusInternalServerError, "Failed to get settings")
		return
	}
	h.writeData(w, http.StatusOK, all)
}

// HandleGetInstructions handles GET /api/settings/instructions
func (h *Handler) HandleGetInstructions(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Instructions()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get instructions state")
		h.writeError(w, http.StatusInternalServerError, "Failed to get instructions state")
		return
	}
	h.writeData(w, http.StatusOK, status)
}

// HandleUpdateInstructions handles PUT /api/settings/instructions/{page}.
// An empty body marks the page as seen.
func (h *Handler) HandleUpdateInstructions(w http.ResponseWriter, r *http.Request) {
	page := settings.InstructionPage(chi.URLParam(r, "page"))
	if _, err := page.Key(); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	seen := true
	if r.ContentLength != 0 {
		var update settings.InstructionUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if update.Seen != nil {
			seen = *update.Seen
		}
	}

	if err := h.service.SetInstructionsSeen(page, seen); err != nil {
		h.log.Error().Err(err).Str("page", string(page)).Msg("Failed to update instructions state")
		h.writeError(w, http.StatusInternalServerError, "Failed to update instructions state")
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"page": page,
		"seen": seen,
	})
}

// HandleResetInstructions handles DELETE /api/settings/instructions
func (h *Handler) HandleResetInstructions(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetInstructions(); err != nil {
		h.log.Error().Err(err).Msg("Failed to reset instructions")
		h.writeError(w, http.StatusInternalServerError, "Failed to reset instructions")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
