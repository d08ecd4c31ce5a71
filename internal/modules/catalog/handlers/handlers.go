// Package handlers provides HTTP handlers for browsing the product catalog.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/catalog"
)

// SelectionProvider reports the technology and panel type currently selected
type SelectionProvider interface {
	Selection() (domain.Technology, domain.PanelType)
}

// Handler handles catalog HTTP requests
type Handler struct {
	store     *catalog.Store
	selection SelectionProvider
	log       zerolog.Logger
}

// NewHandler creates a new catalog handler. selection may be nil, in which case
// the modules and receivers endpoints require query parameters.
func NewHandler(store *catalog.Store, selection SelectionProvider, log zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		selection: selection,
		log:       log.With().Str("handler", "catalog").Logger(),
	}
}

// TechnologyOption is one selectable technology with its panel types
type TechnologyOption struct {
	Technology domain.Technology  `json:"technology"`
	PanelTypes []domain.PanelType `json:"panel_types"`
}

// HandleGetTechnologies handles GET /api/catalog/technologies
func (h *Handler) HandleGetTechnologies(w http.ResponseWriter, r *http.Request) {
	c := h.store.Current()

	options := make([]TechnologyOption, 0)
	for _, tech := range c.Technologies() {
		options = append(options, TechnologyOption{
			Technology: tech,
			PanelTypes: c.PanelTypes(tech),
		})
	}

	h.writeData(w, options)
}

// HandleGetInfo handles GET /api/catalog/info
func (h *Handler) HandleGetInfo(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.store.Current().Info())
}

// HandleGetModules handles GET /api/catalog/modules[?technology=&panel_type=]
func (h *Handler) HandleGetModules(w http.ResponseWriter, r *http.Request) {
	tech, pt, ok := h.resolveSelection(w, r)
	if !ok {
		return
	}
	h.writeData(w, map[string]interface{}{
		"technology": tech,
		"panel_type": pt,
		"modules":    h.store.Current().PanelModules(tech, pt),
	})
}

// HandleGetReceivers handles GET /api/catalog/receivers[?technology=&panel_type=]
func (h *Handler) HandleGetReceivers(w http.ResponseWriter, r *http.Request) {
	tech, pt, ok := h.resolveSelection(w, r)
	if !ok {
		return
	}
	receivers := h.store.Current().Receivers(tech, pt)
	if receivers == nil {
		receivers = []domain.Product{}
	}
	h.writeData(w, map[string]interface{}{
		"technology": tech,
		"panel_type": pt,
		"receivers":  receivers,
	})
}

// resolveSelection takes the selection from the query, falling back to the session
func (h *Handler) resolveSelection(w http.ResponseWriter, r *http.Request) (domain.Technology, domain.PanelType, bool) {
	tech := domain.Technology(r.URL.Query().Get("technology"))
	pt := domain.PanelType(r.URL.Query().Get("panel_type"))

	if tech == "" && h.selection != nil {
		tech, pt = h.selection.Selection()
	}
	if tech == "" {
		h.writeError(w, http.StatusConflict, "Please select a system and panel type first.")
		return "", "", false
	}

	c := h.store.Current()
	pt = catalog.EffectivePanelType(tech, pt)
	for _, offered := range c.PanelTypes(tech) {
		if offered == pt {
			return tech, pt, true
		}
	}

	h.writeError(w, http.StatusNotFound, "Unknown system or panel type: "+string(tech)+" "+string(pt))
	return "", "", false
}

func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
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
