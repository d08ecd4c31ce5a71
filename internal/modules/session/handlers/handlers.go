// Package handlers provides HTTP handlers for the configurator session.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/modules/session"
)

// Handler handles session HTTP requests
type Handler struct {
	session *session.Session
	log     zerolog.Logger
}

// NewHandler creates a new session handler
func NewHandler(s *session.Session, log zerolog.Logger) *Handler {
	return &Handler{
		session: s,
		log:     log.With().Str("handler", "session").Logger(),
	}
}

// SelectSystemRequest is the body of POST /api/session/system
type SelectSystemRequest struct {
	Technology domain.Technology `json:"technology"`
	PanelType  domain.PanelType  `json:"panel_type"`
}

// LabelRequest is the body of PUT /api/session/panels/{id}/label
type LabelRequest struct {
	Label string `json:"label"`
}

// AddModuleRequest is the body of POST /api/session/panels/{id}/modules
type AddModuleRequest struct {
	ProductNumber domain.ProductNumber `json:"product_number"`
	Name          string               `json:"name"`
}

// InstallationRequest is the body of the installation endpoints
type InstallationRequest struct {
	InstallationType domain.InstallationType `json:"installation_type"`
}

// ToggleRequest is the body of the vandal-resistant and same-config endpoints.
// A missing value toggles where the endpoint supports it.
type ToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// QuantityRequest is the body of PUT /api/session/receivers/{pn}
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetSession handles GET /api/session
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, http.StatusOK, h.session.Snapshot())
}

// HandleGetNotices handles GET /api/session/notices
func (h *Handler) HandleGetNotices(w http.ResponseWriter, r *http.Request) {
	notices := h.session.Notices().Active()
	if notices == nil {
		notices = []session.Notice{}
	}
	h.writeData(w, http.StatusOK, notices)
}

// HandleGetModuleOptions handles GET /api/session/modules
func (h *Handler) HandleGetModuleOptions(w http.ResponseWriter, r *http.Request) {
	modules, err := h.session.ModuleOptions()
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, modules)
}

// HandleGetReceiverOptions handles GET /api/session/receiver-options
func (h *Handler) HandleGetReceiverOptions(w http.ResponseWriter, r *http.Request) {
	receivers, err := h.session.ReceiverOptions()
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	if receivers == nil {
		receivers = []domain.Product{}
	}
	h.writeData(w, http.StatusOK, receivers)
}

// HandleSelectSystem handles POST /api/session/system
func (h *Handler) HandleSelectSystem(w http.ResponseWriter, r *http.Request) {
	var req SelectSystemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Technology == "" {
		h.writeError(w, http.StatusBadRequest, "technology is required")
		return
	}
	h.apply(w, h.session.SelectSystem(req.Technology, req.PanelType))
}

// HandleAddPanel handles POST /api/session/panels
func (h *Handler) HandleAddPanel(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.AddPanel(); err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeData(w, http.StatusCreated, h.session.Snapshot())
}

// HandleRemovePanel handles DELETE /api/session/panels/last
func (h *Handler) HandleRemovePanel(w http.ResponseWriter, r *http.Request) {
	h.apply(w, h.session.RemovePanel())
}

// HandleUpdateLabel handles PUT /api/session/panels/{id}/label
func (h *Handler) HandleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.panelID(w, r)
	if !ok {
		return
	}
	var req LabelRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.apply(w, h.session.UpdatePanelLabel(id, req.Label))
}

// HandleAddModule handles POST /api/session/panels/{id}/modules
func (h *Handler) HandleAddModule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.panelID(w, r)
	if !ok {
		return
	}
	var req AddModuleRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	h.apply(w, h.session.AddModule(id, req.ProductNumber, req.Name))
}

// HandleRemoveModule handles DELETE /api/session/panels/{id}/modules/last
func (h *Handler) HandleRemoveModule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.panelID(w, r)
	if !ok {
		return
	}
	h.apply(w, h.session.RemoveModule(id))
}

// HandleSetPanelInstallation handles PUT /api/session/panels/{id}/installation
func (h *Handler) HandleSetPanelInstallation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.panelID(w, r)
	if !ok {
		return
	}
	var req InstallationRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.apply(w, h.session.SetPanelInstallation(id, req.InstallationType))
}

// HandleSetPanelVandal handles PUT /api/session/panels/{id}/vandal
func (h *Handler) HandleSetPanelVandal(w http.ResponseWriter, r *http.Request) {
	id, ok := h.panelID(w, r)
	if !ok {
		return
	}
	var req ToggleRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		h.writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}
	h.apply(w, h.session.SetPanelVandalResistant(id, *req.Enabled))
}

// HandleSetInstallation handles PUT /api/session/installation
func (h *Handler) HandleSetInstallation(w http.ResponseWriter, r *http.Request) {
	var req InstallationRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.apply(w, h.session.SetInstallation(req.InstallationType))
}

// HandleSetVandal handles PUT /api/session/vandal
func (h *Handler) HandleSetVandal(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		h.writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}
	h.apply(w, h.session.SetVandalResistant(*req.Enabled))
}

// HandleSetSameConfig handles PUT /api/session/same-config.
// An empty body or a missing "enabled" toggles the mode.
func (h *Handler) HandleSetSameConfig(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		h.apply(w, h.session.ToggleSameConfig())
		return
	}
	h.apply(w, h.session.SetSameConfig(*req.Enabled))
}

// HandleSetReceiverQuantity handles PUT /api/session/receivers/{pn}
func (h *Handler) HandleSetReceiverQuantity(w http.ResponseWriter, r *http.Request) {
	pn, err := domain.ParseProductNumber(chi.URLParam(r, "pn"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req QuantityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Quantity < 0 {
		h.writeError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}
	h.apply(w, h.session.SetReceiverQuantity(pn, req.Quantity))
}

// apply writes the new snapshot, or the mapped error of a refused transition
func (h *Handler) apply(w http.ResponseWriter, err error) {
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeData(w, http.StatusOK, h.session.Snapshot())
}

func (h *Handler) panelID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid panel id")
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.log.Debug().Err(err).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// statusFor maps session errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNoSystem):
		return http.StatusConflict
	case errors.Is(err, session.ErrPanelNotFound),
		errors.Is(err, session.ErrUnknownModule),
		errors.Is(err, session.ErrUnknownReceiver):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnknownSystem),
		errors.Is(err, session.ErrInvalidInstallation):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrRejected),
		errors.Is(err, session.ErrMaxPanels),
		errors.Is(err, session.ErrMinPanels):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Session transition failed")
	}
	h.writeError(w, status, err.Error())
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
