// Package handlers provides HTTP handlers for the order summary and its exports.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/events"
	"github.com/teletec/intercom-configurator/internal/modules/order"
	"github.com/teletec/intercom-configurator/internal/modules/quotes"
)

// maxImportBytes bounds uploaded product tables
const maxImportBytes = 1 << 20

// OrderSource builds the order of the current configuration
type OrderSource interface {
	Order() order.Order
}

// Handler handles order HTTP requests
type Handler struct {
	source       OrderSource
	quotes       *quotes.Service
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewHandler creates a new order handler. quoteService and eventManager may be nil.
func NewHandler(source OrderSource, quoteService *quotes.Service, eventManager *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		source:       source,
		quotes:       quoteService,
		eventManager: eventManager,
		log:          log.With().Str("handler", "order").Logger(),
	}
}

// HandleGetOrder handles GET /api/order.
// Clients sending Accept: application/x-msgpack get the binary encoding.
func (h *Handler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	o := h.source.Order()

	if strings.Contains(r.Header.Get("Accept"), order.MsgpackContentType) {
		data, err := order.EncodeMsgpack(o)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to encode order")
			h.writeError(w, http.StatusInternalServerError, "Failed to encode order")
			return
		}
		w.Header().Set("Content-Type", order.MsgpackContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			h.log.Error().Err(err).Msg("Failed to write msgpack response")
		}
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"order":          o,
		"total_quantity": order.TotalQuantity(o.Products),
	})
}

// HandleExportTSV handles GET /api/order/export.tsv
func (h *Handler) HandleExportTSV(w http.ResponseWriter, r *http.Request) {
	o := h.source.Order()

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="order.tsv"`)
	w.WriteHeader(http.StatusOK)
	if err := order.WriteTSV(w, o.Products); err != nil {
		h.log.Error().Err(err).Msg("Failed to write TSV export")
	}
}

// HandleImportTSV handles POST /api/order/import.tsv and returns the parsed lines
func (h *Handler) HandleImportTSV(w http.ResponseWriter, r *http.Request) {
	lines, err := order.ParseTSV(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if lines == nil {
		lines = []order.Line{}
	}
	h.writeData(w, http.StatusOK, map[string]interface{}{
		"products":       lines,
		"total_quantity": order.TotalQuantity(lines),
	})
}

// HandleSubmitQuote handles POST /api/order/quote
func (h *Handler) HandleSubmitQuote(w http.ResponseWriter, r *http.Request) {
	if h.quotes == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Quote requests are not configured")
		return
	}

	sub, err := h.quotes.Submit(r.Context(), h.source.Order())
	if errors.Is(err, quotes.ErrEmptyOrder) {
		h.writeError(w, http.StatusUnprocessableEntity, "Add at least one product before requesting a quote.")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to submit quote request")
		if h.eventManager != nil {
			h.eventManager.EmitError("quotes", err, nil)
		}
		h.writeError(w, http.StatusBadGateway, "Failed to submit quote request")
		return
	}

	if h.eventManager != nil {
		h.eventManager.EmitTyped("quotes", &events.QuoteSubmittedData{
			Reference: sub.Reference,
			TableKey:  sub.TableKey,
			Lines:     sub.Lines,
		})
	}

	h.writeData(w, http.StatusCreated, sub)
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
