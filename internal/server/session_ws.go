package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/events"
	"github.com/teletec/intercom-configurator/internal/modules/session"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const sessionWriteTimeout = 10 * time.Second

// SnapshotSource provides the current session state
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

// SessionStreamHandler pushes the session snapshot over a websocket:
// once on connect and again after every SESSION_CHANGED event.
type SessionStreamHandler struct {
	source   SnapshotSource
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewSessionStreamHandler creates a new session stream handler
func NewSessionStreamHandler(source SnapshotSource, eventBus *events.Bus, log zerolog.Logger) *SessionStreamHandler {
	return &SessionStreamHandler{
		source:   source,
		eventBus: eventBus,
		log:      log.With().Str("component", "session_ws").Logger(),
	}
}

// sessionMessage is one frame sent to the client
type sessionMessage struct {
	Type     string           `json:"type"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// ServeHTTP handles GET /api/session/ws
func (h *SessionStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS is open for the whole API
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket handshake failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	// Only a wake-up is queued; every push reads the latest snapshot
	changed := make(chan struct{}, 1)
	id := h.eventBus.Subscribe(events.SessionChanged, func(*events.Event) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer h.eventBus.Unsubscribe(id)

	// CloseRead discards client frames and cancels ctx once the client goes away
	ctx := conn.CloseRead(r.Context())

	h.log.Info().Msg("Client connected to session stream")

	if err := h.push(ctx, conn, "snapshot"); err != nil {
		h.closed(err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from session stream")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-changed:
			if err := h.push(ctx, conn, "session_changed"); err != nil {
				h.closed(err)
				return
			}
		}
	}
}

func (h *SessionStreamHandler) push(ctx context.Context, conn *websocket.Conn, kind string) error {
	writeCtx, cancel := context.WithTimeout(ctx, sessionWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, sessionMessage{Type: kind, Snapshot: h.source.Snapshot()})
}

func (h *SessionStreamHandler) closed(err error) {
	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
		h.log.Info().Msg("Client disconnected from session stream")
		return
	}
	h.log.Warn().Err(err).Msg("Session stream write failed")
}
