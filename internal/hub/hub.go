// Package hub implements the real-time broadcast channel: a WebSocket
// fan-out that delivers published events to every currently connected
// client. Delivery is best effort — no acknowledgment, no retry, and
// clients that attach after a publish see nothing for it.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Envelope is the wire format for every broadcast event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub owns the set of connected clients and fans broadcast events out to
// all of them. Run must be started before clients attach.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	// Closed when Run returns; unblocks client goroutines racing against
	// shutdown.
	done chan struct{}
}

// New creates a Hub. Call Run to start the fan-out loop.
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run processes register, unregister, and broadcast events until ctx is
// cancelled. Publishing with zero connected clients is a no-op.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	clients := make(map[*client]struct{})

	for {
		select {
		case <-ctx.Done():
			for c := range clients {
				close(c.send)
			}
			return

		case c := <-h.register:
			clients[c] = struct{}{}
			h.logger.Debug("subscriber connected", slog.Int("subscribers", len(clients)))

		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}
			h.logger.Debug("subscriber disconnected", slog.Int("subscribers", len(clients)))

		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					// Slow client: drop it rather than block the fan-out.
					delete(clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish delivers payload to every currently connected client under the
// given event name. Fire-and-forget: marshal failures are logged and the
// event is dropped.
func (h *Hub) Publish(event string, payload any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("marshal broadcast payload", slog.String("event", event), slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// ServeWS upgrades the request to a WebSocket connection and attaches the
// client to the hub. No authentication, no per-client filtering.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}
