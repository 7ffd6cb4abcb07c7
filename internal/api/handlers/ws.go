package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nikhilbhutani/silentcoach/internal/dispatch"
)

const writeWait = 10 * time.Second

// Hub tracks live WebSocket subscribers.
type Hub interface {
	Subscribe(s dispatch.Subscriber)
	Unsubscribe(id string)
}

type WSHandler struct {
	log      *slog.Logger
	hub      Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(log *slog.Logger, hub Hub, allowedOrigins []string) *WSHandler {
	allowAll := slices.Contains(allowedOrigins, "*")
	return &WSHandler{
		log: log,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

type wsMessage struct {
	Type      string  `json:"type"`
	Status    string  `json:"status,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

// wsSubscriber serialises writes; gorilla allows one concurrent writer.
type wsSubscriber struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *wsSubscriber) ID() string { return s.id }

func (s *wsSubscriber) Send(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *wsSubscriber) sendJSON(ctx context.Context, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Send(ctx, payload)
}

// Serve upgrades the connection, greets the client, then answers pings until
// the client goes away. Anything other than a ping is ignored.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := &wsSubscriber{id: uuid.NewString(), conn: conn}
	ctx := context.WithoutCancel(r.Context())

	if err := sub.sendJSON(ctx, wsMessage{Type: "connection", Status: "connected"}); err != nil {
		h.log.Warn("websocket greeting failed", "error", err)
		return
	}

	h.hub.Subscribe(sub)
	defer h.hub.Unsubscribe(sub.id)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read failed", "subscriber_id", sub.id, "error", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "ping" {
			continue
		}
		pong := wsMessage{Type: "pong", Timestamp: dispatch.UnixSeconds(time.Now())}
		if err := sub.sendJSON(ctx, pong); err != nil {
			h.log.Debug("websocket pong failed", "subscriber_id", sub.id, "error", err)
			return
		}
	}
}
