//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=../mocks/mock_dispatch.go -package=mocks

// Package dispatch fans hints out to live subscribers and permanent relays.
package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscriber is a connected viewer. A Send error removes it.
type Subscriber interface {
	ID() string
	Send(ctx context.Context, payload []byte) error
}

// Relay is a permanent sink such as a room data channel or a pub/sub topic.
// Publish errors are logged and the relay stays registered.
type Relay interface {
	Name() string
	Publish(ctx context.Context, payload []byte) error
}

type Hint struct {
	ID        string
	Text      string
	Timestamp time.Time
}

func NewHint(text string) Hint {
	return Hint{ID: uuid.NewString(), Text: text, Timestamp: time.Now()}
}

type hintMessage struct {
	Type      string  `json:"type"`
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"`
	ID        string  `json:"id"`
}

// MarshalJSON renders the wire form; timestamp is seconds since the epoch.
func (h Hint) MarshalJSON() ([]byte, error) {
	return json.Marshal(hintMessage{
		Type:      "hint",
		Text:      h.Text,
		Timestamp: UnixSeconds(h.Timestamp),
		ID:        h.ID,
	})
}

func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

type Dispatcher struct {
	log         *slog.Logger
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	relays      []Relay
}

func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		log:         log,
		subscribers: make(map[string]Subscriber),
	}
}

// Subscribe is idempotent per subscriber id.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.mu.Lock()
	d.subscribers[s.ID()] = s
	n := len(d.subscribers)
	d.mu.Unlock()
	d.log.Info("subscriber connected", "subscriber_id", s.ID(), "subscribers", n)
}

func (d *Dispatcher) Unsubscribe(id string) {
	d.mu.Lock()
	_, ok := d.subscribers[id]
	delete(d.subscribers, id)
	n := len(d.subscribers)
	d.mu.Unlock()
	if ok {
		d.log.Info("subscriber disconnected", "subscriber_id", id, "subscribers", n)
	}
}

func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers)
}

func (d *Dispatcher) AddRelay(r Relay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.relays = append(d.relays, r)
}

// Broadcast wraps text into a Hint and delivers it at most once to every
// subscriber present when the sweep starts. Subscribers that fail are
// removed after the sweep.
func (d *Dispatcher) Broadcast(ctx context.Context, text string) Hint {
	h := NewHint(text)
	payload, err := json.Marshal(h)
	if err != nil {
		d.log.Error("marshal hint", "error", err)
		return h
	}

	d.mu.RLock()
	subs := make([]Subscriber, 0, len(d.subscribers))
	for _, s := range d.subscribers {
		subs = append(subs, s)
	}
	relays := make([]Relay, len(d.relays))
	copy(relays, d.relays)
	d.mu.RUnlock()

	var failed []string
	for _, s := range subs {
		if err := s.Send(ctx, payload); err != nil {
			d.log.Warn("hint delivery failed, dropping subscriber",
				"subscriber_id", s.ID(),
				"hint_id", h.ID,
				"error", err,
			)
			failed = append(failed, s.ID())
		}
	}

	if len(failed) > 0 {
		d.mu.Lock()
		for _, id := range failed {
			delete(d.subscribers, id)
		}
		d.mu.Unlock()
	}

	for _, r := range relays {
		if err := r.Publish(ctx, payload); err != nil {
			d.log.Warn("hint relay failed", "relay", r.Name(), "hint_id", h.ID, "error", err)
		}
	}

	d.log.Info("hint broadcast",
		"hint_id", h.ID,
		"delivered", len(subs)-len(failed),
		"dropped", len(failed),
		"relays", len(relays),
	)
	return h
}
