// Package memory keeps the partner's recent final utterances.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Entry is one final utterance of the partner.
type Entry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// History stores the last N utterances in arrival order.
// Sliding window: the oldest entry is evicted when a new one overflows it.
type History struct {
	mu      sync.RWMutex
	entries []Entry
	maxSize int
}

func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &History{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}
}

func (h *History) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Entry{Text: text, Timestamp: time.Now()})

	// Evict oldest if over capacity
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

// Get returns up to limit of the most recent entries, oldest first.
// A non-positive limit returns everything.
func (h *History) Get(limit int) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}

	start := len(h.entries) - limit
	result := make([]Entry, limit)
	copy(result, h.entries[start:])
	return result
}

// Texts is Get without timestamps.
func (h *History) Texts(limit int) []string {
	return lo.Map(h.Get(limit), func(e Entry, _ int) string { return e.Text })
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
}

func (h *History) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
