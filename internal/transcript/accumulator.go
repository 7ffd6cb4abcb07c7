// Package transcript buffers partner speech fragments until the speaker goes
// quiet long enough to ask for a hint.
package transcript

import (
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/nikhilbhutani/silentcoach/pkg/tokenizer"
)

type Fragment struct {
	Text      string
	IsFinal   bool
	ArrivedAt time.Time
}

type Accumulator struct {
	mu         sync.Mutex
	silence    time.Duration
	now        func() time.Time
	finals     []string
	interims   []string
	all        []Fragment
	lastAt     time.Time
	processing bool
}

type Option func(*Accumulator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Accumulator) { a.now = now }
}

func NewAccumulator(silence time.Duration, opts ...Option) *Accumulator {
	a := &Accumulator{
		silence: silence,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add buffers a fragment. Blank text is ignored and does not move the
// silence timer.
func (a *Accumulator) Add(text string, isFinal bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	a.all = append(a.all, Fragment{Text: text, IsFinal: isFinal, ArrivedAt: now})
	if isFinal {
		a.finals = append(a.finals, text)
	} else {
		a.interims = append(a.interims, text)
	}
	a.lastAt = now
}

// ShouldProcess reports whether at least one final fragment is buffered, no
// generation is in flight and the speaker has been quiet for the threshold.
func (a *Accumulator) ShouldProcess() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.finals) == 0 || a.processing || a.lastAt.IsZero() {
		return false
	}
	return a.now().Sub(a.lastAt) >= a.silence
}

// FinalWordCount counts words across the final fragments still buffered.
func (a *Accumulator) FinalWordCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	finals := lo.FilterMap(a.all, func(f Fragment, _ int) (string, bool) {
		return f.Text, f.IsFinal
	})
	return tokenizer.CountWordsAll(finals)
}

// CollectAndReset joins the last window fragments, skipping any fragment equal
// (ignoring case) to the one kept before it, and empties every buffer.
func (a *Accumulator) CollectAndReset(window int) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	recent := a.all
	if window > 0 && len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	parts := make([]string, 0, len(recent))
	last := ""
	for _, f := range recent {
		if strings.EqualFold(f.Text, last) {
			continue
		}
		parts = append(parts, f.Text)
		last = f.Text
	}

	a.clear()
	return strings.Join(parts, " ")
}

func (a *Accumulator) MarkProcessing(state bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processing = state
}

func (a *Accumulator) Processing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

// Counts returns how many final and interim fragments are buffered.
func (a *Accumulator) Counts() (finals, interims int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.finals), len(a.interims)
}

// Len is the number of buffered fragments, final and interim.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.all)
}

// Reset empties the buffers and clears the processing flag.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clear()
	a.processing = false
}

func (a *Accumulator) clear() {
	a.finals = nil
	a.interims = nil
	a.all = nil
	a.lastAt = time.Time{}
}
