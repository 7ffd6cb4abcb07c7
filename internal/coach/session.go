package coach

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/nikhilbhutani/silentcoach/internal/memory"
	"github.com/nikhilbhutani/silentcoach/internal/speaker"
	"github.com/nikhilbhutani/silentcoach/internal/transcript"
)

// Session is the state of one coaching session: who the partner is, what
// they said, and what is waiting to be turned into a hint.
type Session struct {
	mu          sync.Mutex
	resolver    *speaker.Resolver
	history     *memory.History
	accumulator *transcript.Accumulator
}

func NewSession(pattern *regexp.Regexp, maxHistory int, silence time.Duration, opts ...transcript.Option) *Session {
	return &Session{
		resolver:    speaker.NewResolver(pattern),
		history:     memory.NewHistory(maxHistory),
		accumulator: transcript.NewAccumulator(silence, opts...),
	}
}

func (s *Session) Resolver() *speaker.Resolver          { return s.resolver }
func (s *Session) History() *memory.History             { return s.history }
func (s *Session) Accumulator() *transcript.Accumulator { return s.accumulator }

// Join registers a remote participant and reports whether it became the
// partner. It shares the lock with Leave so that a partner leaving cannot
// interleave with a join and reset the new assignment.
func (s *Session) Join(p speaker.Participant) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.Join(p, false)
}

// Leave forgets a participant and resets the session when it was the partner.
// It returns the display name the participant joined with, if known.
func (s *Session) Leave(id string) (name string, wasPartner bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, _ = s.resolver.DisplayName(id)
	if !s.resolver.Leave(id) {
		return name, false
	}
	s.reset()
	return name, true
}

// Record stores partner speech. Speech from anyone else, or blank text, is
// dropped and Record returns false.
func (s *Session) Record(participantID, text string, isFinal bool) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.resolver.IsPartner(participantID) {
		return false
	}
	if isFinal {
		s.history.Add(text)
	}
	s.accumulator.Add(text, isFinal)
	return true
}

// Reset clears the partner assignment, join order, history and buffered speech.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.resolver.Reset()
	s.history.Clear()
	s.accumulator.Reset()
}
