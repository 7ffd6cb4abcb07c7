//go:generate go run go.uber.org/mock/mockgen -source=orchestrator.go -destination=../mocks/mock_coach.go -package=mocks

// Package coach turns room events into coaching hints.
package coach

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nikhilbhutani/silentcoach/internal/config"
	"github.com/nikhilbhutani/silentcoach/internal/dispatch"
	"github.com/nikhilbhutani/silentcoach/internal/room"
	"github.com/nikhilbhutani/silentcoach/internal/speaker"
	"github.com/nikhilbhutani/silentcoach/pkg/tokenizer"
)

// immediateTimeout bounds a hint generated straight from one utterance.
const immediateTimeout = 30 * time.Second

type HintGenerator interface {
	Generate(ctx context.Context, text string) string
	RegenerateFromHistory(ctx context.Context, history []string, recent int) string
}

type Broadcaster interface {
	Broadcast(ctx context.Context, text string) dispatch.Hint
}

type CaptureStarter interface {
	StartCapture(participantID string) error
}

// Orchestrator implements room.EventHandler. Hints are produced on two
// independent paths: right after a long enough final utterance, and by the
// debounce loop once the partner has been quiet.
type Orchestrator struct {
	log         *slog.Logger
	session     *Session
	generator   HintGenerator
	broadcaster Broadcaster
	capture     CaptureStarter
	cfg         config.CoachConfig
	inflight    sync.WaitGroup
}

var _ room.EventHandler = (*Orchestrator)(nil)

func NewOrchestrator(
	log *slog.Logger,
	session *Session,
	generator HintGenerator,
	broadcaster Broadcaster,
	capture CaptureStarter,
	cfg config.CoachConfig,
) *Orchestrator {
	return &Orchestrator{
		log:         log,
		session:     session,
		generator:   generator,
		broadcaster: broadcaster,
		capture:     capture,
		cfg:         cfg,
	}
}

func (o *Orchestrator) OnJoin(e room.JoinEvent) {
	if e.IsSelf {
		return
	}

	p := speaker.Participant{ID: e.ParticipantID, DisplayName: e.DisplayName}
	if o.session.Join(p) {
		o.log.Info("partner assigned", "participant_id", e.ParticipantID, "name", e.DisplayName)
	} else {
		o.log.Info("participant joined", "participant_id", e.ParticipantID, "name", e.DisplayName)
	}

	if o.capture == nil {
		return
	}
	if err := o.capture.StartCapture(e.ParticipantID); err != nil {
		o.log.Warn("start transcription capture", "participant_id", e.ParticipantID, "error", err)
	}
}

func (o *Orchestrator) OnLeave(e room.LeaveEvent) {
	name, wasPartner := o.session.Leave(e.ParticipantID)
	if wasPartner {
		o.log.Info("partner left, session reset", "participant_id", e.ParticipantID, "name", name)
		return
	}
	o.log.Debug("participant left", "participant_id", e.ParticipantID, "name", name)
}

func (o *Orchestrator) OnTranscription(e room.TranscriptionEvent) {
	if !o.session.Record(e.ParticipantID, e.Text, e.IsFinal) {
		o.log.Debug("transcription dropped", "participant_id", e.ParticipantID, "final", e.IsFinal)
		return
	}
	if !e.IsFinal {
		return
	}

	words := tokenizer.CountWords(e.Text)
	o.log.Debug("partner said", "words", words, "text", e.Text)
	if words < o.cfg.MinWords {
		return
	}

	o.inflight.Add(1)
	go func(text string) {
		defer o.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), immediateTimeout)
		defer cancel()
		o.broadcaster.Broadcast(ctx, o.generator.Generate(ctx, text))
	}(e.Text)
}

// Run polls the accumulator until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	o.log.Info("debounce loop started",
		"poll_interval", o.cfg.PollInterval,
		"silence_threshold", o.cfg.SilenceThreshold,
		"min_words", o.cfg.MinWords,
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			o.Tick(ctx)
		}
	}
}

// Tick runs one debounce check and reports whether a hint was sent. The
// buffer is only consumed once it holds enough final words.
func (o *Orchestrator) Tick(ctx context.Context) bool {
	acc := o.session.Accumulator()
	if !acc.ShouldProcess() {
		return false
	}

	if words := acc.FinalWordCount(); words < o.cfg.MinWords {
		finals, interims := acc.Counts()
		o.log.Debug("waiting for more words",
			"words", words,
			"min_words", o.cfg.MinWords,
			"finals", finals,
			"interims", interims,
		)
		return false
	}

	text := acc.CollectAndReset(o.cfg.ContextWindow)
	if text == "" {
		return false
	}

	acc.MarkProcessing(true)
	defer acc.MarkProcessing(false)

	o.broadcaster.Broadcast(ctx, o.generator.Generate(ctx, text))
	return true
}

// Regenerate produces a hint from the whole conversation history. Nothing is
// broadcast while the history is empty.
func (o *Orchestrator) Regenerate(ctx context.Context) string {
	history := o.session.History().Texts(0)
	text := o.generator.RegenerateFromHistory(ctx, history, o.cfg.RecentCount)
	if len(history) > 0 {
		o.broadcaster.Broadcast(ctx, text)
	}
	return text
}

// InjectHint broadcasts text as is.
func (o *Orchestrator) InjectHint(ctx context.Context, text string) dispatch.Hint {
	return o.broadcaster.Broadcast(ctx, text)
}

// Wait blocks until immediate hints in flight are delivered.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

func (o *Orchestrator) Session() *Session { return o.session }
