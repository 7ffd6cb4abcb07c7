package room

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/nikhilbhutani/silentcoach/internal/config"
)

const agentIdentityPrefix = "agent-"

// LiveKit joins a LiveKit room and relays participant and transcription
// events. Transcripts come from whatever speech-to-text agent publishes
// transcriptions in the room.
type LiveKit struct {
	log *slog.Logger
	cfg config.RoomConfig

	mu   sync.RWMutex
	room *lksdk.Room
}

var _ Provider = (*LiveKit)(nil)

func NewLiveKit(log *slog.Logger, cfg config.RoomConfig) *LiveKit {
	return &LiveKit{log: log, cfg: cfg}
}

func (l *LiveKit) Connect(ctx context.Context, handler EventHandler) error {
	token := l.cfg.Token
	if token == "" {
		var err error
		token, err = MintToken(l.cfg.APIKey, l.cfg.APISecret, l.cfg.Name, l.cfg.BotName)
		if err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	room, err := lksdk.ConnectToRoomWithToken(l.cfg.URL, token, l.callbacks(handler))
	if err != nil {
		return fmt.Errorf("connect to room: %w", err)
	}

	l.mu.Lock()
	l.room = room
	l.mu.Unlock()

	l.log.Info("connected to room", "room", room.Name(), "identity", room.LocalParticipant.Identity())

	for _, p := range room.GetRemoteParticipants() {
		l.log.Debug("existing participant", "identity", p.Identity())
		handler.OnJoin(l.joinEvent(p.Identity(), p.Name()))
	}
	return nil
}

// callbacks maps SDK room callbacks onto handler. Transcriptions are
// participant callbacks in the SDK, not room ones.
func (l *LiveKit) callbacks(handler EventHandler) *lksdk.RoomCallback {
	return &lksdk.RoomCallback{
		OnDisconnected: func() {
			l.log.Warn("disconnected from room", "room", l.cfg.Name)
			l.mu.Lock()
			l.room = nil
			l.mu.Unlock()
		},
		OnParticipantConnected: func(p *lksdk.RemoteParticipant) {
			handler.OnJoin(l.joinEvent(p.Identity(), p.Name()))
		},
		OnParticipantDisconnected: func(p *lksdk.RemoteParticipant) {
			handler.OnLeave(LeaveEvent{ParticipantID: p.Identity()})
		},
		ParticipantCallback: lksdk.ParticipantCallback{
			OnTranscriptionReceived: func(segments []*lksdk.TranscriptionSegment, p lksdk.Participant, _ lksdk.TrackPublication) {
				if p == nil {
					return
				}
				for _, e := range transcriptionEvents(p.Identity(), segments) {
					handler.OnTranscription(e)
				}
			},
		},
	}
}

// StartCapture subscribes to the participant's audio so the room's
// transcription agent has something to transcribe for us.
func (l *LiveKit) StartCapture(participantID string) error {
	l.mu.RLock()
	room := l.room
	l.mu.RUnlock()
	if room == nil {
		return ErrNotConnected
	}

	for _, p := range room.GetRemoteParticipants() {
		if p.Identity() != participantID {
			continue
		}
		for _, pub := range p.TrackPublications() {
			if pub.Kind() != lksdk.TrackKindAudio {
				continue
			}
			remotePub, ok := pub.(*lksdk.RemoteTrackPublication)
			if !ok || remotePub.IsSubscribed() {
				continue
			}
			if err := remotePub.SetSubscribed(true); err != nil {
				return fmt.Errorf("subscribe audio of %s: %w", participantID, err)
			}
		}
		return nil
	}
	return fmt.Errorf("participant %s not in room", participantID)
}

func (l *LiveKit) Connected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.room != nil
}

// PublishData sends payload as reliable room data on topic.
func (l *LiveKit) PublishData(payload []byte, topic string) error {
	l.mu.RLock()
	room := l.room
	l.mu.RUnlock()
	if room == nil {
		return ErrNotConnected
	}
	return room.LocalParticipant.PublishDataPacket(
		lksdk.UserData(payload),
		lksdk.WithDataPublishReliable(true),
		lksdk.WithDataPublishTopic(topic),
	)
}

func (l *LiveKit) Close() {
	l.mu.Lock()
	room := l.room
	l.room = nil
	l.mu.Unlock()
	if room != nil {
		room.Disconnect()
		l.log.Info("left room", "room", l.cfg.Name)
	}
}

func (l *LiveKit) joinEvent(identity, name string) JoinEvent {
	if name == "" {
		name = identity
	}
	return JoinEvent{
		ParticipantID: identity,
		DisplayName:   name,
		IsSelf:        isSelf(identity, name, l.cfg.BotName),
	}
}

// isSelf matches the coach itself and other agents sharing the room.
func isSelf(identity, name, botName string) bool {
	if strings.HasPrefix(identity, agentIdentityPrefix) {
		return true
	}
	return botName != "" && (identity == botName || name == botName)
}

func transcriptionEvents(identity string, segments []*lksdk.TranscriptionSegment) []TranscriptionEvent {
	events := make([]TranscriptionEvent, 0, len(segments))
	for _, seg := range segments {
		if seg == nil || strings.TrimSpace(seg.Text) == "" {
			continue
		}
		events = append(events, TranscriptionEvent{
			ParticipantID: identity,
			Text:          seg.Text,
			IsFinal:       seg.Final,
		})
	}
	return events
}
