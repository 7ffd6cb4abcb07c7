// Package room connects the coach to a video-call room.
package room

import (
	"context"
	"errors"
)

var ErrNotConnected = errors.New("room not connected")

type JoinEvent struct {
	ParticipantID string
	DisplayName   string
	IsSelf        bool
}

type LeaveEvent struct {
	ParticipantID string
}

type TranscriptionEvent struct {
	ParticipantID string
	Text          string
	IsFinal       bool
}

// EventHandler receives room events. Calls may arrive from several
// goroutines.
type EventHandler interface {
	OnJoin(JoinEvent)
	OnLeave(LeaveEvent)
	OnTranscription(TranscriptionEvent)
}

// Provider is a room session. Connect delivers events for participants
// already present before returning.
type Provider interface {
	Connect(ctx context.Context, handler EventHandler) error
	StartCapture(participantID string) error
	Connected() bool
	Close()
}
