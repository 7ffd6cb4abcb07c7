package room

import (
	"context"
	"fmt"
)

const HintTopic = "coach-hint"

// DataPublisher sends raw room data.
type DataPublisher interface {
	PublishData(payload []byte, topic string) error
}

// HintChannel mirrors every hint into the room as reliable data so in-call
// clients can show it without opening the WebSocket.
type HintChannel struct {
	publisher DataPublisher
	topic     string
}

func NewHintChannel(publisher DataPublisher) *HintChannel {
	return &HintChannel{publisher: publisher, topic: HintTopic}
}

func (c *HintChannel) Name() string { return "room:" + c.topic }

func (c *HintChannel) Publish(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.publisher.PublishData(payload, c.topic); err != nil {
		return fmt.Errorf("publish room data: %w", err)
	}
	return nil
}
