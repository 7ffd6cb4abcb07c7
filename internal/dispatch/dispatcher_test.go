package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nikhilbhutani/silentcoach/internal/dispatch"
	"github.com/nikhilbhutani/silentcoach/internal/mocks"
)

func newSubscriber(ctrl *gomock.Controller, id string) *mocks.MockSubscriber {
	s := mocks.NewMockSubscriber(ctrl)
	s.EXPECT().ID().Return(id).AnyTimes()
	return s
}

func TestDispatcher_Broadcast(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("Should drop only the failing subscriber", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		d := dispatch.NewDispatcher(log)

		var received [][]byte
		for _, id := range []string{"a", "b", "c"} {
			s := newSubscriber(ctrl, id)
			s.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p []byte) error {
				received = append(received, p)
				return nil
			})
			d.Subscribe(s)
		}
		broken := newSubscriber(ctrl, "broken")
		broken.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		d.Subscribe(broken)
		req.Equal(4, d.Count())

		h := d.Broadcast(ctx, "Notice the part that feels anxious.")
		req.Len(received, 3)
		req.Equal(3, d.Count())
		req.NotEmpty(h.ID)

		var msg map[string]any
		req.NoError(json.Unmarshal(received[0], &msg))
		req.Equal("hint", msg["type"])
		req.Equal("Notice the part that feels anxious.", msg["text"])
		req.Equal(h.ID, msg["id"])
		req.InDelta(dispatch.UnixSeconds(h.Timestamp), msg["timestamp"], 1e-3)
	})

	t.Run("Should keep a failing relay", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		d := dispatch.NewDispatcher(log)

		relay := mocks.NewMockRelay(ctrl)
		relay.EXPECT().Name().Return("room").AnyTimes()
		relay.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("not connected")).Times(2)
		d.AddRelay(relay)

		d.Broadcast(ctx, "first")
		d.Broadcast(ctx, "second")
		req.Zero(d.Count())
	})

	t.Run("Should deliver nothing to nobody", func(t *testing.T) {
		d := dispatch.NewDispatcher(log)
		h := d.Broadcast(ctx, "alone")
		require.Equal(t, "alone", h.Text)
	})
}

func TestDispatcher_Subscribe(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	d := dispatch.NewDispatcher(logs.GetLoggerFromLevel(slog.LevelDebug))

	s := newSubscriber(ctrl, "a")
	d.Subscribe(s)
	d.Subscribe(s)
	req.Equal(1, d.Count())

	d.Unsubscribe("a")
	d.Unsubscribe("a")
	req.Zero(d.Count())
}

func TestHint_MarshalJSON(t *testing.T) {
	req := require.New(t)
	h := dispatch.Hint{ID: "id-1", Text: "hello", Timestamp: time.Unix(1700000000, 500_000_000)}

	b, err := json.Marshal(h)
	req.NoError(err)
	req.JSONEq(`{"type":"hint","text":"hello","timestamp":1700000000.5,"id":"id-1"}`, string(b))
}
