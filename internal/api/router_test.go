package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/silentcoach/internal/api"
	"github.com/nikhilbhutani/silentcoach/internal/api/handlers"
	"github.com/nikhilbhutani/silentcoach/internal/config"
	"github.com/nikhilbhutani/silentcoach/internal/dispatch"
)

type fakeCoach struct {
	dispatcher *dispatch.Dispatcher
	regenerate string
}

func (c *fakeCoach) InjectHint(ctx context.Context, text string) dispatch.Hint {
	return c.dispatcher.Broadcast(ctx, text)
}

func (c *fakeCoach) Regenerate(context.Context) string { return c.regenerate }

type fakeRestarter struct{ calls atomic.Int32 }

func (r *fakeRestarter) Restart() { r.calls.Add(1) }

type fakeRoom struct{ connected bool }

func (r fakeRoom) Connected() bool { return r.connected }

func newServer(t *testing.T, restartToken string) (*httptest.Server, *dispatch.Dispatcher, *fakeRestarter) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	d := dispatch.NewDispatcher(log)
	restarter := &fakeRestarter{}

	cfg := &config.Config{
		Server: config.ServerConfig{CORSOrigins: "*"},
		Admin:  config.AdminConfig{RestartToken: restartToken, RateLimit: 100, RateBurst: 100},
	}
	router := api.NewRouter(api.Deps{
		Log:       log,
		Config:    cfg,
		Coach:     &fakeCoach{dispatcher: d, regenerate: "a fresh hint"},
		Hub:       d,
		Room:      fakeRoom{connected: true},
		Restarter: restarter,
	})
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, d, restarter
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	req := require.New(t)
	srv, _, _ := newServer(t, "")

	resp, err := http.Get(srv.URL + "/health")
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(map[string]any{"status": "ok"}, decode(t, resp))

	resp, err = http.Get(srv.URL + "/readyz")
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("ok", decode(t, resp)["status"])
}

func TestRegenerateHint(t *testing.T) {
	req := require.New(t)
	srv, _, _ := newServer(t, "")

	resp, err := http.Post(srv.URL+"/regenerate-hint", "application/json", nil)
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(map[string]any{"hint": "a fresh hint"}, decode(t, resp))
}

func TestRestart(t *testing.T) {
	srv, _, restarter := newServer(t, "s3cret")

	tests := []struct {
		description string
		build       func() *http.Request
		wantStatus  int
	}{
		{
			"Should reject a missing token",
			func() *http.Request {
				r, _ := http.NewRequest(http.MethodPost, srv.URL+"/restart", nil)
				return r
			},
			http.StatusForbidden,
		},
		{
			"Should reject a wrong token",
			func() *http.Request {
				r, _ := http.NewRequest(http.MethodPost, srv.URL+"/restart", nil)
				r.Header.Set("X-Restart-Token", "S3CRET")
				return r
			},
			http.StatusForbidden,
		},
		{
			"Should accept the header token",
			func() *http.Request {
				r, _ := http.NewRequest(http.MethodPost, srv.URL+"/restart", nil)
				r.Header.Set("X-Restart-Token", "s3cret")
				return r
			},
			http.StatusAccepted,
		},
		{
			"Should accept the query token",
			func() *http.Request {
				r, _ := http.NewRequest(http.MethodPost, srv.URL+"/restart?token=s3cret", nil)
				return r
			},
			http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			resp, err := http.DefaultClient.Do(tt.build())
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
	require.Equal(t, int32(2), restarter.calls.Load())
}

func TestRestart_WithoutToken(t *testing.T) {
	srv, _, restarter := newServer(t, "")

	resp, err := http.Post(srv.URL+"/restart", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, int32(1), restarter.calls.Load())
}

func TestWebSocket(t *testing.T) {
	req := require.New(t)
	srv, d, _ := newServer(t, "")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	defer conn.Close()

	read := func() map[string]any {
		req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
		var msg map[string]any
		req.NoError(conn.ReadJSON(&msg))
		return msg
	}

	req.Equal(map[string]any{"type": "connection", "status": "connected"}, read())
	req.Eventually(func() bool { return d.Count() == 1 }, time.Second, 10*time.Millisecond)

	req.NoError(conn.WriteJSON(map[string]string{"type": "ping"}))
	pong := read()
	req.Equal("pong", pong["type"])
	req.Greater(pong["timestamp"], float64(0))

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	resp, err := http.Post(srv.URL+"/test-hint", "application/json", strings.NewReader(`{"text":"hello facilitator"}`))
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
	sent := decode(t, resp)

	hint := read()
	req.Equal("hint", hint["type"])
	req.Equal("hello facilitator", hint["text"])
	req.Equal(sent["id"], hint["id"])

	resp, err = http.Post(srv.URL+"/test-hint", "application/json", nil)
	req.NoError(err)
	resp.Body.Close()
	req.Equal(handlers.DefaultTestHint, read()["text"])

	req.NoError(conn.Close())
	req.Eventually(func() bool { return d.Count() == 0 }, time.Second, 10*time.Millisecond)
}
