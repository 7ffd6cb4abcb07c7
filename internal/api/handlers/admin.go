package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nikhilbhutani/silentcoach/internal/dispatch"
)

const DefaultTestHint = "This is a test hint from the coach."

// Coach is the part of the orchestrator the admin endpoints drive.
type Coach interface {
	InjectHint(ctx context.Context, text string) dispatch.Hint
	Regenerate(ctx context.Context) string
}

type Restarter interface {
	Restart()
}

type AdminHandler struct {
	log          *slog.Logger
	coach        Coach
	restarter    Restarter
	restartToken string
}

// NewAdminHandler leaves /restart open when restartToken is empty.
func NewAdminHandler(log *slog.Logger, coach Coach, restarter Restarter, restartToken string) *AdminHandler {
	return &AdminHandler{log: log, coach: coach, restarter: restarter, restartToken: restartToken}
}

type testHintRequest struct {
	Text string `json:"text"`
}

func (h *AdminHandler) TestHint(w http.ResponseWriter, r *http.Request) {
	var body testHintRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	text := strings.TrimSpace(body.Text)
	if text == "" {
		text = DefaultTestHint
	}

	hint := h.coach.InjectHint(r.Context(), text)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent", "id": hint.ID, "text": hint.Text})
}

func (h *AdminHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"hint": h.coach.Regenerate(r.Context())})
}

func (h *AdminHandler) Restart(w http.ResponseWriter, r *http.Request) {
	if h.restartToken != "" {
		token := r.Header.Get("X-Restart-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.restartToken)) != 1 {
			h.log.Warn("restart rejected", "remote_addr", r.RemoteAddr)
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid restart token"})
			return
		}
	}

	h.log.Info("restart requested", "remote_addr", r.RemoteAddr)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "restarting"})
	h.restarter.Restart()
}
