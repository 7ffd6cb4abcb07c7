// Package restart lets an admin request re-exec the agent in place.
package restart

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Trigger cancels the run context after a short delay so the HTTP reply can
// flush; main then calls Exec once everything has shut down.
type Trigger struct {
	log       *slog.Logger
	delay     time.Duration
	cancel    context.CancelFunc
	requested atomic.Bool
	once      sync.Once
}

func NewTrigger(log *slog.Logger, delay time.Duration, cancel context.CancelFunc) *Trigger {
	return &Trigger{log: log, delay: delay, cancel: cancel}
}

// Restart is idempotent.
func (t *Trigger) Restart() {
	t.once.Do(func() {
		t.requested.Store(true)
		t.log.Info("restart scheduled", "delay", t.delay)
		time.AfterFunc(t.delay, t.cancel)
	})
}

func (t *Trigger) Requested() bool {
	return t.requested.Load()
}

// Exec replaces the current process with a fresh copy of itself. It only
// returns on failure.
func Exec() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", exe, err)
	}
	return nil
}
