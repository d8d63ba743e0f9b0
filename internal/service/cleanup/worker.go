package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/hex/backend/internal/service/game"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "cleanup")

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	MaxAge         time.Duration
}

func NewWorker(sm *game.SessionManager, interval, maxAge time.Duration) *Worker {
	return &Worker{SessionManager: sm, Interval: interval, MaxAge: maxAge}
}

// Start runs one cleanup immediately and then every Interval until ctx is done
func (w *Worker) Start(ctx context.Context) {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}
	go func() {
		w.RunOnce()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("background worker stopped")
				return
			case <-ticker.C:
				w.RunOnce()
			}
		}
	}()
	log.WithFields(logrus.Fields{"interval": w.Interval, "maxAge": w.MaxAge}).Info("background worker started")
}

// RunOnce drops idle sessions and reports how many went
func (w *Worker) RunOnce() int {
	log.Debug("starting scheduled cleanup task")
	return w.SessionManager.CleanupOldSessions(w.MaxAge)
}
