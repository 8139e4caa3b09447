// Package cleanup sweeps session state that outlived its usefulness.
package cleanup

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"connect-four-server/internal/service/game"
)

type Worker struct {
	sessions  *game.SessionManager
	scheduler gocron.Scheduler
}

func NewWorker(sessions *game.SessionManager) *Worker {
	return &Worker{sessions: sessions}
}

// Start schedules the hourly sweep. Stop shuts it down.
func (w *Worker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			w.sessions.CleanupStale()
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	w.scheduler = sched
	log.Println("[CLEANUP] Background worker started")
	return nil
}

func (w *Worker) Stop() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
}
