package service

import (
	"context"
	"log/slog"

	"github.com/preplane/backend/internal/store"
	"github.com/preplane/backend/internal/worker"
)

// StatsRecorder updates per-question lifetime counters off the request
// path so a slow write never delays the next question.
type StatsRecorder struct {
	store  store.Store
	pool   *worker.Pool[error]
	logger *slog.Logger
}

func NewStatsRecorder(s store.Store, logger *slog.Logger) *StatsRecorder {
	r := &StatsRecorder{
		store:  s,
		pool:   worker.NewPool[error](2, 64),
		logger: logger,
	}
	go r.drain()
	return r
}

// Record queues a lifetime-counter bump for the question.
func (r *StatsRecorder) Record(questionID string, correct bool) {
	r.pool.Submit(questionID, func() error {
		// Stat updates run after the originating request has returned,
		// so they carry their own context.
		return r.store.BumpQuestionStats(context.Background(), questionID, correct)
	})
}

func (r *StatsRecorder) drain() {
	for res := range r.pool.Results() {
		if res.Output != nil {
			r.logger.Error("question stats update failed",
				"question_id", res.JobID,
				"error", res.Output,
			)
		}
	}
}

func (r *StatsRecorder) Close() {
	r.pool.Close()
}
