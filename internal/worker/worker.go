package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"plexify/internal/ffmpeg"
	"plexify/internal/history"
	"plexify/internal/logging"
	"plexify/internal/media"
	"plexify/internal/store"
)

// Config carries the worker loop settings resolved from configuration.
type Config struct {
	MediaRoot    string
	PollInterval time.Duration
	RetryDelay   time.Duration
}

// Worker owns one claim-process-resolve loop.
type Worker struct {
	id        string
	store     *store.Store
	processor *ffmpeg.Processor
	history   *history.Log
	cfg       Config
	logger    *slog.Logger
}

// New builds a worker with a fresh process-unique ID. The history log may be
// nil; recording is then a no-op.
func New(st *store.Store, proc *ffmpeg.Processor, hist *history.Log, cfg Config, logger *slog.Logger) *Worker {
	id := uuid.NewString()
	return &Worker{
		id:        id,
		store:     st,
		processor: proc,
		history:   hist,
		cfg:       cfg,
		logger:    logging.WithComponent(logger, "worker").With(logging.String("worker_id", id)),
	}
}

// ID returns the worker's process-unique identifier.
func (w *Worker) ID() string {
	return w.id
}

// Run executes the loop until ctx is cancelled. Cancellation is cooperative:
// it is consulted at the end of each idle or retry wait and after a claimed
// job resolves, never mid-transcode. Run returns nil on a clean shutdown.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started",
		logging.String("media_root", w.cfg.MediaRoot),
		logging.Duration("poll_interval", w.cfg.PollInterval),
	)

	for {
		job, claimed, err := claimNext(w.store, w.logger)
		if err != nil {
			// Store I/O trouble aborts this cycle only.
			w.logger.Error("queue scan failed", logging.Error(err))
		}

		if !claimed {
			if !w.pause(ctx, w.cfg.PollInterval) {
				w.logger.Info("shutdown requested while idle")
				return nil
			}
			continue
		}

		failed := w.process(ctx, job)

		if ctx.Err() != nil {
			w.logger.Info("shutdown requested, current job resolved")
			return nil
		}
		if failed && !w.pause(ctx, w.cfg.RetryDelay) {
			w.logger.Info("shutdown requested during retry delay")
			return nil
		}
	}
}

// process runs one claimed job to resolution and reports whether it failed.
// The engine gets a context detached from the shutdown signal so an in-flight
// transcode always runs to completion.
func (w *Worker) process(ctx context.Context, job *media.Job) bool {
	ref := store.RefFor(job.Identity)
	started := time.Now()

	err := w.processor.Process(context.WithoutCancel(ctx), job, w.cfg.MediaRoot)
	finished := time.Now()

	if err == nil {
		if terr := w.store.Transition(ref, store.Claimed, store.Completed); terr != nil {
			// The transcode output is already published; only the state
			// move failed. Leave the descriptor where it is and let the
			// next cycle carry on.
			w.logger.Error("failed to mark job completed",
				logging.String("identity", job.Identity),
				logging.Error(terr),
			)
			return false
		}
		if derr := w.processor.DisableSources(job, w.cfg.MediaRoot); derr != nil {
			w.logger.Warn("failed to disable source files",
				logging.String("identity", job.Identity),
				logging.Error(derr),
			)
		}
		w.record(job, started, finished, history.OutcomeCompleted, 0, "")
		return false
	}

	exitCode := -1
	message := err.Error()
	var exitErr *ffmpeg.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.Code
	}
	w.logger.Warn("transcode failed, requeueing",
		logging.String("identity", job.Identity),
		logging.Int("exit_code", exitCode),
		logging.Error(err),
	)
	w.record(job, started, finished, history.OutcomeFailed, exitCode, message)

	if terr := w.store.Transition(ref, store.Claimed, store.Queued); terr != nil {
		w.logger.Error("failed to requeue job",
			logging.String("identity", job.Identity),
			logging.Error(terr),
		)
	}
	return true
}

func (w *Worker) record(job *media.Job, started, finished time.Time, outcome string, exitCode int, message string) {
	w.history.RecordAttempt(history.Attempt{
		Identity:   job.Identity,
		WorkerID:   w.id,
		StartedAt:  started,
		FinishedAt: finished,
		Outcome:    outcome,
		ExitCode:   exitCode,
		Message:    message,
	})
}

// pause waits for d and reports whether the worker should keep running.
func (w *Worker) pause(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
