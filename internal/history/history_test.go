package history_test

import (
	"testing"
	"time"

	"plexify/internal/history"
	"plexify/internal/logging"
)

func openLog(t *testing.T) *history.Log {
	t.Helper()
	log, err := history.Open(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRecordAndRecent(t *testing.T) {
	log := openLog(t)
	started := time.Now().Add(-time.Minute)

	log.RecordAttempt(history.Attempt{
		Identity:   "shows%2Fpilot",
		WorkerID:   "worker-a",
		StartedAt:  started,
		FinishedAt: started.Add(30 * time.Second),
		Outcome:    history.OutcomeFailed,
		ExitCode:   1,
		Message:    "ffmpeg exited with status 1",
	})
	log.RecordAttempt(history.Attempt{
		Identity:   "shows%2Fpilot",
		WorkerID:   "worker-a",
		StartedAt:  started.Add(time.Minute),
		FinishedAt: started.Add(2 * time.Minute),
		Outcome:    history.OutcomeCompleted,
	})

	attempts, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].Outcome != history.OutcomeCompleted {
		t.Fatalf("expected newest first, got %+v", attempts[0])
	}
	if attempts[1].ExitCode != 1 {
		t.Fatalf("expected recorded exit code, got %+v", attempts[1])
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	log := openLog(t)
	for i := 0; i < 5; i++ {
		log.RecordAttempt(history.Attempt{
			Identity:   "movie",
			WorkerID:   "worker-a",
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
			Outcome:    history.OutcomeFailed,
		})
	}
	attempts, err := log.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(attempts))
	}
}

func TestSummary(t *testing.T) {
	log := openLog(t)
	for i := 0; i < 3; i++ {
		log.RecordAttempt(history.Attempt{
			Identity: "movie", WorkerID: "w", StartedAt: time.Now(), FinishedAt: time.Now(),
			Outcome: history.OutcomeFailed,
		})
	}
	log.RecordAttempt(history.Attempt{
		Identity: "movie", WorkerID: "w", StartedAt: time.Now(), FinishedAt: time.Now(),
		Outcome: history.OutcomeCompleted,
	})

	summary, err := log.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary[history.OutcomeFailed] != 3 || summary[history.OutcomeCompleted] != 1 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestNilLogIsInert(t *testing.T) {
	var log *history.Log
	log.RecordAttempt(history.Attempt{Identity: "movie"})
	if attempts, err := log.Recent(5); err != nil || attempts != nil {
		t.Fatalf("nil log Recent = %v, %v", attempts, err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("nil log Close = %v", err)
	}
}
