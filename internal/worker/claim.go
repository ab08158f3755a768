package worker

import (
	"errors"
	"log/slog"

	"plexify/internal/logging"
	"plexify/internal/media"
	"plexify/internal/services"
	"plexify/internal/store"
)

// claimNext scans the queue and tries to claim one job. It returns false
// with a nil error when the queue is empty or every candidate was claimed
// by someone else first.
func claimNext(st *store.Store, logger *slog.Logger) (*media.Job, bool, error) {
	refs, err := st.List(store.Queued)
	if err != nil {
		return nil, false, services.Wrap(services.ErrStoreIO, "worker", "list queue", "", err)
	}

	candidates := make([]*media.Job, 0, len(refs))
	for _, ref := range refs {
		job, err := st.Load(store.Queued, ref)
		if err != nil {
			if errors.Is(err, store.ErrAlreadyGone) {
				// Claimed by another worker between List and Load.
				continue
			}
			logger.Warn("skipping unreadable queue entry",
				logging.String("entry", ref.Name),
				logging.Error(err),
			)
			continue
		}
		candidates = append(candidates, job)
	}

	Order(candidates)

	for _, job := range candidates {
		err := st.Transition(store.RefFor(job.Identity), store.Queued, store.Claimed)
		if err == nil {
			return job, true, nil
		}
		if errors.Is(err, store.ErrAlreadyGone) {
			continue
		}
		return nil, false, services.Wrap(services.ErrStoreIO, "worker", "claim job", job.Identity, err)
	}
	return nil, false, nil
}
