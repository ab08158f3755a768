package enqueue

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"plexify/internal/fileutil"
	"plexify/internal/logging"
	"plexify/internal/media"
	"plexify/internal/store"
)

// Outcome reports how a single enqueue attempt resolved. Everything but
// OutcomeQueued is an idempotent skip.
type Outcome int

const (
	// OutcomeQueued means a new descriptor was written to the queue.
	OutcomeQueued Outcome = iota
	// OutcomeOutputExists means the transcode artifact already exists.
	OutcomeOutputExists
	// OutcomeAlreadyTracked means some state location already holds the identity.
	OutcomeAlreadyTracked
	// OutcomeMissingSubtitle means a required sibling subtitle was absent.
	// The file is skipped for this run, never altered.
	OutcomeMissingSubtitle
	// OutcomeConcurrentEnqueue means another process held the enqueue
	// marker for the same identity.
	OutcomeConcurrentEnqueue
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQueued:
		return "queued"
	case OutcomeOutputExists:
		return "output exists"
	case OutcomeAlreadyTracked:
		return "already tracked"
	case OutcomeMissingSubtitle:
		return "missing subtitle"
	case OutcomeConcurrentEnqueue:
		return "concurrent enqueue"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Intake enqueues candidate media files against a store.
type Intake struct {
	store     *store.Store
	mediaRoot string
	params    media.EncodingParameters
	logger    *slog.Logger
}

// New returns an Intake that snapshots params into every descriptor it
// creates. Later configuration changes never affect jobs queued before them.
func New(s *store.Store, mediaRoot string, params media.EncodingParameters, logger *slog.Logger) *Intake {
	return &Intake{
		store:     s,
		mediaRoot: mediaRoot,
		params:    params,
		logger:    logging.WithComponent(logger, "enqueue"),
	}
}

// Enqueue runs the enqueue protocol for one candidate file. relPath is
// relative to the media root. Validation skips return a non-error Outcome;
// an error means the store itself failed.
func (in *Intake) Enqueue(relPath string, kind media.Kind) (Outcome, error) {
	job, err := media.NewJob(relPath, kind, in.params)
	if err != nil {
		return 0, err
	}

	if fileutil.PathExists(filepath.Join(in.mediaRoot, filepath.FromSlash(job.OutputPath()))) {
		in.logger.Debug("output already exists", logging.String("source", relPath))
		return OutcomeOutputExists, nil
	}

	tracked, err := in.store.Contains(job.Identity)
	if err != nil {
		return 0, err
	}
	if tracked {
		in.logger.Debug("job already tracked", logging.String("identity", job.Identity))
		return OutcomeAlreadyTracked, nil
	}

	if subtitle, required := job.SubtitlePath(); required {
		if !fileutil.PathExists(filepath.Join(in.mediaRoot, filepath.FromSlash(subtitle))) {
			in.logger.Warn("skipping: missing subtitle file",
				logging.String("source", relPath),
				logging.String("subtitle", subtitle),
			)
			return OutcomeMissingSubtitle, nil
		}
	}

	if err := in.store.Mark(job.Identity); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			in.logger.Debug("concurrent enqueue in flight", logging.String("identity", job.Identity))
			return OutcomeConcurrentEnqueue, nil
		}
		return 0, err
	}
	// The marker must come off on every path, including a failed create.
	defer in.store.Unmark(job.Identity)

	if err := in.store.Create(store.Queued, job); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return OutcomeAlreadyTracked, nil
		}
		return 0, err
	}

	in.logger.Info("queued job",
		logging.String("identity", job.Identity),
		logging.String("source", relPath),
		logging.String("kind", string(kind)),
	)
	return OutcomeQueued, nil
}
