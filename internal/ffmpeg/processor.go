package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"plexify/internal/logging"
	"plexify/internal/media"
)

// ExitError reports a transcode that ran and failed. The stderr tail is for
// operator logs only; nothing in the system parses it.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("ffmpeg exited with status %d", e.Code)
}

// Processor invokes the external engine for claimed jobs.
type Processor struct {
	opts   Options
	logger *slog.Logger
}

// NewProcessor returns a processor with the given invocation options.
func NewProcessor(opts Options, logger *slog.Logger) *Processor {
	return &Processor{opts: opts, logger: logging.WithComponent(logger, "ffmpeg")}
}

// Process transcodes job under mediaRoot. On success the finished output is
// renamed from its temporary part name to the final path; on failure the
// part file is removed and an *ExitError is returned when the engine itself
// failed.
func (p *Processor) Process(ctx context.Context, job *media.Job, mediaRoot string) error {
	args, err := BuildArgs(job, mediaRoot, p.opts)
	if err != nil {
		return err
	}

	part := filepath.Join(mediaRoot, filepath.FromSlash(partPath(job.OutputPath())))
	final := filepath.Join(mediaRoot, filepath.FromSlash(job.OutputPath()))

	p.logger.Info("starting transcode",
		logging.String("identity", job.Identity),
		logging.String("source", job.SourcePath),
	)
	p.logger.Debug("engine invocation", logging.Any("args", args))

	stderr := newTailBuffer(4096)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = nil
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(part)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return fmt.Errorf("run engine: %w", err)
	}

	if _, err := os.Stat(part); err != nil {
		// Exit status 0 but no output: treat as an engine failure.
		return &ExitError{Code: 0, Stderr: "engine reported success but produced no output"}
	}
	if err := os.Rename(part, final); err != nil {
		return fmt.Errorf("publish output: %w", err)
	}

	p.logger.Info("transcode complete",
		logging.String("identity", job.Identity),
		logging.String("output", job.OutputPath()),
	)
	return nil
}

// DisableSources archives the job's source media (and external subtitle, if
// any) by renaming them with a .disabled suffix. Sources are never deleted.
func (p *Processor) DisableSources(job *media.Job, mediaRoot string) error {
	source := filepath.Join(mediaRoot, filepath.FromSlash(job.SourcePath))
	if err := os.Rename(source, media.DisabledPath(source)); err != nil {
		return fmt.Errorf("disable source: %w", err)
	}

	if subtitle, ok := job.SubtitlePath(); ok {
		subPath := filepath.Join(mediaRoot, filepath.FromSlash(subtitle))
		if _, err := os.Stat(subPath); err == nil {
			if err := os.Rename(subPath, media.DisabledPath(subPath)); err != nil {
				return fmt.Errorf("disable subtitle: %w", err)
			}
		}
	}
	return nil
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max  int
	data []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	if len(b.data) > b.max {
		b.data = b.data[len(b.data)-b.max:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return string(b.data)
}
