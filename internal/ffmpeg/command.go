package ffmpeg

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"plexify/internal/media"
)

// Options adjusts how the engine is invoked.
type Options struct {
	// Background wraps the invocation in nice so a worker can share a
	// desktop machine.
	Background bool
	// Nice is the niceness applied in background mode.
	Nice int
}

// partSuffix marks in-progress output files.
const partSuffix = ".part.mp4"

// partPath returns the temporary output name for a job's final output path.
func partPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, ".mp4") + partSuffix
}

// BuildArgs constructs the full argv for transcoding job, writing to the
// temporary part file. Paths in the argv are absolute.
func BuildArgs(job *media.Job, mediaRoot string, opts Options) ([]string, error) {
	input := filepath.Join(mediaRoot, filepath.FromSlash(job.SourcePath))
	output := filepath.Join(mediaRoot, filepath.FromSlash(partPath(job.OutputPath())))

	var args []string
	if opts.Background {
		args = append(args, "nice", "-n", strconv.Itoa(opts.Nice))
	}
	args = append(args, "ffmpeg",
		"-hide_banner", "-nostdin",
		"-fflags", "+genpts",
		"-avoid_negative_ts", "make_zero",
	)

	switch job.Kind {
	case media.KindExternalSubtitle:
		subtitle, ok := job.SubtitlePath()
		if !ok {
			return nil, fmt.Errorf("external-subtitle job %s has no subtitle path", job.Identity)
		}
		args = append(args,
			"-i", input,
			"-i", filepath.Join(mediaRoot, filepath.FromSlash(subtitle)),
			"-map", "0:v:0", "-map", "0:a:0", "-map", "1:s:0",
		)
	case media.KindEmbeddedSubtitle:
		args = append(args,
			"-fix_sub_duration",
			"-i", input,
			"-map", "0:v:0", "-map", "0:a:0", "-map", "0:s:0",
		)
	default:
		return nil, fmt.Errorf("unknown media kind %q for job %s", job.Kind, job.Identity)
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", job.Encoding.Preset,
		"-crf", strconv.Itoa(job.Encoding.CRF),
		"-c:a", "aac",
		"-b:a", job.Encoding.AudioBitrate,
		"-c:s", "mov_text",
		"-y",
		output,
	)
	return args, nil
}
