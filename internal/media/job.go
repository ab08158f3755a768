package media

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// Kind classifies how a job's subtitles are sourced.
type Kind string

const (
	// KindExternalSubtitle is a .webm source with a sibling .vtt subtitle.
	KindExternalSubtitle Kind = "external_subtitle"
	// KindEmbeddedSubtitle is a .mkv source carrying its own subtitle track.
	KindEmbeddedSubtitle Kind = "embedded_subtitle"
)

// EncodingParameters is the immutable snapshot of ffmpeg settings captured
// when a job is queued.
type EncodingParameters struct {
	Preset       string `json:"preset"`
	CRF          int    `json:"crf"`
	AudioBitrate string `json:"audio_bitrate"`
}

// Job describes a single transcoding task. Once written to the store its
// content never changes; only its location does.
type Job struct {
	Identity   string             `json:"identity"`
	SourcePath string             `json:"source_path"`
	Kind       Kind               `json:"kind"`
	Encoding   EncodingParameters `json:"encoding"`
	SortKey    *SortKey           `json:"sort_key,omitempty"`
}

// KindForPath maps a file extension to its media kind.
func KindForPath(p string) (Kind, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".webm":
		return KindExternalSubtitle, true
	case ".mkv":
		return KindEmbeddedSubtitle, true
	default:
		return "", false
	}
}

// NewJob builds a descriptor for the media file at relPath (relative to the
// media root, slash-separated). The identity and sort key are derived from
// the path; params are the caller's snapshot of the current configuration.
func NewJob(relPath string, kind Kind, params EncodingParameters) (*Job, error) {
	relPath = path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	if relPath == "." || relPath == "" || strings.HasPrefix(relPath, "../") {
		return nil, fmt.Errorf("media path %q is not inside the media root", relPath)
	}
	return &Job{
		Identity:   Identity(relPath),
		SourcePath: relPath,
		Kind:       kind,
		Encoding:   params,
		SortKey:    ParseSortKey(relPath),
	}, nil
}

// OutputPath returns the transcode destination relative to the media root.
func (j *Job) OutputPath() string {
	return strings.TrimSuffix(j.SourcePath, path.Ext(j.SourcePath)) + ".mp4"
}

// SubtitlePath returns the sibling subtitle path for external-subtitle jobs.
func (j *Job) SubtitlePath() (string, bool) {
	if j.Kind != KindExternalSubtitle {
		return "", false
	}
	return strings.TrimSuffix(j.SourcePath, path.Ext(j.SourcePath)) + ".vtt", true
}

// DisabledPath returns the archived name a source file is renamed to after a
// successful transcode. Sources are never deleted.
func DisabledPath(p string) string {
	return p + ".disabled"
}

// Encode serializes the descriptor for storage.
func (j *Job) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode job %s: %w", j.Identity, err)
	}
	return append(data, '\n'), nil
}

// Decode deserializes a stored descriptor.
func Decode(data []byte) (*Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if job.Identity == "" || job.SourcePath == "" {
		return nil, fmt.Errorf("decode job: missing identity or source path")
	}
	return &job, nil
}
