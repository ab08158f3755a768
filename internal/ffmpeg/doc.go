// Package ffmpeg builds and runs the external transcode invocation. The
// engine is opaque to the rest of the system: it is judged only by its exit
// status and the output file it produces. Output is written to a temporary
// name and renamed into place on success so an interrupted transcode never
// leaves a torn artifact where the enqueue dedup check would see it.
package ffmpeg
