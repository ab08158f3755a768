// Package store implements the directory-backed job state store. A job's
// lifecycle state is encoded solely by which directory its descriptor file
// lives in; moving between directories is an atomic rename, and creating a
// descriptor is an atomic link. Those two filesystem primitives are the only
// concurrency control in the system, which is what lets mutually-unaware
// worker processes partition work safely over a shared filesystem.
//
// The layout assumes POSIX rename/link atomicity. On network filesystems
// without those guarantees the store must be replaced with a backend that
// offers an equivalent compare-and-move primitive.
package store
