// Package enqueue converts discovered media files into queued job
// descriptors exactly once. Deduplication is layered: an existing output
// artifact or a descriptor in any state location short-circuits first, an
// ephemeral per-identity marker serializes concurrent enqueue attempts, and
// the final queue create is itself create-if-absent.
package enqueue
