// Package logging constructs the slog loggers used across plexify. It
// provides a colorized console handler for interactive use, a JSON handler
// for machine consumption, and small attribute helpers so call sites do not
// import log/slog directly.
package logging
