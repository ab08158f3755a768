// Package services holds the error taxonomy shared across the system.
// Errors are tagged with a sentinel marker so call sites can classify a
// failure without parsing its message.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks per-file problems: the one candidate is skipped
	// with a warning and nothing else is affected.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks startup problems that abort the process.
	ErrConfiguration = errors.New("configuration error")
	// ErrProcessing marks transcode failures: the job is requeued and
	// retried after the retry delay.
	ErrProcessing = errors.New("processing error")
	// ErrStoreIO marks unexpected state-store failures: the current
	// operation aborts, the worker loop continues next cycle.
	ErrStoreIO = errors.New("store io error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrProcessing
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether a failed attempt should go back to the queue.
// Validation and configuration failures never resolve on their own, so
// retrying them only burns cycles.
func Retryable(err error) bool {
	return !errors.Is(err, ErrValidation) && !errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
