package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModelNotFound marks a missing classifier or detector artifact.
	// Raised before any pipeline work begins.
	ErrModelNotFound = errors.New("model artifact not found")
	// ErrFrameSource marks a missing or empty frame directory.
	ErrFrameSource = errors.New("frame source error")
	// ErrDuplicateStrike marks a strike-triggering transition on a target
	// that already carries a strike. This is an invariant violation and is
	// never absorbed silently.
	ErrDuplicateStrike = errors.New("duplicate strike")
	// ErrInvalidArgument marks malformed caller input such as a zero-frame
	// statistics set.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrExternalTool marks detector subprocess failures.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration discovered at runtime.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks missing records.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks retryable failures.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an analysis error should fail the task permanently
// rather than be retried on the next poll.
func IsFatal(err error) bool {
	return errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrFrameSource) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConfiguration)
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
