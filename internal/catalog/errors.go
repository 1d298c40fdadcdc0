package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorageIO    = errors.New("storage failure")
)

// Wrap builds an error that carries operation context and the marker used
// for classification. The marker should be one of the exported sentinels
// above; nil defaults to ErrStorageIO.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrStorageIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Invalid is shorthand for an ErrInvalidInput error without a cause.
func Invalid(operation, format string, args ...any) error {
	return Wrap(ErrInvalidInput, operation, fmt.Sprintf(format, args...), nil)
}

// Kind returns a short classification label for err: "not_found",
// "conflict", "invalid_input", "storage", or "" when unclassified.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrStorageIO):
		return "storage"
	default:
		return ""
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "catalog failure"
	}
	return strings.Join(parts, ": ")
}
