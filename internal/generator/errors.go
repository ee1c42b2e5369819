package generator

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidParameters is matched by every ParameterError via errors.Is.
var ErrInvalidParameters = errors.New("invalid generator parameters")

// ParameterError reports a generator parameter outside its domain.
type ParameterError struct {
	Field   string
	Message string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameters
}

func paramErr(field, format string, args ...any) error {
	return &ParameterError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MaxDays bounds every generation window to one century.
const MaxDays = 36500

// validateWindow checks a start date and day count pair.
func validateWindow(start time.Time, days int) error {
	if start.IsZero() {
		return paramErr("start", "start date is required")
	}
	if days <= 0 {
		return paramErr("days", "days must be positive, got %d", days)
	}
	if days > MaxDays {
		return paramErr("days", "days must not exceed %d, got %d", MaxDays, days)
	}
	return nil
}

func validateCount(count int) error {
	if count <= 0 {
		return paramErr("count", "count must be positive, got %d", count)
	}
	return nil
}
